package clock

import (
	"math"
	"testing"
	"time"
)

func TestManualAdvance(t *testing.T) {
	c := NewManual(1.0)
	c.Advance(0.5)
	if got := c.Now(); got != 1.5 {
		t.Errorf("Now() = %v, want 1.5", got)
	}
}

func TestManualHideDelay(t *testing.T) {
	c := NewManual(0)
	c.Advance(2.0)
	c.HideDelay(0.75)
	if got := c.Now(); math.Abs(got-1.25) > 1e-12 {
		t.Errorf("Now() = %v, want 1.25", got)
	}

	c.HideDelay(-1)
	c.HideDelay(0)
	if got := c.Hidden(); got != 0.75 {
		t.Errorf("Hidden() = %v, want 0.75", got)
	}
}

func TestMonotonicHideDelay(t *testing.T) {
	c := NewMonotonic()
	time.Sleep(5 * time.Millisecond)
	before := c.Now()
	if before <= 0 {
		t.Fatalf("expected positive reading, got %v", before)
	}

	c.HideDelay(10)
	if after := c.Now(); after >= before {
		t.Errorf("expected hidden delay to pull Now back, before=%v after=%v", before, after)
	}
}
