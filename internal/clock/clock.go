// Package clock provides the seconds-since-start time source consumed by
// the pacing controller and the simulation core.
//
// A Clock can be told to hide a stretch of elapsed wall time. Every reading
// taken afterwards is shifted back by the hidden amount, so a host stall
// does not show up as a jump in the animation.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	// Now returns monotonic seconds since the clock started, minus any
	// delay hidden so far.
	Now() float64
	// HideDelay removes d seconds from all subsequent Now readings.
	HideDelay(d float64)
}

// Monotonic reads the process wall clock.
type Monotonic struct {
	mu     sync.Mutex
	start  time.Time
	hidden float64
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.start).Seconds() - m.hidden
}

func (m *Monotonic) HideDelay(d float64) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.hidden += d
	m.mu.Unlock()
}

// Manual is advanced explicitly. Tests and headless runs use it to feed
// exact frame gaps.
type Manual struct {
	mu     sync.Mutex
	now    float64
	hidden float64
}

func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now - m.hidden
}

func (m *Manual) HideDelay(d float64) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.hidden += d
	m.mu.Unlock()
}

// Advance moves raw time forward by d seconds.
func (m *Manual) Advance(d float64) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// Hidden reports the total delay hidden so far.
func (m *Manual) Hidden() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hidden
}
