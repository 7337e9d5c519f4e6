package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/flurry/internal/core"
)

func TestFrameCost(t *testing.T) {
	m := NewFrameCost()

	m.Observe(Frame{Cost: 0.010})
	m.Observe(Frame{Cost: 0.020})

	if math.Abs(m.Value()-15) > 1e-9 {
		t.Errorf("expected mean 15ms, got %f", m.Value())
	}
	if math.Abs(m.Peak()-20) > 1e-9 {
		t.Errorf("expected peak 20ms, got %f", m.Peak())
	}

	m.Reset()
	if m.Value() != 0 || m.Peak() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestLiveSmokeCountsEveryCluster(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := core.NewState(rng, 0)
	b := core.NewState(rng, 0)
	for i := 1; i <= 30; i++ {
		core.Update(a, float64(i)/60)
		core.Update(b, float64(i)/60)
	}
	want := a.Smoke.Live() + b.Smoke.Live()

	m := NewLiveSmoke()
	m.Observe(Frame{States: []*core.State{a, b, nil}})
	if m.Last() != want || m.Value() != float64(want) {
		t.Errorf("expected %d live puffs, got last=%d mean=%f", want, m.Last(), m.Value())
	}

	m.Observe(Frame{})
	if m.Last() != 0 || m.Value() != float64(want)/2 {
		t.Errorf("expected mean %f, got last=%d mean=%f", float64(want)/2, m.Last(), m.Value())
	}
}

func TestParticleLoad(t *testing.T) {
	st := core.NewState(rand.New(rand.NewSource(2)), 0)
	for i := 0; i < core.MaxParticles/4; i++ {
		st.Particles.Spawn()
	}

	m := NewParticleLoad()
	m.Observe(Frame{States: []*core.State{st}})
	if math.Abs(m.Value()-0.25) > 1e-9 {
		t.Errorf("expected load 0.25, got %f", m.Value())
	}

	m.Observe(Frame{States: []*core.State{{}}})
	if math.Abs(m.Value()-0.25) > 1e-9 {
		t.Errorf("empty frame changed load: %f", m.Value())
	}
}
