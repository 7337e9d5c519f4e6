package core

import (
	"math"

	"github.com/san-kum/flurry/internal/gfx"
)

// State is the complete mutable state of one cluster.
type State struct {
	RandomSeed      float64
	NumStreams      int
	ColorMode       ColorMode
	StreamExpansion float64
	Brightness      float64
	DrawSparks      bool

	Particles *ParticlePool
	Smoke     *Smoke
	Star      *Star
	Sparks    *[MaxStreams]Spark

	Time      float64
	OldTime   float64
	DeltaTime float64
	StartTime float64
	Frame     int64
	Drag      float64

	Width   int
	Height  int
	Texture gfx.TextureID

	rng   Rand
	batch []gfx.Quad
}

// NewState allocates a state with the default spec: five tiedye streams,
// expansion 100 and a star turning at speed 1. now is the current clock
// reading.
func NewState(rng Rand, now float64) *State {
	st := &State{
		RandomSeed:      randFloat(rng, 0.0, 300.0),
		NumStreams:      DefaultStreams,
		ColorMode:       Tiedye,
		StreamExpansion: DefaultStreamExpansion,
		Brightness:      1.0,
		DrawSparks:      true,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Drag:            1.0,
		rng:             rng,
		batch:           make([]gfx.Quad, 0, NumSmokeParticles),
	}

	st.Particles = NewParticlePool()

	st.Smoke = &Smoke{}
	st.Smoke.Init(rng)

	st.Star = &Star{}
	st.Star.Init(rng)
	st.Star.RotSpeed = DefaultRotSpeed

	st.Sparks = &[MaxStreams]Spark{}
	for i := range st.Sparks {
		st.Sparks[i].Init(rng, i)
	}

	st.setTime(now)
	return st
}

// SetStreams assigns the stream count, clamped to [0, MaxStreams].
func (st *State) SetStreams(n int) {
	st.NumStreams = max(0, min(n, MaxStreams))
}

func (st *State) streams() int { return max(0, min(st.NumStreams, MaxStreams)) }

func (st *State) Resize(width, height int) {
	st.Width = width
	st.Height = height
}

// Reset reinitialises every entity in place. The star keeps its rotation
// speed and the cluster keeps its seed and spec.
func (st *State) Reset(now float64) {
	st.Particles.Reset()
	st.Smoke.Init(st.rng)

	rot := st.Star.RotSpeed
	st.Star.Init(st.rng)
	st.Star.RotSpeed = rot

	for i := range st.Sparks {
		st.Sparks[i].Init(st.rng, i)
	}
	st.setTime(now)
}

func (st *State) setTime(now float64) {
	st.Time = now + st.RandomSeed
	st.OldTime = st.Time
	st.StartTime = st.Time
	st.DeltaTime = 0
	st.Frame = 0
	st.Star.Update(st.Time)
	for i := 0; i < st.streams(); i++ {
		st.Sparks[i].Update(st, i)
	}
}

func (st *State) advance(now float64) {
	st.Frame++
	st.OldTime = st.Time
	st.Time = now + st.RandomSeed
	st.DeltaTime = st.Time - st.OldTime
	st.Drag = math.Pow(0.9965, st.DeltaTime*85.0)
}

// frameRate is the mean rate since the last reset, zero before any frame.
func (st *State) frameRate() float64 {
	elapsed := st.Time - st.StartTime
	if st.Frame == 0 || elapsed <= 0 {
		return 0
	}
	return float64(st.Frame) / elapsed
}

// Restart rebases the cluster clock on now without touching entities.
func (st *State) Restart(now float64) { st.setTime(now) }
