package core

import (
	"math"

	"github.com/san-kum/flurry/internal/gfx"
)

type puffState uint8

const (
	puffDead puffState = iota
	puffAlive
	// puffDying is drawn once more, dimmed, before it is dead.
	puffDying
)

type Puff struct {
	Color     [4]float64
	Position  [3]float64
	Old       [3]float64
	Delta     [3]float64
	Born      float64
	AnimFrame int
	state     puffState
}

func (p *Puff) Alive() bool { return p.state != puffDead }

// Smoke is a ring of puffs. Emission overwrites the oldest slot.
type Smoke struct {
	Puffs     [NumSmokeParticles]Puff
	Next      int
	LastEmit  float64
	FirstTime bool
	Frame     int64
	Old       [3]float64
}

func (s *Smoke) Init(rng Rand) {
	for i := range s.Puffs {
		s.Puffs[i].state = puffDead
	}
	s.Next = 0
	s.LastEmit = 0.25
	s.FirstTime = true
	s.Frame = 0
	for i := range s.Old {
		s.Old[i] = randFloat(rng, -100.0, 100.0)
	}
}

// Live counts puffs that will still be drawn.
func (s *Smoke) Live() int {
	n := 0
	for i := range s.Puffs {
		if s.Puffs[i].Alive() {
			n++
		}
	}
	return n
}

func (s *Smoke) Update(st *State) {
	star := st.Star.Position
	s.Frame++

	if s.FirstTime {
		s.LastEmit = st.Time
		s.FirstTime = false
	} else if st.Time-s.LastEmit >= emitInterval {
		s.emit(st, star)
		s.LastEmit = st.Time
	}
	s.Old = star

	modifier := 1.0
	if fr := st.frameRate(); fr > 0 {
		modifier = 42.5 / fr
	}

	streams := st.streams()
	for i := range s.Puffs {
		p := &s.Puffs[i]
		if p.state != puffAlive {
			continue
		}

		d := p.Delta
		for j := 0; j < streams; j++ {
			sp := st.Sparks[j].Position
			dx := p.Position[0] - sp[0]
			dy := p.Position[1] - sp[1]
			dz := p.Position[2] - sp[2]
			rsq := dx*dx + dy*dy + dz*dz
			if rsq == 0 {
				continue
			}
			f := Gravity / rsq * modifier
			if i%streams == j {
				f *= 1.0 + StreamBias
			}
			mag := f / math.Sqrt(rsq)
			d[0] -= dx * mag
			d[1] -= dy * mag
			d[2] -= dz * mag
		}

		for k := range d {
			d[k] *= st.Drag
		}
		if d[0]*d[0]+d[1]*d[1]+d[2]*d[2] >= maxPuffSpeedSq {
			p.state = puffDying
			continue
		}

		p.Delta = d
		p.Old = p.Position
		for k := range p.Position {
			p.Position[k] += d[k] * st.DeltaTime
		}
	}
}

// emit releases one puff per stream at the star, aimed at its spark.
func (s *Smoke) emit(st *State, star [3]float64) {
	rng := st.rng
	base := [3]float64{
		(s.Old[0] - star[0]) * 5.0,
		(s.Old[1] - star[1]) * 5.0,
		(s.Old[2] - star[2]) * 5.0,
	}

	for i := 0; i < st.streams(); i++ {
		sp := &st.Sparks[i]
		p := &s.Puffs[s.Next]

		p.Delta = base
		p.Position = star
		p.Old = star

		dx := star[0] - sp.Position[0]
		dy := star[1] - sp.Position[1]
		dz := star[2] - sp.Position[2]
		if r := math.Sqrt(dx*dx + dy*dy + dz*dz); r > 0 {
			coherence := math.Max(0.0, 1.0+randBell(rng, 0.25*Incohesion))
			mag := StreamSpeed * coherence / r
			p.Delta[0] -= dx * mag
			p.Delta[1] -= dy * mag
			p.Delta[2] -= dz * mag
		}

		for k := 0; k < 3; k++ {
			p.Color[k] = sp.Color[k] * (1.0 + randBell(rng, ColorIncoherence))
		}
		p.Color[3] = 0.85 * (1.0 + randBell(rng, 0.5*ColorIncoherence))
		p.Born = st.Time
		p.state = puffAlive
		p.AnimFrame = rng.Intn(64)

		s.Next++
		if s.Next >= NumSmokeParticles {
			s.Next = 0
		}
	}
}

// Draw appends one streak quad per visible puff and retires puffs that have
// grown past the stream width.
func (s *Smoke) Draw(st *State, out []gfx.Quad) []gfx.Quad {
	w, h := float64(st.Width), float64(st.Height)
	ratio := w / 1024.0
	maxWidth := (StreamSize + 2.5*st.StreamExpansion) * ratio

	for i := range s.Puffs {
		p := &s.Puffs[i]
		if p.state == puffDead {
			continue
		}

		width := (StreamSize + (st.Time-p.Born)*st.StreamExpansion) * ratio
		if width >= maxWidth {
			p.state = puffDead
			continue
		}

		z, oz := p.Position[2], p.Old[2]
		if z < nearClip || oz < nearClip {
			continue
		}
		sx, sy := project(p.Position, w, h)
		if sx > w+50.0 || sx < -50.0 || sy > h+50.0 || sy < -50.0 {
			continue
		}
		ox, oy := project(p.Old, w, h)

		p.AnimFrame++
		if p.AnimFrame >= 64 {
			p.AnimFrame = 0
		}

		cm := (1.375 - width/maxWidth) * st.Brightness
		if p.state == puffDying {
			cm *= 0.125
			p.state = puffDead
		}

		q := streak(sx, sy, ox, oy, math.Max(1.0, width/z), math.Max(1.0, width/oz), p.AnimFrame)
		q.R, q.G, q.B = tint(p.Color, cm)
		q.A = float32(math.Min(1.0, p.Color[3]*cm))
		out = append(out, q)
	}
	return out
}
