package core

import (
	"math"

	"github.com/san-kum/flurry/internal/gfx"
)

// Particle is one piece of glitter shed by a stream.
type Particle struct {
	Position  [3]float64
	Old       [3]float64
	Delta     [3]float64
	HueOffset float64
	Born      float64
	Life      float64
	Stream    int
	AnimFrame int
	alive     bool
}

func (p *Particle) Alive() bool { return p.alive }

// ParticlePool is a fixed arena of MaxParticles slots. Free slots are kept
// on a stack of indices so spawning and retiring never allocate.
type ParticlePool struct {
	slots [MaxParticles]Particle
	free  []int
	live  int
}

func NewParticlePool() *ParticlePool {
	p := &ParticlePool{free: make([]int, 0, MaxParticles)}
	p.Reset()
	return p
}

// Reset marks every slot free without reallocating.
func (p *ParticlePool) Reset() {
	p.free = p.free[:0]
	for i := MaxParticles - 1; i >= 0; i-- {
		p.slots[i].alive = false
		p.free = append(p.free, i)
	}
	p.live = 0
}

// Spawn claims a free slot. It reports false when the arena is full.
func (p *ParticlePool) Spawn() (int, *Particle, bool) {
	n := len(p.free)
	if n == 0 {
		return -1, nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.slots[idx].alive = true
	p.live++
	return idx, &p.slots[idx], true
}

// Retire returns slot idx to the free list. Retiring a dead slot is a no-op.
func (p *ParticlePool) Retire(idx int) {
	if idx < 0 || idx >= MaxParticles || !p.slots[idx].alive {
		return
	}
	p.slots[idx].alive = false
	p.free = append(p.free, idx)
	p.live--
}

func (p *ParticlePool) Live() int { return p.live }
func (p *ParticlePool) Cap() int  { return MaxParticles }

func (p *ParticlePool) At(idx int) *Particle { return &p.slots[idx] }

func (p *ParticlePool) target(st *State) int {
	return min(st.streams()*ParticlesPerStream, MaxParticles)
}

func (p *ParticlePool) Update(st *State) {
	for i := range p.slots {
		pt := &p.slots[i]
		if !pt.alive {
			continue
		}
		if st.Time-pt.Born > pt.Life {
			p.Retire(i)
			continue
		}
		pt.Old = pt.Position
		for k := range pt.Delta {
			pt.Delta[k] *= st.Drag
			pt.Position[k] += pt.Delta[k] * st.DeltaTime
		}
		if pt.Position[2] < nearClip {
			p.Retire(i)
		}
	}

	budget := st.streams() * 4
	for p.live < p.target(st) && budget > 0 {
		idx, pt, ok := p.Spawn()
		if !ok {
			break
		}
		p.respawn(st, idx, pt)
		budget--
	}
}

// respawn seeds a slot at a random stream head. The hue offset mixes the
// cluster seed with fresh randomness so clusters sharing a palette differ.
func (p *ParticlePool) respawn(st *State, idx int, pt *Particle) {
	rng := st.rng
	stream := rng.Intn(st.streams())
	head := st.Sparks[stream].Position
	star := st.Star.Position

	dir := [3]float64{head[0] - star[0], head[1] - star[1], head[2] - star[2]}
	r := math.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])
	speed := 0.25 * StreamSpeed * math.Max(0.0, 1.0+randBell(rng, Incohesion))

	for k := range pt.Position {
		pt.Position[k] = head[k] + randBell(rng, 20.0)
		pt.Delta[k] = randBell(rng, 60.0)
		if r > 0 {
			pt.Delta[k] += dir[k] / r * speed
		}
	}
	pt.Old = pt.Position
	pt.HueOffset = 0.5*ColorIncoherence*math.Sin(st.RandomSeed+float64(idx)) + randBell(rng, ColorIncoherence)
	pt.Born = st.Time
	pt.Life = randFloat(rng, 0.4, 1.6)
	pt.Stream = stream
	pt.AnimFrame = rng.Intn(64)
}

func (p *ParticlePool) Draw(st *State, out []gfx.Quad) []gfx.Quad {
	w, h := float64(st.Width), float64(st.Height)
	size := (0.15*StreamSize + 0.5*st.StreamExpansion) * w / 1024.0

	for i := range p.slots {
		pt := &p.slots[i]
		if !pt.alive || pt.Position[2] < nearClip || pt.Old[2] < nearClip {
			continue
		}
		sx, sy := project(pt.Position, w, h)
		if sx > w+50.0 || sx < -50.0 || sy > h+50.0 || sy < -50.0 {
			continue
		}
		ox, oy := project(pt.Old, w, h)

		pt.AnimFrame = (pt.AnimFrame + 1) & 63
		fade := 1.0 - (st.Time-pt.Born)/pt.Life

		var c [4]float64
		if pt.Stream < st.streams() {
			c = st.Sparks[pt.Stream].Color
		}
		q := streak(sx, sy, ox, oy, math.Max(1.0, size/pt.Position[2]), math.Max(1.0, size/pt.Old[2]), pt.AnimFrame)
		q.R, q.G, q.B = tint(c, (1.0+pt.HueOffset)*2.0*st.Brightness)
		q.A = float32(math.Max(0.0, math.Min(1.0, 0.6*fade*st.Brightness)))
		out = append(out, q)
	}
	return out
}
