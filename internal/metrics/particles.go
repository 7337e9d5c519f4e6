package metrics

// ParticleLoad is the mean share of particle pool slots in use.
type ParticleLoad struct {
	name    string
	sum     float64
	samples int
}

func NewParticleLoad() *ParticleLoad {
	return &ParticleLoad{
		name: "particle_load",
	}
}

func (p *ParticleLoad) Name() string {
	return p.name
}

func (p *ParticleLoad) Observe(f Frame) {
	live, capacity := 0, 0
	for _, st := range f.States {
		if st == nil || st.Particles == nil {
			continue
		}
		live += st.Particles.Live()
		capacity += st.Particles.Cap()
	}
	if capacity == 0 {
		return
	}
	p.sum += float64(live) / float64(capacity)
	p.samples++
}

func (p *ParticleLoad) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *ParticleLoad) Reset() {
	p.sum = 0
	p.samples = 0
}
