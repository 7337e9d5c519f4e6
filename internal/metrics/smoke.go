package metrics

type LiveSmoke struct {
	name    string
	last    int
	total   int
	samples int
}

func NewLiveSmoke() *LiveSmoke {
	return &LiveSmoke{
		name: "live_smoke",
	}
}

func (s *LiveSmoke) Name() string { return s.name }

func (s *LiveSmoke) Observe(f Frame) {
	n := 0
	for _, st := range f.States {
		if st != nil && st.Smoke != nil {
			n += st.Smoke.Live()
		}
	}
	s.last = n
	s.total += n
	s.samples++
}

// Last is the live puff count at the most recent frame.
func (s *LiveSmoke) Last() int { return s.last }

func (s *LiveSmoke) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.total) / float64(s.samples)
}

func (s *LiveSmoke) Reset() {
	s.last = 0
	s.total = 0
	s.samples = 0
}
