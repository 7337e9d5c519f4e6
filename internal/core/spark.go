package core

// Spark heads one stream. It orbits the field continuously and flashes for
// a short random lifetime now and then.
type Spark struct {
	Position [3]float64
	Color    [4]float64
	Mystery  float64

	Flash     float64
	FlashLife float64
	Cooldown  float64
}

func (s *Spark) Init(rng Rand, index int) {
	for i := range s.Position {
		s.Position[i] = randFloat(rng, -100.0, 100.0)
	}
	s.Color = [4]float64{1, 1, 1, 1}
	s.Mystery = BigMystery * float64(index+1) / 13.0
	s.Flash = 0
	s.FlashLife = 0
	s.Cooldown = randFloat(rng, 0.0, 1.0)
}

func (s *Spark) Update(st *State, index int) {
	s.Color = sparkColor(st.ColorMode, st.Time, st.RandomSeed, index, st.NumStreams)
	s.Position = orbit(FieldRange, 1.0, s.Mystery, st.Time*sparkRotationRate)

	dt := st.DeltaTime
	if s.Flash > 0 {
		s.Flash -= dt
		if s.Flash <= 0 {
			s.Flash = 0
			s.Cooldown = randFloat(st.rng, 0.5, 3.0)
		}
		return
	}
	s.Cooldown -= dt
	if s.Cooldown <= 0 {
		s.FlashLife = randFloat(st.rng, 0.05, 0.25)
		s.Flash = s.FlashLife
	}
}

// Flashing reports whether the spark is inside a flash.
func (s *Spark) Flashing() bool { return s.Flash > 0 }
