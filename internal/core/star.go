package core

import "math"

type Star struct {
	Position [3]float64
	Mystery  float64
	RotSpeed float64
	// Angle is the rotation reached at the last update, in radians.
	Angle float64
}

func (s *Star) Init(rng Rand) {
	for i := range s.Position {
		s.Position[i] = randFloat(rng, -10000.0, 10000.0)
	}
	s.RotSpeed = randFloat(rng, 0.4, 0.9)
	s.Mystery = randFloat(rng, 0.0, 10.0)
	s.Angle = 0
}

func (s *Star) Update(t float64) {
	s.Angle = t * StarRotationRate * s.RotSpeed
	cf := (math.Cos(7.0*s.Angle)+math.Cos(3.0*s.Angle)+math.Cos(13.0*s.Angle))/6.0 + 2.0
	s.Position = orbit(250.0, cf, s.Mystery, s.Angle)
}

// orbit places a body on its Lissajous path around the field centre and
// pushes it SeraphDistance into the screen.
func orbit(radius, cf, mystery, angle float64) [3]float64 {
	p := 2.0 * math.Pi * mystery / BigMystery

	x := radius * cf * math.Cos(11.0*(p+3.0*angle))
	y := radius * cf * math.Sin(12.0*(p+4.0*angle))
	z := radius * math.Cos(23.0*(p+12.0*angle))

	rot := angle*0.501 + 5.01*mystery/BigMystery
	cr, sr := math.Cos(rot), math.Sin(rot)
	x1 := x*cr - y*sr
	y1 := y*cr + x*sr
	z1 := z

	x2 := x1*cr - z1*sr
	y2 := y1
	z2 := z1*cr + x1*sr

	x3 := x2
	y3 := y2*cr - z2*sr
	z3 := z2*cr + y2*sr + SeraphDistance

	rot = angle*2.501 + 85.01*mystery/BigMystery
	cr, sr = math.Cos(rot), math.Sin(rot)

	return [3]float64{x3*cr - y3*sr, y3*cr + x3*sr, z3}
}
