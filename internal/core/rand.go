package core

import (
	"math/rand"
	"time"
)

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a source seeded from the wall clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func randFloat(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// randBell is a cheap bell curve in [-scale, scale] centred on zero.
func randBell(r Rand, scale float64) float64 {
	return scale * (1.0 - (r.Float64()+r.Float64()+r.Float64())/1.5)
}
