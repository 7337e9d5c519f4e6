package core

import "math"

const (
	MaxParticles      = 2500
	NumSmokeParticles = 3600
	MaxStreams        = 64

	BigMystery = 1800.0
	MaxAngles  = 16384.0

	Gravity          = 1500000.0
	Incohesion       = 0.07
	ColorIncoherence = 0.15
	StreamSpeed      = 450.0
	FieldSpeed       = 12.0
	SeraphDistance   = 2000.0
	StreamSize       = 25000.0
	FieldRange       = 1000.0
	StreamBias       = 7.0

	// ParticlesPerStream is how much glitter each stream keeps alive.
	ParticlesPerStream = 40

	DefaultStreams         = 5
	DefaultStreamExpansion = 100.0
	DefaultRotSpeed        = 1.0
	DefaultWidth           = 1024
	DefaultHeight          = 768
)

// StarRotationRate is the star's angular rate in radians per second of
// cluster time at RotSpeed 1.
const StarRotationRate = 2.0 * math.Pi * 12.0 / MaxAngles

// sparkRotationRate drives the spark orbits independently of the star.
const sparkRotationRate = 2.0 * math.Pi * FieldSpeed / MaxAngles

const (
	emitInterval   = 1.0 / 121.0
	maxPuffSpeedSq = 25000000.0
	nearClip       = 25.0
)
