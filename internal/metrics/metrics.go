package metrics

import "github.com/san-kum/flurry/internal/core"

// Frame is one animated frame of a group: the states of its clusters and
// the wall time the frame took, in seconds.
type Frame struct {
	States []*core.State
	Cost   float64
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}
