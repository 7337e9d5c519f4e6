package cluster

import (
	"fmt"
	"sync"
)

// Resource names one of the pools a cluster owns.
type Resource int

const (
	ResState Resource = iota
	ResParticles
	ResSmoke
	ResStar
	ResSparks
)

func (r Resource) String() string {
	switch r {
	case ResState:
		return "state"
	case ResParticles:
		return "particles"
	case ResSmoke:
		return "smoke"
	case ResStar:
		return "star"
	case ResSparks:
		return "sparks"
	}
	return fmt.Sprintf("Resource(%d)", int(r))
}

// Tracker observes pool acquisition and release.
type Tracker interface {
	Acquire(r Resource)
	Release(r Resource)
}

type NopTracker struct{}

func (NopTracker) Acquire(Resource) {}
func (NopTracker) Release(Resource) {}

// Event is one tracked acquisition or release.
type Event struct {
	Resource Resource
	Acquire  bool
}

// CountingTracker records every event in order.
type CountingTracker struct {
	mu     sync.Mutex
	Events []Event
}

func (t *CountingTracker) Acquire(r Resource) {
	t.mu.Lock()
	t.Events = append(t.Events, Event{Resource: r, Acquire: true})
	t.mu.Unlock()
}

func (t *CountingTracker) Release(r Resource) {
	t.mu.Lock()
	t.Events = append(t.Events, Event{Resource: r})
	t.mu.Unlock()
}

// Outstanding returns acquisitions minus releases per resource.
func (t *CountingTracker) Outstanding() map[Resource]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[Resource]int)
	for _, e := range t.Events {
		if e.Acquire {
			out[e.Resource]++
		} else {
			out[e.Resource]--
		}
	}
	return out
}

// Releases returns the release events in order.
func (t *CountingTracker) Releases() []Resource {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Resource
	for _, e := range t.Events {
		if !e.Acquire {
			out = append(out, e.Resource)
		}
	}
	return out
}

func (t *CountingTracker) Count(acquire bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.Events {
		if e.Acquire == acquire {
			n++
		}
	}
	return n
}
