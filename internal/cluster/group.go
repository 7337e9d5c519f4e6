package cluster

import (
	"errors"

	"github.com/san-kum/flurry/internal/config"
)

// Group draws every cluster of a preset into one pipeline, in order.
type Group struct {
	Name     string
	clusters []*Cluster
}

func NewGroup(p *Pipeline, preset config.Preset, settings *config.Settings) (*Group, error) {
	if len(preset.Clusters) == 0 {
		return nil, ErrNoClusters
	}
	g := &Group{Name: preset.Name, clusters: make([]*Cluster, 0, len(preset.Clusters))}
	for _, spec := range preset.Clusters {
		g.clusters = append(g.clusters, New(p, spec, settings))
	}
	return g, nil
}

func (g *Group) Clusters() []*Cluster { return g.clusters }

func (g *Group) SetSize(width, height int) error {
	for _, c := range g.clusters {
		if err := c.SetSize(width, height); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) PrepareToAnimate() error {
	for _, c := range g.clusters {
		if err := c.PrepareToAnimate(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) AnimateOneFrame() error {
	for _, c := range g.clusters {
		if err := c.AnimateOneFrame(); err != nil {
			return err
		}
	}
	return nil
}

// Reset restarts every cluster in place.
func (g *Group) Reset() error {
	for _, c := range g.clusters {
		if err := c.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Destroy destroys every cluster and reports all failures.
func (g *Group) Destroy() error {
	var errs []error
	for _, c := range g.clusters {
		if err := c.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
