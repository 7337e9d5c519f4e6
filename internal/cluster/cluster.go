package cluster

import (
	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/core"
	"github.com/san-kum/flurry/internal/gfx"
)

// Cluster is one independently owned simulation instance with its own spec
// and frame timing.
type Cluster struct {
	p    *Pipeline
	spec config.ClusterSpec
	data *core.State

	oldFrameTime       float64
	maxFrameProgressMs int
}

// New allocates a cluster on p, applying spec over the default state.
func New(p *Pipeline, spec config.ClusterSpec, settings *config.Settings) *Cluster {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	data := core.NewState(p.rng, now)
	for _, r := range []Resource{ResState, ResParticles, ResSmoke, ResStar, ResSparks} {
		p.tracker.Acquire(r)
	}

	data.SetStreams(spec.Streams)
	data.ColorMode = spec.Color
	data.StreamExpansion = spec.Thickness
	data.Star.RotSpeed = spec.Speed
	data.Brightness = settings.Brightness
	data.DrawSparks = settings.DrawSparks
	data.Restart(now)

	return &Cluster{
		p:                  p,
		spec:               spec,
		data:               data,
		oldFrameTime:       now,
		maxFrameProgressMs: settings.MaxFrameProgressMs,
	}
}

// Destroy releases the particles, smoke, star and sparks, then the state.
// It returns ErrDestroyed when called a second time.
func (c *Cluster) Destroy() error {
	p := c.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.data == nil {
		return ErrDestroyed
	}
	c.data.Particles = nil
	p.tracker.Release(ResParticles)
	c.data.Smoke = nil
	p.tracker.Release(ResSmoke)
	c.data.Star = nil
	p.tracker.Release(ResStar)
	c.data.Sparks = nil
	p.tracker.Release(ResSparks)

	if p.active == c.data {
		p.active = nil
	}
	c.data = nil
	p.tracker.Release(ResState)
	return nil
}

// SetSize makes the cluster current and resizes the viewport.
func (c *Cluster) SetSize(width, height int) error {
	p := c.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.data == nil {
		return ErrDestroyed
	}
	c.becomeCurrent()
	c.data.Resize(width, height)
	p.renderer.Viewport(width, height)
	return nil
}

// PrepareToAnimate makes the cluster current and performs the per-context
// setup needed before the first frame.
func (c *Cluster) PrepareToAnimate() error {
	p := c.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.data == nil {
		return ErrDestroyed
	}
	c.becomeCurrent()

	r := p.renderer
	c.data.Texture = p.atlasTexture()
	c.data.Restart(p.clock.Now())

	r.Disable(gfx.DepthTest)
	r.Enable(gfx.AlphaTest)
	r.Disable(gfx.Lighting)
	r.Disable(gfx.CullFace)
	r.Enable(gfx.Blend)
	r.Viewport(c.data.Width, c.data.Height)
	r.Clear()
	return nil
}

// AnimateOneFrame dims the previous frame and renders the next one.
func (c *Cluster) AnimateOneFrame() error {
	p := c.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.data == nil {
		return ErrDestroyed
	}

	// The core reads the clock after this point, so hiding the excess
	// makes it see the adjusted time as well.
	now := p.clock.Now()
	delta := now - c.oldFrameTime
	if c.maxFrameProgressMs > 0 {
		maxFrame := float64(c.maxFrameProgressMs) / 1000.0
		if overtime := delta - maxFrame; overtime > 0 {
			p.logf("delay: hiding %g seconds (last=%g limit=%g)", overtime, delta, maxFrame)
			p.clock.HideDelay(overtime)
			delta -= overtime
			now -= overtime
		}
	}
	c.oldFrameTime = now

	c.becomeCurrent()

	r := p.renderer
	r.BlendFunc(gfx.SrcAlpha, gfx.OneMinusSrcAlpha)
	r.Color(0, 0, 0, 5.0*delta)
	r.Rect(0, 0, float64(c.data.Width), float64(c.data.Height))

	core.Render(c.data, r, now)
	r.Flush()
	return nil
}

// Reset reinitialises the simulation in place at the current clock reading.
// Entity pools and the cluster spec are kept.
func (c *Cluster) Reset() error {
	p := c.p
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.data == nil {
		return ErrDestroyed
	}
	now := p.clock.Now()
	c.data.Reset(now)
	c.oldFrameTime = now
	return nil
}

// BecomeCurrent makes this cluster's state the pipeline's active state.
func (c *Cluster) BecomeCurrent() error {
	c.p.mu.Lock()
	defer c.p.mu.Unlock()
	if c.data == nil {
		return ErrDestroyed
	}
	c.becomeCurrent()
	return nil
}

func (c *Cluster) becomeCurrent() { c.p.active = c.data }

// LastFrameTime is the clock reading, after any overtime adjustment, at the
// most recent frame.
func (c *Cluster) LastFrameTime() float64 {
	c.p.mu.Lock()
	defer c.p.mu.Unlock()
	return c.oldFrameTime
}

func (c *Cluster) Spec() config.ClusterSpec { return c.spec }

// State exposes the simulation state; nil after Destroy.
func (c *Cluster) State() *core.State {
	c.p.mu.Lock()
	defer c.p.mu.Unlock()
	return c.data
}
