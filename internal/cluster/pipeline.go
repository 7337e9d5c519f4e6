package cluster

import (
	"log"
	"sync"

	"github.com/san-kum/flurry/internal/clock"
	"github.com/san-kum/flurry/internal/core"
	"github.com/san-kum/flurry/internal/gfx"
	"github.com/san-kum/flurry/internal/texture"
)

// Pipeline is one rendering context shared by many clusters.
type Pipeline struct {
	mu sync.Mutex

	renderer gfx.Renderer
	clock    clock.Clock
	rng      core.Rand
	upload   texture.Upload
	tracker  Tracker
	logger   *log.Logger

	active *core.State
}

func NewPipeline(r gfx.Renderer, clk clock.Clock) *Pipeline {
	return &Pipeline{
		renderer: r,
		clock:    clk,
		rng:      core.NewRand(),
		tracker:  NopTracker{},
	}
}

// SetRand replaces the random source used by clusters created afterwards.
// It also seeds the process-wide atlas if no pipeline has built it yet.
func (p *Pipeline) SetRand(rng core.Rand) {
	p.mu.Lock()
	p.rng = rng
	p.mu.Unlock()
}

func (p *Pipeline) SetTracker(t Tracker) {
	p.mu.Lock()
	p.tracker = t
	p.mu.Unlock()
}

// SetLogger enables pacing diagnostics.
func (p *Pipeline) SetLogger(l *log.Logger) {
	p.mu.Lock()
	p.logger = l
	p.mu.Unlock()
}

// Active returns the state that currently owns the context, or nil.
func (p *Pipeline) Active() *core.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// atlasTexture uploads the shared atlas into this context on first use.
func (p *Pipeline) atlasTexture() gfx.TextureID {
	return p.upload.Ensure(p.renderer, texture.Shared(p.rng).Build())
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
