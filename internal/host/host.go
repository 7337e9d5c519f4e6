// Package host opens a window and drives a cluster group from its event
// loop. Every loop runs on the main OS thread, which both glfw and raylib
// require.
package host

import (
	"errors"
	"log"
	"runtime"

	"github.com/san-kum/flurry/internal/clock"
	"github.com/san-kum/flurry/internal/cluster"
	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/gfx"
)

func init() {
	runtime.LockOSThread()
}

// Options configures a windowed run.
type Options struct {
	Settings *config.Settings
	Preset   config.Preset
	Logger   *log.Logger
	// Verbose logs every hidden stall.
	Verbose bool
	// Frames stops the loop after that many frames; zero runs until the
	// window closes.
	Frames int
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o.Logger
}

func (o *Options) settings() *config.Settings {
	if o.Settings == nil {
		o.Settings = config.DefaultSettings()
	}
	return o.Settings
}

// start builds the pipeline and group for one window.
func (o *Options) start(r gfx.Renderer, width, height int) (*cluster.Group, error) {
	pipe := cluster.NewPipeline(r, clock.NewMonotonic())
	if o.Verbose {
		pipe.SetLogger(o.logger())
	}
	g, err := cluster.NewGroup(pipe, o.Preset, o.settings())
	if err != nil {
		return nil, err
	}
	if err := g.SetSize(width, height); err != nil {
		return nil, errors.Join(err, g.Destroy())
	}
	o.logger().Printf("running %s with %d clusters at %dx%d", o.Preset.Name, len(g.Clusters()), width, height)
	return g, nil
}

func (o *Options) done(frame int) bool {
	return o.Frames > 0 && frame >= o.Frames
}
