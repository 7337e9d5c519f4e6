package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flurry/internal/clock"
	"github.com/san-kum/flurry/internal/cluster"
	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/core"
	"github.com/san-kum/flurry/internal/gfx/raster"
	"github.com/san-kum/flurry/internal/metrics"
	"github.com/san-kum/flurry/internal/store"
	"github.com/san-kum/flurry/internal/texture"
)

// headless runs a preset on the software canvas with a manual clock.
type headless struct {
	clock  *clock.Manual
	canvas *raster.Canvas
	pipe   *cluster.Pipeline
	group  *cluster.Group
}

func newHeadless(s *config.Settings, preset config.Preset, w, h int) (*headless, error) {
	hl := &headless{
		clock:  clock.NewManual(0),
		canvas: raster.New(w, h),
	}
	hl.pipe = cluster.NewPipeline(hl.canvas, hl.clock)
	if seed != 0 {
		hl.pipe.SetRand(rand.New(rand.NewSource(seed)))
	}
	if verbose {
		hl.pipe.SetLogger(log.Default())
	}

	g, err := cluster.NewGroup(hl.pipe, preset, s)
	if err != nil {
		return nil, err
	}
	if err := hl.start(g, w, h); err != nil {
		return nil, err
	}
	return hl, nil
}

// start sizes and prepares g, destroying it if either step fails.
func (hl *headless) start(g *cluster.Group, w, h int) error {
	if err := g.SetSize(w, h); err != nil {
		return errors.Join(err, g.Destroy())
	}
	if err := g.PrepareToAnimate(); err != nil {
		return errors.Join(err, g.Destroy())
	}
	hl.group = g
	return nil
}

func (hl *headless) frame(dt float64) error {
	hl.clock.Advance(dt)
	return hl.group.AnimateOneFrame()
}

func (hl *headless) states(dst []*core.State) []*core.State {
	for _, c := range hl.group.Clusters() {
		dst = append(dst, c.State())
	}
	return dst
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	preset, err := s.Current()
	if err != nil {
		return err
	}

	hl, err := newHeadless(s, preset, snapWidth, snapHeight)
	if err != nil {
		return err
	}
	return errors.Join(hl.snapshot(args[0], preset.Name), hl.group.Destroy())
}

func (hl *headless) snapshot(path, name string) error {
	for i := 0; i < snapFrames; i++ {
		if err := hl.frame(step); err != nil {
			return err
		}
	}
	if err := writePNG(path, hl.canvas.Image()); err != nil {
		return err
	}
	smoke := metrics.NewLiveSmoke()
	smoke.Observe(metrics.Frame{States: hl.states(nil)})
	log.Printf("wrote %s (%s, %d frames, %d live puffs)", path, name, snapFrames, smoke.Last())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d frames at %dx%d\n\n", benchFrames, benchWidth, benchHeight)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCLUSTERS\tFRAMES\tTIME\tFRAMES/SEC\tCOST(ms)\tPEAK(ms)\tPUFFS\tLOAD")

	var (
		reports []store.Report
		plotted int
	)
	for _, n := range s.PresetNames() {
		preset, err := s.Lookup(n)
		if err != nil {
			return err
		}
		r, err := benchPreset(s, preset)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3fs\t%.0f\t%.3f\t%.3f\t%d\t%.2f\n",
			r.Preset, r.Clusters, r.Frames, r.Seconds, r.FramesPerSec,
			r.Metrics["frame_cost_ms"], r.Metrics["frame_cost_peak_ms"],
			r.Puffs[len(r.Puffs)-1], r.Metrics["particle_load"])

		if n == s.Preset {
			plotted = len(reports)
		}
		reports = append(reports, r)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(reports) > 0 {
		r := reports[plotted]
		puffs := make([]float64, len(r.Puffs))
		for i, p := range r.Puffs {
			puffs[i] = float64(p)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(r.Costs,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(r.Preset+" frame cost (ms)"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(puffs,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(r.Preset+" live smoke puffs"),
		))
	}

	if benchJSON != "" {
		return store.ExportJSON(benchJSON, reports)
	}
	return nil
}

func benchPreset(s *config.Settings, preset config.Preset) (store.Report, error) {
	hl, err := newHeadless(s, preset, benchWidth, benchHeight)
	if err != nil {
		return store.Report{}, err
	}

	cost := metrics.NewFrameCost()
	smoke := metrics.NewLiveSmoke()
	all := []metrics.Metric{cost, smoke, metrics.NewParticleLoad()}

	r := store.Report{
		Preset:     preset.Name,
		Definition: preset.String(),
		Clusters:   len(preset.Clusters),
		Width:      benchWidth,
		Height:     benchHeight,
		Step:       step,
		Frames:     max(benchFrames, 1),
		Metrics:    make(map[string]float64),
	}
	r.Costs = make([]float64, 0, r.Frames)
	r.Puffs = make([]int, 0, r.Frames)

	states := make([]*core.State, 0, len(preset.Clusters))
	start := time.Now()
	for i := 0; i < r.Frames; i++ {
		t0 := time.Now()
		if err := hl.frame(step); err != nil {
			return r, errors.Join(err, hl.group.Destroy())
		}
		elapsed := time.Since(t0).Seconds()

		states = hl.states(states[:0])
		f := metrics.Frame{States: states, Cost: elapsed}
		for _, m := range all {
			m.Observe(f)
		}
		r.Costs = append(r.Costs, elapsed*1000)
		r.Puffs = append(r.Puffs, smoke.Last())
	}
	r.Seconds = time.Since(start).Seconds()
	r.FramesPerSec = float64(r.Frames) / r.Seconds

	for _, m := range all {
		r.Metrics[m.Name()] = m.Value()
	}
	r.Metrics["frame_cost_peak_ms"] = cost.Peak()

	return r, hl.group.Destroy()
}

func exportTexture(cmd *cobra.Command, args []string) error {
	var rng core.Rand = core.NewRand()
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	atlas := texture.Shared(rng).Build()
	if err := writePNG(args[0], atlas.Image()); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", args[0], texture.AtlasSize, texture.AtlasSize)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
