package cluster_test

import (
	"bytes"
	"log"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flurry/internal/clock"
	"github.com/san-kum/flurry/internal/cluster"
	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/core"
	"github.com/san-kum/flurry/internal/gfx"
)

var classic = config.ClusterSpec{Streams: 5, Color: core.Tiedye, Thickness: 100, Speed: 1}

var _ = Describe("Cluster", func() {
	var (
		rec      *gfx.Recorder
		clk      *clock.Manual
		tracker  *cluster.CountingTracker
		pipe     *cluster.Pipeline
		settings *config.Settings
	)

	BeforeEach(func() {
		rec = gfx.NewRecorder()
		clk = clock.NewManual(0)
		tracker = &cluster.CountingTracker{}
		pipe = cluster.NewPipeline(rec, clk)
		pipe.SetRand(rand.New(rand.NewSource(11)))
		pipe.SetTracker(tracker)
		settings = config.DefaultSettings()
	})

	Describe("lifecycle", func() {
		It("acquires five resources and releases them all", func() {
			c := cluster.New(pipe, classic, settings)
			Expect(tracker.Count(true)).To(Equal(5))

			Expect(c.Destroy()).To(Succeed())
			Expect(tracker.Count(false)).To(Equal(5))
			for res, n := range tracker.Outstanding() {
				Expect(n).To(BeZero(), "resource %s", res)
			}
		})

		It("releases entities before the state", func() {
			c := cluster.New(pipe, classic, settings)
			Expect(c.Destroy()).To(Succeed())
			Expect(tracker.Releases()).To(Equal([]cluster.Resource{
				cluster.ResParticles, cluster.ResSmoke, cluster.ResStar, cluster.ResSparks, cluster.ResState,
			}))
		})

		It("applies the cluster settings to the new state", func() {
			spec := config.ClusterSpec{Streams: 3, Color: core.Red, Thickness: 80, Speed: -0.5}
			c := cluster.New(pipe, spec, settings)
			st := c.State()
			Expect(st.NumStreams).To(Equal(3))
			Expect(st.ColorMode).To(Equal(core.Red))
			Expect(st.StreamExpansion).To(Equal(80.0))
			Expect(st.Star.RotSpeed).To(Equal(-0.5))
			Expect(c.Spec()).To(Equal(spec))
		})

		It("rejects use after destroy", func() {
			c := cluster.New(pipe, classic, settings)
			Expect(c.Destroy()).To(Succeed())
			Expect(c.Destroy()).To(MatchError(cluster.ErrDestroyed))
			Expect(c.AnimateOneFrame()).To(MatchError(cluster.ErrDestroyed))
			Expect(c.PrepareToAnimate()).To(MatchError(cluster.ErrDestroyed))
			Expect(c.SetSize(10, 10)).To(MatchError(cluster.ErrDestroyed))
			Expect(c.State()).To(BeNil())
			Expect(tracker.Count(false)).To(Equal(5))
		})

		It("clears the active state when the current cluster is destroyed", func() {
			a := cluster.New(pipe, classic, settings)
			b := cluster.New(pipe, classic, settings)
			Expect(b.BecomeCurrent()).To(Succeed())

			Expect(a.Destroy()).To(Succeed())
			Expect(pipe.Active()).To(BeIdenticalTo(b.State()))

			Expect(b.Destroy()).To(Succeed())
			Expect(pipe.Active()).To(BeNil())
		})
	})

	Describe("becoming current", func() {
		It("points the pipeline at the cluster that last drew", func() {
			a := cluster.New(pipe, classic, settings)
			b := cluster.New(pipe, classic, settings)
			Expect(pipe.Active()).To(BeNil())

			Expect(a.PrepareToAnimate()).To(Succeed())
			Expect(pipe.Active()).To(BeIdenticalTo(a.State()))

			Expect(b.SetSize(640, 480)).To(Succeed())
			Expect(pipe.Active()).To(BeIdenticalTo(b.State()))

			clk.Advance(0.01)
			Expect(a.AnimateOneFrame()).To(Succeed())
			Expect(pipe.Active()).To(BeIdenticalTo(a.State()))
		})
	})

	Describe("PrepareToAnimate", func() {
		It("uploads the atlas once per pipeline", func() {
			a := cluster.New(pipe, classic, settings)
			b := cluster.New(pipe, classic, settings)
			Expect(a.PrepareToAnimate()).To(Succeed())
			Expect(b.PrepareToAnimate()).To(Succeed())

			Expect(rec.Count(gfx.OpGenTexture)).To(Equal(1))
			Expect(rec.Count(gfx.OpUploadMipmaps)).To(Equal(1))
			Expect(a.State().Texture).NotTo(BeZero())
			Expect(b.State().Texture).To(Equal(a.State().Texture))
		})

		It("shares one atlas across pipelines", func() {
			uploads := make([][]byte, 0, 3)
			for seed := int64(1); seed <= 3; seed++ {
				r := gfx.NewRecorder()
				other := cluster.NewPipeline(r, clock.NewManual(0))
				other.SetRand(rand.New(rand.NewSource(seed)))
				c := cluster.New(other, classic, settings)
				Expect(c.PrepareToAnimate()).To(Succeed())
				Expect(c.Destroy()).To(Succeed())

				Expect(r.Count(gfx.OpUploadMipmaps)).To(Equal(1))
				uploads = append(uploads, r.Filter(gfx.OpUploadMipmaps)[0].Pixels)
			}
			Expect(uploads[0]).NotTo(BeEmpty())
			Expect(uploads[1]).To(Equal(uploads[0]))
			Expect(uploads[2]).To(Equal(uploads[0]))
		})

		It("sets up blending and clears the viewport", func() {
			c := cluster.New(pipe, classic, settings)
			Expect(c.SetSize(320, 200)).To(Succeed())
			Expect(c.PrepareToAnimate()).To(Succeed())

			vp := rec.Filter(gfx.OpViewport)
			Expect(vp).NotTo(BeEmpty())
			last := vp[len(vp)-1]
			Expect(last.Width).To(Equal(320))
			Expect(last.Height).To(Equal(200))
			Expect(rec.Count(gfx.OpClear)).To(Equal(1))

			enabled := map[gfx.Cap]bool{}
			for _, cmd := range rec.Commands {
				switch cmd.Op {
				case gfx.OpEnable:
					enabled[cmd.Cap] = true
				case gfx.OpDisable:
					enabled[cmd.Cap] = false
				}
			}
			Expect(enabled[gfx.Blend]).To(BeTrue())
			Expect(enabled[gfx.AlphaTest]).To(BeTrue())
			Expect(enabled[gfx.DepthTest]).To(BeFalse())
			Expect(enabled[gfx.Lighting]).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("restarts the simulation in place at the current time", func() {
			c := cluster.New(pipe, classic, settings)
			Expect(c.PrepareToAnimate()).To(Succeed())
			st := c.State()
			pool := st.Particles
			for i := 0; i < 20; i++ {
				clk.Advance(0.016)
				Expect(c.AnimateOneFrame()).To(Succeed())
			}

			clk.Advance(1)
			Expect(c.Reset()).To(Succeed())
			Expect(c.State()).To(BeIdenticalTo(st))
			Expect(st.Particles).To(BeIdenticalTo(pool))
			Expect(st.Particles.Live()).To(BeZero())
			Expect(st.Smoke.Live()).To(BeZero())
			Expect(st.Frame).To(BeZero())
			Expect(st.Star.RotSpeed).To(Equal(classic.Speed))
			Expect(c.LastFrameTime()).To(Equal(clk.Now()))

			Expect(c.Destroy()).To(Succeed())
			Expect(c.Reset()).To(MatchError(cluster.ErrDestroyed))
		})
	})

	Describe("AnimateOneFrame", func() {
		var c *cluster.Cluster

		BeforeEach(func() {
			c = cluster.New(pipe, classic, settings)
			Expect(c.PrepareToAnimate()).To(Succeed())
			rec.Reset()
		})

		It("fades by five times the frame gap and advances the star", func() {
			settings.MaxFrameProgressMs = 0
			c = cluster.New(pipe, classic, settings)
			Expect(c.PrepareToAnimate()).To(Succeed())
			rec.Reset()
			start := c.State().Star.Angle

			clk.Advance(0.016)
			Expect(c.AnimateOneFrame()).To(Succeed())
			clk.Advance(0.016)
			Expect(c.AnimateOneFrame()).To(Succeed())

			alphas := rec.FadeAlphas()
			Expect(alphas).To(HaveLen(2))
			for _, a := range alphas {
				Expect(a).To(BeNumerically("~", 0.08, 1e-9))
			}
			Expect(rec.Count(gfx.OpFlush)).To(Equal(2))

			want := 0.032 * core.StarRotationRate * classic.Speed
			Expect(c.State().Star.Angle - start).To(BeNumerically("~", want, 1e-9))
			Expect(clk.Hidden()).To(BeZero())
		})

		It("blends the fade rectangle over the whole viewport", func() {
			clk.Advance(0.02)
			Expect(c.AnimateOneFrame()).To(Succeed())

			Expect(rec.Commands[0].Op).To(Equal(gfx.OpBlendFunc))
			Expect(rec.Commands[0].Src).To(Equal(gfx.SrcAlpha))
			Expect(rec.Commands[0].Dst).To(Equal(gfx.OneMinusSrcAlpha))

			rects := rec.Filter(gfx.OpRect)
			Expect(rects).To(HaveLen(1))
			st := c.State()
			Expect(rects[0].Rect).To(Equal([4]float64{0, 0, float64(st.Width), float64(st.Height)}))
			Expect(rec.Commands[len(rec.Commands)-1].Op).To(Equal(gfx.OpFlush))
		})

		It("hides a stall beyond the cap", func() {
			var buf bytes.Buffer
			pipe.SetLogger(log.New(&buf, "", 0))

			clk.Advance(0.5)
			Expect(c.AnimateOneFrame()).To(Succeed())

			Expect(clk.Hidden()).To(BeNumerically("~", 0.42, 1e-9))
			Expect(c.LastFrameTime()).To(BeNumerically("~", 0.08, 1e-9))
			Expect(clk.Now()).To(BeNumerically("~", 0.08, 1e-9))
			Expect(rec.FadeAlphas()).To(ConsistOf(BeNumerically("~", 0.4, 1e-9)))
			Expect(buf.String()).To(ContainSubstring("hiding"))
		})

		It("keeps every frame step within the cap", func() {
			for _, gap := range []float64{0.01, 0.3, 0.079, 2.0, 0.08, 0.081} {
				before := c.LastFrameTime()
				clk.Advance(gap)
				Expect(c.AnimateOneFrame()).To(Succeed())
				Expect(c.LastFrameTime() - before).To(BeNumerically("<=", 0.08+1e-9))
			}
		})

		It("passes large gaps through when the cap is disabled", func() {
			settings.MaxFrameProgressMs = 0
			free := cluster.New(pipe, classic, settings)
			Expect(free.PrepareToAnimate()).To(Succeed())
			rec.Reset()

			clk.Advance(0.5)
			Expect(free.AnimateOneFrame()).To(Succeed())

			Expect(clk.Hidden()).To(BeZero())
			Expect(free.LastFrameTime()).To(BeNumerically("~", 0.5, 1e-9))
			Expect(rec.FadeAlphas()).To(ConsistOf(BeNumerically("~", 2.5, 1e-9)))
		})
	})
})

var _ = Describe("Group", func() {
	var (
		rec  *gfx.Recorder
		clk  *clock.Manual
		pipe *cluster.Pipeline
	)

	BeforeEach(func() {
		rec = gfx.NewRecorder()
		clk = clock.NewManual(0)
		pipe = cluster.NewPipeline(rec, clk)
		pipe.SetRand(rand.New(rand.NewSource(3)))
	})

	It("builds one cluster per preset entry", func() {
		preset, err := config.GetPreset("Fire")
		Expect(err).NotTo(HaveOccurred())

		g, err := cluster.NewGroup(pipe, preset, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Clusters()).To(HaveLen(len(preset.Clusters)))
		for i, c := range g.Clusters() {
			Expect(c.Spec()).To(Equal(preset.Clusters[i]))
		}
	})

	It("draws every cluster each frame and leaves the last one current", func() {
		preset, err := config.GetPreset("RGB")
		Expect(err).NotTo(HaveOccurred())
		g, err := cluster.NewGroup(pipe, preset, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.SetSize(800, 600)).To(Succeed())
		Expect(g.PrepareToAnimate()).To(Succeed())
		rec.Reset()

		clk.Advance(0.016)
		Expect(g.AnimateOneFrame()).To(Succeed())
		Expect(rec.Count(gfx.OpFlush)).To(Equal(len(preset.Clusters)))

		cs := g.Clusters()
		Expect(pipe.Active()).To(BeIdenticalTo(cs[len(cs)-1].State()))

		Expect(g.Destroy()).To(Succeed())
		Expect(pipe.Active()).To(BeNil())
		Expect(g.Destroy()).To(MatchError(cluster.ErrDestroyed))
	})

	It("rejects an empty preset", func() {
		_, err := cluster.NewGroup(pipe, config.Preset{Name: "Empty"}, nil)
		Expect(err).To(MatchError(cluster.ErrNoClusters))
	})
})
