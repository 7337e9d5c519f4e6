// Package texture synthesizes the particle sprite atlas.
//
// The atlas is a 256x256 luminance-alpha image made of an 8x8 grid of 32x32
// soft radial bumps. Each bump drifts from the previous one, is speckled with
// power-of-two grain and smoothed twice. The last tile is the average of its
// neighbour and the first tile so the atlas wraps without a seam.
package texture

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/flurry/internal/gfx"
)

const (
	TileSize  = 32
	Grid      = 8
	AtlasSize = TileSize * Grid
	Channels  = 2
)

// Rand is the randomness the speckle pass consumes. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Atlas holds interleaved luminance and alpha bytes, row major.
type Atlas struct {
	Pix []byte
}

func newAtlas() *Atlas {
	return &Atlas{Pix: make([]byte, AtlasSize*AtlasSize*Channels)}
}

func (a *Atlas) offset(x, y int) int { return (y*AtlasSize + x) * Channels }

// At returns the luminance and alpha at (x, y).
func (a *Atlas) At(x, y int) (uint8, uint8) {
	o := a.offset(x, y)
	return a.Pix[o], a.Pix[o+1]
}

// Tile returns the luminance of the tile at grid row, col.
func (a *Atlas) Tile(row, col int) [TileSize][TileSize]uint8 {
	var t [TileSize][TileSize]uint8
	for i := 0; i < TileSize; i++ {
		for j := 0; j < TileSize; j++ {
			l, _ := a.At(col*TileSize+j, row*TileSize+i)
			t[i][j] = l
		}
	}
	return t
}

func (a *Atlas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasSize, AtlasSize))
	for y := 0; y < AtlasSize; y++ {
		for x := 0; x < AtlasSize; x++ {
			l, al := a.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: l, G: l, B: l, A: al})
		}
	}
	return img
}

// Synthesizer builds the atlas once. It holds no renderer state, so one
// synthesizer can feed any number of rendering contexts.
type Synthesizer struct {
	rng Rand

	small     [TileSize][TileSize]uint8
	firstTile bool

	once  sync.Once
	atlas *Atlas
}

func NewSynthesizer(rng Rand) *Synthesizer {
	return &Synthesizer{rng: rng, firstTile: true}
}

var (
	sharedMu sync.Mutex
	shared   *Synthesizer
)

// Shared returns the process-wide synthesizer. The first caller's random
// source seeds it; later callers get the same synthesizer and rng is ignored.
// A nil rng on first use falls back to one seeded from the wall clock.
func Shared(rng Rand) *Synthesizer {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		shared = NewSynthesizer(rng)
	}
	return shared
}

// Build generates the atlas on first use and returns the same atlas after.
func (s *Synthesizer) Build() *Atlas {
	s.once.Do(func() {
		atlas := newAtlas()
		for i := 0; i < Grid; i++ {
			for j := 0; j < Grid; j++ {
				if i == Grid-1 && j == Grid-1 {
					s.averageWithFirst(atlas)
				} else {
					s.makeSmall()
				}
				s.copyToAtlas(atlas, i*TileSize, j*TileSize)
			}
		}
		s.atlas = atlas
	})
	return s.atlas
}

// Upload tracks the atlas texture of one rendering context. The zero value
// has nothing uploaded.
type Upload struct {
	tex  gfx.TextureID
	done bool
}

// Ensure uploads atlas the first time it is called and returns the texture
// id. Subsequent calls issue no renderer commands.
func (u *Upload) Ensure(r gfx.Renderer, atlas *Atlas) gfx.TextureID {
	if u.done {
		return u.tex
	}
	u.tex = r.GenTexture()
	r.BindTexture(u.tex)
	r.TexParameter(gfx.WrapS, gfx.Repeat)
	r.TexParameter(gfx.WrapT, gfx.Repeat)
	r.TexParameter(gfx.MagFilter, gfx.Linear)
	r.TexParameter(gfx.MinFilter, gfx.LinearMipmapNearest)
	r.UploadMipmaps(AtlasSize, AtlasSize, atlas.Pix)
	r.TexEnvModulate()

	u.done = true
	return u.tex
}

func (u *Upload) Texture() (gfx.TextureID, bool) { return u.tex, u.done }

func bump(i, j int) float64 {
	di, dj := float64(i)-15.5, float64(j)-15.5
	r := math.Sqrt(di*di + dj*dj)
	if r > 15.0 {
		return 0
	}
	return 255.0 * math.Cos(r*math.Pi/31.0)
}

func (s *Synthesizer) makeSmall() {
	for i := 0; i < TileSize; i++ {
		for j := 0; j < TileSize; j++ {
			t := bump(i, j)
			if s.firstTile {
				s.small[i][j] = uint8(t)
				continue
			}
			old := float64(s.small[i][j])
			s.small[i][j] = uint8(math.Min(255, (t+old+old)/3))
		}
	}
	s.firstTile = false
	s.speckle()
	s.smooth()
	s.smooth()
}

func (s *Synthesizer) speckle() {
	for i := 2; i < TileSize-2; i++ {
		for j := 2; j < TileSize-2; j++ {
			for speck := 1; speck <= 32 && s.rng.Intn(2) == 1; speck += speck {
				s.small[i][j] = uint8(min(255, int(s.small[i][j])+speck))
			}
			for speck := 1; speck <= 32 && s.rng.Intn(2) == 1; speck += speck {
				s.small[i][j] = uint8(max(0, int(s.small[i][j])-speck))
			}
		}
	}
}

// smooth applies one 5-tap box filter over the interior, weights 4,1,1,1,1.
func (s *Synthesizer) smooth() {
	var filter [TileSize][TileSize]uint8
	for i := 1; i < TileSize-1; i++ {
		for j := 1; j < TileSize-1; j++ {
			t := float32(s.small[i][j]) * 4
			t += float32(s.small[i-1][j])
			t += float32(s.small[i+1][j])
			t += float32(s.small[i][j-1])
			t += float32(s.small[i][j+1])
			filter[i][j] = uint8(t / 8)
		}
	}
	for i := 1; i < TileSize-1; i++ {
		for j := 1; j < TileSize-1; j++ {
			s.small[i][j] = filter[i][j]
		}
	}
}

func (s *Synthesizer) averageWithFirst(atlas *Atlas) {
	for i := 0; i < TileSize; i++ {
		for j := 0; j < TileSize; j++ {
			first, _ := atlas.At(j, i)
			t := (int(s.small[i][j]) + int(first)) / 2
			s.small[i][j] = uint8(min(255, t))
		}
	}
}

func (s *Synthesizer) copyToAtlas(atlas *Atlas, row, col int) {
	for i := 0; i < TileSize; i++ {
		for j := 0; j < TileSize; j++ {
			o := atlas.offset(col+j, row+i)
			atlas.Pix[o] = s.small[i][j]
			atlas.Pix[o+1] = s.small[i][j]
		}
	}
}
