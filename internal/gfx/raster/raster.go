// Package raster is a software gfx backend that draws into an in-memory
// framebuffer. The terminal preview and PNG snapshots read from it.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/flurry/internal/gfx"
)

type texture struct {
	width, height int
	la            []byte
	wrapS, wrapT  gfx.TexValue
	mag           gfx.TexValue
}

// Canvas implements gfx.Renderer. Pixels are float RGB, bottom row first.
type Canvas struct {
	width, height int
	pix           []float32
	proj          mgl32.Mat4

	textures map[gfx.TextureID]*texture
	next     gfx.TextureID
	bound    gfx.TextureID

	enabled  map[gfx.Cap]bool
	src, dst gfx.BlendFactor
	color    [4]float32

	quads int
}

func New(width, height int) *Canvas {
	c := &Canvas{
		textures: make(map[gfx.TextureID]*texture),
		enabled:  make(map[gfx.Cap]bool),
		src:      gfx.One,
		dst:      gfx.Zero,
		color:    [4]float32{1, 1, 1, 1},
	}
	c.Viewport(width, height)
	return c
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Quads reports how many quads have been rasterised since the last Clear.
func (c *Canvas) Quads() int { return c.quads }

func (c *Canvas) GenTexture() gfx.TextureID {
	c.next++
	c.textures[c.next] = &texture{wrapS: gfx.Repeat, wrapT: gfx.Repeat, mag: gfx.Linear}
	return c.next
}

func (c *Canvas) BindTexture(id gfx.TextureID) { c.bound = id }

func (c *Canvas) TexParameter(p gfx.TexParam, v gfx.TexValue) {
	t := c.textures[c.bound]
	if t == nil {
		return
	}
	switch p {
	case gfx.WrapS:
		t.wrapS = v
	case gfx.WrapT:
		t.wrapT = v
	case gfx.MagFilter:
		t.mag = v
	}
}

// UploadMipmaps keeps only the base level; the canvas never minifies.
func (c *Canvas) UploadMipmaps(width, height int, luminanceAlpha []byte) {
	t := c.textures[c.bound]
	if t == nil {
		return
	}
	t.width, t.height = width, height
	t.la = append(t.la[:0], luminanceAlpha...)
}

func (c *Canvas) TexEnvModulate() {}

func (c *Canvas) Enable(cp gfx.Cap)  { c.enabled[cp] = true }
func (c *Canvas) Disable(cp gfx.Cap) { c.enabled[cp] = false }

func (c *Canvas) BlendFunc(src, dst gfx.BlendFactor) {
	c.src, c.dst = src, dst
}

func (c *Canvas) Color(r, g, b, a float64) {
	c.color = [4]float32{clamp(float32(r)), clamp(float32(g)), clamp(float32(b)), clamp(float32(a))}
}

func (c *Canvas) Rect(x0, y0, x1, y1 float64) {
	q := gfx.Quad{V: [4]gfx.Vertex{
		{X: float32(x0), Y: float32(y0)},
		{X: float32(x1), Y: float32(y0)},
		{X: float32(x1), Y: float32(y1)},
		{X: float32(x0), Y: float32(y1)},
	}}
	c.fill(q, c.color, false)
}

func (c *Canvas) Viewport(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width != c.width || height != c.height {
		c.width, c.height = width, height
		c.pix = make([]float32, width*height*3)
	}
	c.proj = mgl32.Ortho2D(0, float32(width), 0, float32(height))
}

func (c *Canvas) Clear() {
	clear(c.pix)
	c.quads = 0
}

func (c *Canvas) DrawQuads(quads []gfx.Quad) {
	textured := c.enabled[gfx.Texture2D] && c.textures[c.bound] != nil && c.textures[c.bound].la != nil
	for _, q := range quads {
		c.fill(q, [4]float32{clamp(q.R), clamp(q.G), clamp(q.B), clamp(q.A)}, textured)
		c.quads++
	}
}

func (c *Canvas) Flush() {}

// At returns the framebuffer color at (x, y), origin lower left.
func (c *Canvas) At(x, y int) (r, g, b float32) {
	i := (y*c.width + x) * 3
	return c.pix[i], c.pix[i+1], c.pix[i+2]
}

// Image copies the framebuffer into an RGBA image with the origin at the
// top left.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		row := c.height - 1 - y
		for x := 0; x < c.width; x++ {
			r, g, b := c.At(x, y)
			img.SetRGBA(x, row, color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 255})
		}
	}
	return img
}

type point struct{ x, y, u, v float32 }

func (c *Canvas) toWindow(v gfx.Vertex) point {
	ndc := c.proj.Mul4x1(mgl32.Vec4{v.X, v.Y, 0, 1})
	return point{
		x: (ndc.X() + 1) * 0.5 * float32(c.width),
		y: (ndc.Y() + 1) * 0.5 * float32(c.height),
		u: v.U,
		v: v.V,
	}
}

func (c *Canvas) fill(q gfx.Quad, col [4]float32, textured bool) {
	var p [4]point
	for i := range q.V {
		p[i] = c.toWindow(q.V[i])
	}
	c.triangle(p[0], p[1], p[2], col, textured, false)
	c.triangle(p[0], p[2], p[3], col, textured, true)
}

func edge(a, b point, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

// triangle samples pixel centres. When shared is set, centres lying exactly
// on the a-b edge belong to the neighbouring triangle.
func (c *Canvas) triangle(a, b, d point, col [4]float32, textured, shared bool) {
	area := edge(a, b, d.x, d.y)
	if area == 0 {
		return
	}
	minX := max(0, int(math.Floor(float64(min(a.x, b.x, d.x)))))
	maxX := min(c.width-1, int(math.Ceil(float64(max(a.x, b.x, d.x)))))
	minY := max(0, int(math.Floor(float64(min(a.y, b.y, d.y)))))
	maxY := min(c.height-1, int(math.Ceil(float64(max(a.y, b.y, d.y)))))

	var tex *texture
	if textured {
		tex = c.textures[c.bound]
	}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, d, px, py) / area
			w1 := edge(d, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 || (shared && w2 == 0) {
				continue
			}
			s := col
			if tex != nil {
				u := w0*a.u + w1*b.u + w2*d.u
				v := w0*a.v + w1*b.v + w2*d.v
				l, al := tex.sample(u, v)
				s[0] *= l
				s[1] *= l
				s[2] *= l
				s[3] *= al
			}
			c.blend(x, y, s)
		}
	}
}

func (c *Canvas) blend(x, y int, s [4]float32) {
	i := (y*c.width + x) * 3
	if !c.enabled[gfx.Blend] {
		c.pix[i], c.pix[i+1], c.pix[i+2] = s[0], s[1], s[2]
		return
	}
	sf := factor(c.src, s[3])
	df := factor(c.dst, s[3])
	for k := 0; k < 3; k++ {
		c.pix[i+k] = clamp(s[k]*sf + c.pix[i+k]*df)
	}
}

func factor(f gfx.BlendFactor, srcAlpha float32) float32 {
	switch f {
	case gfx.One:
		return 1
	case gfx.SrcAlpha:
		return srcAlpha
	case gfx.OneMinusSrcAlpha:
		return 1 - srcAlpha
	default:
		return 0
	}
}

func (t *texture) texel(x, y int) (float32, float32) {
	x = wrap(x, t.width, t.wrapS)
	y = wrap(y, t.height, t.wrapT)
	i := (y*t.width + x) * 2
	return float32(t.la[i]) / 255, float32(t.la[i+1]) / 255
}

func (t *texture) sample(u, v float32) (float32, float32) {
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5
	if t.mag == gfx.Nearest {
		return t.texel(int(math.Floor(float64(fx+0.5))), int(math.Floor(float64(fy+0.5))))
	}
	x0, y0 := int(math.Floor(float64(fx))), int(math.Floor(float64(fy)))
	tx, ty := fx-float32(x0), fy-float32(y0)

	l00, a00 := t.texel(x0, y0)
	l10, a10 := t.texel(x0+1, y0)
	l01, a01 := t.texel(x0, y0+1)
	l11, a11 := t.texel(x0+1, y0+1)
	l := lerp(lerp(l00, l10, tx), lerp(l01, l11, tx), ty)
	a := lerp(lerp(a00, a10, tx), lerp(a01, a11, tx), ty)
	return l, a
}

func wrap(i, n int, mode gfx.TexValue) int {
	if mode == gfx.ClampToEdge {
		return max(0, min(i, n-1))
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clamp(v float32) float32 { return max(0, min(v, 1)) }

func to8(v float32) uint8 { return uint8(clamp(v)*255 + 0.5) }
