// Package rlgl translates gfx commands onto raylib's immediate mode layer.
// It must be used between rl.BeginDrawing and rl.EndDrawing on the thread
// that opened the window.
package rlgl

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/flurry/internal/gfx"
)

const (
	rlQuads      int32 = 0x0007
	rlModelview  int32 = 0x1700
	rlProjection int32 = 0x1701
)

type texture struct {
	tex    rl.Texture2D
	loaded bool
	wrap   rl.TextureWrapMode
	filter rl.TextureFilterMode
}

type Renderer struct {
	textures map[gfx.TextureID]*texture
	next     gfx.TextureID
	bound    gfx.TextureID

	texturing bool
	blending  bool
	src, dst  gfx.BlendFactor
	inBlend   bool
	color     [4]float32
}

func New() *Renderer {
	return &Renderer{
		textures: make(map[gfx.TextureID]*texture),
		src:      gfx.One,
		dst:      gfx.Zero,
		color:    [4]float32{1, 1, 1, 1},
	}
}

func (r *Renderer) GenTexture() gfx.TextureID {
	r.next++
	r.textures[r.next] = &texture{wrap: rl.WrapRepeat, filter: rl.FilterBilinear}
	return r.next
}

func (r *Renderer) BindTexture(id gfx.TextureID) { r.bound = id }

func (r *Renderer) TexParameter(p gfx.TexParam, v gfx.TexValue) {
	t := r.textures[r.bound]
	if t == nil {
		return
	}
	switch p {
	case gfx.WrapS, gfx.WrapT:
		t.wrap = rl.WrapRepeat
		if v == gfx.ClampToEdge {
			t.wrap = rl.WrapClamp
		}
	case gfx.MagFilter, gfx.MinFilter:
		t.filter = rl.FilterBilinear
		if v == gfx.Nearest {
			t.filter = rl.FilterPoint
		}
	}
	t.apply()
}

func (r *Renderer) UploadMipmaps(width, height int, luminanceAlpha []byte) {
	t := r.textures[r.bound]
	if t == nil {
		return
	}
	if t.loaded {
		rl.UnloadTexture(t.tex)
	}
	pix := append([]byte(nil), luminanceAlpha...)
	img := rl.NewImage(pix, int32(width), int32(height), 1, rl.UncompressedGrayAlpha)
	t.tex = rl.LoadTextureFromImage(img)
	rl.GenTextureMipmaps(&t.tex)
	t.loaded = true
	t.apply()
}

func (t *texture) apply() {
	if !t.loaded {
		return
	}
	rl.SetTextureWrap(t.tex, t.wrap)
	rl.SetTextureFilter(t.tex, t.filter)
}

// TexEnvModulate is a no-op: raylib's default shader already multiplies
// the texel by the vertex color.
func (r *Renderer) TexEnvModulate() {}

func (r *Renderer) Enable(c gfx.Cap) {
	switch c {
	case gfx.Blend:
		r.blending = true
		r.applyBlend()
	case gfx.Texture2D:
		r.texturing = true
	case gfx.DepthTest:
		rl.EnableDepthTest()
	case gfx.CullFace:
		rl.EnableBackfaceCulling()
	}
}

func (r *Renderer) Disable(c gfx.Cap) {
	switch c {
	case gfx.Blend:
		r.blending = false
		r.applyBlend()
	case gfx.Texture2D:
		r.texturing = false
	case gfx.DepthTest:
		rl.DisableDepthTest()
	case gfx.CullFace:
		rl.DisableBackfaceCulling()
	}
}

func (r *Renderer) BlendFunc(src, dst gfx.BlendFactor) {
	r.src, r.dst = src, dst
	r.applyBlend()
}

func (r *Renderer) applyBlend() {
	if r.inBlend {
		rl.EndBlendMode()
		r.inBlend = false
	}
	if !r.blending {
		return
	}
	mode, ok := blendMode(r.src, r.dst)
	if !ok {
		rl.SetBlendFactors(glFactor(r.src), glFactor(r.dst), glFuncAdd)
	}
	rl.BeginBlendMode(mode)
	r.inBlend = true
}

func (r *Renderer) Color(red, green, blue, alpha float64) {
	r.color = [4]float32{float32(red), float32(green), float32(blue), float32(alpha)}
}

func (r *Renderer) Rect(x0, y0, x1, y1 float64) {
	rl.SetTexture(0)
	rl.Begin(rlQuads)
	rl.Color4f(r.color[0], r.color[1], r.color[2], r.color[3])
	rl.Vertex2f(float32(x0), float32(y0))
	rl.Vertex2f(float32(x1), float32(y0))
	rl.Vertex2f(float32(x1), float32(y1))
	rl.Vertex2f(float32(x0), float32(y1))
	rl.End()
}

func (r *Renderer) Viewport(width, height int) {
	rl.DrawRenderBatchActive()
	rl.Viewport(0, 0, int32(width), int32(height))
	rl.MatrixMode(rlProjection)
	rl.LoadIdentity()
	rl.Ortho(0, float64(width), 0, float64(height), -1, 1)
	rl.MatrixMode(rlModelview)
	rl.LoadIdentity()
}

func (r *Renderer) Clear() { rl.ClearBackground(rl.Black) }

func (r *Renderer) DrawQuads(quads []gfx.Quad) {
	if t := r.textures[r.bound]; r.texturing && t != nil && t.loaded {
		rl.SetTexture(t.tex.ID)
	} else {
		rl.SetTexture(0)
	}
	rl.Begin(rlQuads)
	for i := range quads {
		q := &quads[i]
		rl.Color4f(q.R, q.G, q.B, q.A)
		for _, v := range q.V {
			rl.TexCoord2f(v.U, v.V)
			rl.Vertex2f(v.X, v.Y)
		}
	}
	rl.End()
	rl.SetTexture(0)
}

func (r *Renderer) Flush() { rl.DrawRenderBatchActive() }

// Close unloads every uploaded texture.
func (r *Renderer) Close() {
	if r.inBlend {
		rl.EndBlendMode()
		r.inBlend = false
	}
	for id, t := range r.textures {
		if t.loaded {
			rl.UnloadTexture(t.tex)
		}
		delete(r.textures, id)
	}
}

const (
	glZero             int32 = 0
	glOne              int32 = 1
	glSrcAlpha         int32 = 0x0302
	glOneMinusSrcAlpha int32 = 0x0303
	glFuncAdd          int32 = 0x8006
)

// blendMode maps the two factor pairs the engine uses onto raylib's
// builtin modes; anything else goes through rl.BlendCustom.
func blendMode(src, dst gfx.BlendFactor) (rl.BlendMode, bool) {
	switch {
	case src == gfx.SrcAlpha && dst == gfx.One:
		return rl.BlendAdditive, true
	case src == gfx.SrcAlpha && dst == gfx.OneMinusSrcAlpha:
		return rl.BlendAlpha, true
	}
	return rl.BlendCustom, false
}

func glFactor(f gfx.BlendFactor) int32 {
	switch f {
	case gfx.One:
		return glOne
	case gfx.SrcAlpha:
		return glSrcAlpha
	case gfx.OneMinusSrcAlpha:
		return glOneMinusSrcAlpha
	default:
		return glZero
	}
}
