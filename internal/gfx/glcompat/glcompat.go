// Package glcompat drives an OpenGL 2.1 compatibility context through the
// fixed-function pipeline. A context must be current on the calling thread
// before New and for every call afterwards.
package glcompat

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/flurry/internal/gfx"
)

type Renderer struct {
	Version string
}

func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to init opengl: %v", err)
	}
	return &Renderer{Version: gl.GoStr(gl.GetString(gl.VERSION))}, nil
}

func (r *Renderer) GenTexture() gfx.TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	return gfx.TextureID(id)
}

func (r *Renderer) BindTexture(id gfx.TextureID) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (r *Renderer) TexParameter(p gfx.TexParam, v gfx.TexValue) {
	gl.TexParameteri(gl.TEXTURE_2D, texParam(p), texValue(v))
}

func (r *Renderer) UploadMipmaps(width, height int, luminanceAlpha []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.LUMINANCE_ALPHA, int32(width), int32(height), 0,
		gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE, gl.Ptr(luminanceAlpha))
}

func (r *Renderer) TexEnvModulate() {
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)
}

func (r *Renderer) Enable(c gfx.Cap)  { gl.Enable(capability(c)) }
func (r *Renderer) Disable(c gfx.Cap) { gl.Disable(capability(c)) }

func (r *Renderer) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (r *Renderer) Color(red, green, blue, alpha float64) {
	gl.Color4d(red, green, blue, alpha)
}

func (r *Renderer) Rect(x0, y0, x1, y1 float64) {
	gl.Rectd(x0, y0, x1, y1)
}

func (r *Renderer) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))

	proj := mgl32.Ortho2D(0, float32(width), 0, float32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}

func (r *Renderer) Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) DrawQuads(quads []gfx.Quad) {
	gl.Begin(gl.QUADS)
	for i := range quads {
		q := &quads[i]
		gl.Color4f(q.R, q.G, q.B, q.A)
		for _, v := range q.V {
			gl.TexCoord2f(v.U, v.V)
			gl.Vertex2f(v.X, v.Y)
		}
	}
	gl.End()
}

func (r *Renderer) Flush() { gl.Flush() }

func capability(c gfx.Cap) uint32 {
	switch c {
	case gfx.Blend:
		return gl.BLEND
	case gfx.Texture2D:
		return gl.TEXTURE_2D
	case gfx.DepthTest:
		return gl.DEPTH_TEST
	case gfx.AlphaTest:
		return gl.ALPHA_TEST
	case gfx.Lighting:
		return gl.LIGHTING
	case gfx.CullFace:
		return gl.CULL_FACE
	}
	panic(fmt.Sprintf("glcompat: unknown capability %d", c))
}

func blendFactor(f gfx.BlendFactor) uint32 {
	switch f {
	case gfx.One:
		return gl.ONE
	case gfx.SrcAlpha:
		return gl.SRC_ALPHA
	case gfx.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ZERO
	}
}

func texParam(p gfx.TexParam) uint32 {
	switch p {
	case gfx.WrapS:
		return gl.TEXTURE_WRAP_S
	case gfx.WrapT:
		return gl.TEXTURE_WRAP_T
	case gfx.MagFilter:
		return gl.TEXTURE_MAG_FILTER
	default:
		return gl.TEXTURE_MIN_FILTER
	}
}

func texValue(v gfx.TexValue) int32 {
	switch v {
	case gfx.Repeat:
		return gl.REPEAT
	case gfx.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gfx.Nearest:
		return gl.NEAREST
	case gfx.Linear:
		return gl.LINEAR
	default:
		return gl.LINEAR_MIPMAP_NEAREST
	}
}
