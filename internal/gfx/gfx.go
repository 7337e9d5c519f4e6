package gfx

type TextureID uint32

type Cap int

const (
	Blend Cap = iota
	Texture2D
	DepthTest
	AlphaTest
	Lighting
	CullFace
)

type BlendFactor int

const (
	Zero BlendFactor = iota
	One
	SrcAlpha
	OneMinusSrcAlpha
)

type TexParam int

const (
	WrapS TexParam = iota
	WrapT
	MagFilter
	MinFilter
)

type TexValue int

const (
	Repeat TexValue = iota
	ClampToEdge
	Nearest
	Linear
	LinearMipmapNearest
)

// Vertex is a screen-space position with texture coordinates.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Quad is four vertices sharing one color, wound in draw order.
type Quad struct {
	V          [4]Vertex
	R, G, B, A float32
}

// Renderer is the graphics capability consumed by the texture synthesizer,
// the pacing controller and the simulation core. Implementations are not
// safe for concurrent use; callers serialise access per context.
type Renderer interface {
	GenTexture() TextureID
	BindTexture(id TextureID)
	TexParameter(p TexParam, v TexValue)
	// UploadMipmaps uploads a two channel luminance-alpha image and builds
	// its mipmap chain.
	UploadMipmaps(width, height int, luminanceAlpha []byte)
	TexEnvModulate()

	Enable(c Cap)
	Disable(c Cap)
	BlendFunc(src, dst BlendFactor)
	Color(r, g, b, a float64)

	// Rect fills an axis aligned rectangle with the current color.
	Rect(x0, y0, x1, y1 float64)
	// Viewport sets the viewport and a pixel-space orthographic projection
	// with the origin in the lower left corner.
	Viewport(width, height int)
	Clear()
	DrawQuads(quads []Quad)
	Flush()
}

// Discard drops every command. Texture ids are still handed out.
type Discard struct {
	next TextureID
}

func (d *Discard) GenTexture() TextureID {
	d.next++
	return d.next
}

func (d *Discard) BindTexture(TextureID)                    {}
func (d *Discard) TexParameter(TexParam, TexValue)          {}
func (d *Discard) UploadMipmaps(int, int, []byte)           {}
func (d *Discard) TexEnvModulate()                          {}
func (d *Discard) Enable(Cap)                               {}
func (d *Discard) Disable(Cap)                              {}
func (d *Discard) BlendFunc(BlendFactor, BlendFactor)       {}
func (d *Discard) Color(float64, float64, float64, float64) {}
func (d *Discard) Rect(float64, float64, float64, float64)  {}
func (d *Discard) Viewport(int, int)                        {}
func (d *Discard) Clear()                                   {}
func (d *Discard) DrawQuads([]Quad)                         {}
func (d *Discard) Flush()                                   {}
