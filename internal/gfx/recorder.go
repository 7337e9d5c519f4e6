package gfx

import (
	"bytes"
	"fmt"
)

type Op int

const (
	OpGenTexture Op = iota
	OpBindTexture
	OpTexParameter
	OpUploadMipmaps
	OpTexEnvModulate
	OpEnable
	OpDisable
	OpBlendFunc
	OpColor
	OpRect
	OpViewport
	OpClear
	OpDrawQuads
	OpFlush
)

var opNames = [...]string{
	OpGenTexture:     "GenTexture",
	OpBindTexture:    "BindTexture",
	OpTexParameter:   "TexParameter",
	OpUploadMipmaps:  "UploadMipmaps",
	OpTexEnvModulate: "TexEnvModulate",
	OpEnable:         "Enable",
	OpDisable:        "Disable",
	OpBlendFunc:      "BlendFunc",
	OpColor:          "Color",
	OpRect:           "Rect",
	OpViewport:       "Viewport",
	OpClear:          "Clear",
	OpDrawQuads:      "DrawQuads",
	OpFlush:          "Flush",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Command is one recorded renderer call. Only the fields relevant to Op are
// set.
type Command struct {
	Op      Op
	Texture TextureID
	Cap     Cap
	Src     BlendFactor
	Dst     BlendFactor
	Param   TexParam
	Value   TexValue
	Color   [4]float64
	Rect    [4]float64
	Width   int
	Height  int
	Quads   int
	Bytes   int
	Pixels  []byte
}

// Recorder logs every command it receives.
type Recorder struct {
	Commands []Command
	next     TextureID
}

func NewRecorder() *Recorder {
	return &Recorder{Commands: make([]Command, 0, 64)}
}

func (r *Recorder) add(c Command) { r.Commands = append(r.Commands, c) }

func (r *Recorder) GenTexture() TextureID {
	r.next++
	r.add(Command{Op: OpGenTexture, Texture: r.next})
	return r.next
}

func (r *Recorder) BindTexture(id TextureID) {
	r.add(Command{Op: OpBindTexture, Texture: id})
}

func (r *Recorder) TexParameter(p TexParam, v TexValue) {
	r.add(Command{Op: OpTexParameter, Param: p, Value: v})
}

func (r *Recorder) UploadMipmaps(width, height int, luminanceAlpha []byte) {
	r.add(Command{
		Op:     OpUploadMipmaps,
		Width:  width,
		Height: height,
		Bytes:  len(luminanceAlpha),
		Pixels: bytes.Clone(luminanceAlpha),
	})
}

func (r *Recorder) TexEnvModulate() { r.add(Command{Op: OpTexEnvModulate}) }
func (r *Recorder) Enable(c Cap)    { r.add(Command{Op: OpEnable, Cap: c}) }
func (r *Recorder) Disable(c Cap)   { r.add(Command{Op: OpDisable, Cap: c}) }

func (r *Recorder) BlendFunc(src, dst BlendFactor) {
	r.add(Command{Op: OpBlendFunc, Src: src, Dst: dst})
}

func (r *Recorder) Color(red, green, blue, alpha float64) {
	r.add(Command{Op: OpColor, Color: [4]float64{red, green, blue, alpha}})
}

func (r *Recorder) Rect(x0, y0, x1, y1 float64) {
	r.add(Command{Op: OpRect, Rect: [4]float64{x0, y0, x1, y1}})
}

func (r *Recorder) Viewport(width, height int) {
	r.add(Command{Op: OpViewport, Width: width, Height: height})
}

func (r *Recorder) Clear() { r.add(Command{Op: OpClear}) }

func (r *Recorder) DrawQuads(quads []Quad) {
	r.add(Command{Op: OpDrawQuads, Quads: len(quads)})
}

func (r *Recorder) Flush() { r.add(Command{Op: OpFlush}) }

// Count returns how many commands of the given kind were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Filter(op Op) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// FadeAlphas returns the alpha of the color in effect for every Rect call.
func (r *Recorder) FadeAlphas() []float64 {
	var (
		out   []float64
		alpha float64
	)
	for _, c := range r.Commands {
		switch c.Op {
		case OpColor:
			alpha = c.Color[3]
		case OpRect:
			out = append(out, alpha)
		}
	}
	return out
}

func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }
