package glcompat

import (
	"testing"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/san-kum/flurry/internal/gfx"
)

// These only cover the enum mapping; drawing needs a live context.

func TestCapability(t *testing.T) {
	tests := []struct {
		in   gfx.Cap
		want uint32
	}{
		{gfx.Blend, gl.BLEND},
		{gfx.Texture2D, gl.TEXTURE_2D},
		{gfx.DepthTest, gl.DEPTH_TEST},
		{gfx.AlphaTest, gl.ALPHA_TEST},
		{gfx.Lighting, gl.LIGHTING},
		{gfx.CullFace, gl.CULL_FACE},
	}
	for _, tt := range tests {
		if got := capability(tt.in); got != tt.want {
			t.Errorf("capability(%d) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestUnknownCapabilityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	capability(gfx.Cap(99))
}

func TestBlendFactor(t *testing.T) {
	tests := []struct {
		in   gfx.BlendFactor
		want uint32
	}{
		{gfx.Zero, gl.ZERO},
		{gfx.One, gl.ONE},
		{gfx.SrcAlpha, gl.SRC_ALPHA},
		{gfx.OneMinusSrcAlpha, gl.ONE_MINUS_SRC_ALPHA},
	}
	for _, tt := range tests {
		if got := blendFactor(tt.in); got != tt.want {
			t.Errorf("blendFactor(%d) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestTexMapping(t *testing.T) {
	if texParam(gfx.MinFilter) != gl.TEXTURE_MIN_FILTER || texParam(gfx.WrapT) != gl.TEXTURE_WRAP_T {
		t.Error("unexpected texture parameter mapping")
	}
	if texValue(gfx.LinearMipmapNearest) != gl.LINEAR_MIPMAP_NEAREST || texValue(gfx.Repeat) != gl.REPEAT {
		t.Error("unexpected texture value mapping")
	}
}
