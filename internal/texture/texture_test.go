package texture

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/san-kum/flurry/internal/gfx"
)

func newTestSynth() *Synthesizer {
	return NewSynthesizer(rand.New(rand.NewSource(42)))
}

func TestBumpShape(t *testing.T) {
	tests := []struct {
		name string
		i, j int
		lo   float64
		hi   float64
	}{
		{"center", 15, 15, 254, 255},
		{"corner", 0, 0, 0, 0},
		{"edge midpoint", 0, 15, 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bump(tt.i, tt.j); got < tt.lo || got > tt.hi {
				t.Errorf("bump(%d,%d) = %v, want in [%v,%v]", tt.i, tt.j, got, tt.lo, tt.hi)
			}
		})
	}
}

func TestBuildChannelsMatch(t *testing.T) {
	atlas := newTestSynth().Build()
	if len(atlas.Pix) != AtlasSize*AtlasSize*Channels {
		t.Fatalf("atlas has %d bytes", len(atlas.Pix))
	}
	for i := 0; i < len(atlas.Pix); i += 2 {
		if atlas.Pix[i] != atlas.Pix[i+1] {
			t.Fatalf("luminance and alpha differ at byte %d", i)
		}
	}
}

func TestFirstTileBorderUntouched(t *testing.T) {
	tile := newTestSynth().Build().Tile(0, 0)
	for i := 0; i < TileSize; i++ {
		for _, j := range []int{0, TileSize - 1} {
			if want := uint8(bump(i, j)); tile[i][j] != want {
				t.Errorf("border pixel (%d,%d) = %d, want %d", i, j, tile[i][j], want)
			}
		}
	}
	if tile[15][15] < 128 {
		t.Errorf("expected bright center, got %d", tile[15][15])
	}
}

func TestLastTileAveragesFirst(t *testing.T) {
	atlas := newTestSynth().Build()
	first := atlas.Tile(0, 0)
	prev := atlas.Tile(Grid-1, Grid-2)
	last := atlas.Tile(Grid-1, Grid-1)

	for i := 0; i < TileSize; i++ {
		for j := 0; j < TileSize; j++ {
			want := (int(prev[i][j]) + int(first[i][j])) / 2
			if want > 255 {
				want = 255
			}
			if int(last[i][j]) != want {
				t.Fatalf("last tile (%d,%d) = %d, want %d", i, j, last[i][j], want)
			}
		}
	}
}

func TestBuildRunsOnce(t *testing.T) {
	s := newTestSynth()
	first := s.Build()
	snapshot := bytes.Clone(first.Pix)
	if again := s.Build(); again != first {
		t.Fatal("second Build returned a different atlas")
	}
	if !bytes.Equal(snapshot, first.Pix) {
		t.Error("atlas changed after second Build")
	}
}

func TestSharedIsProcessWide(t *testing.T) {
	a := Shared(rand.New(rand.NewSource(1)))
	b := Shared(rand.New(rand.NewSource(2)))
	if a != b {
		t.Fatal("Shared returned two synthesizers")
	}
	if Shared(nil) != a {
		t.Fatal("Shared(nil) returned a different synthesizer")
	}
	if a.Build() != b.Build() {
		t.Error("shared synthesizer built two atlases")
	}
}

func TestEnsureUploadsOnce(t *testing.T) {
	atlas := newTestSynth().Build()
	rec := gfx.NewRecorder()

	var u Upload
	if _, ok := u.Texture(); ok {
		t.Fatal("zero Upload reports a texture")
	}
	id := u.Ensure(rec, atlas)
	snapshot := bytes.Clone(atlas.Pix)
	issued := len(rec.Commands)

	if rec.Count(gfx.OpUploadMipmaps) != 1 {
		t.Fatalf("expected one upload, got %d", rec.Count(gfx.OpUploadMipmaps))
	}
	up := rec.Filter(gfx.OpUploadMipmaps)[0]
	if up.Width != AtlasSize || up.Height != AtlasSize || up.Bytes != AtlasSize*AtlasSize*2 {
		t.Errorf("unexpected upload %+v", up)
	}
	if !bytes.Equal(up.Pixels, atlas.Pix) {
		t.Error("uploaded pixels differ from the atlas")
	}
	if rec.Count(gfx.OpTexEnvModulate) != 1 {
		t.Error("expected modulate tex env")
	}

	again := u.Ensure(rec, atlas)
	if again != id {
		t.Errorf("second Ensure returned %d, want %d", again, id)
	}
	if len(rec.Commands) != issued {
		t.Errorf("second Ensure issued %d extra commands", len(rec.Commands)-issued)
	}
	if !bytes.Equal(snapshot, atlas.Pix) {
		t.Error("atlas changed after second Ensure")
	}
	if tex, ok := u.Texture(); !ok || tex != id {
		t.Errorf("Texture() = %d, %v", tex, ok)
	}
}

func TestUploadPerContext(t *testing.T) {
	atlas := newTestSynth().Build()
	var u1, u2 Upload
	r1, r2 := gfx.NewRecorder(), gfx.NewRecorder()
	u1.Ensure(r1, atlas)
	u2.Ensure(r2, atlas)
	if r1.Count(gfx.OpUploadMipmaps) != 1 || r2.Count(gfx.OpUploadMipmaps) != 1 {
		t.Fatal("each context should receive its own upload")
	}
	p1 := r1.Filter(gfx.OpUploadMipmaps)[0].Pixels
	p2 := r2.Filter(gfx.OpUploadMipmaps)[0].Pixels
	if !bytes.Equal(p1, p2) {
		t.Error("contexts received different atlas bytes")
	}
}

func TestUploadParameters(t *testing.T) {
	rec := gfx.NewRecorder()
	var u Upload
	u.Ensure(rec, newTestSynth().Build())

	want := map[gfx.TexParam]gfx.TexValue{
		gfx.WrapS:     gfx.Repeat,
		gfx.WrapT:     gfx.Repeat,
		gfx.MagFilter: gfx.Linear,
		gfx.MinFilter: gfx.LinearMipmapNearest,
	}
	got := map[gfx.TexParam]gfx.TexValue{}
	for _, c := range rec.Filter(gfx.OpTexParameter) {
		got[c.Param] = c.Value
	}
	for p, v := range want {
		if got[p] != v {
			t.Errorf("param %d = %d, want %d", p, got[p], v)
		}
	}
}

func TestImage(t *testing.T) {
	atlas := newTestSynth().Build()
	img := atlas.Image()
	if img.Bounds().Dx() != AtlasSize || img.Bounds().Dy() != AtlasSize {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	l, a := atlas.At(16, 16)
	c := img.NRGBAAt(16, 16)
	if c.R != l || c.A != a {
		t.Errorf("image pixel %+v does not match atlas (%d,%d)", c, l, a)
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		newTestSynth().Build()
	}
}
