package gfx

import "testing"

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()
	id := r.GenTexture()
	r.BindTexture(id)
	r.Color(0, 0, 0, 0.25)
	r.Rect(0, 0, 10, 10)
	r.DrawQuads(make([]Quad, 3))
	r.Flush()

	if id != 1 {
		t.Errorf("expected first texture id 1, got %d", id)
	}
	if got := r.Count(OpRect); got != 1 {
		t.Errorf("Count(OpRect) = %d, want 1", got)
	}
	quads := r.Filter(OpDrawQuads)
	if len(quads) != 1 || quads[0].Quads != 3 {
		t.Errorf("unexpected DrawQuads commands: %+v", quads)
	}

	r.Reset()
	if len(r.Commands) != 0 {
		t.Error("Reset did not clear commands")
	}
}

func TestRecorderFadeAlphas(t *testing.T) {
	r := NewRecorder()
	r.Color(0, 0, 0, 0.1)
	r.Rect(0, 0, 1, 1)
	r.Color(1, 1, 1, 1)
	r.Color(0, 0, 0, 0.2)
	r.Rect(0, 0, 1, 1)

	got := r.FadeAlphas()
	if len(got) != 2 || got[0] != 0.1 || got[1] != 0.2 {
		t.Errorf("FadeAlphas() = %v, want [0.1 0.2]", got)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpRect, "Rect"},
		{OpFlush, "Flush"},
		{Op(99), "Op(99)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
