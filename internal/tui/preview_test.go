package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/gfx/raster"
)

func TestCellsHalfBlocks(t *testing.T) {
	c := raster.New(6, 4)
	c.Color(1, 0, 0, 1)
	c.Rect(0, 0, 6, 1)

	out := Cells(c)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, "▀"); n != 6 {
			t.Errorf("row %d: expected 6 cells, got %d", i, n)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		r, g, b float32
		want    string
	}{
		{0, 0, 0, "#000000"},
		{1, 1, 1, "#ffffff"},
		{2, -1, 0, "#ff0000"},
	}
	for _, tt := range tests {
		if got := hex(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("hex(%v,%v,%v) = %s, want %s", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline(nil, 4); got != "    " {
		t.Errorf("expected blank line, got %q", got)
	}
	got := []rune(sparkline([]float64{1, 2, 3, 4, 5}, 3))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("unexpected sparkline %q", string(got))
	}
}

func TestPreviewCyclesPresets(t *testing.T) {
	m, err := NewPreview(config.DefaultSettings(), "Fire")
	if err != nil {
		t.Fatal(err)
	}
	if m.group.Name != "Fire" {
		t.Fatalf("expected Fire, got %s", m.group.Name)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	nm := next.(model)
	if nm.group.Name == "Fire" {
		t.Error("expected preset to change")
	}

	next, _ = nm.Update(tea.WindowSizeMsg{Width: 40, Height: 14})
	nm = next.(model)
	if w, h := nm.canvas.Size(); w != 40 || h != 20 {
		t.Errorf("expected 40x20 canvas, got %dx%d", w, h)
	}

	next, cmd := nm.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected another tick")
	}
	if !strings.Contains(next.(model).View(), nm.group.Name) {
		t.Error("expected view to name the preset")
	}
	if err := nm.group.Destroy(); err != nil {
		t.Error(err)
	}
}

func TestPreviewResetKey(t *testing.T) {
	m, err := NewPreview(config.DefaultSettings(), "Classic")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		next, _ := m.Update(tickMsg(time.Now()))
		nm := next.(model)
		m = &nm
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Error("reset should not schedule a command")
	}
	nm := next.(model)
	if nm.err != nil {
		t.Fatal(nm.err)
	}
	for _, c := range nm.group.Clusters() {
		st := c.State()
		if st.Frame != 0 || st.Particles.Live() != 0 {
			t.Errorf("cluster not reset: frame %d, %d live particles", st.Frame, st.Particles.Live())
		}
	}
	if err := nm.group.Destroy(); err != nil {
		t.Error(err)
	}
}
