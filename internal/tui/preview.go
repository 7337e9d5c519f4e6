package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/flurry/internal/clock"
	"github.com/san-kum/flurry/internal/cluster"
	"github.com/san-kum/flurry/internal/config"
	"github.com/san-kum/flurry/internal/gfx/raster"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	headerRows = 2
	footerRows = 2
	historyLen = 60
)

type model struct {
	settings *config.Settings
	presets  []string
	current  int

	clock  clock.Clock
	canvas *raster.Canvas
	pipe   *cluster.Pipeline
	group  *cluster.Group
	err    error

	paused    bool
	lastFrame time.Time
	fps       float64
	history   []float64

	width  int
	height int
}

// NewPreview builds the terminal preview for the named preset.
func NewPreview(settings *config.Settings, preset string) (*model, error) {
	names := settings.PresetNames()
	current := 0
	for i, n := range names {
		if n == preset {
			current = i
		}
	}
	m := &model{
		settings: settings,
		presets:  names,
		current:  current,
		clock:    clock.NewMonotonic(),
		width:    80,
		height:   24,
		history:  make([]float64, 0, historyLen),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) pixelSize() (int, int) {
	rows := max(m.height-headerRows-footerRows, 1)
	return max(m.width, 1), rows * 2
}

// load replaces the running group with the current preset.
func (m *model) load() error {
	if m.group != nil {
		if err := m.group.Destroy(); err != nil {
			return err
		}
	}
	preset, err := m.settings.Lookup(m.presets[m.current])
	if err != nil {
		return err
	}

	w, h := m.pixelSize()
	m.canvas = raster.New(w, h)
	m.pipe = cluster.NewPipeline(m.canvas, m.clock)
	m.group, err = cluster.NewGroup(m.pipe, preset, m.settings)
	if err != nil {
		return err
	}
	if err := m.group.SetSize(w, h); err != nil {
		return err
	}
	return m.group.PrepareToAnimate()
}

func (m *model) resize() error {
	w, h := m.pixelSize()
	if cw, ch := m.canvas.Size(); cw == w && ch == h {
		return nil
	}
	if err := m.group.SetSize(w, h); err != nil {
		return err
	}
	m.canvas.Clear()
	return nil
}

func (m model) Init() tea.Cmd { return m.tick() }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	fps := max(m.settings.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if err := m.resize(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		if !m.paused {
			now := time.Time(msg)
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
					m.history = append(m.history, dt*1000)
					if len(m.history) > historyLen {
						m.history = m.history[1:]
					}
				}
			}
			m.lastFrame = now
			if err := m.group.AnimateOneFrame(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		m.lastFrame = time.Time{}
	case "n", "right":
		return m.switchPreset(1)
	case "p", "left":
		return m.switchPreset(-1)
	case "r":
		if err := m.group.Reset(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.canvas.Clear()
	case "s":
		m.settings.DrawSparks = !m.settings.DrawSparks
		for _, c := range m.group.Clusters() {
			if st := c.State(); st != nil {
				st.DrawSparks = m.settings.DrawSparks
			}
		}
	}
	return m, nil
}

func (m model) switchPreset(step int) (model, tea.Cmd) {
	n := len(m.presets)
	m.current = ((m.current+step)%n + n) % n
	if err := m.load(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, tea.ClearScreen
}

func (m model) View() string {
	var b strings.Builder

	state := cyan.Render("running")
	if m.paused {
		state = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf(" %s  %s  %s\n",
		white.Render("flurry"), cyan.Render(m.group.Name), state))
	b.WriteString(dimmer.Render(" "+strings.Repeat("─", max(m.width-2, 0))) + "\n")

	b.WriteString(Cells(m.canvas))

	b.WriteString(fmt.Sprintf(" %s  %s  %s\n",
		dim.Render(fmt.Sprintf("%.0f fps", m.fps)),
		dim.Render(sparkline(m.history, 30)),
		dimmer.Render("[space] pause  [n/p] preset  [r] reset  [s] sparks  [q] quit")))
	return b.String()
}

// Cells renders the canvas as half-block characters, two pixel rows per
// terminal row, top row first.
func Cells(c *raster.Canvas) string {
	w, h := c.Size()
	var b strings.Builder
	for y := h - 1; y > 0; y -= 2 {
		for x := 0; x < w; x++ {
			top := hex(c.At(x, y))
			bottom := hex(c.At(x, y-1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func hex(r, g, b float32) string {
	return colorful.Color{R: float64(r), G: float64(g), B: float64(b)}.Clamped().Hex()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo, hi = min(lo, v), max(hi, v)
	}
	var b strings.Builder
	for _, v := range data {
		i := 0
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}

// RunPreview runs the terminal preview until the user quits.
func RunPreview(settings *config.Settings, preset string) error {
	m, err := NewPreview(settings, preset)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(*m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok {
		if fm.group != nil {
			if derr := fm.group.Destroy(); derr != nil && fm.err == nil {
				return derr
			}
		}
		return fm.err
	}
	return nil
}
