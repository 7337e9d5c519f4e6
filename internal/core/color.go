package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type ColorMode int

const (
	Red ColorMode = iota
	Magenta
	Blue
	Cyan
	Green
	Yellow
	SlowCyclic
	Cyclic
	Tiedye
	Rainbow
	White
	Multi
	Dark
)

var colorNames = [...]string{
	Red:        "red",
	Magenta:    "magenta",
	Blue:       "blue",
	Cyan:       "cyan",
	Green:      "green",
	Yellow:     "yellow",
	SlowCyclic: "slowCyclic",
	Cyclic:     "cyclic",
	Tiedye:     "tiedye",
	Rainbow:    "rainbow",
	White:      "white",
	Multi:      "multi",
	Dark:       "dark",
}

func (m ColorMode) String() string {
	if m < 0 || int(m) >= len(colorNames) {
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
	return colorNames[m]
}

func (m ColorMode) Valid() bool { return m >= 0 && int(m) < len(colorNames) }

// ColorModeFromName looks a palette up by name, ignoring case. Unknown
// names report false and fall back to Tiedye.
func ColorModeFromName(name string) (ColorMode, bool) {
	for i, n := range colorNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ColorMode(i), true
		}
	}
	return Tiedye, false
}

func ColorModeNames() []string {
	out := make([]string, len(colorNames))
	copy(out, colorNames[:])
	return out
}

func (m ColorMode) cycleTime() float64 {
	switch m {
	case Rainbow:
		return 1.5
	case Tiedye:
		return 4.5
	case SlowCyclic:
		return 120.0
	default:
		return 20.0
	}
}

// sparkColor computes the color of stream i at cluster time t.
func sparkColor(m ColorMode, t, seed float64, i, streams int) [4]float64 {
	cycle := m.cycleTime()
	rot := 2.0 * math.Pi / cycle
	shift := [3]float64{0, cycle / 3.0, cycle * 2.0 / 3.0}

	var base [3]float64
	switch m {
	case White:
		base = [3]float64{0.1875, 0.1875, 0.1875}
	case Dark:
	case Multi:
		hue := math.Mod(360.0*float64(i)/float64(max(streams, 1))+t*6.0, 360.0)
		c := colorful.Hsv(hue, 0.85, 0.22)
		base = [3]float64{c.R, c.G, c.B}
	default:
		colorTime := t + seed
		if m < SlowCyclic {
			colorTime = float64(m) / 6.0 * cycle
		}
		for k := range base {
			base[k] = 0.109375 * (math.Cos((colorTime+shift[k])*rot) + 1.0)
		}
	}

	return [4]float64{
		base[0] + 0.0625*(0.5+math.Cos(15.0*(t+shift[0]))+math.Cos(7.0*(t+shift[0]))),
		base[1] + 0.0625*(0.5+math.Sin(15.0*(t+shift[1]))+math.Sin(7.0*(t+shift[1]))),
		base[2] + 0.0625*(0.5+math.Cos(15.0*(t+shift[2]))+math.Cos(7.0*(t+shift[2]))),
		1.0,
	}
}

// tint scales an rgb triple and clamps it into the displayable range.
func tint(c [4]float64, scale float64) (float32, float32, float32) {
	cl := colorful.Color{R: c[0] * scale, G: c[1] * scale, B: c[2] * scale}.Clamped()
	return float32(cl.R), float32(cl.G), float32(cl.B)
}
