package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/flurry/internal/core"
)

// ClusterSpec describes one cluster: how many streams, which palette, how
// fast trails widen and how fast the star turns. Speed may be negative.
type ClusterSpec struct {
	Streams   int
	Color     core.ColorMode
	Thickness float64
	Speed     float64
}

func (c ClusterSpec) Validate() error {
	if c.Streams < 1 || c.Streams > core.MaxStreams {
		return fmt.Errorf("%w: streams %d not in [1,%d]", ErrInvalidSpec, c.Streams, core.MaxStreams)
	}
	if !c.Color.Valid() {
		return fmt.Errorf("%w: color %d", ErrInvalidSpec, int(c.Color))
	}
	if c.Thickness <= 0 {
		return fmt.Errorf("%w: thickness %g must be positive", ErrInvalidSpec, c.Thickness)
	}
	return nil
}

func (c ClusterSpec) String() string {
	return fmt.Sprintf("{%d,%s,%s,%s}", c.Streams, c.Color,
		strconv.FormatFloat(c.Thickness, 'f', -1, 64),
		strconv.FormatFloat(c.Speed, 'f', -1, 64))
}

// Preset is a named set of clusters drawn together.
type Preset struct {
	Name     string
	Clusters []ClusterSpec
}

// String renders the preset back into its text format.
func (p Preset) String() string {
	parts := make([]string, len(p.Clusters))
	for i, c := range p.Clusters {
		parts[i] = c.String()
	}
	return p.Name + ":" + strings.Join(parts, ";")
}

// ParsePreset reads "Name:{5,tiedye,100,1.0};{3,red,100,0.8}". Color names
// are matched case-insensitively; an unknown name falls back to tiedye.
func ParsePreset(text string) (Preset, error) {
	bad := func() (Preset, error) {
		return Preset{}, &PresetError{Text: text, Wrapped: ErrBadPreset}
	}

	name, body, ok := strings.Cut(text, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return bad()
	}

	p := Preset{Name: name}
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
			return bad()
		}
		fields := strings.Split(part[1:len(part)-1], ",")
		if len(fields) != 4 {
			return bad()
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		streams, err := strconv.Atoi(fields[0])
		if err != nil {
			return bad()
		}
		color, _ := core.ColorModeFromName(fields[1])
		thickness, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return bad()
		}
		speed, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return bad()
		}

		spec := ClusterSpec{Streams: streams, Color: color, Thickness: thickness, Speed: speed}
		if err := spec.Validate(); err != nil {
			return Preset{}, &PresetError{Text: text, Wrapped: err}
		}
		p.Clusters = append(p.Clusters, spec)
	}

	if len(p.Clusters) == 0 {
		return bad()
	}
	return p, nil
}
