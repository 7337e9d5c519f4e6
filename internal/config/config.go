package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxFrameProgressMs = 80
	DefaultWidth              = 1280
	DefaultHeight             = 720
	DefaultFPS                = 60
	DefaultBrightness         = 1.0
)

// Settings is the user-facing configuration. Presets holds extra preset
// strings in the same format as the built-ins; a user preset shadows a
// built-in of the same name.
type Settings struct {
	MaxFrameProgressMs int      `yaml:"max_frame_progress_ms"`
	Preset             string   `yaml:"preset"`
	Presets            []string `yaml:"presets,omitempty"`
	DrawSparks         bool     `yaml:"draw_sparks"`
	Brightness         float64  `yaml:"brightness"`
	Width              int      `yaml:"width"`
	Height             int      `yaml:"height"`
	FPS                int      `yaml:"fps"`
}

func DefaultSettings() *Settings {
	return &Settings{
		MaxFrameProgressMs: DefaultMaxFrameProgressMs,
		Preset:             DefaultPreset,
		DrawSparks:         true,
		Brightness:         DefaultBrightness,
		Width:              DefaultWidth,
		Height:             DefaultHeight,
		FPS:                DefaultFPS,
	}
}

func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrDefault loads path, returning defaults when the file does not exist.
func LoadOrDefault(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	s, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	return s, err
}

func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Lookup resolves a preset by name, user presets first. A malformed user
// preset only fails the lookup of its own name.
func (s *Settings) Lookup(name string) (Preset, error) {
	for _, text := range s.Presets {
		p, err := ParsePreset(text)
		if err != nil {
			if entry, _, _ := strings.Cut(text, ":"); strings.TrimSpace(entry) == name {
				return Preset{}, err
			}
			continue
		}
		if p.Name == name {
			return p, nil
		}
	}
	return GetPreset(name)
}

// Current resolves the configured preset.
func (s *Settings) Current() (Preset, error) {
	name := s.Preset
	if name == "" {
		name = DefaultPreset
	}
	return s.Lookup(name)
}

// PresetNames lists built-in and user preset names without duplicates.
func (s *Settings) PresetNames() []string {
	names := ListPresets()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, text := range s.Presets {
		if p, err := ParsePreset(text); err == nil && !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}
