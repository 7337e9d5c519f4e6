package config

import (
	"sort"
	"strings"
)

const DefaultPreset = "Classic"

var Presets = map[string]string{
	"Classic":     "Classic:{5,tiedye,100,1.0}",
	"RGB":         "RGB:{3,red,100,0.8};{3,blue,100,0.8};{3,green,100,0.8}",
	"Water":       "Water:" + strings.Repeat("{1,blue,100.0,2.0};", 8) + "{1,blue,100.0,2.0}",
	"Fire":        "Fire:{12,slowCyclic,10000.0,0.0}",
	"Psychedelic": "Psychedelic:{10,rainbow,200.0,2.0}",
}

func GetPreset(name string) (Preset, error) {
	text, ok := Presets[name]
	if !ok {
		return Preset{}, &PresetError{Text: name, Wrapped: ErrUnknownPreset}
	}
	return ParsePreset(text)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
