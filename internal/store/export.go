package store

import (
	"encoding/json"
	"io"
	"os"
)

// Report is the outcome of one headless benchmark run.
type Report struct {
	Preset       string             `json:"preset"`
	Definition   string             `json:"definition"`
	Clusters     int                `json:"clusters"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Step         float64            `json:"step"`
	Frames       int                `json:"frames"`
	Seconds      float64            `json:"seconds"`
	FramesPerSec float64            `json:"frames_per_sec"`
	Costs        []float64          `json:"costs_ms"`
	Puffs        []int              `json:"puffs"`
	Metrics      map[string]float64 `json:"metrics"`
}

func Encode(w io.Writer, reports []Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

// ExportJSON writes reports to path, or to stdout when path is "-".
func ExportJSON(path string, reports []Report) error {
	if path == "-" {
		return Encode(os.Stdout, reports)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Encode(file, reports)
}

func LoadJSON(path string) ([]Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reports []Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
