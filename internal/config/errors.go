package config

import (
	"errors"
	"fmt"
)

var (
	// ErrBadPreset indicates a preset string that does not follow
	// Name:{streams,color,thickness,speed};{...}.
	ErrBadPreset = errors.New("config: malformed preset")

	// ErrUnknownPreset indicates a preset name with no definition.
	ErrUnknownPreset = errors.New("config: unknown preset")

	// ErrInvalidSpec indicates cluster values outside the supported range.
	ErrInvalidSpec = errors.New("config: cluster spec out of range")
)

// PresetError wraps a preset failure with the offending text.
type PresetError struct {
	Text    string
	Wrapped error
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("%v: %q", e.Wrapped, e.Text)
}

func (e *PresetError) Unwrap() error {
	return e.Wrapped
}
