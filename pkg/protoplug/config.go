package protoplug

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("protoplug: invalid config")

// Config holds construction-time options
type Config struct {
	// Ramp fades gain changes across a block instead of stepping them
	Ramp bool

	// GainStep is the editor's nudge increment for the gain slider
	GainStep float64

	// MaxParameterChanges bounds host automation points queued per block
	MaxParameterChanges int
}

// DefaultConfig returns the stock configuration: stepped gain, 0.05 nudges
func DefaultConfig() Config {
	return Config{
		Ramp:                false,
		GainStep:            0.05,
		MaxParameterChanges: 64,
	}
}

// Validate checks option ranges
func (c Config) Validate() error {
	if c.GainStep <= 0 || c.GainStep > 1 {
		return fmt.Errorf("%w: gain step %v outside (0, 1]", ErrInvalidConfig, c.GainStep)
	}
	if c.MaxParameterChanges < 0 {
		return fmt.Errorf("%w: negative parameter change capacity", ErrInvalidConfig)
	}
	return nil
}
