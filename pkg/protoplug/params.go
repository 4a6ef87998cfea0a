package protoplug

import (
	"fmt"

	"github.com/justyntemme/protoplug/pkg/framework/param"
)

// Parameter keys. These are persisted in state trees and must not change.
const (
	ParamGain         = "gain"
	ParamInvertPhase  = "invertPhase"
	ParamSwapChannels = "swapChannels"
)

// DefaultGain is the gain a fresh instance starts with
const DefaultGain = 0.5

// Layout returns the parameter declarations in host order
func Layout() []*param.Parameter {
	return []*param.Parameter{
		param.New(ParamGain, "Gain").
			Range(0, 1).
			Default(DefaultGain).
			Build(),
		param.New(ParamInvertPhase, "Invert Phase").
			ShortName("Phase").
			Toggle(false).
			Build(),
		param.New(ParamSwapChannels, "Swap L/R Channels").
			ShortName("Swap").
			Toggle(false).
			Build(),
	}
}

// declare registers params, failing on the first duplicate key
func declare(registry *param.Registry, params []*param.Parameter) error {
	for _, p := range params {
		if err := registry.Declare(p); err != nil {
			return fmt.Errorf("declare %s: %w", p.Key, err)
		}
	}
	return nil
}
