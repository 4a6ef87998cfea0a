// Package bus provides audio bus configuration and layout validation.
package bus

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLayout is returned when a requested channel layout cannot be served.
var ErrUnsupportedLayout = errors.New("bus: unsupported channel layout")

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Info contains bus configuration
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	IsActive     bool
}

// Configuration manages the main audio buses
type Configuration struct {
	audioBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return &Configuration{
		audioBuses: []Info{
			{Direction: DirectionInput, ChannelCount: 2, Name: "Input", IsActive: true},
			{Direction: DirectionOutput, ChannelCount: 2, Name: "Output", IsActive: true},
		},
	}
}

// GetBusCount returns the number of buses in a direction
func (c *Configuration) GetBusCount(direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(direction Direction, index int32) *Info {
	busIndex := int32(0)
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			if busIndex == index {
				return &c.audioBuses[i]
			}
			busIndex++
		}
	}
	return nil
}

// ChannelCount returns the channel count of the main bus in a direction
func (c *Configuration) ChannelCount(direction Direction) int {
	if info := c.GetBusInfo(direction, 0); info != nil {
		return int(info.ChannelCount)
	}
	return 0
}

// Supports reports whether a host layout can be accepted: mono or stereo,
// with matching input and output.
func Supports(inputs, outputs int) bool {
	if outputs != 1 && outputs != 2 {
		return false
	}
	return inputs == outputs
}

// Validate checks a requested layout against the configuration's main buses
func (c *Configuration) Validate(inputs, outputs int) error {
	if !Supports(inputs, outputs) {
		return fmt.Errorf("%w: %d in / %d out", ErrUnsupportedLayout, inputs, outputs)
	}
	if inputs != c.ChannelCount(DirectionInput) || outputs != c.ChannelCount(DirectionOutput) {
		return fmt.Errorf("%w: %d in / %d out, configured for %d / %d", ErrUnsupportedLayout,
			inputs, outputs, c.ChannelCount(DirectionInput), c.ChannelCount(DirectionOutput))
	}
	return nil
}
