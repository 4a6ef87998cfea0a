// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] *= gain
	}
}

// ApplyChannels applies one gain to every channel in-place.
func ApplyChannels(channels [][]float32, gain float32) {
	for _, ch := range channels {
		ApplyBuffer(ch, gain)
	}
}

// Fade applies a linear fade between two gain values.
// The first sample gets startGain and the last gets endGain.
func Fade(buffer []float32, startGain, endGain float32) {
	if len(buffer) == 0 {
		return
	}

	samples := float32(len(buffer) - 1)
	if samples <= 0 {
		buffer[0] *= startGain
		return
	}

	gainDelta := (endGain - startGain) / samples
	for i := range buffer {
		buffer[i] *= startGain + gainDelta*float32(i)
	}
}

// FadeChannels applies the same linear fade to every channel in-place.
func FadeChannels(channels [][]float32, startGain, endGain float32) {
	for _, ch := range channels {
		Fade(ch, startGain, endGain)
	}
}
