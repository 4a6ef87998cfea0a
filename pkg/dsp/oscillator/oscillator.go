// Package oscillator provides audio oscillators for test signals
package oscillator

import "math"

// Oscillator generates periodic waveforms
type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
}

// New creates a new 440 Hz oscillator
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		frequency:  440.0,
		phaseInc:   440.0 / sampleRate,
	}
}

// SetFrequency sets the oscillator frequency
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// Frequency returns the oscillator frequency
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// Reset resets the oscillator phase to 0
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

// updatePhase advances the phase and wraps it
func (o *Oscillator) updatePhase() {
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
}

// Sine generates a sine wave sample
func (o *Oscillator) Sine() float32 {
	sample := float32(math.Sin(2.0 * math.Pi * o.phase))
	o.updatePhase()
	return sample
}

// Saw generates a naive sawtooth wave sample
func (o *Oscillator) Saw() float32 {
	sample := float32(2.0*o.phase - 1.0)
	o.updatePhase()
	return sample
}

// ProcessSine fills buffer with sine samples scaled by level
func (o *Oscillator) ProcessSine(buffer []float32, level float32) {
	for i := range buffer {
		buffer[i] = o.Sine() * level
	}
}

// ProcessSaw fills buffer with sawtooth samples scaled by level
func (o *Oscillator) ProcessSaw(buffer []float32, level float32) {
	for i := range buffer {
		buffer[i] = o.Saw() * level
	}
}
