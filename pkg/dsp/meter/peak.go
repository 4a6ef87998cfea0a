// Package meter provides level meters that are written from the audio
// thread and read from a UI thread without locking.
package meter

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/protoplug/pkg/dsp/gain"
)

// Default ballistics
const (
	DefaultDecayDB  = 20.0 // dB per second
	DefaultHoldTime = 1.5  // seconds
)

// Peak is a single-channel peak meter with exponential decay and hold.
// Process must only be called from one goroutine; the getters are safe
// from any goroutine.
type Peak struct {
	sampleRate float64
	decayRate  float64 // dB per second
	holdTime   float64

	// audio-thread state
	level     float64
	holdLevel float64
	holdLeft  int

	peakBits atomic.Uint64
	holdBits atomic.Uint64
}

// NewPeak creates a meter with the default ballistics
func NewPeak(sampleRate float64) *Peak {
	return &Peak{
		sampleRate: sampleRate,
		decayRate:  DefaultDecayDB,
		holdTime:   DefaultHoldTime,
	}
}

// SetDecayRate sets the fall rate in dB per second
func (m *Peak) SetDecayRate(dbPerSecond float64) {
	m.decayRate = dbPerSecond
}

// SetHoldTime sets how long a new maximum is held, in seconds
func (m *Peak) SetHoldTime(seconds float64) {
	m.holdTime = seconds
}

// Process updates the meter with one block
func (m *Peak) Process(samples []float32) {
	var blockPeak float64
	for _, s := range samples {
		a := math.Abs(float64(s))
		if a > blockPeak {
			blockPeak = a
		}
	}

	// dB/s to a per-block linear factor
	decay := m.decayRate / 20 * math.Ln10 / m.sampleRate
	m.level *= math.Exp(-decay * float64(len(samples)))
	if blockPeak > m.level {
		m.level = blockPeak
	}

	if blockPeak > m.holdLevel {
		m.holdLevel = blockPeak
		m.holdLeft = int(m.holdTime * m.sampleRate)
	} else {
		m.holdLeft -= len(samples)
		if m.holdLeft <= 0 {
			m.holdLevel = m.level
			m.holdLeft = 0
		}
	}

	m.peakBits.Store(math.Float64bits(m.level))
	m.holdBits.Store(math.Float64bits(m.holdLevel))
}

// Level returns the decaying peak, linear
func (m *Peak) Level() float64 {
	return math.Float64frombits(m.peakBits.Load())
}

// LevelDB returns the decaying peak in decibels
func (m *Peak) LevelDB() float64 {
	return gain.LinearToDb(m.Level())
}

// Hold returns the held maximum, linear
func (m *Peak) Hold() float64 {
	return math.Float64frombits(m.holdBits.Load())
}

// Reset clears the meter. Call it from the goroutine that calls Process.
func (m *Peak) Reset() {
	m.level, m.holdLevel, m.holdLeft = 0, 0, 0
	m.peakBits.Store(0)
	m.holdBits.Store(0)
}

// Stereo pairs two peak meters
type Stereo struct {
	Left, Right *Peak
}

// NewStereo creates a stereo meter
func NewStereo(sampleRate float64) *Stereo {
	return &Stereo{Left: NewPeak(sampleRate), Right: NewPeak(sampleRate)}
}

// Process updates both meters from a channel-major buffer. Extra channels
// are ignored; a mono buffer feeds both sides.
func (s *Stereo) Process(buffer [][]float32) {
	switch len(buffer) {
	case 0:
		return
	case 1:
		s.Left.Process(buffer[0])
		s.Right.Process(buffer[0])
	default:
		s.Left.Process(buffer[0])
		s.Right.Process(buffer[1])
	}
}
