package debug

import (
	"fmt"
	"math"
)

// Levels summarizes one channel of an audio buffer.
type Levels struct {
	Peak     float32
	RMS      float32
	NaNCount int
	Clipping bool
}

// Analyze measures peak, RMS and bad samples of a buffer.
func Analyze(buffer []float32) Levels {
	var result Levels
	if len(buffer) == 0 {
		return result
	}

	var sumSquares float64
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) || math.IsInf(float64(sample), 0) {
			result.NaNCount++
			continue
		}
		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= 1 {
			result.Clipping = true
		}
		sumSquares += float64(sample) * float64(sample)
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(len(buffer))))
	return result
}

// String renders the levels in dBFS.
func (l Levels) String() string {
	s := fmt.Sprintf("peak %s rms %s", dbfs(l.Peak), dbfs(l.RMS))
	if l.Clipping {
		s += " CLIP"
	}
	if l.NaNCount > 0 {
		s += fmt.Sprintf(" NaN×%d", l.NaNCount)
	}
	return s
}

func dbfs(v float32) string {
	if v <= 0 {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", 20*math.Log10(float64(v)))
}
