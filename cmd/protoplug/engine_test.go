package main

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/protoplug"
)

func newTestEngine(t *testing.T, block int) (*Engine, *protoplug.Processor) {
	t.Helper()
	proc, err := protoplug.NewProcessor(protoplug.DefaultConfig(), debug.New(io.Discard, "", 0))
	require.NoError(t, err)
	require.NoError(t, proc.Initialize(48000, int32(block)))
	require.NoError(t, proc.SetActive(true))
	return NewEngine(proc, 48000, block, 440), proc
}

func TestEngineReadSpansBlocks(t *testing.T) {
	e, _ := newTestEngine(t, 64)

	// Odd sizes straddle block and sample boundaries
	total := 0
	for _, n := range []int{3, 500, 1, 1024, 7} {
		buf := make([]byte, n)
		got, err := e.Read(buf)
		require.NoError(t, err)
		require.Equal(t, n, got)
		total += got
	}
	blocks := (total + 64*bytesPerFrame - 1) / (64 * bytesPerFrame)
	assert.Equal(t, uint64(blocks), e.Profiler().Blocks())
}

func TestEngineAppliesGain(t *testing.T) {
	e, _ := newTestEngine(t, 128)
	buf := make([]byte, 4800*bytesPerFrame)
	_, err := e.Read(buf)
	require.NoError(t, err)

	var peak float32
	for i := 0; i < 4800; i++ {
		s := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame:]))
		peak = max(peak, float32(math.Abs(float64(s))))
	}
	// sine at level 0.5 through the default 0.5 gain
	assert.InDelta(t, 0.25, peak, 1e-3)

	assert.InDelta(t, 0.25, e.Meters().Left.Level(), 1e-2)
}

func TestEngineSwapMovesTheSine(t *testing.T) {
	e, proc := newTestEngine(t, 256)
	require.NoError(t, proc.GetParameters().SetBool(protoplug.ParamSwapChannels, true))

	levels := e.Levels(4800)
	assert.InDelta(t, 0.125, levels[0].Peak, 1e-2, "saw on the left")
	assert.InDelta(t, 0.25, levels[1].Peak, 1e-3, "sine on the right")
	assert.Zero(t, levels[0].NaNCount)
}
