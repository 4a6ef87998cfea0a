package stereo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapChannels(t *testing.T) {
	buf := [][]float32{{1, 2}, {3, 4}}
	SwapChannels(buf)
	assert.Equal(t, [][]float32{{3, 4}, {1, 2}}, buf)

	SwapChannels(buf)
	assert.Equal(t, [][]float32{{1, 2}, {3, 4}}, buf, "swapping twice restores the input")
}

func TestSwapUnevenLengths(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{4, 5}
	Swap(left, right)
	assert.Equal(t, []float32{4, 5, 3}, left)
	assert.Equal(t, []float32{1, 2}, right)
}

func TestSwapChannelsMono(t *testing.T) {
	buf := [][]float32{{1, 2}}
	SwapChannels(buf)
	assert.Equal(t, [][]float32{{1, 2}}, buf)
	SwapChannels(nil)
}

func TestSwapChannelsIgnoresExtraChannels(t *testing.T) {
	buf := [][]float32{{1}, {2}, {3}}
	SwapChannels(buf)
	assert.Equal(t, [][]float32{{2}, {1}, {3}}, buf)
}
