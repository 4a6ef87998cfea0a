// Package stereo provides in-place operations on channel pairs.
package stereo

// Swap exchanges left and right sample-for-sample over their common length.
func Swap(left, right []float32) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		left[i], right[i] = right[i], left[i]
	}
}

// SwapChannels exchanges channel 0 and channel 1 of a buffer in place.
// Buffers with fewer than two channels are left alone.
func SwapChannels(buffer [][]float32) {
	if len(buffer) < 2 {
		return
	}
	Swap(buffer[0], buffer[1])
}
