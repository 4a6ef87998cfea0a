package oscillator

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	osc := New(8)
	osc.SetFrequency(2) // four samples per cycle

	want := []float32{0, 1, 0, -1, 0}
	for i, w := range want {
		if got := osc.Sine(); math.Abs(float64(got-w)) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, got, w)
		}
	}
}

func TestSawAndReset(t *testing.T) {
	osc := New(4)
	osc.SetFrequency(1)
	if osc.Frequency() != 1 {
		t.Fatalf("Frequency() = %f", osc.Frequency())
	}

	buf := make([]float32, 4)
	osc.ProcessSaw(buf, 1)
	want := []float32{-1, -0.5, 0, 0.5}
	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %f, want %f", i, buf[i], want[i])
		}
	}

	osc.ProcessSaw(buf[:1], 1)
	osc.Reset()
	if got := osc.Saw(); got != -1 {
		t.Errorf("after Reset, Saw() = %f, want -1", got)
	}
}

func TestProcessSineLevel(t *testing.T) {
	osc := New(48000)
	buf := make([]float32, 480)
	osc.ProcessSine(buf, 0.25)
	for i, s := range buf {
		if s > 0.25 || s < -0.25 {
			t.Fatalf("buf[%d] = %f exceeds level", i, s)
		}
	}
}
