package main

import (
	"encoding/binary"
	"math"

	"github.com/justyntemme/protoplug/pkg/dsp/meter"
	"github.com/justyntemme/protoplug/pkg/dsp/oscillator"
	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/process"
	"github.com/justyntemme/protoplug/pkg/protoplug"
)

const bytesPerFrame = 2 * 4 // stereo float32

// Engine renders a stereo test signal through the processor and serves it
// as interleaved little-endian float32 for the audio device.
type Engine struct {
	proc     *protoplug.Processor
	ctx      *process.Context
	left     *oscillator.Oscillator
	right    *oscillator.Oscillator
	level    float32
	in       [][]float32
	out      [][]float32
	block    []byte
	offset   int
	profiler *debug.BlockProfiler
	meters   *meter.Stereo
}

// NewEngine pre-allocates every buffer the render path needs. The left
// channel carries a sine at freq, the right a quieter saw an octave up,
// so a channel swap is audible.
func NewEngine(proc *protoplug.Processor, sampleRate float64, blockSize int, freq float64) *Engine {
	e := &Engine{
		proc:     proc,
		ctx:      proc.NewContext(),
		left:     oscillator.New(sampleRate),
		right:    oscillator.New(sampleRate),
		level:    0.5,
		in:       [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
		out:      [][]float32{make([]float32, blockSize), make([]float32, blockSize)},
		block:    make([]byte, blockSize*bytesPerFrame),
		profiler: debug.NewBlockProfiler(sampleRate, blockSize),
		meters:   meter.NewStereo(sampleRate),
	}
	e.left.SetFrequency(freq)
	e.right.SetFrequency(freq * 2)
	e.ctx.SampleRate = sampleRate
	e.ctx.Input = e.in
	e.ctx.Output = e.out
	e.offset = len(e.block)
	return e
}

// Read implements io.Reader for the audio device. It never blocks.
func (e *Engine) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if e.offset == len(e.block) {
			e.render()
		}
		c := copy(p[n:], e.block[e.offset:])
		e.offset += c
		n += c
	}
	return n, nil
}

// render produces one block into e.block
func (e *Engine) render() {
	e.left.ProcessSine(e.in[0], e.level)
	e.right.ProcessSaw(e.in[1], e.level*0.5)

	start := e.profiler.Start()
	e.proc.ProcessAudio(e.ctx)
	e.profiler.Stop(start)

	e.meters.Process(e.out)
	for i := range e.out[0] {
		for ch := 0; ch < 2; ch++ {
			binary.LittleEndian.PutUint32(e.block[i*bytesPerFrame+ch*4:], math.Float32bits(e.out[ch][i]))
		}
	}
	e.offset = 0
}

// Meters returns the output meters, readable from any goroutine
func (e *Engine) Meters() *meter.Stereo {
	return e.meters
}

// Profiler returns the block timing statistics
func (e *Engine) Profiler() *debug.BlockProfiler {
	return e.profiler
}

// Levels renders frames and reports their levels, for headless runs
func (e *Engine) Levels(frames int) [2]debug.Levels {
	buf := make([]byte, frames*bytesPerFrame)
	_, _ = e.Read(buf)

	ch := [2][]float32{make([]float32, frames), make([]float32, frames)}
	for i := 0; i < frames; i++ {
		ch[0][i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame:]))
		ch[1][i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame+4:]))
	}
	return [2]debug.Levels{debug.Analyze(ch[0]), debug.Analyze(ch[1])}
}
