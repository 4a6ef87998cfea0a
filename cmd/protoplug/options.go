package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/justyntemme/protoplug/pkg/framework/control"
	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/protoplug"
)

// noCC disables a controller binding
const noCC = -1

type options struct {
	Config     protoplug.Config
	SampleRate float64
	BlockSize  int
	Latency    time.Duration
	Frequency  float64
	StatePath  string
	MIDIPort   string
	CCGain     int
	CCInvert   int
	CCSwap     int
	LogLevel   debug.LogLevel
	Headless   bool
	Seconds    float64
}

func parseOptions(args []string) (*options, error) {
	opts := &options{Config: protoplug.DefaultConfig()}
	fs := flag.NewFlagSet("protoplug", flag.ContinueOnError)

	fs.Float64Var(&opts.SampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&opts.BlockSize, "block", 256, "frames per processing block")
	fs.DurationVar(&opts.Latency, "latency", 40*time.Millisecond, "audio device buffer")
	fs.Float64Var(&opts.Frequency, "freq", 220, "test tone frequency in Hz")
	fs.StringVar(&opts.StatePath, "state", "", "state file, loaded on start and saved on exit")
	fs.BoolVar(&opts.Config.Ramp, "ramp", opts.Config.Ramp, "ramp gain changes across a block")
	fs.Float64Var(&opts.Config.GainStep, "step", opts.Config.GainStep, "editor gain step")
	fs.StringVar(&opts.MIDIPort, "midi", "", "MIDI input port name")
	fs.IntVar(&opts.CCGain, "cc-gain", 7, "CC number for gain, -1 to disable")
	fs.IntVar(&opts.CCInvert, "cc-invert", 80, "CC number for phase invert, -1 to disable")
	fs.IntVar(&opts.CCSwap, "cc-swap", 81, "CC number for channel swap, -1 to disable")
	level := fs.String("log-level", "info", "debug, info, warn, error or off")
	fs.BoolVar(&opts.Headless, "headless", false, "render without an audio device")
	fs.Float64Var(&opts.Seconds, "seconds", 0, "run time; headless defaults to 1")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if opts.LogLevel, err = debug.ParseLevel(*level); err != nil {
		return nil, err
	}
	if opts.SampleRate <= 0 || opts.BlockSize <= 0 {
		return nil, fmt.Errorf("invalid rate %v or block %d", opts.SampleRate, opts.BlockSize)
	}
	if opts.Frequency <= 0 || opts.Frequency >= opts.SampleRate/2 {
		return nil, fmt.Errorf("frequency %v outside (0, %v)", opts.Frequency, opts.SampleRate/2)
	}
	for _, cc := range []int{opts.CCGain, opts.CCInvert, opts.CCSwap} {
		if cc < noCC || cc > 127 {
			return nil, fmt.Errorf("CC number %d out of range", cc)
		}
	}
	if opts.Seconds < 0 {
		return nil, fmt.Errorf("negative run time %v", opts.Seconds)
	}
	if opts.Headless && opts.Seconds == 0 {
		opts.Seconds = 1
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// bindings returns the enabled CC routes on every channel
func (o *options) bindings() []control.Binding {
	var out []control.Binding
	add := func(cc int, key string) {
		if cc != noCC {
			out = append(out, control.Binding{Channel: control.AnyChannel, Controller: uint8(cc), Key: key})
		}
	}
	add(o.CCGain, protoplug.ParamGain)
	add(o.CCInvert, protoplug.ParamInvertPhase)
	add(o.CCSwap, protoplug.ParamSwapChannels)
	return out
}
