// Package protoplug implements a stereo gain, phase-invert and channel-swap
// effect: its parameter layout, audio transform, processor and editor.
package protoplug

import (
	"fmt"

	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/param"
	"github.com/justyntemme/protoplug/pkg/framework/plugin"
	"github.com/justyntemme/protoplug/pkg/framework/process"
)

// Info describes the plugin to hosts
var Info = plugin.Info{
	ID:       "com.protoplug.gainswap",
	Name:     "ProtoPlug",
	Version:  "1.0.0",
	Vendor:   "ProtoPlug",
	Category: "Fx",
}

var _ plugin.Processor = (*Processor)(nil)

// Processor hosts the parameter store and the transform
type Processor struct {
	*plugin.Base
	cfg Config

	// Raw parameter slots read once per block by the audio thread
	gain         *param.Parameter
	invertPhase  *param.Parameter
	swapChannels *param.Parameter

	transform *Transform
}

// NewProcessor declares the parameter layout. A duplicate declaration or an
// invalid config is a configuration error and the plugin must not load.
func NewProcessor(cfg Config, log *debug.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = debug.Default()
	}

	p := &Processor{
		Base:      plugin.NewBase(Info, log.Named("processor")),
		cfg:       cfg,
		transform: NewTransform(cfg.Ramp),
	}

	params := p.GetParameters()
	if err := declare(params, Layout()); err != nil {
		return nil, err
	}
	p.gain = params.Get(ParamGain)
	p.invertPhase = params.Get(ParamInvertPhase)
	p.swapChannels = params.Get(ParamSwapChannels)

	p.OnSetActive(func(active bool) error {
		if active {
			p.prepare()
		}
		return nil
	})

	return p, nil
}

// Config returns the construction options
func (p *Processor) Config() Config {
	return p.cfg
}

// SetBusLayout accepts or rejects the host's channel layout
func (p *Processor) SetBusLayout(inputs, outputs int) error {
	if err := p.GetBuses().Validate(inputs, outputs); err != nil {
		p.Logger().Error("rejecting bus layout: %v", err)
		return err
	}
	return nil
}

// prepare seeds the transform from the current parameters before playback
func (p *Processor) prepare() {
	snap := p.Params()
	p.transform.Prepare(snap.Gain, snap.InvertPhase)
	p.Logger().Debug("prepared at %.0f Hz, gain %.3f", p.SampleRate(), p.transform.PreviousGain())
}

// Params reads the current parameter snapshot. Lock-free.
func (p *Processor) Params() Params {
	return Params{
		Gain:         float32(p.gain.GetPlainValue()),
		InvertPhase:  p.invertPhase.Bool(),
		SwapChannels: p.swapChannels.Bool(),
	}
}

// Transform exposes the audio transform state
func (p *Processor) Transform() *Transform {
	return p.transform
}

// NewContext builds a process context bound to this processor's parameters
func (p *Processor) NewContext() *process.Context {
	return process.NewContext(p.GetParameters(), p.cfg.MaxParameterChanges)
}

// Process transforms a stereo block in place
func (p *Processor) Process(buffer [][]float32) {
	p.transform.Process(buffer, p.Params())
}

// ProcessAudio applies queued automation, then transforms the output buffers
func (p *Processor) ProcessAudio(ctx *process.Context) {
	ctx.ApplyParameterChanges()
	ctx.PassThrough()
	p.Process(ctx.Output)
}

// String describes the current parameter values
func (p *Processor) String() string {
	snap := p.Params()
	return fmt.Sprintf("gain=%.2f invertPhase=%t swapChannels=%t", snap.Gain, snap.InvertPhase, snap.SwapChannels)
}
