package plugin

import (
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/protoplug/pkg/framework/bus"
	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/param"
	"github.com/justyntemme/protoplug/pkg/framework/state"
)

// ErrInvalidFormat is returned by Initialize for a sample rate or block size the host cannot mean
var ErrInvalidFormat = errors.New("plugin: invalid processing format")

// Base provides the non-audio half of a processor: metadata, parameters,
// buses and state persistence. Embed it and add ProcessAudio/Process.
type Base struct {
	info   Info
	params *param.Registry
	buses  *bus.Configuration
	state  *state.Manager
	log    *debug.Logger

	sampleRate   float64
	maxBlockSize int32

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
}

// NewBase creates a plugin base with a stereo bus layout. The state tree root is the plugin name.
func NewBase(info Info, log *debug.Logger) *Base {
	if log == nil {
		log = debug.Default()
	}
	params := param.NewRegistry()
	return &Base{
		info:   info,
		params: params,
		buses:  bus.NewStereoConfiguration(),
		state:  state.NewManager(params, info.Name),
		log:    log,
	}
}

// Info returns plugin metadata
func (b *Base) Info() Info {
	return b.info
}

// Logger returns the plugin's logger
func (b *Base) Logger() *debug.Logger {
	return b.log
}

// GetParameters implements the Processor interface
func (b *Base) GetParameters() *param.Registry {
	return b.params
}

// GetBuses implements the Processor interface
func (b *Base) GetBuses() *bus.Configuration {
	return b.buses
}

// Initialize implements the Processor interface
func (b *Base) Initialize(sampleRate float64, maxBlockSize int32) error {
	if sampleRate <= 0 || maxBlockSize <= 0 {
		return fmt.Errorf("%w: %.0f Hz, %d frames", ErrInvalidFormat, sampleRate, maxBlockSize)
	}
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// SetActive implements the Processor interface
func (b *Base) SetActive(active bool) error {
	if b.onSetActive != nil {
		return b.onSetActive(active)
	}
	return nil
}

// OnInitialize sets a callback for initialization
func (b *Base) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *Base) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// SampleRate returns the current sample rate
func (b *Base) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the largest block the host promised to deliver
func (b *Base) MaxBlockSize() int32 {
	return b.maxBlockSize
}

// GetLatencySamples implements the Processor interface - default no latency
func (b *Base) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples implements the Processor interface - default no tail
func (b *Base) GetTailSamples() int32 {
	return 0
}

// Snapshot captures every parameter value
func (b *Base) Snapshot() *state.Tree {
	return b.state.Snapshot()
}

// Restore applies a state tree. A rejected tree is logged and leaves values unchanged.
func (b *Base) Restore(tree *state.Tree) error {
	if err := b.state.Restore(tree); err != nil {
		b.log.Warn("state restore rejected: %v", err)
		return err
	}
	b.log.Debug("state restored")
	return nil
}

// GetState writes the host state blob
func (b *Base) GetState(w io.Writer) error {
	if err := b.state.Save(w); err != nil {
		b.log.Error("state save failed: %v", err)
		return err
	}
	return nil
}

// SetState reads a host state blob. A rejected blob is logged and leaves values unchanged.
func (b *Base) SetState(r io.Reader) error {
	tree, err := b.state.Decode(r)
	if err != nil {
		b.log.Warn("state load rejected: %v", err)
		return err
	}
	return b.Restore(tree)
}
