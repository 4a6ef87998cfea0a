// Package plugin defines the narrow boundary between a plugin core and its host.
package plugin

import (
	"io"

	"github.com/justyntemme/protoplug/pkg/framework/bus"
	"github.com/justyntemme/protoplug/pkg/framework/param"
	"github.com/justyntemme/protoplug/pkg/framework/process"
	"github.com/justyntemme/protoplug/pkg/framework/state"
)

// AudioProcessor transforms one block in place - zero allocations allowed!
type AudioProcessor interface {
	Process(buffer [][]float32)
}

// StateStore persists and restores parameter state. Never called from the audio thread.
type StateStore interface {
	Snapshot() *state.Tree
	Restore(tree *state.Tree) error
	GetState(w io.Writer) error
	SetState(r io.Reader) error
}

// Processor is what a host drives through the plugin lifecycle
type Processor interface {
	AudioProcessor
	StateStore

	// Info returns plugin metadata
	Info() Info

	// Initialize is called before processing with the negotiated format
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}
