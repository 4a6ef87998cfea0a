// Package process provides the per-block audio processing context.
package process

import (
	"github.com/justyntemme/protoplug/pkg/framework/param"
)

// ParameterChange is a host automation point delivered with a block
type ParameterChange struct {
	ParamID      uint32
	Value        float64 // Normalized
	SampleOffset int
}

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Parameter handles resolved once so the audio path never touches the registry index
	params  []*param.Parameter
	changes []ParameterChange
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(params *param.Registry, maxChanges int) *Context {
	return &Context{
		params:  params.All(),
		changes: make([]ParameterChange, 0, maxChanges),
	}
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if int(id) < len(c.params) {
		return c.params[id].GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if int(id) < len(c.params) {
		return c.params[id].GetPlainValue()
	}
	return 0
}

// AddParameterChange queues an automation point for this block.
// Changes past the pre-allocated capacity are dropped.
func (c *Context) AddParameterChange(id uint32, normalized float64, offset int) bool {
	if len(c.changes) == cap(c.changes) {
		return false
	}
	c.changes = append(c.changes, ParameterChange{ParamID: id, Value: normalized, SampleOffset: offset})
	return true
}

// GetParameterChanges returns the queued automation points
func (c *Context) GetParameterChanges() []ParameterChange {
	return c.changes
}

// ApplyParameterChanges writes queued automation to the parameters and clears the queue.
// Points are applied at block start; sample offsets are not honored.
func (c *Context) ApplyParameterChanges() {
	for _, ch := range c.changes {
		if int(ch.ParamID) < len(c.params) {
			c.params[ch.ParamID].SetValue(ch.Value)
		}
	}
	c.changes = c.changes[:0]
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// InPlace reports whether input and output share storage
func (c *Context) InPlace() bool {
	if len(c.Input) == 0 || len(c.Output) == 0 {
		return false
	}
	for ch := 0; ch < len(c.Input) && ch < len(c.Output); ch++ {
		if len(c.Input[ch]) == 0 || len(c.Output[ch]) == 0 || &c.Input[ch][0] != &c.Output[ch][0] {
			return false
		}
	}
	return true
}

// PassThrough copies input to output unless they already share storage
func (c *Context) PassThrough() {
	if c.InPlace() {
		return
	}
	numChannels := c.NumInputChannels()
	if c.NumOutputChannels() < numChannels {
		numChannels = c.NumOutputChannels()
	}

	for ch := 0; ch < numChannels; ch++ {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}
