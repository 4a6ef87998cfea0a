// Package control maps external controllers onto plugin parameters.
//
// Everything here runs on the control path; parameter writes are atomic and
// picked up by the audio thread on its next block.
package control

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/param"
)

// AnyChannel matches a controller on every MIDI channel
const AnyChannel = -1

// Binding routes one MIDI continuous controller to a parameter
type Binding struct {
	Channel    int // 0-15, or AnyChannel
	Controller uint8
	Key        string
}

// Mapper applies MIDI control changes to parameters
type Mapper struct {
	params *param.Registry
	log    *debug.Logger

	mu       sync.RWMutex
	bindings []Binding
}

// NewMapper creates a mapper with no bindings
func NewMapper(params *param.Registry, log *debug.Logger) *Mapper {
	if log == nil {
		log = debug.Default()
	}
	return &Mapper{params: params, log: log.Named("midi")}
}

// Bind routes controller on channel to the parameter key
func (m *Mapper) Bind(b Binding) error {
	if m.params.Get(b.Key) == nil {
		return fmt.Errorf("bind CC %d: %w: %q", b.Controller, param.ErrUnknownParameter, b.Key)
	}
	if b.Controller > 127 {
		return fmt.Errorf("bind CC %d: controller out of range", b.Controller)
	}
	if b.Channel < AnyChannel || b.Channel > 15 {
		return fmt.Errorf("bind CC %d: channel %d out of range", b.Controller, b.Channel)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = append(m.bindings, b)
	return nil
}

// Bindings returns a copy of the current bindings
func (m *Mapper) Bindings() []Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Binding(nil), m.bindings...)
}

// Handle applies msg if it is a bound control change. It reports whether any parameter changed.
func (m *Mapper) Handle(msg midi.Message) (bool, error) {
	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) {
		return false, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	handled := false
	for _, b := range m.bindings {
		if b.Controller != controller || (b.Channel != AnyChannel && b.Channel != int(channel)) {
			continue
		}
		if err := m.apply(b.Key, value); err != nil {
			return handled, err
		}
		handled = true
	}
	return handled, nil
}

// apply scales a 7-bit controller value onto the parameter. Toggles switch at 64.
func (m *Mapper) apply(key string, value uint8) error {
	p := m.params.Get(key)
	if p == nil {
		return fmt.Errorf("%w: %q", param.ErrUnknownParameter, key)
	}
	if p.IsToggle() {
		m.log.Debug("%s <- CC value %d", key, value)
		return m.params.SetBool(key, value >= 64)
	}
	plain := p.Denormalize(float64(value) / 127)
	m.log.Debug("%s <- %.3f", key, plain)
	return m.params.Set(key, plain)
}

// Listen feeds messages from in to the mapper until ctx is done
func (m *Mapper) Listen(ctx context.Context, in drivers.In) error {
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if _, err := m.Handle(msg); err != nil {
			m.log.Warn("dropping %s: %v", msg, err)
		}
	})
	if err != nil {
		return fmt.Errorf("listen on %s: %w", in, err)
	}
	m.log.Info("listening on %s", in)

	<-ctx.Done()
	stop()
	return nil
}
