package param

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateParameter is returned when a key is declared twice.
	ErrDuplicateParameter = errors.New("param: duplicate parameter")
	// ErrUnknownParameter is returned for a key that was never declared.
	ErrUnknownParameter = errors.New("param: unknown parameter")
	// ErrReadOnly is returned when writing a read-only parameter.
	ErrReadOnly = errors.New("param: parameter is read-only")
)

// Registry manages plugin parameters.
//
// The mutex only guards the key index. Parameter values are atomic, so the
// audio thread should resolve *Parameter handles once at setup and read
// them directly instead of calling Get per block.
type Registry struct {
	params map[string]*Parameter
	order  []*Parameter // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[string]*Parameter),
	}
}

// Declare registers a parameter and assigns its ID from the declaration order
func (r *Registry) Declare(p *Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Key == "" {
		return fmt.Errorf("%w: empty key", ErrUnknownParameter)
	}
	if _, exists := r.params[p.Key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateParameter, p.Key)
	}

	p.ID = uint32(len(r.order))
	r.params[p.Key] = p
	r.order = append(r.order, p)
	return nil
}

// Add declares several parameters, stopping at the first failure
func (r *Registry) Add(params ...*Parameter) error {
	for _, p := range params {
		if err := r.Declare(p); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a parameter by key
func (r *Registry) Get(key string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[key]
}

// GetByID retrieves a parameter by its numeric ID
func (r *Registry) GetByID(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id >= uint32(len(r.order)) {
		return nil
	}
	return r.order[id]
}

// Value returns the plain value of a parameter, or 0 if it is unknown
func (r *Registry) Value(key string) float64 {
	if p := r.Get(key); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// Bool returns the state of a toggle parameter
func (r *Registry) Bool(key string) bool {
	if p := r.Get(key); p != nil {
		return p.Bool()
	}
	return false
}

// Set updates a parameter from its plain value, clamped to the declared range
func (r *Registry) Set(key string, plain float64) error {
	p := r.Get(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if p.Flags&IsReadOnly != 0 {
		return fmt.Errorf("%w: %q", ErrReadOnly, key)
	}
	p.SetPlainValue(plain)
	return nil
}

// SetBool updates a toggle parameter
func (r *Registry) SetBool(key string, on bool) error {
	v := 0.0
	if on {
		v = 1
	}
	return r.Set(key, v)
}

// Reset restores every parameter to its default
func (r *Registry) Reset() {
	for _, p := range r.All() {
		p.Reset()
	}
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Keys returns parameter keys in declaration order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	for i, p := range r.order {
		keys[i] = p.Key
	}
	return keys
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	copy(result, r.order)
	return result
}
