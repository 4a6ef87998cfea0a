package param

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Add(
		New("gain", "Gain").Range(0, 1).Default(0.5).Build(),
		New("invertPhase", "Invert Phase").Toggle(false).Build(),
		New("swapChannels", "Swap L/R Channels").Toggle(false).Build(),
	))
	return r
}

func TestRegistryDeclare(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{"gain", "invertPhase", "swapChannels"}, r.Keys())

	for i, p := range r.All() {
		assert.Equal(t, uint32(i), p.ID)
		assert.Same(t, p, r.GetByID(uint32(i)))
	}
	assert.Nil(t, r.GetByID(3))
}

func TestRegistryDuplicateKey(t *testing.T) {
	r := newTestRegistry(t)

	err := r.Declare(New("gain", "Gain again").Build())
	require.ErrorIs(t, err, ErrDuplicateParameter)
	assert.Equal(t, 3, r.Count())
	assert.Equal(t, "Gain", r.Get("gain").Name)
}

func TestRegistryEmptyKey(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Declare(New("", "Nameless").Build()))
	assert.Zero(t, r.Count())
}

func TestRegistryDefaults(t *testing.T) {
	r := newTestRegistry(t)

	assert.InDelta(t, 0.5, r.Value("gain"), 1e-12)
	assert.False(t, r.Bool("invertPhase"))
	assert.False(t, r.Bool("swapChannels"))
}

func TestRegistrySetClamps(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 0.8, 0.8},
		{"above max", 1.7, 1},
		{"below min", -0.3, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, r.Set("gain", tt.in))
			assert.InDelta(t, tt.want, r.Value("gain"), 1e-12)
		})
	}
}

func TestRegistrySetUnknown(t *testing.T) {
	r := newTestRegistry(t)
	require.ErrorIs(t, r.Set("volume", 1), ErrUnknownParameter)
	assert.Zero(t, r.Value("volume"))
	assert.False(t, r.Bool("volume"))
}

func TestRegistrySetReadOnly(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Declare(New("meter", "Meter").ReadOnly().Build()))
	require.ErrorIs(t, r.Set("meter", 1), ErrReadOnly)
}

func TestRegistryToggle(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.SetBool("invertPhase", true))
	assert.True(t, r.Bool("invertPhase"))
	assert.Equal(t, 1.0, r.Value("invertPhase"))

	// Toggles snap to their two states.
	require.NoError(t, r.Set("swapChannels", 0.7))
	assert.Equal(t, 1.0, r.Value("swapChannels"))
	require.NoError(t, r.Set("swapChannels", 0.2))
	assert.Equal(t, 0.0, r.Value("swapChannels"))
}

func TestRegistryReset(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Set("gain", 0.1))
	require.NoError(t, r.SetBool("invertPhase", true))

	r.Reset()

	assert.InDelta(t, 0.5, r.Value("gain"), 1e-12)
	assert.False(t, r.Bool("invertPhase"))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := newTestRegistry(t)
	gain := r.Get("gain")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = r.Set("gain", float64(i%2))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			v := gain.GetValue()
			if v != 0 && v != 1 && v != 0.5 {
				t.Errorf("torn read: %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
