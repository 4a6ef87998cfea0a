package plugin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/param"
	"github.com/justyntemme/protoplug/pkg/framework/state"
)

func newTestBase(t *testing.T) (*Base, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	b := NewBase(Info{ID: "com.test.base", Name: "TestBase"}, debug.New(&logs, "test", debug.FlagLevel))
	require.NoError(t, b.GetParameters().Declare(param.New("gain", "Gain").Default(0.5).Build()))
	return b, &logs
}

func TestBaseDefaults(t *testing.T) {
	b, _ := newTestBase(t)

	assert.Equal(t, "TestBase", b.Info().Name)
	assert.Equal(t, int32(0), b.GetLatencySamples())
	assert.Equal(t, int32(0), b.GetTailSamples())
	assert.Equal(t, 2, b.GetBuses().ChannelCount(0))
	assert.NotNil(t, b.Logger())
	assert.Equal(t, "TestBase", b.Snapshot().XMLName.Local)
}

func TestBaseInitialize(t *testing.T) {
	b, _ := newTestBase(t)

	var gotRate float64
	b.OnInitialize(func(sampleRate float64, maxBlockSize int32) error {
		gotRate = sampleRate
		return nil
	})

	require.NoError(t, b.Initialize(48000, 256))
	assert.Equal(t, 48000.0, gotRate)
	assert.Equal(t, 48000.0, b.SampleRate())
	assert.Equal(t, int32(256), b.MaxBlockSize())

	require.ErrorIs(t, b.Initialize(0, 256), ErrInvalidFormat)
	require.ErrorIs(t, b.Initialize(44100, 0), ErrInvalidFormat)
}

func TestBaseSetActive(t *testing.T) {
	b, _ := newTestBase(t)
	require.NoError(t, b.SetActive(true))

	boom := errors.New("boom")
	b.OnSetActive(func(bool) error { return boom })
	require.ErrorIs(t, b.SetActive(true), boom)
}

func TestBaseStateRoundTrip(t *testing.T) {
	b, _ := newTestBase(t)
	require.NoError(t, b.GetParameters().Set("gain", 0.8))

	var blob bytes.Buffer
	require.NoError(t, b.GetState(&blob))

	require.NoError(t, b.GetParameters().Set("gain", 0.1))
	require.NoError(t, b.SetState(&blob))
	assert.InDelta(t, 0.8, b.GetParameters().Value("gain"), 1e-12)
}

func TestBaseRejectedStateIsLogged(t *testing.T) {
	b, logs := newTestBase(t)

	err := b.SetState(strings.NewReader("garbage"))
	require.ErrorIs(t, err, state.ErrMalformedState)
	assert.Contains(t, logs.String(), "[WARN]")

	logs.Reset()
	tree := b.Snapshot()
	tree.XMLName.Local = "Other"
	require.ErrorIs(t, b.Restore(tree), state.ErrForeignState)
	assert.Contains(t, logs.String(), "state restore rejected")
	assert.InDelta(t, 0.5, b.GetParameters().Value("gain"), 1e-12)
}
