package protoplug

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/protoplug/pkg/framework/bus"
	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/framework/param"
	"github.com/justyntemme/protoplug/pkg/framework/state"
)

// ProcessorSuite drives the processor the way a host would.
type ProcessorSuite struct {
	suite.Suite
	logs bytes.Buffer
	p    *Processor
}

func (s *ProcessorSuite) SetupTest() {
	s.logs.Reset()
	log := debug.New(&s.logs, "test", debug.FlagLevel|debug.FlagPrefix)
	p, err := NewProcessor(DefaultConfig(), log)
	require.NoError(s.T(), err)
	require.NoError(s.T(), p.Initialize(48000, 256))
	s.p = p
}

func (s *ProcessorSuite) values() map[string]float64 {
	out := make(map[string]float64)
	params := s.p.GetParameters()
	for _, k := range params.Keys() {
		out[k] = params.Value(k)
	}
	return out
}

// TestDeclarations checks keys, defaults and ranges.
func (s *ProcessorSuite) TestDeclarations() {
	params := s.p.GetParameters()
	require.Equal(s.T(), []string{ParamGain, ParamInvertPhase, ParamSwapChannels}, params.Keys())

	g := params.Get(ParamGain)
	require.Equal(s.T(), 0.0, g.Min)
	require.Equal(s.T(), 1.0, g.Max)
	require.Equal(s.T(), DefaultGain, g.GetPlainValue())
	require.True(s.T(), params.Get(ParamInvertPhase).IsToggle())
	require.False(s.T(), params.Bool(ParamInvertPhase))
	require.False(s.T(), params.Bool(ParamSwapChannels))

	require.Equal(s.T(), "ProtoPlug", s.p.Info().Name)
	require.Equal(s.T(), "gain=0.50 invertPhase=false swapChannels=false", s.p.String())
}

// TestProcessHalfGain is the basic scenario: 0.5 gain on [1, -1].
func (s *ProcessorSuite) TestProcessHalfGain() {
	require.NoError(s.T(), s.p.SetActive(true))
	buf := [][]float32{{1, -1}, {0, 0}}
	s.p.Process(buf)
	require.Equal(s.T(), []float32{0.5, -0.5}, buf[0])
}

// TestSetActiveSeedsPreviousGain checks activation mirrors current parameters.
func (s *ProcessorSuite) TestSetActiveSeedsPreviousGain() {
	params := s.p.GetParameters()
	require.NoError(s.T(), params.Set(ParamGain, 0.8))
	require.NoError(s.T(), params.SetBool(ParamInvertPhase, true))
	require.NoError(s.T(), s.p.SetActive(true))
	require.Equal(s.T(), float32(-0.8), s.p.Transform().PreviousGain())

	// Unchanged since activation: the unsigned magnitude is applied.
	buf := [][]float32{{1}, {-1}}
	s.p.Process(buf)
	require.Equal(s.T(), [][]float32{{0.8}, {-0.8}}, buf)

	require.NoError(s.T(), s.p.SetActive(false))
}

// TestProcessAudioContext checks automation, pass-through and swap via the context.
func (s *ProcessorSuite) TestProcessAudioContext() {
	require.NoError(s.T(), s.p.SetActive(true))
	ctx := s.p.NewContext()
	ctx.Input = [][]float32{{1, 2}, {3, 4}}
	ctx.Output = [][]float32{make([]float32, 2), make([]float32, 2)}

	swap := s.p.GetParameters().Get(ParamSwapChannels)
	gainParam := s.p.GetParameters().Get(ParamGain)
	require.True(s.T(), ctx.AddParameterChange(swap.ID, 1, 0))
	require.True(s.T(), ctx.AddParameterChange(gainParam.ID, 1, 0))

	s.p.ProcessAudio(ctx)

	require.Equal(s.T(), [][]float32{{3, 4}, {1, 2}}, ctx.Output)
	require.Equal(s.T(), [][]float32{{1, 2}, {3, 4}}, ctx.Input, "input is not modified")
	require.Empty(s.T(), ctx.GetParameterChanges())
	require.True(s.T(), s.p.GetParameters().Bool(ParamSwapChannels))
}

// TestProcessAudioInPlace checks a host passing the same buffers for input and output.
func (s *ProcessorSuite) TestProcessAudioInPlace() {
	ctx := s.p.NewContext()
	buf := [][]float32{{1, 1}, {1, 1}}
	ctx.Input, ctx.Output = buf, buf

	s.p.ProcessAudio(ctx)
	require.Equal(s.T(), [][]float32{{0.5, 0.5}, {0.5, 0.5}}, buf)
}

// TestBusLayout checks stereo is accepted and everything else is a configuration error.
func (s *ProcessorSuite) TestBusLayout() {
	require.NoError(s.T(), s.p.SetBusLayout(2, 2))
	require.ErrorIs(s.T(), s.p.SetBusLayout(1, 1), bus.ErrUnsupportedLayout)
	require.ErrorIs(s.T(), s.p.SetBusLayout(2, 6), bus.ErrUnsupportedLayout)
	require.Contains(s.T(), s.logs.String(), "[ERROR]")
}

// TestSnapshotRestoreIsNoOp covers restore(snapshot()).
func (s *ProcessorSuite) TestSnapshotRestoreIsNoOp() {
	params := s.p.GetParameters()
	require.NoError(s.T(), params.Set(ParamGain, 0.33))
	require.NoError(s.T(), params.SetBool(ParamSwapChannels, true))
	before := s.values()

	require.NoError(s.T(), s.p.Restore(s.p.Snapshot()))
	require.Equal(s.T(), before, s.values())
}

// TestRestoreGarbage covers malformed and foreign trees.
func (s *ProcessorSuite) TestRestoreGarbage() {
	require.NoError(s.T(), s.p.GetParameters().Set(ParamGain, 0.9))
	before := s.values()

	garbage := []*state.Tree{
		nil,
		{XMLName: xml.Name{Local: "APVTS"}, Params: []state.Entry{{ID: ParamGain, Value: "0.1"}}},
		{XMLName: xml.Name{Local: "ProtoPlug"}, Params: []state.Entry{
			{ID: ParamGain, Value: "0.1"},
			{ID: ParamInvertPhase, Value: "sideways"},
		}},
	}
	for _, tree := range garbage {
		err := s.p.Restore(tree)
		require.Error(s.T(), err)
		require.Equal(s.T(), before, s.values())
	}
	require.Contains(s.T(), s.logs.String(), "[WARN] [test/processor] state restore rejected")
}

// TestStateBlob covers the host save/load path.
func (s *ProcessorSuite) TestStateBlob() {
	params := s.p.GetParameters()
	require.NoError(s.T(), params.Set(ParamGain, 0.2))
	require.NoError(s.T(), params.SetBool(ParamInvertPhase, true))
	want := s.values()

	var blob bytes.Buffer
	require.NoError(s.T(), s.p.GetState(&blob))

	other, err := NewProcessor(DefaultConfig(), debug.New(io.Discard, "", 0))
	require.NoError(s.T(), err)
	require.NoError(s.T(), other.SetState(bytes.NewReader(blob.Bytes())))
	for k, v := range want {
		require.Equal(s.T(), v, other.GetParameters().Value(k), k)
	}

	require.ErrorIs(s.T(), s.p.SetState(strings.NewReader("<ProtoPlug/>")), state.ErrMalformedState)
	require.Equal(s.T(), want, s.values())
}

// TestConcurrentControlAndAudio runs editor writes against the audio path.
func (s *ProcessorSuite) TestConcurrentControlAndAudio() {
	editor := NewEditor(s.p)
	require.NoError(s.T(), s.p.SetActive(true))

	g, ctx := errgroup.WithContext(context.Background())
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for i := 0; i < 2000; i++ {
			key := []rune{'+', '-', 'i', 's'}[i%4]
			if _, err := editor.HandleKey(key); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		buf := [][]float32{make([]float32, 64), make([]float32, 64)}
		for {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			for ch := range buf {
				for i := range buf[ch] {
					buf[ch][i] = 1
				}
			}
			s.p.Process(buf)
			for ch := range buf {
				for _, v := range buf[ch] {
					if v > 1 || v < -1 {
						s.T().Errorf("sample %v outside gain range", v)
						return nil
					}
				}
			}
		}
	})
	require.NoError(s.T(), g.Wait())
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorSuite))
}

func TestNewProcessorRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GainStep = 0
	_, err := NewProcessor(cfg, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDeclareDuplicateIsFatal(t *testing.T) {
	registry := param.NewRegistry()
	layout := append(Layout(), param.New(ParamGain, "Gain").Build())
	err := declare(registry, layout)
	require.ErrorIs(t, err, param.ErrDuplicateParameter)
}
