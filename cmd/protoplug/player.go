package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player pulls audio from a reader into the default output device
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the output device for stereo float32 at sampleRate
func NewPlayer(sampleRate int, latency time.Duration, src io.Reader) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(src)}, nil
}

// Run plays until ctx is done
func (p *Player) Run(ctx context.Context) error {
	p.player.Play()
	<-ctx.Done()
	return p.player.Close()
}
