// Command protoplug hosts the ProtoPlug effect outside a DAW: it plays a
// stereo test tone through the processor, edits parameters from the
// terminal or a MIDI controller, and persists state to a file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/protoplug/pkg/framework/control"
	"github.com/justyntemme/protoplug/pkg/framework/debug"
	"github.com/justyntemme/protoplug/pkg/protoplug"
)

var errQuit = errors.New("quit")

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "protoplug: %v\n", err)
		os.Exit(2)
	}

	log := debug.New(os.Stderr, "host", debug.DefaultFlags)
	log.SetLevel(opts.LogLevel)

	if err := run(opts, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(opts *options, log *debug.Logger) error {
	proc, err := protoplug.NewProcessor(opts.Config, log)
	if err != nil {
		return err
	}
	if err := proc.SetBusLayout(2, 2); err != nil {
		return err
	}
	if err := proc.Initialize(opts.SampleRate, int32(opts.BlockSize)); err != nil {
		return err
	}
	if err := loadState(proc, opts.StatePath); err != nil {
		// A bad state file leaves the defaults in place
		log.Warn("state %s: %v", opts.StatePath, err)
	}
	if err := proc.SetActive(true); err != nil {
		return err
	}
	log.Info("%s %s at %.0f Hz, block %d: %s", proc.Info().Name, proc.Info().Version,
		opts.SampleRate, opts.BlockSize, proc)

	engine := NewEngine(proc, opts.SampleRate, opts.BlockSize, opts.Frequency)

	if opts.Headless {
		err = renderHeadless(engine, opts, log)
	} else {
		err = runInteractive(proc, engine, opts, log)
	}

	if aerr := proc.SetActive(false); aerr != nil && err == nil {
		err = aerr
	}
	if serr := saveState(proc, opts.StatePath); serr != nil {
		log.Error("save state %s: %v", opts.StatePath, serr)
	}
	log.Info("%s", engine.Profiler().Report())
	return err
}

func renderHeadless(engine *Engine, opts *options, log *debug.Logger) error {
	frames := int(opts.Seconds * opts.SampleRate)
	levels := engine.Levels(frames)
	log.Info("rendered %d frames: L %s, R %s", frames, levels[0], levels[1])
	return nil
}

func runInteractive(proc *protoplug.Processor, engine *Engine, opts *options, log *debug.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.Seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Seconds*float64(time.Second)))
		defer cancel()
	}

	player, err := NewPlayer(int(opts.SampleRate), opts.Latency, engine)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return player.Run(ctx)
	})

	if opts.MIDIPort != "" {
		defer midi.CloseDriver()
		mapper := control.NewMapper(proc.GetParameters(), log)
		for _, b := range opts.bindings() {
			if err := mapper.Bind(b); err != nil {
				return err
			}
		}
		in, err := midi.FindInPort(opts.MIDIPort)
		if err != nil {
			return fmt.Errorf("midi input %q: %w", opts.MIDIPort, err)
		}
		g.Go(func() error {
			return mapper.Listen(ctx, in)
		})
	}

	term := NewTerminal(protoplug.NewEditor(proc), engine)
	if term.Available() {
		g.Go(func() error {
			return term.Run(ctx)
		})
	} else {
		log.Info("stdin is not a terminal; editor disabled")
	}

	err = g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
