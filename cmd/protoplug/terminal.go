package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/justyntemme/protoplug/pkg/protoplug"
)

const (
	keyCtrlC = 0x03
	keyQuit  = 'q'
)

// Terminal runs the editor on a raw-mode terminal
type Terminal struct {
	editor *protoplug.Editor
	engine *Engine
	in     *os.File
	out    io.Writer
}

// NewTerminal binds the editor to stdin/stdout
func NewTerminal(editor *protoplug.Editor, engine *Engine) *Terminal {
	return &Terminal{editor: editor, engine: engine, in: os.Stdin, out: os.Stdout}
}

// Available reports whether stdin is an interactive terminal
func (t *Terminal) Available() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Run reads keys until q or Ctrl-C, redrawing the status line. It returns
// errQuit when the user asked to leave.
func (t *Terminal) Run(ctx context.Context) error {
	fd := int(t.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprintln(t.out)
	}()

	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := t.in.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n > 0 {
				keys <- buf[0]
			}
		}
	}()

	fmt.Fprint(t.out, "+/- gain  i invert  s swap  r reset  q quit\r\n")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		t.draw()
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case k, ok := <-keys:
			if !ok || k == keyQuit || k == keyCtrlC {
				return errQuit
			}
			if _, err := t.editor.HandleKey(rune(k)); err != nil {
				return err
			}
		}
	}
}

func (t *Terminal) draw() {
	m := t.engine.Meters()
	fmt.Fprint(t.out, "\r\x1b[K")
	_ = t.editor.Render(t.out)
	fmt.Fprintf(t.out, " | L %5.1f R %5.1f dB", m.Left.LevelDB(), m.Right.LevelDB())
}
