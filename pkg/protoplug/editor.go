package protoplug

import (
	"fmt"
	"io"
	"strings"

	"github.com/justyntemme/protoplug/pkg/dsp/gain"
	"github.com/justyntemme/protoplug/pkg/framework/param"
)

// Editor layout metrics, in pixels
const (
	ControlHeight = 40
	LabelWidth    = 50
	SliderWidth   = 200
	MinHeight     = 100
)

// ControlKind distinguishes editor widgets
type ControlKind int

const (
	// Slider is a continuous control with a label to its left
	Slider ControlKind = iota
	// ToggleButton is an on/off button
	ToggleButton
)

// Rect is a widget's bounds
type Rect struct {
	X, Y, W, H int
}

// Control is a widget attached to one parameter. Writes go through the
// registry so they are clamped like any other control-path update.
type Control struct {
	Kind   ControlKind
	Label  string
	Bounds Rect
	// LabelBounds is only set for sliders
	LabelBounds Rect

	param *param.Parameter
}

// Key returns the attached parameter key
func (c *Control) Key() string {
	return c.param.Key
}

// Editor is the plugin's control surface: a gain slider and two toggles
type Editor struct {
	params   *param.Registry
	controls []*Control
	step     float64
	width    int
	height   int
}

// NewEditor attaches the widgets to the processor's parameters and lays them out
func NewEditor(p *Processor) *Editor {
	params := p.GetParameters()
	e := &Editor{
		params: params,
		step:   p.Config().GainStep,
		controls: []*Control{
			{Kind: Slider, Label: "Gain", param: params.Get(ParamGain)},
			{Kind: ToggleButton, Label: "Invert Phase", param: params.Get(ParamInvertPhase)},
			{Kind: ToggleButton, Label: "Swap L/R Channels", param: params.Get(ParamSwapChannels)},
		},
	}
	e.Resized()
	return e
}

// Size returns the editor's width and height
func (e *Editor) Size() (int, int) {
	return e.width, e.height
}

// Controls returns the widgets in top-to-bottom order
func (e *Editor) Controls() []*Control {
	return e.controls
}

// Control returns the widget attached to key
func (e *Editor) Control(key string) *Control {
	for _, c := range e.controls {
		if c.param.Key == key {
			return c
		}
	}
	return nil
}

// Resized stacks the controls top to bottom, one row each
func (e *Editor) Resized() {
	e.width = LabelWidth + SliderWidth
	e.height = max(MinHeight, ControlHeight*len(e.controls))

	y := 0
	for _, c := range e.controls {
		row := Rect{X: 0, Y: y, W: e.width, H: ControlHeight}
		if c.Kind == Slider {
			c.LabelBounds = Rect{X: row.X, Y: row.Y, W: LabelWidth, H: row.H}
			row = Rect{X: row.X + LabelWidth, Y: row.Y, W: row.W - LabelWidth, H: row.H}
		}
		c.Bounds = row
		y += ControlHeight
	}
}

// Nudge moves a slider by delta in plain units
func (e *Editor) Nudge(key string, delta float64) error {
	return e.params.Set(key, e.params.Value(key)+delta)
}

// Toggle flips a toggle button
func (e *Editor) Toggle(key string) error {
	return e.params.SetBool(key, !e.params.Bool(key))
}

// HandleKey maps a keystroke to an action. It reports whether the key was used.
//
//	+ / -   nudge gain
//	i       toggle invert phase
//	s       toggle channel swap
//	r       reset to defaults
func (e *Editor) HandleKey(key rune) (bool, error) {
	switch key {
	case '+', '=':
		return true, e.Nudge(ParamGain, e.step)
	case '-', '_':
		return true, e.Nudge(ParamGain, -e.step)
	case 'i', 'I':
		return true, e.Toggle(ParamInvertPhase)
	case 's', 'S':
		return true, e.Toggle(ParamSwapChannels)
	case 'r', 'R':
		e.params.Reset()
		return true, nil
	}
	return false, nil
}

// Render writes a one-line view of the controls
func (e *Editor) Render(w io.Writer) error {
	parts := make([]string, 0, len(e.controls))
	for _, c := range e.controls {
		switch c.Kind {
		case Slider:
			v := c.param.GetPlainValue()
			parts = append(parts, fmt.Sprintf("%s %s %.2f (%s)", c.Label, meter(c.param.GetValue(), 10), v,
				param.DecibelFormatter(gain.LinearToDb(v))))
		case ToggleButton:
			mark := " "
			if c.param.Bool() {
				mark = "x"
			}
			parts = append(parts, fmt.Sprintf("[%s] %s", mark, c.Label))
		}
	}
	_, err := io.WriteString(w, strings.Join(parts, " | "))
	return err
}

// meter draws a normalized value as a bar of width cells
func meter(normalized float64, width int) string {
	filled := int(normalized*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
