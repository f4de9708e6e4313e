package snapshot

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/snapshot/fonts"
)

// CommandType identifies a recorded Canvas call.
type CommandType uint8

const (
	CmdFillRoundedRect CommandType = iota // Canvas.FillRoundedRect
	CmdStrokeLine                         // Canvas.StrokeLine
	CmdStrokeArc                          // Canvas.StrokeArc
	CmdFillText                           // Canvas.FillText
)

var commandTypeNames = [...]string{
	CmdFillRoundedRect: "FillRoundedRect",
	CmdStrokeLine:      "StrokeLine",
	CmdStrokeArc:       "StrokeArc",
	CmdFillText:        "FillText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a recorded drawing operation.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	fmt.Stringer
	replay(dst Canvas)
}

// FillRoundedRectCommand records Canvas.FillRoundedRect.
type FillRoundedRectCommand struct {
	Rect   Rect
	Radius BorderRadius
	Color  color.Color
	Blur   float64
}

// Type implements Command.
func (FillRoundedRectCommand) Type() CommandType { return CmdFillRoundedRect }

func (c FillRoundedRectCommand) String() string {
	s := fmt.Sprintf("%s %v %s", c.Type(), c.Rect, formatColor(c.Color))
	if !c.Radius.IsZero() {
		s += " radius " + c.Radius.String()
	}
	if c.Blur > 0 {
		s += fmt.Sprintf(" blur %g", c.Blur)
	}
	return s
}

func (c FillRoundedRectCommand) replay(dst Canvas) {
	dst.FillRoundedRect(c.Rect, c.Radius, c.Color, c.Blur)
}

// StrokeLineCommand records Canvas.StrokeLine.
type StrokeLineCommand struct {
	X0, Y0, X1, Y1 float64
	Style          LineStyle
}

// Type implements Command.
func (StrokeLineCommand) Type() CommandType { return CmdStrokeLine }

func (c StrokeLineCommand) String() string {
	return fmt.Sprintf("%s (%g,%g)-(%g,%g) %s", c.Type(), c.X0, c.Y0, c.X1, c.Y1, c.Style)
}

func (c StrokeLineCommand) replay(dst Canvas) {
	dst.StrokeLine(c.X0, c.Y0, c.X1, c.Y1, c.Style)
}

// StrokeArcCommand records Canvas.StrokeArc.
type StrokeArcCommand struct {
	CX, CY, RX, RY float64
	A0, A1         float64
	Style          LineStyle
}

// Type implements Command.
func (StrokeArcCommand) Type() CommandType { return CmdStrokeArc }

func (c StrokeArcCommand) String() string {
	return fmt.Sprintf("%s center (%g,%g) radii %gx%g angles %.4g..%.4g %s",
		c.Type(), c.CX, c.CY, c.RX, c.RY, c.A0, c.A1, c.Style)
}

func (c StrokeArcCommand) replay(dst Canvas) {
	dst.StrokeArc(c.CX, c.CY, c.RX, c.RY, c.A0, c.A1, c.Style)
}

// FillTextCommand records Canvas.FillText.
type FillTextCommand struct {
	Text  string
	X, Y  float64
	Font  fonts.Font
	Color color.Color
}

// Type implements Command.
func (FillTextCommand) Type() CommandType { return CmdFillText }

func (c FillTextCommand) String() string {
	return fmt.Sprintf("%s %q at (%g,%g) %s %s", c.Type(), c.Text, c.X, c.Y, c.Font, formatColor(c.Color))
}

func (c FillTextCommand) replay(dst Canvas) {
	dst.FillText(c.Text, c.X, c.Y, c.Font, c.Color)
}

func (s LineStyle) String() string {
	str := fmt.Sprintf("width %g %s", s.Width, formatColor(s.Color))
	if len(s.Dash) > 0 {
		str += fmt.Sprintf(" dash %v", s.Dash)
	}
	return str
}

func formatColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Recorder is a Canvas that records calls instead of rasterizing them.
// A Recorder can be replayed onto another Canvas with Playback.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
	measure  func(string, fonts.Font) float64
}

// NewRecorder returns an empty recorder. MeasureText uses measure, or the
// default font registry when measure is nil.
func NewRecorder(measure func(string, fonts.Font) float64) *Recorder {
	if measure == nil {
		measure = fonts.DefaultRegistry().Measure
	}
	return &Recorder{measure: measure}
}

// FillRoundedRect implements Canvas.
func (r *Recorder) FillRoundedRect(rect Rect, radius BorderRadius, c color.Color, blur float64) {
	r.commands = append(r.commands, FillRoundedRectCommand{Rect: rect, Radius: radius, Color: c, Blur: blur})
}

// StrokeLine implements Canvas.
func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64, s LineStyle) {
	s.Dash = slices.Clone(s.Dash)
	r.commands = append(r.commands, StrokeLineCommand{X0: x0, Y0: y0, X1: x1, Y1: y1, Style: s})
}

// StrokeArc implements Canvas.
func (r *Recorder) StrokeArc(cx, cy, rx, ry, a0, a1 float64, s LineStyle) {
	s.Dash = slices.Clone(s.Dash)
	r.commands = append(r.commands, StrokeArcCommand{CX: cx, CY: cy, RX: rx, RY: ry, A0: a0, A1: a1, Style: s})
}

// FillText implements Canvas.
func (r *Recorder) FillText(s string, x, y float64, f fonts.Font, c color.Color) {
	r.commands = append(r.commands, FillTextCommand{Text: s, X: x, Y: y, Font: f, Color: c})
}

// MeasureText implements Canvas.
func (r *Recorder) MeasureText(s string, f fonts.Font) float64 {
	return r.measure(s, f)
}

// Commands returns the recorded commands in call order.
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Reset discards all recorded commands.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// Playback replays the recorded commands onto dst in order.
func (r *Recorder) Playback(dst Canvas) {
	for _, c := range r.commands {
		c.replay(dst)
	}
}
