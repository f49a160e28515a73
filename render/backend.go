// Package render defines the drawing boundary between the style engine
// and its host. The engine paints through the small Backend capability
// set; hosts implement it over their own surface.
package render

import "github.com/lacewing/lacewing/css"

// Rect is an axis-aligned rectangle in device-independent pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// TextRun is one run of text drawn at a single size.
type TextRun struct {
	Text string
	Size float64
}

// Backend is the fixed capability set a host must provide. Calls
// arrive in painting order; the backend draws each on top of what came
// before.
type Backend interface {
	FillRect(r Rect, c css.Color)
	StrokeRect(r Rect, width float64, c css.Color)
	DrawTextRun(x, y float64, run TextRun, c css.Color)
}

// CommandKind discriminates recorded display list entries.
type CommandKind int

const (
	FillRectCommand CommandKind = iota
	StrokeRectCommand
	DrawTextRunCommand
)

// Command is one recorded backend call.
type Command struct {
	Kind  CommandKind
	Rect  Rect
	Width float64
	X, Y  float64
	Run   TextRun
	Color css.Color
}

// DisplayList is a Backend that records calls instead of drawing,
// preserving order. Hosts replay it against a real backend; tests
// assert on it directly.
type DisplayList struct {
	Commands []Command
}

func (dl *DisplayList) FillRect(r Rect, c css.Color) {
	dl.Commands = append(dl.Commands, Command{Kind: FillRectCommand, Rect: r, Color: c})
}

func (dl *DisplayList) StrokeRect(r Rect, width float64, c css.Color) {
	dl.Commands = append(dl.Commands, Command{Kind: StrokeRectCommand, Rect: r, Width: width, Color: c})
}

func (dl *DisplayList) DrawTextRun(x, y float64, run TextRun, c css.Color) {
	dl.Commands = append(dl.Commands, Command{Kind: DrawTextRunCommand, X: x, Y: y, Run: run, Color: c})
}

// Replay issues the recorded commands against b in order.
func (dl *DisplayList) Replay(b Backend) {
	for _, cmd := range dl.Commands {
		switch cmd.Kind {
		case FillRectCommand:
			b.FillRect(cmd.Rect, cmd.Color)
		case StrokeRectCommand:
			b.StrokeRect(cmd.Rect, cmd.Width, cmd.Color)
		case DrawTextRunCommand:
			b.DrawTextRun(cmd.X, cmd.Y, cmd.Run, cmd.Color)
		}
	}
}

// Reset clears the recorded commands, keeping capacity.
func (dl *DisplayList) Reset() {
	dl.Commands = dl.Commands[:0]
}
