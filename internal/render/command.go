// Package render holds the deferred drawing queue filled by scripts during
// a tick and the single place that replays it onto a backend.
package render

import "github.com/glyphkeep/glyphkeep/internal/color"

// Console layers, composited in index order.
const (
	ConsoleMap  = 0
	ConsoleText = 1
	ConsoleUI   = 2
)

// ConsoleActive targets whichever console the last SwitchConsole selected.
const ConsoleActive = -1

// Command is one deferred drawing intent. Commands carry their parameters
// by value.
type Command interface {
	command()
}

// Clear wipes every console.
type Clear struct{}

// SetCell draws a glyph. Console is either an explicit console index or
// ConsoleActive.
type SetCell struct {
	X, Y    int
	Glyph   uint16
	FG, BG  color.RGB
	Console int
}

// SetBackground recolours a cell's background on the active console.
type SetBackground struct {
	X, Y int
	BG   color.RGB
}

// SwitchConsole selects the console later commands in the batch draw on.
type SwitchConsole struct {
	ID int
}

type SetScanlines struct {
	Enabled bool
}

// SetGlow sets the colour scanlines bleed into the dark rows.
type SetGlow struct {
	Color color.RGB
}

// PrintText writes a string on the active console starting at X,Y.
type PrintText struct {
	X, Y   int
	Text   string
	FG, BG color.RGB
}

// RequestExit asks the driver to stop after this frame.
type RequestExit struct{}

func (Clear) command() {}
func (SetCell) command() {}
func (SetBackground) command() {}
func (SwitchConsole) command() {}
func (SetScanlines) command() {}
func (SetGlow) command() {}
func (PrintText) command() {}
func (RequestExit) command() {}
