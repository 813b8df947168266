package render

import "github.com/glyphkeep/glyphkeep/internal/color"

// Backend is the rendering collaborator a drained batch is replayed onto.
type Backend interface {
	Clear()
	SetCell(console, x, y int, glyph uint16, fg, bg color.RGB)
	SetBackground(console, x, y int, bg color.RGB)
	Print(console, x, y int, text string, fg, bg color.RGB)
	SetScanlines(enabled bool)
	SetGlow(c color.RGB)
	Present()
}

// Apply replays cmds onto b strictly in order and presents the frame.
// The active console starts at 0 for every batch. It reports whether a
// RequestExit was seen.
func Apply(cmds []Command, b Backend) (exit bool) {
	active := 0
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case Clear:
			b.Clear()
		case SetCell:
			target := c.Console
			if target == ConsoleActive {
				target = active
			}
			b.SetCell(target, c.X, c.Y, c.Glyph, c.FG, c.BG)
		case SetBackground:
			b.SetBackground(active, c.X, c.Y, c.BG)
		case SwitchConsole:
			active = c.ID
		case SetScanlines:
			b.SetScanlines(c.Enabled)
		case SetGlow:
			b.SetGlow(c.Color)
		case PrintText:
			b.Print(active, c.X, c.Y, c.Text, c.FG, c.BG)
		case RequestExit:
			exit = true
		}
	}
	b.Present()
	return exit
}
