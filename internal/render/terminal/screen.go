// Package terminal is the tcell rendering backend: one cell buffer per
// console, composited in console order on Present.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"

	"github.com/glyphkeep/glyphkeep/internal/color"
)

type cell struct {
	glyph   rune
	fg, bg  color.RGB
	hasRune bool
	hasBG   bool
}

// Options tune the post-processing effects.
type Options struct {
	Consoles    int
	ScanlineDim float32
	GlowMix     float32
}

// Screen implements render.Backend on top of a tcell.Screen.
// Accessed only from the game loop goroutine.
type Screen struct {
	screen tcell.Screen
	width  int
	height int
	layers [][]cell
	glyphs *GlyphTable

	scanlines bool
	glow      color.RGB
	opts      Options
}

// NewScreen wraps an initialised tcell screen with a width x height
// logical grid.
func NewScreen(s tcell.Screen, w, h int, glyphs *GlyphTable, opts Options) *Screen {
	if opts.Consoles < 1 {
		opts.Consoles = 1
	}
	if glyphs == nil {
		glyphs = NewGlyphTable(nil)
	}
	layers := make([][]cell, opts.Consoles)
	for i := range layers {
		layers[i] = make([]cell, w*h)
	}
	return &Screen{
		screen: s,
		width:  w,
		height: h,
		layers: layers,
		glyphs: glyphs,
		opts:   opts,
	}
}

// Size returns the logical grid size.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

func (s *Screen) Clear() {
	for _, l := range s.layers {
		for i := range l {
			l[i] = cell{}
		}
	}
}

func (s *Screen) at(console, x, y int) *cell {
	if console < 0 || console >= len(s.layers) || x < 0 || x >= s.width || y < 0 || y >= s.height {
		return nil
	}
	return &s.layers[console][y*s.width+x]
}

func (s *Screen) SetCell(console, x, y int, glyph uint16, fg, bg color.RGB) {
	if c := s.at(console, x, y); c != nil {
		*c = cell{glyph: s.glyphs.Rune(glyph), fg: fg, bg: bg, hasRune: true, hasBG: true}
	}
}

func (s *Screen) SetBackground(console, x, y int, bg color.RGB) {
	if c := s.at(console, x, y); c != nil {
		c.bg = bg
		c.hasBG = true
	}
}

// Print writes text left to right. Wide runes take two cells.
func (s *Screen) Print(console, x, y int, text string, fg, bg color.RGB) {
	for _, r := range text {
		if c := s.at(console, x, y); c != nil {
			*c = cell{glyph: r, fg: fg, bg: bg, hasRune: true, hasBG: true}
		}
		x += runeWidth(r)
	}
}

func (s *Screen) SetScanlines(enabled bool) { s.scanlines = enabled }

func (s *Screen) SetGlow(c color.RGB) { s.glow = c }

// Present composites the consoles (higher index on top) and shows the frame.
func (s *Screen) Present() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			r, fg, bg := s.composite(y*s.width + x)
			if s.scanlines && y%2 == 1 {
				bg = bg.Scale(1 - s.opts.ScanlineDim).Lerp(s.glow, s.opts.GlowMix)
			}
			st := tcell.StyleDefault.Foreground(fg.TCell()).Background(bg.TCell())
			s.screen.SetContent(x, y, r, nil, st)
		}
	}
	s.screen.Show()
}

// Sync repaints the whole terminal, needed after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) composite(idx int) (rune, color.RGB, color.RGB) {
	r, fg, bg := ' ', color.White, color.Black
	for _, l := range s.layers {
		c := l[idx]
		if c.hasBG {
			bg = c.bg
		}
		if c.hasRune {
			r, fg = c.glyph, c.fg
		}
	}
	return r, fg, bg
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
