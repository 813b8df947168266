// Package gui queues composite widgets built from single-cell draws.
package gui

import (
	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

// Box frame glyphs on the sprite sheet.
var (
	boxTopLeft     = gamemap.SpriteIndex(96, 352)
	boxTopRight    = gamemap.SpriteIndex(104, 352)
	boxBottomLeft  = gamemap.SpriteIndex(96, 360)
	boxBottomRight = gamemap.SpriteIndex(104, 360)
	boxTop         = gamemap.SpriteIndex(56, 352)
	boxBottom      = gamemap.SpriteIndex(56, 368)
	boxLeft        = gamemap.SpriteIndex(48, 360)
	boxRight       = gamemap.SpriteIndex(64, 360)
)

const (
	barFull  = 178 // ▓
	barEmpty = 176 // ░
)

// Background is the default widget background.
var Background = color.Black

// DrawBox frames the w x h cells starting at x,y on the map console. The
// interior is left untouched.
func DrawBox(q *render.Queue, x, y, w, h int, fg, bg color.RGB) {
	if w < 1 || h < 1 {
		return
	}
	x2, y2 := x+w-1, y+h-1
	set := func(cx, cy int, g uint16) {
		q.Push(render.SetCell{X: cx, Y: cy, Glyph: g, FG: fg, BG: bg, Console: render.ConsoleMap})
	}
	set(x, y, boxTopLeft)
	set(x, y2, boxBottomLeft)
	set(x2, y, boxTopRight)
	set(x2, y2, boxBottomRight)
	for i := x + 1; i < x2; i++ {
		set(i, y, boxTop)
		set(i, y2, boxBottom)
	}
	for j := y + 1; j < y2; j++ {
		set(x, j, boxLeft)
		set(x2, j, boxRight)
	}
}

// DrawHBar draws a w-cell horizontal gauge filled in proportion cur/total.
// The empty part uses fg faded halfway toward Background.
func DrawHBar(q *render.Queue, x, y, w, cur, total int, fg, bg color.RGB) {
	filled := 0
	if total > 0 {
		filled = int(float32(w) * (float32(cur) / float32(total)))
	}
	filled = max(0, min(w, filled))
	faded := fg.Lerp(Background, 0.5)
	for i := 0; i < w; i++ {
		c := render.SetCell{X: x + i, Y: y, Glyph: barFull, FG: fg, BG: bg, Console: render.ConsoleMap}
		if i >= filled {
			c.Glyph, c.FG = barEmpty, faded
		}
		q.Push(c)
	}
}
