package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/gui"
	"github.com/glyphkeep/glyphkeep/internal/render"
	"github.com/glyphkeep/glyphkeep/internal/world"
)

func (e *Engine) registerDraw() {
	L := e.vm
	for name, fn := range map[string]lua.LGFunction{
		"cls":              e.drawCls,
		"set":              e.drawSet,
		"set_bg":           e.drawSetBG,
		"print":            e.drawPrint,
		"console":          e.drawConsole,
		"scanlines":        e.drawScanlines,
		"burn":             e.drawBurn,
		"exit":             e.drawExit,
		"draw_box":         e.drawBox,
		"draw_h_bar":       e.drawHBar,
		"draw_map":         e.drawMap,
		"draw_entities":    e.drawEntities,
		"index_map":        e.indexMap,
		"update_viewsheds": e.updateViewsheds,
		"can_see":          e.canSee,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (e *Engine) push(cmd render.Command) {
	e.ctx.Queue.Push(cmd)
}

func (e *Engine) drawCls(L *lua.LState) int {
	e.push(render.Clear{})
	return 0
}

// set(x, y, glyph, fg, bg[, console]). Without a console, glyph codes go to
// the map console and characters to the text console.
func (e *Engine) drawSet(L *lua.LState) int {
	x, y := e.checkInt(L, 1), e.checkInt(L, 2)
	glyph, text := e.checkGlyph(L, 3)
	fg, bg := e.checkColor(L, 4), e.checkColor(L, 5)
	console := render.ConsoleMap
	if text {
		console = render.ConsoleText
	}
	console = e.optInt(L, 6, console)
	if console < 0 {
		return e.argError(L, 6, "console %d must not be negative", console)
	}
	e.push(render.SetCell{X: x, Y: y, Glyph: glyph, FG: fg, BG: bg, Console: console})
	return 0
}

func (e *Engine) drawSetBG(L *lua.LState) int {
	e.push(render.SetBackground{X: e.checkInt(L, 1), Y: e.checkInt(L, 2), BG: e.checkColor(L, 3)})
	return 0
}

// print(x, y, value[, fg[, bg]]) switches to the UI console first.
func (e *Engine) drawPrint(L *lua.LState) int {
	x, y := e.checkInt(L, 1), e.checkInt(L, 2)
	text := L.ToStringMeta(L.Get(3)).String()
	fg := e.optColor(L, 4, color.White)
	bg := e.optColor(L, 5, gui.Background)
	e.push(render.SwitchConsole{ID: render.ConsoleUI})
	e.push(render.PrintText{X: x, Y: y, Text: text, FG: fg, BG: bg})
	return 0
}

func (e *Engine) drawConsole(L *lua.LState) int {
	id := e.checkInt(L, 1)
	if id < 0 {
		return e.argError(L, 1, "console %d must not be negative", id)
	}
	e.push(render.SwitchConsole{ID: id})
	return 0
}

func (e *Engine) drawScanlines(L *lua.LState) int {
	e.push(render.SetScanlines{Enabled: e.checkBool(L, 1)})
	return 0
}

func (e *Engine) drawBurn(L *lua.LState) int {
	e.push(render.SetGlow{Color: e.checkColor(L, 1)})
	return 0
}

func (e *Engine) drawExit(L *lua.LState) int {
	e.push(render.RequestExit{})
	return 0
}

// draw_box(x, y, w, h[, fg[, bg]])
func (e *Engine) drawBox(L *lua.LState) int {
	x, y := e.checkInt(L, 1), e.checkInt(L, 2)
	w, h := e.checkInt(L, 3), e.checkInt(L, 4)
	gui.DrawBox(e.ctx.Queue, x, y, w, h, e.optColor(L, 5, color.White), e.optColor(L, 6, gui.Background))
	return 0
}

// draw_h_bar(x, y, w, cur, max, fg, bg)
func (e *Engine) drawHBar(L *lua.LState) int {
	x, y, w := e.checkInt(L, 1), e.checkInt(L, 2), e.checkInt(L, 3)
	cur, total := e.checkInt(L, 4), e.checkInt(L, 5)
	gui.DrawHBar(e.ctx.Queue, x, y, w, cur, total, e.checkColor(L, 6), e.checkColor(L, 7))
	return 0
}

// draw_map(m)
func (e *Engine) drawMap(L *lua.LState) int {
	world.DrawMap(e.checkMap(L), e.ctx.Queue)
	return 0
}

// draw_entities(w, m)
func (e *Engine) drawEntities(L *lua.LState) int {
	w := e.checkWorld(L)
	m := checkUD[*gamemap.Map](e, L, 2, "Map")
	world.DrawEntities(w, m, e.ctx.Queue)
	return 0
}

// index_map(w, m)
func (e *Engine) indexMap(L *lua.LState) int {
	w := e.checkWorld(L)
	m := checkUD[*gamemap.Map](e, L, 2, "Map")
	world.IndexMap(w, m)
	return 0
}

// update_viewsheds(w, m) -> number recomputed
func (e *Engine) updateViewsheds(L *lua.LState) int {
	w := e.checkWorld(L)
	m := checkUD[*gamemap.Map](e, L, 2, "Map")
	L.Push(lua.LNumber(world.UpdateViewsheds(w, m)))
	return 1
}

// can_see(w, e, idx) reports whether idx is in e's viewshed.
func (e *Engine) canSee(L *lua.LState) int {
	w := e.checkWorld(L)
	ent := e.checkEntity(L, 2)
	L.Push(lua.LBool(world.CanSee(w, ent, e.checkInt(L, 3))))
	return 1
}
