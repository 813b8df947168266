package scripting

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
	"golang.org/x/text/encoding/charmap"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/geom"
)

// raise aborts the running host function with err. The Lua error carries
// err's text; the typed error is recovered by wrap.
func (e *Engine) raise(L *lua.LState, err error) int {
	e.fault = err
	L.RaiseError("%s", err.Error())
	return 0
}

func (e *Engine) argError(L *lua.LState, n int, format string, args ...any) int {
	return e.raise(L, &ArgError{N: n, Msg: fmt.Sprintf(format, args...)})
}

// typeName names v for error messages, using __name for userdata and
// classed tables.
func typeName(L *lua.LState, v lua.LValue) string {
	switch v.(type) {
	case *lua.LUserData, *lua.LTable:
		if mt, ok := L.GetMetatable(v).(*lua.LTable); ok {
			if name, ok := mt.RawGetString("__name").(lua.LString); ok {
				return string(name)
			}
		}
	}
	return v.Type().String()
}

func newUD(L *lua.LState, v any, typ string) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typ))
	return ud
}

func checkUD[T any](e *Engine, L *lua.LState, n int, what string) T {
	if ud, ok := L.Get(n).(*lua.LUserData); ok {
		if v, ok := ud.Value.(T); ok {
			return v
		}
	}
	var zero T
	e.argError(L, n, "%s expected, got %s", what, typeName(L, L.Get(n)))
	return zero
}

func (e *Engine) checkNumber(L *lua.LState, n int) float64 {
	v, ok := L.Get(n).(lua.LNumber)
	if !ok {
		e.argError(L, n, "number expected, got %s", typeName(L, L.Get(n)))
	}
	return float64(v)
}

func (e *Engine) checkInt(L *lua.LState, n int) int {
	f := e.checkNumber(L, n)
	if f != math.Trunc(f) {
		e.argError(L, n, "integer expected, got %g", f)
	}
	return int(f)
}

func (e *Engine) optInt(L *lua.LState, n, def int) int {
	if L.Get(n) == lua.LNil {
		return def
	}
	return e.checkInt(L, n)
}

func (e *Engine) checkString(L *lua.LState, n int) string {
	s, ok := L.Get(n).(lua.LString)
	if !ok {
		e.argError(L, n, "string expected, got %s", typeName(L, L.Get(n)))
	}
	return string(s)
}

func (e *Engine) checkBool(L *lua.LState, n int) bool {
	b, ok := L.Get(n).(lua.LBool)
	if !ok {
		e.argError(L, n, "boolean expected, got %s", typeName(L, L.Get(n)))
	}
	return bool(b)
}

func (e *Engine) checkTable(L *lua.LState, n int) *lua.LTable {
	t, ok := L.Get(n).(*lua.LTable)
	if !ok {
		e.argError(L, n, "table expected, got %s", typeName(L, L.Get(n)))
	}
	return t
}

func (e *Engine) checkColor(L *lua.LState, n int) color.RGB {
	return checkUD[color.RGB](e, L, n, "Color")
}

func (e *Engine) optColor(L *lua.LState, n int, def color.RGB) color.RGB {
	if L.Get(n) == lua.LNil {
		return def
	}
	return e.checkColor(L, n)
}

func (e *Engine) checkRect(L *lua.LState, n int) geom.Rect {
	return checkUD[geom.Rect](e, L, n, "Rect")
}

// checkPoint accepts a Point, a Position component or any table with
// numeric x and y fields.
func (e *Engine) checkPoint(L *lua.LState, n int) geom.Point {
	switch v := L.Get(n).(type) {
	case *lua.LUserData:
		switch p := v.Value.(type) {
		case *geom.Point:
			return *p
		case *component.Position:
			return geom.Point{X: p.X, Y: p.Y}
		}
	case *lua.LTable:
		x, okX := L.GetField(v, "x").(lua.LNumber)
		y, okY := L.GetField(v, "y").(lua.LNumber)
		if okX && okY {
			return geom.Point{X: int(x), Y: int(y)}
		}
	}
	e.argError(L, n, "point with x and y expected, got %s", typeName(L, L.Get(n)))
	return geom.Point{}
}

func (e *Engine) checkEntity(L *lua.LState, n int) ecs.Entity {
	id := e.checkInt(L, n)
	if id < math.MinInt32 || id > math.MaxInt32 {
		e.argError(L, n, "entity id %d out of range", id)
	}
	return ecs.Entity(id)
}

// checkIndex reads a grid index and raises gamemap.ErrIndexOutOfRange when
// it falls outside m.
func (e *Engine) checkIndex(L *lua.LState, n int, m *gamemap.Map) int {
	idx := e.checkInt(L, n)
	if err := m.CheckIndex(idx); err != nil {
		e.raise(L, err)
	}
	return idx
}

// checkGlyph reads a glyph code or a single character. Characters are
// encoded to code page 437 and reported as text glyphs.
func (e *Engine) checkGlyph(L *lua.LState, n int) (code uint16, text bool) {
	v := L.Get(n)
	g, err := glyphValue(v)
	if err != nil {
		e.argError(L, n, "%v", err)
	}
	_, text = v.(lua.LString)
	return g, text
}

func glyphValue(v lua.LValue) (uint16, error) {
	switch v := v.(type) {
	case lua.LNumber:
		f := float64(v)
		if f != math.Trunc(f) || f < 0 || f > math.MaxUint16 {
			return 0, fmt.Errorf("glyph %g out of range", f)
		}
		return uint16(f), nil
	case lua.LString:
		r := []rune(string(v))
		if len(r) != 1 {
			return 0, fmt.Errorf("single character expected, got %q", string(v))
		}
		b, ok := charmap.CodePage437.EncodeRune(r[0])
		if !ok {
			return 0, fmt.Errorf("%q has no code page 437 glyph", r[0])
		}
		return uint16(b), nil
	}
	return 0, fmt.Errorf("glyph number or character expected, got %s", v.Type())
}

// toLua converts a value stored by the host into a Lua value.
func toLua(v any) lua.LValue {
	switch v := v.(type) {
	case lua.LValue:
		return v
	case ecs.Entity:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case bool:
		return lua.LBool(v)
	}
	return lua.LNil
}

func intArray(L *lua.LState, vals []int) *lua.LTable {
	t := L.CreateTable(len(vals), 0)
	for i, v := range vals {
		t.RawSetInt(i+1, lua.LNumber(v))
	}
	return t
}
