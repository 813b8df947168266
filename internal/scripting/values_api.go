package scripting

import (
	"math/rand"

	lua "github.com/yuin/gopher-lua"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/geom"
)

func (e *Engine) registerValues() {
	L := e.vm
	e.registerColor()
	e.registerRect()
	e.registerPoint()
	e.registerRNG()

	L.SetGlobal("dist2d", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(geom.Distance2D(e.checkPoint(L, 1), e.checkPoint(L, 2))))
		return 1
	}))
	L.SetGlobal("ss_idx", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(gamemap.SpriteIndex(e.checkInt(L, 1), e.checkInt(L, 2))))
		return 1
	}))
}

// callable makes cls(...) invoke fn with cls as the first argument.
func callable(L *lua.LState, cls *lua.LTable, fn lua.LGFunction) {
	mt := L.NewTable()
	mt.RawSetString("__call", L.NewFunction(fn))
	L.SetMetatable(cls, mt)
}

// Color(r, g, b) with components in 0..1, Color.hex("#rrggbb"),
// Color.named("orange").
func (e *Engine) registerColor() {
	L := e.vm
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"lerp": func(L *lua.LState) int {
			c := e.checkColor(L, 1)
			L.Push(newUD(L, c.Lerp(e.checkColor(L, 2), float32(e.checkNumber(L, 3))), "Color"))
			return 1
		},
		"scale": func(L *lua.LState) int {
			c := e.checkColor(L, 1)
			L.Push(newUD(L, c.Scale(float32(e.checkNumber(L, 2))), "Color"))
			return 1
		},
	})

	mt := L.NewTypeMetatable("Color")
	mt.RawSetString("__name", lua.LString("Color"))
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		c := e.checkColor(L, 1)
		switch L.Get(2) {
		case lua.LString("r"):
			L.Push(lua.LNumber(c.R))
		case lua.LString("g"):
			L.Push(lua.LNumber(c.G))
		case lua.LString("b"):
			L.Push(lua.LNumber(c.B))
		default:
			L.Push(methods.RawGet(L.Get(2)))
		}
		return 1
	}))
	mt.RawSetString("__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(e.checkColor(L, 1).String()))
		return 1
	}))
	mt.RawSetString("__eq", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(e.checkColor(L, 1) == e.checkColor(L, 2)))
		return 1
	}))

	cls := L.NewTable()
	cls.RawSetString("__name", lua.LString("Color"))
	cls.RawSetString("hex", L.NewFunction(func(L *lua.LState) int {
		c, err := color.FromHex(e.checkString(L, 1))
		if err != nil {
			return e.argError(L, 1, "%v", err)
		}
		L.Push(newUD(L, c, "Color"))
		return 1
	}))
	cls.RawSetString("named", L.NewFunction(func(L *lua.LState) int {
		c, err := color.Named(e.checkString(L, 1))
		if err != nil {
			return e.argError(L, 1, "%v", err)
		}
		L.Push(newUD(L, c, "Color"))
		return 1
	}))
	callable(L, cls, func(L *lua.LState) int {
		c := color.New(float32(e.checkNumber(L, 2)), float32(e.checkNumber(L, 3)), float32(e.checkNumber(L, 4)))
		L.Push(newUD(L, c, "Color"))
		return 1
	})
	L.SetGlobal("Color", cls)
}

// Rect(x, y, w, h) with read-only x1, y1, x2, y2.
func (e *Engine) registerRect() {
	L := e.vm
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"intersect": func(L *lua.LState) int {
			L.Push(lua.LBool(e.checkRect(L, 1).Intersect(e.checkRect(L, 2))))
			return 1
		},
		"center": func(L *lua.LState) int {
			c := e.checkRect(L, 1).Center()
			L.Push(lua.LNumber(c.X))
			L.Push(lua.LNumber(c.Y))
			return 2
		},
		"contains": func(L *lua.LState) int {
			L.Push(lua.LBool(e.checkRect(L, 1).Contains(e.checkPoint(L, 2))))
			return 1
		},
	})

	mt := L.NewTypeMetatable("Rect")
	mt.RawSetString("__name", lua.LString("Rect"))
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		r := e.checkRect(L, 1)
		switch L.Get(2) {
		case lua.LString("x1"):
			L.Push(lua.LNumber(r.X1))
		case lua.LString("y1"):
			L.Push(lua.LNumber(r.Y1))
		case lua.LString("x2"):
			L.Push(lua.LNumber(r.X2))
		case lua.LString("y2"):
			L.Push(lua.LNumber(r.Y2))
		case lua.LString("width"):
			L.Push(lua.LNumber(r.Width()))
		case lua.LString("height"):
			L.Push(lua.LNumber(r.Height()))
		default:
			L.Push(methods.RawGet(L.Get(2)))
		}
		return 1
	}))

	cls := L.NewTable()
	cls.RawSetString("__name", lua.LString("Rect"))
	callable(L, cls, func(L *lua.LState) int {
		r := geom.NewRect(e.checkInt(L, 2), e.checkInt(L, 3), e.checkInt(L, 4), e.checkInt(L, 5))
		L.Push(newUD(L, r, "Rect"))
		return 1
	})
	L.SetGlobal("Rect", cls)
}

// Point(x, y) with mutable x and y.
func (e *Engine) registerPoint() {
	L := e.vm
	mt := L.NewTypeMetatable("Point")
	mt.RawSetString("__name", lua.LString("Point"))
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		p := checkUD[*geom.Point](e, L, 1, "Point")
		switch L.Get(2) {
		case lua.LString("x"):
			L.Push(lua.LNumber(p.X))
		case lua.LString("y"):
			L.Push(lua.LNumber(p.Y))
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	mt.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		p := checkUD[*geom.Point](e, L, 1, "Point")
		switch e.checkString(L, 2) {
		case "x":
			p.X = e.checkInt(L, 3)
		case "y":
			p.Y = e.checkInt(L, 3)
		default:
			return e.argError(L, 2, "Point has no field %q", L.Get(2).String())
		}
		return 0
	}))

	cls := L.NewTable()
	cls.RawSetString("__name", lua.LString("Point"))
	callable(L, cls, func(L *lua.LState) int {
		p := &geom.Point{X: e.checkInt(L, 2), Y: e.checkInt(L, 3)}
		L.Push(newUD(L, p, "Point"))
		return 1
	})
	L.SetGlobal("Point", cls)
}

// RNG.new([seed]) draws its seed from the context RNG when none is given,
// so runs stay reproducible from the configured seed.
func (e *Engine) registerRNG() {
	L := e.vm
	mt := L.NewTypeMetatable("RNG")
	mt.RawSetString("__name", lua.LString("RNG"))
	mt.RawSetString("__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		// r:roll_dice(n, sides) sums n rolls of 1..sides.
		"roll_dice": func(L *lua.LState) int {
			r := checkUD[*rand.Rand](e, L, 1, "RNG")
			n, sides := e.checkInt(L, 2), e.checkInt(L, 3)
			if sides < 1 {
				return e.argError(L, 3, "dice need at least one side, got %d", sides)
			}
			total := 0
			for i := 0; i < n; i++ {
				total += r.Intn(sides) + 1
			}
			L.Push(lua.LNumber(total))
			return 1
		},
		// r:range(lo, hi) returns lo <= v < hi, or lo for an empty range.
		"range": func(L *lua.LState) int {
			r := checkUD[*rand.Rand](e, L, 1, "RNG")
			lo, hi := e.checkInt(L, 2), e.checkInt(L, 3)
			v := lo
			if hi > lo {
				v += r.Intn(hi - lo)
			}
			L.Push(lua.LNumber(v))
			return 1
		},
	}))

	cls := L.NewTable()
	cls.RawSetString("new", L.NewFunction(func(L *lua.LState) int {
		seed := e.ctx.Rand.Int63()
		if L.Get(1) != lua.LNil {
			seed = int64(e.checkInt(L, 1))
		}
		L.Push(newUD(L, rand.New(rand.NewSource(seed)), "RNG"))
		return 1
	}))
	L.SetGlobal("RNG", cls)
}
