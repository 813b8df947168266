package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
)

// TableComponent is a component declared by a script with Component(name).
// Its fields live in the Lua table, which the script and the World share.
type TableComponent struct {
	Name  string
	Table *lua.LTable
}

func (c *TableComponent) ComponentType() string { return c.Name }

// hostField bridges one Lua field name to a Go component field.
type hostField struct {
	name string
	get  func(L *lua.LState, c ecs.Component) lua.LValue
	set  func(c ecs.Component, v lua.LValue) error // nil = read-only
}

// hostClass exposes a Go component type to scripts as a constructor table
// plus a userdata metatable whose fields read and write the Go value.
type hostClass struct {
	name   string
	new    func() ecs.Component
	fields []hostField
}

func (h *hostClass) field(name string) *hostField {
	for i := range h.fields {
		if h.fields[i].name == name {
			return &h.fields[i]
		}
	}
	return nil
}

func hostClasses() []*hostClass {
	return []*hostClass{
		{name: "Position", new: func() ecs.Component { return &component.Position{} }, fields: []hostField{
			intField("x", func(p *component.Position) *int { return &p.X }),
			intField("y", func(p *component.Position) *int { return &p.Y }),
		}},
		{name: "BlocksTile", new: func() ecs.Component { return &component.BlocksTile{} }},
		{name: "Viewshed", new: func() ecs.Component { return &component.Viewshed{} }, fields: []hostField{
			intField("range", func(v *component.Viewshed) *int { return &v.Range }),
			boolField("dirty", func(v *component.Viewshed) *bool { return &v.Dirty }),
			{name: "visible", get: func(L *lua.LState, c ecs.Component) lua.LValue {
				return intArray(L, c.(*component.Viewshed).Visible)
			}},
		}},
		{name: "Renderable", new: func() ecs.Component { return &component.Renderable{} }, fields: []hostField{
			glyphField("glyph", func(r *component.Renderable) *uint16 { return &r.Glyph }),
			colorField("fg", func(r *component.Renderable) *color.RGB { return &r.FG }),
			colorField("bg", func(r *component.Renderable) *color.RGB { return &r.BG }),
			intField("order", func(r *component.Renderable) *int { return &r.Order }),
			intField("console", func(r *component.Renderable) *int { return &r.Console }),
		}},
		{name: "Name", new: func() ecs.Component { return &component.Name{} }, fields: []hostField{
			stringField("name", func(n *component.Name) *string { return &n.Name }),
		}},
		{name: "Player", new: func() ecs.Component { return &component.Player{} }},
		{name: "Monster", new: func() ecs.Component { return &component.Monster{} }},
		{name: "CombatStats", new: func() ecs.Component { return &component.CombatStats{} }, fields: []hostField{
			intField("max_hp", func(s *component.CombatStats) *int { return &s.MaxHP }),
			intField("hp", func(s *component.CombatStats) *int { return &s.HP }),
			intField("defense", func(s *component.CombatStats) *int { return &s.Defense }),
			intField("power", func(s *component.CombatStats) *int { return &s.Power }),
		}},
	}
}

func intField[T ecs.Component](name string, ref func(T) *int) hostField {
	return hostField{
		name: name,
		get: func(_ *lua.LState, c ecs.Component) lua.LValue {
			return lua.LNumber(*ref(c.(T)))
		},
		set: func(c ecs.Component, v lua.LValue) error {
			n, ok := v.(lua.LNumber)
			if !ok {
				return fmt.Errorf("number expected, got %s", v.Type())
			}
			*ref(c.(T)) = int(n)
			return nil
		},
	}
}

func boolField[T ecs.Component](name string, ref func(T) *bool) hostField {
	return hostField{
		name: name,
		get: func(_ *lua.LState, c ecs.Component) lua.LValue {
			return lua.LBool(*ref(c.(T)))
		},
		set: func(c ecs.Component, v lua.LValue) error {
			b, ok := v.(lua.LBool)
			if !ok {
				return fmt.Errorf("boolean expected, got %s", v.Type())
			}
			*ref(c.(T)) = bool(b)
			return nil
		},
	}
}

func stringField[T ecs.Component](name string, ref func(T) *string) hostField {
	return hostField{
		name: name,
		get: func(_ *lua.LState, c ecs.Component) lua.LValue {
			return lua.LString(*ref(c.(T)))
		},
		set: func(c ecs.Component, v lua.LValue) error {
			s, ok := v.(lua.LString)
			if !ok {
				return fmt.Errorf("string expected, got %s", v.Type())
			}
			*ref(c.(T)) = string(s)
			return nil
		},
	}
}

func colorField[T ecs.Component](name string, ref func(T) *color.RGB) hostField {
	return hostField{
		name: name,
		get: func(L *lua.LState, c ecs.Component) lua.LValue {
			return newUD(L, *ref(c.(T)), "Color")
		},
		set: func(c ecs.Component, v lua.LValue) error {
			if ud, ok := v.(*lua.LUserData); ok {
				if rgb, ok := ud.Value.(color.RGB); ok {
					*ref(c.(T)) = rgb
					return nil
				}
			}
			return fmt.Errorf("Color expected, got %s", v.Type())
		},
	}
}

// glyphField takes a glyph code or a single code page 437 character.
func glyphField[T ecs.Component](name string, ref func(T) *uint16) hostField {
	return hostField{
		name: name,
		get: func(_ *lua.LState, c ecs.Component) lua.LValue {
			return lua.LNumber(*ref(c.(T)))
		},
		set: func(c ecs.Component, v lua.LValue) error {
			g, err := glyphValue(v)
			if err != nil {
				return err
			}
			*ref(c.(T)) = g
			return nil
		},
	}
}

func (e *Engine) registerComponents() {
	L := e.vm
	for _, h := range hostClasses() {
		h := h // per-iteration copy for the closures below (go < 1.22)
		e.hostClasses[h.name] = h

		mt := L.NewTypeMetatable(h.name)
		mt.RawSetString("__name", lua.LString(h.name))
		mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int { return e.hostIndex(L, h) }))
		mt.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int { return e.hostNewIndex(L, h) }))
		mt.RawSetString("__tostring", L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LString(h.name))
			return 1
		}))

		cls := L.NewTable()
		cls.RawSetString("__name", lua.LString(h.name))
		call := L.NewTable()
		call.RawSetString("__call", L.NewFunction(func(L *lua.LState) int { return e.constructHost(L, h) }))
		L.SetMetatable(cls, call)
		L.SetGlobal(h.name, cls)
	}
	L.SetGlobal("Component", L.NewFunction(e.declareComponent))
}

// constructHost builds a host component from a field table, as in
// Position{x = 1, y = 2}, or from positional values in field order.
func (e *Engine) constructHost(L *lua.LState, h *hostClass) int {
	c := h.new()
	if init, ok := L.Get(2).(*lua.LTable); ok {
		init.ForEach(func(k, v lua.LValue) {
			name, ok := k.(lua.LString)
			if !ok {
				e.argError(L, 1, "%s field names must be strings", h.name)
			}
			e.setHostField(L, 1, h, c, string(name), v)
		})
	} else {
		for i := 2; i <= L.GetTop(); i++ {
			if i-2 >= len(h.fields) {
				e.argError(L, i-1, "%s takes %d values", h.name, len(h.fields))
			}
			e.setHostField(L, i-1, h, c, h.fields[i-2].name, L.Get(i))
		}
	}
	L.Push(newUD(L, c, h.name))
	return 1
}

func (e *Engine) setHostField(L *lua.LState, n int, h *hostClass, c ecs.Component, name string, v lua.LValue) {
	f := h.field(name)
	switch {
	case f == nil:
		e.argError(L, n, "%s has no field %q", h.name, name)
	case f.set == nil:
		e.argError(L, n, "%s.%s is read-only", h.name, name)
	default:
		if err := f.set(c, v); err != nil {
			e.argError(L, n, "%s.%s: %v", h.name, name, err)
		}
	}
}

func (e *Engine) hostIndex(L *lua.LState, h *hostClass) int {
	c := checkUD[ecs.Component](e, L, 1, h.name)
	if f := h.field(e.checkString(L, 2)); f != nil {
		L.Push(f.get(L, c))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

func (e *Engine) hostNewIndex(L *lua.LState, h *hostClass) int {
	c := checkUD[ecs.Component](e, L, 1, h.name)
	e.setHostField(L, 3, h, c, e.checkString(L, 2), L.Get(3))
	return 0
}

// declareComponent implements Component(name): a class table whose
// instances are plain tables stored as *TableComponent.
func (e *Engine) declareComponent(L *lua.LState) int {
	name := e.checkString(L, 1)
	if _, ok := e.hostClasses[name]; ok {
		return e.argError(L, 1, "%q is a built-in component", name)
	}
	if cls, ok := e.scriptClasses[name]; ok {
		L.Push(cls)
		return 1
	}
	cls := L.NewTable()
	cls.RawSetString("__name", lua.LString(name))
	cls.RawSetString("__index", cls)
	call := L.NewTable()
	call.RawSetString("__call", L.NewFunction(e.constructTable))
	L.SetMetatable(cls, call)
	e.scriptClasses[name] = cls
	L.Push(cls)
	return 1
}

func (e *Engine) constructTable(L *lua.LState) int {
	cls := e.checkTable(L, 1)
	inst, ok := L.Get(2).(*lua.LTable)
	if !ok {
		inst = L.NewTable()
	}
	L.SetMetatable(inst, cls)
	L.Push(inst)
	return 1
}

// componentValue converts a Lua instance into a storable component.
func (e *Engine) componentValue(L *lua.LState, v lua.LValue) (ecs.Component, bool) {
	switch v := v.(type) {
	case *lua.LUserData:
		c, ok := v.Value.(ecs.Component)
		return c, ok
	case *lua.LTable:
		mt, ok := L.GetMetatable(v).(*lua.LTable)
		if !ok {
			return nil, false
		}
		name, ok := mt.RawGetString("__name").(lua.LString)
		if !ok || e.scriptClasses[string(name)] != mt {
			return nil, false
		}
		return &TableComponent{Name: string(name), Table: v}, true
	}
	return nil, false
}

// checkComponents reads either one component or an array of them.
func (e *Engine) checkComponents(L *lua.LState, n int) []ecs.Component {
	v := L.Get(n)
	if v == lua.LNil {
		return nil
	}
	if c, ok := e.componentValue(L, v); ok {
		return []ecs.Component{c}
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		e.argError(L, n, "component or list of components expected, got %s", typeName(L, v))
	}
	out := make([]ecs.Component, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		item := list.RawGetInt(i)
		c, ok := e.componentValue(L, item)
		if !ok {
			e.argError(L, n, "element %d: component expected, got %s", i, typeName(L, item))
		}
		out = append(out, c)
	}
	return out
}

// typeOf resolves a type argument: a name string or a component class.
func typeOf(v lua.LValue) (string, bool) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), true
	case *lua.LTable:
		if name, ok := v.RawGetString("__name").(lua.LString); ok {
			return string(name), true
		}
	}
	return "", false
}

func (e *Engine) checkType(L *lua.LState, n int) string {
	name, ok := typeOf(L.Get(n))
	if !ok {
		e.argError(L, n, "component type expected, got %s", typeName(L, L.Get(n)))
	}
	return name
}

// checkTypes reads one type or an array of types. single reports the former.
func (e *Engine) checkTypes(L *lua.LState, n int) (types []string, single bool) {
	if name, ok := typeOf(L.Get(n)); ok {
		return []string{name}, true
	}
	list := e.checkTable(L, n)
	types = make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		name, ok := typeOf(list.RawGetInt(i))
		if !ok {
			e.argError(L, n, "element %d: component type expected, got %s", i, typeName(L, list.RawGetInt(i)))
		}
		types = append(types, name)
	}
	return types, false
}

// pushable converts a stored component back to the Lua value scripts see.
// Host components are fresh userdata over the same Go pointer.
func (e *Engine) pushable(L *lua.LState, c ecs.Component) lua.LValue {
	switch c := c.(type) {
	case nil:
		return lua.LNil
	case *TableComponent:
		return c.Table
	}
	if h, ok := e.hostClasses[c.ComponentType()]; ok {
		return newUD(L, c, h.name)
	}
	return lua.LNil
}
