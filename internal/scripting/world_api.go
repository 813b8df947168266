package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
)

func (e *Engine) registerWorld() {
	L := e.vm
	mt := L.NewTypeMetatable("World")
	mt.RawSetString("__name", lua.LString("World"))
	mt.RawSetString("__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"add_entity":   e.worldAddEntity,
		"get_entities": e.worldGetEntities,
		"get_cmp":      e.worldGetComponents,
		"add_cmp":      e.worldAddComponents,
		"del_cmp":      e.worldRemoveComponent,
		"clear_cmp":    e.worldClearComponent,
		"query":        e.worldQuery,
		"save":         e.worldSave,
		"fetch":        e.worldFetch,
		"delete":       e.worldDelete,
		"alive":        e.worldAlive,
		"count":        e.worldCount,
	}))

	cls := L.NewTable()
	cls.RawSetString("new", L.NewFunction(e.worldNew))
	L.SetGlobal("World", cls)
}

func (e *Engine) checkWorld(L *lua.LState) *ecs.World {
	return checkUD[*ecs.World](e, L, 1, "World")
}

// World.new() replaces the context's World with an empty one.
func (e *Engine) worldNew(L *lua.LState) int {
	L.Push(newUD(L, e.ctx.NewWorld(), "World"))
	return 1
}

// w:add_entity({c1, c2, ...}) -> entity
func (e *Engine) worldAddEntity(L *lua.LState) int {
	w := e.checkWorld(L)
	L.Push(lua.LNumber(w.AddEntity(e.checkComponents(L, 2)...)))
	return 1
}

// w:get_entities({T1, T2, ...}) -> {e, ...} ascending
func (e *Engine) worldGetEntities(L *lua.LState) int {
	w := e.checkWorld(L)
	types, _ := e.checkTypes(L, 2)
	ids := w.Entities(types...)
	t := L.CreateTable(len(ids), 0)
	for i, id := range ids {
		t.RawSetInt(i+1, lua.LNumber(id))
	}
	L.Push(t)
	return 1
}

// w:get_cmp(e, {T1, T2, ...}) -> c1, c2, ... with nil for absent slots.
func (e *Engine) worldGetComponents(L *lua.LState) int {
	w := e.checkWorld(L)
	ent := e.checkEntity(L, 2)
	types, _ := e.checkTypes(L, 3)
	for _, c := range w.Components(ent, types...) {
		L.Push(e.pushable(L, c))
	}
	return len(types)
}

// w:add_cmp(e, {c1, ...}) or w:add_cmp(e, c)
func (e *Engine) worldAddComponents(L *lua.LState) int {
	w := e.checkWorld(L)
	ent := e.checkEntity(L, 2)
	w.AddComponents(ent, e.checkComponents(L, 3)...)
	return 0
}

// w:del_cmp(e, T)
func (e *Engine) worldRemoveComponent(L *lua.LState) int {
	w := e.checkWorld(L)
	w.RemoveComponent(e.checkEntity(L, 2), e.checkType(L, 3))
	return 0
}

// w:clear_cmp(T)
func (e *Engine) worldClearComponent(L *lua.LState) int {
	w := e.checkWorld(L)
	w.ClearComponent(e.checkType(L, 2))
	return 0
}

// w:query({T1, T2, ...}) -> {{e, c1, c2, ...}, ...}
func (e *Engine) worldQuery(L *lua.LState) int {
	w := e.checkWorld(L)
	types, _ := e.checkTypes(L, 2)
	rows := w.Query(types...)
	out := L.CreateTable(len(rows), 0)
	for i, row := range rows {
		t := L.CreateTable(len(row.Components)+1, 0)
		t.RawSetInt(1, lua.LNumber(row.Entity))
		for j, c := range row.Components {
			t.RawSetInt(j+2, e.pushable(L, c))
		}
		out.RawSetInt(i+1, t)
	}
	L.Push(out)
	return 1
}

// w:save(key, value)
func (e *Engine) worldSave(L *lua.LState) int {
	w := e.checkWorld(L)
	w.Save(e.checkString(L, 2), L.Get(3))
	return 0
}

// w:fetch(key) -> value; an unsaved key is fatal.
func (e *Engine) worldFetch(L *lua.LState) int {
	w := e.checkWorld(L)
	v, err := w.Fetch(e.checkString(L, 2))
	if err != nil {
		return e.raise(L, err)
	}
	L.Push(toLua(v))
	return 1
}

// w:delete(e)
func (e *Engine) worldDelete(L *lua.LState) int {
	w := e.checkWorld(L)
	w.DeleteEntity(e.checkEntity(L, 2))
	return 0
}

func (e *Engine) worldAlive(L *lua.LState) int {
	w := e.checkWorld(L)
	L.Push(lua.LBool(w.Alive(e.checkEntity(L, 2))))
	return 1
}

func (e *Engine) worldCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.checkWorld(L).Len()))
	return 1
}
