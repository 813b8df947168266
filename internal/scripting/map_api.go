package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/geom"
)

func (e *Engine) registerMap() {
	L := e.vm
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"xy_idx":                  e.mapXYIdx,
		"idx_xy":                  e.mapIdxXY,
		"in_bounds":               e.mapInBounds,
		"add_room":                e.mapAddRoom,
		"get_room":                e.mapGetRoom,
		"get_rooms":               e.mapGetRooms,
		"apply_room":              e.mapApplyRoom,
		"apply_horizontal_tunnel": e.mapHorizontalTunnel,
		"apply_vertical_tunnel":   e.mapVerticalTunnel,
		"tile_type":               e.mapTileType,
		"set_tile":                e.mapSetTile,
		"is_walkable":             e.mapIsWalkable,
		"fov":                     e.mapFOV,
		"a_star":                  e.mapAStar,
		"reveal_tile":             e.mapRevealTile,
		"show_tile":               e.mapShowTile,
		"is_visible":              e.mapIsVisible,
		"is_revealed":             e.mapIsRevealed,
		"clear_visible_tiles":     e.mapClearVisible,
		"populate_blocked":        e.mapPopulateBlocked,
		"block_tile":              e.mapBlockTile,
		"clear_indexed_entities":  e.mapClearIndexed,
		"index_entity":            e.mapIndexEntity,
		"entities_at":             e.mapEntitiesAt,
	})
	methods.RawSetString("visible_tile", methods.RawGetString("is_visible"))

	mt := L.NewTypeMetatable("Map")
	mt.RawSetString("__name", lua.LString("Map"))
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		m := e.checkMap(L)
		switch L.Get(2) {
		case lua.LString("width"):
			L.Push(lua.LNumber(m.Width))
		case lua.LString("height"):
			L.Push(lua.LNumber(m.Height))
		default:
			L.Push(methods.RawGet(L.Get(2)))
		}
		return 1
	}))

	cls := L.NewTable()
	cls.RawSetString("new", L.NewFunction(e.mapNew))
	L.SetGlobal("Map", cls)
}

func (e *Engine) checkMap(L *lua.LState) *gamemap.Map {
	return checkUD[*gamemap.Map](e, L, 1, "Map")
}

// Map.new(w, h) replaces the context's Map with an all-wall one.
func (e *Engine) mapNew(L *lua.LState) int {
	w, h := e.checkInt(L, 1), e.checkInt(L, 2)
	if w <= 0 || h <= 0 {
		return e.argError(L, 1, "map size %dx%d must be positive", w, h)
	}
	L.Push(newUD(L, e.ctx.NewMap(w, h), "Map"))
	return 1
}

func (e *Engine) mapXYIdx(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LNumber(m.XYIdx(e.checkInt(L, 2), e.checkInt(L, 3))))
	return 1
}

func (e *Engine) mapIdxXY(L *lua.LState) int {
	m := e.checkMap(L)
	x, y := m.IdxXY(e.checkIndex(L, 2, m))
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

func (e *Engine) mapInBounds(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LBool(m.InBounds(e.checkInt(L, 2), e.checkInt(L, 3))))
	return 1
}

func (e *Engine) mapAddRoom(L *lua.LState) int {
	m := e.checkMap(L)
	m.AddRoom(e.checkRect(L, 2))
	return 0
}

// m:get_room(id) with 0-based ids; an unknown id is fatal.
func (e *Engine) mapGetRoom(L *lua.LState) int {
	m := e.checkMap(L)
	r, err := m.Room(e.checkInt(L, 2))
	if err != nil {
		return e.raise(L, err)
	}
	L.Push(newUD(L, r, "Rect"))
	return 1
}

func (e *Engine) mapGetRooms(L *lua.LState) int {
	m := e.checkMap(L)
	rooms := m.Rooms()
	t := L.CreateTable(len(rooms), 0)
	for i, r := range rooms {
		t.RawSetInt(i+1, newUD(L, r, "Rect"))
	}
	L.Push(t)
	return 1
}

func (e *Engine) mapApplyRoom(L *lua.LState) int {
	m := e.checkMap(L)
	m.ApplyRoom(e.checkRect(L, 2))
	return 0
}

// m:apply_horizontal_tunnel(x1, x2, y)
func (e *Engine) mapHorizontalTunnel(L *lua.LState) int {
	m := e.checkMap(L)
	m.ApplyHorizontalTunnel(e.checkInt(L, 2), e.checkInt(L, 3), e.checkInt(L, 4))
	return 0
}

// m:apply_vertical_tunnel(y1, y2, x)
func (e *Engine) mapVerticalTunnel(L *lua.LState) int {
	m := e.checkMap(L)
	m.ApplyVerticalTunnel(e.checkInt(L, 2), e.checkInt(L, 3), e.checkInt(L, 4))
	return 0
}

func (e *Engine) mapTileType(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LString(m.Tile(e.checkIndex(L, 2, m)).Type.String()))
	return 1
}

// m:set_tile(idx, "wall" | "floor")
func (e *Engine) mapSetTile(L *lua.LState) int {
	m := e.checkMap(L)
	idx := e.checkIndex(L, 2, m)
	t, err := gamemap.ParseTileType(e.checkString(L, 3))
	if err != nil {
		return e.argError(L, 3, "%v", err)
	}
	m.SetTile(idx, t)
	return 0
}

func (e *Engine) mapIsWalkable(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LBool(m.IsWalkable(e.checkIndex(L, 2, m))))
	return 1
}

// m:fov(x, y, range) -> {Point, ...}
func (e *Engine) mapFOV(L *lua.LState) int {
	m := e.checkMap(L)
	origin := geom.Point{X: e.checkInt(L, 2), Y: e.checkInt(L, 3)}
	pts := m.FieldOfView(origin, e.checkInt(L, 4))
	t := L.CreateTable(len(pts), 0)
	for i := range pts {
		p := pts[i]
		t.RawSetInt(i+1, newUD(L, &p, "Point"))
	}
	L.Push(t)
	return 1
}

// m:a_star(start, end) -> {success = bool, steps = {idx, ...}}
func (e *Engine) mapAStar(L *lua.LState) int {
	m := e.checkMap(L)
	path := m.AStar(e.checkIndex(L, 2, m), e.checkIndex(L, 3, m))
	t := L.CreateTable(0, 2)
	t.RawSetString("success", lua.LBool(path.Success))
	t.RawSetString("steps", intArray(L, path.Steps))
	L.Push(t)
	return 1
}

func (e *Engine) mapRevealTile(L *lua.LState) int {
	m := e.checkMap(L)
	m.RevealTile(e.checkIndex(L, 2, m))
	return 0
}

func (e *Engine) mapShowTile(L *lua.LState) int {
	m := e.checkMap(L)
	m.ShowTile(e.checkIndex(L, 2, m))
	return 0
}

func (e *Engine) mapIsVisible(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LBool(m.Visible(e.checkIndex(L, 2, m))))
	return 1
}

func (e *Engine) mapIsRevealed(L *lua.LState) int {
	m := e.checkMap(L)
	L.Push(lua.LBool(m.Revealed(e.checkIndex(L, 2, m))))
	return 1
}

func (e *Engine) mapClearVisible(L *lua.LState) int {
	e.checkMap(L).ClearVisible()
	return 0
}

func (e *Engine) mapPopulateBlocked(L *lua.LState) int {
	e.checkMap(L).PopulateBlocked()
	return 0
}

func (e *Engine) mapBlockTile(L *lua.LState) int {
	m := e.checkMap(L)
	m.BlockTile(e.checkIndex(L, 2, m))
	return 0
}

func (e *Engine) mapClearIndexed(L *lua.LState) int {
	e.checkMap(L).ClearIndexedEntities()
	return 0
}

// m:index_entity(idx, e)
func (e *Engine) mapIndexEntity(L *lua.LState) int {
	m := e.checkMap(L)
	m.IndexEntity(e.checkIndex(L, 2, m), e.checkEntity(L, 3))
	return 0
}

func (e *Engine) mapEntitiesAt(L *lua.LState) int {
	m := e.checkMap(L)
	ents := m.EntitiesAt(e.checkIndex(L, 2, m))
	t := L.CreateTable(len(ents), 0)
	for i, id := range ents {
		t.RawSetInt(i+1, lua.LNumber(id))
	}
	L.Push(t)
	return 1
}
