package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

func newTestEngine(t *testing.T) (*Engine, *game.Context) {
	t.Helper()
	ctx := game.NewContext(game.Settings{Width: 80, Height: 50, Seed: 1, Diagonals: true}, zap.NewNop())
	e := NewEngine(ctx, zap.NewNop())
	t.Cleanup(e.Close)
	return e, ctx
}

func run(t *testing.T, e *Engine, src string) {
	t.Helper()
	if err := e.DoString(src); err != nil {
		t.Fatal(err)
	}
}

func TestWorldFromLua(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		local w = World.new()
		local Health = Component("Health")
		local p = w:add_entity({Position{x = 1, y = 2}, Health{hp = 5}})
		local pos, h, missing = w:get_cmp(p, {Position, "Health", "Nope"})
		assert(pos.x == 1 and pos.y == 2, "position")
		assert(h.hp == 5, "health")
		assert(missing == nil, "absent slot")

		pos.x = 9
		assert(w:get_cmp(p, Position).x == 9, "host component is shared")

		w:save("player", p)
		assert(w:fetch("player") == p, "resource")

		local rows = w:query({Position, Health})
		assert(#rows == 1 and rows[1][1] == p and rows[1][3].hp == 5, "query")

		w:del_cmp(p, Health)
		assert(#w:get_entities({Health}) == 0, "del_cmp")
		w:add_cmp(p, Health{hp = 7})

		local other = w:add_entity({Position(3, 4)})
		assert(other == p + 1, "ids are sequential")
		w:clear_cmp(Position)
		assert(#w:get_entities({Position}) == 0, "clear_cmp")
		w:delete(other)
		assert(not w:alive(other) and w:alive(p) and w:count() == 1, "delete")
	`)

	if ctx.World.Len() != 1 {
		t.Fatalf("context world has %d entities", ctx.World.Len())
	}
	c, ok := ctx.World.Component(1, "Health")
	if !ok {
		t.Fatal("Health not stored")
	}
	tc, ok := c.(*TableComponent)
	if !ok || tc.Table.RawGetString("hp") != lua.LNumber(7) {
		t.Errorf("Health = %#v", c)
	}
	if _, ok := ecs.Get[*component.Position](ctx.World, 1); ok {
		t.Error("Position survived clear_cmp")
	}
}

func TestHostComponentFields(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		local w = World.new()
		w:add_entity({
			Renderable{glyph = "@", fg = Color(1, 0, 0), order = 2},
			Name{name = "hero"},
			CombatStats{max_hp = 30, hp = 30, defense = 2, power = 5},
		})
	`)
	r, ok := ecs.Get[*component.Renderable](ctx.World, 1)
	if !ok || r.Glyph != '@' || r.FG != color.New(1, 0, 0) || r.Order != 2 {
		t.Errorf("Renderable = %+v", r)
	}
	n, _ := ecs.Get[*component.Name](ctx.World, 1)
	s, _ := ecs.Get[*component.CombatStats](ctx.World, 1)
	if n == nil || n.Name != "hero" || s == nil || s.Power != 5 {
		t.Errorf("Name = %+v, CombatStats = %+v", n, s)
	}

	for _, src := range []string{
		`Position{z = 1}`,
		`Position{x = "one"}`,
		`Viewshed{visible = {}}`,
		`Position(1, 2, 3)`,
	} {
		if err := e.DoString(src); !errors.Is(err, ErrBadArgument) {
			t.Errorf("%s: err = %v", src, err)
		}
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"fetch missing", `World.new():fetch("nope")`, ecs.ErrResourceNotFound},
		{"bad glyph", `set(1, 2, {}, Color(1, 1, 1), Color(0, 0, 0))`, ErrBadArgument},
		{"bad colour", `set(1, 2, 64, "red", Color(0, 0, 0))`, ErrBadArgument},
		{"room out of range", `Map.new(5, 5):get_room(0)`, gamemap.ErrRoomOutOfRange},
		{"index out of range", `Map.new(5, 5):is_walkable(25)`, gamemap.ErrIndexOutOfRange},
		{"built-in name", `Component("Position")`, ErrBadArgument},
		{"not a component", `World.new():add_entity({42})`, ErrBadArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			err := e.DoString(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var se *ScriptError
			if !errors.As(err, &se) || se.Msg == "" {
				t.Errorf("err is not a ScriptError: %#v", err)
			}
		})
	}
}

func TestCaughtFaultIsNotReported(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.DoString(`
		assert(not pcall(function() set() end))
		error("later failure")
	`)
	if err == nil || !strings.Contains(err.Error(), "later failure") {
		t.Fatalf("err = %v", err)
	}
	if errors.Is(err, ErrBadArgument) {
		t.Error("stale argument fault attached to an unrelated error")
	}
}

func TestMapFromLua(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		local m = Map.new(10, 10)
		assert(m.width == 10 and m.height == 10, "size")
		local r = Rect(1, 1, 4, 4)
		m:apply_room(r)
		m:add_room(r)
		assert(m:tile_type(m:xy_idx(1, 1)) == "floor", "room start")
		assert(m:tile_type(m:xy_idx(4, 4)) == "floor", "room end")
		assert(m:tile_type(m:xy_idx(5, 5)) == "wall", "outside room")
		assert(#m:get_rooms() == 1, "rooms")
		local cx, cy = m:get_room(0):center()
		assert(cx == 3 and cy == 3, "center")

		m:populate_blocked()
		local path = m:a_star(m:xy_idx(1, 1), m:xy_idx(4, 4))
		assert(path.success and #path.steps == 3 and path.steps[3] == m:xy_idx(4, 4), "path")
		assert(not m:a_star(m:xy_idx(1, 1), m:xy_idx(8, 8)).success, "no path")

		m:clear_indexed_entities()
		m:index_entity(m:xy_idx(2, 2), 7)
		m:index_entity(m:xy_idx(2, 2), 9)
		local at = m:entities_at(m:xy_idx(2, 2))
		assert(#at == 2 and at[1] == 7 and at[2] == 9, "occupancy")
		assert(#m:entities_at(m:xy_idx(3, 3)) == 0, "empty cell")

		local seen = m:fov(2, 2, 3)
		assert(#seen > 0 and seen[1].x ~= nil, "fov")
		local px, py = m:idx_xy(m:xy_idx(3, 4))
		assert(px == 3 and py == 4, "idx_xy")

		m:apply_horizontal_tunnel(5, 8, 2)
		assert(m:is_walkable(m:xy_idx(8, 2)) == false, "blocked grid is not refreshed by carving")
		m:populate_blocked()
		assert(m:is_walkable(m:xy_idx(8, 2)), "tunnel")
		m:set_tile(m:xy_idx(8, 2), "wall")
		assert(m:tile_type(m:xy_idx(8, 2)) == "wall", "set_tile")

		m:reveal_tile(0)
		m:show_tile(0)
		assert(m:is_revealed(0) and m:visible_tile(0), "visibility")
		m:clear_visible_tiles()
		assert(not m:is_visible(0) and m:is_revealed(0), "clear visible")
	`)
	if ctx.Map == nil || ctx.Map.Width != 10 {
		t.Fatal("Map.new did not replace the context map")
	}
}

func TestDrawingQueuesCommands(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		cls()
		set(1, 2, 64, Color(1, 0, 0), Color(0, 0, 0))
		set(3, 4, "@", Color.hex("#00ff00"), Color(0, 0, 0))
		console(2)
		set_bg(0, 0, Color(0, 0, 1))
		print(0, 1, "hi")
		scanlines(true)
		burn(Color.named("orange"))
		exit()
	`)
	black, orange := color.Black, color.MustHex("#ffa500")
	want := []render.Command{
		render.Clear{},
		render.SetCell{X: 1, Y: 2, Glyph: 64, FG: color.New(1, 0, 0), BG: black, Console: render.ConsoleMap},
		render.SetCell{X: 3, Y: 4, Glyph: 64, FG: color.New(0, 1, 0), BG: black, Console: render.ConsoleText},
		render.SwitchConsole{ID: 2},
		render.SetBackground{X: 0, Y: 0, BG: color.New(0, 0, 1)},
		render.SwitchConsole{ID: render.ConsoleUI},
		render.PrintText{X: 0, Y: 1, Text: "hi", FG: color.White, BG: black},
		render.SetScanlines{Enabled: true},
		render.SetGlow{Color: orange},
		render.RequestExit{},
	}
	got := ctx.Queue.Drain()
	if len(got) != len(want) {
		t.Fatalf("queued %d commands, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestViewshedsFromLua(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		local m = Map.new(10, 10)
		m:apply_room(Rect(1, 1, 8, 8))
		local w = World.new()
		local p = w:add_entity({
			Position{x = 4, y = 4},
			Viewshed{range = 6, dirty = true},
			Player{},
			Renderable{glyph = "@", fg = Color(1, 1, 1), bg = Color(0, 0, 0)},
		})
		index_map(w, m)
		assert(m:is_walkable(m:xy_idx(4, 4)), "player does not block")
		assert(update_viewsheds(w, m) == 1, "recomputed")
		assert(can_see(w, p, m:xy_idx(5, 5)) and not can_see(w, p, m:xy_idx(9, 9)), "can_see")
		assert(m:is_visible(m:xy_idx(5, 5)) and m:is_revealed(m:xy_idx(5, 5)), "map visibility")
		local vs = w:get_cmp(p, Viewshed)
		assert(not vs.dirty and #vs.visible > 0, "viewshed")
		draw_map(m)
		draw_entities(w, m)
	`)
	cmds := ctx.Queue.Drain()
	if len(cmds) == 0 {
		t.Fatal("nothing drawn")
	}
	last, ok := cmds[len(cmds)-1].(render.SetCell)
	if !ok || last.Glyph != '@' || last.X != 4 || last.Y != 4 {
		t.Errorf("last command = %#v, want the player", cmds[len(cmds)-1])
	}
}

func TestValuesFromLua(t *testing.T) {
	e, _ := newTestEngine(t)
	run(t, e, `
		assert(dist2d(Point(0, 0), Point(3, 4)) == 5, "dist2d points")
		assert(dist2d(Position{x = 0, y = 0}, {x = 0, y = 2}) == 2, "dist2d mixed")
		assert(ss_idx(8, 8) == 17, "ss_idx")

		local p = Point(1, 2)
		p.x = 5
		assert(p.x == 5 and p.y == 2, "point")

		local a, b = Rect(0, 0, 5, 5), Rect(4, 4, 2, 2)
		assert(a:intersect(b) and not a:intersect(Rect(10, 10, 1, 1)), "intersect")
		assert(a.x2 == 5 and a.width == 5, "rect fields")

		local c = Color(1, 0.5, 0)
		assert(c.r == 1 and c.b == 0, "color fields")
		assert(tostring(Color.hex("#ff0000")) == "#ff0000", "tostring")
		assert(Color(0, 0, 0):lerp(Color(1, 1, 1), 0.5).g == 0.5, "lerp")

		local r = RNG.new(7)
		for i = 1, 50 do
			local d = r:roll_dice(3, 6)
			assert(d >= 3 and d <= 18, "dice")
			local v = r:range(2, 5)
			assert(v >= 2 and v < 5, "range")
		end
		assert(r:range(4, 4) == 4, "empty range")
	`)
}

func TestUpdatePublishesInput(t *testing.T) {
	e, ctx := newTestEngine(t)
	run(t, e, `
		function init() inited = true end
		function update()
			last = key .. "@" .. mouse_x .. "," .. mouse_y
			pressed = key_pressed("a")
		end
	`)
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	if e.vm.GetGlobal("inited") != lua.LTrue {
		t.Error("init not called")
	}

	ctx.Input = game.Input{Key: "a", MouseX: 3, MouseY: 4}
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if got := lua.LVAsString(e.vm.GetGlobal("last")); got != "a@3,4" {
		t.Errorf("last = %q", got)
	}
	if e.vm.GetGlobal("pressed") != lua.LTrue {
		t.Error("key_pressed false")
	}

	ctx.Input = game.Input{}
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if got := lua.LVAsString(e.vm.GetGlobal("last")); got != "@0,0" {
		t.Errorf("last after release = %q", got)
	}
}

func TestMissingCallbacks(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.Init(); err != nil {
		t.Errorf("optional init: %v", err)
	}
	if err := e.Update(); !errors.Is(err, ErrMissingCallback) {
		t.Errorf("update err = %v", err)
	}
}

func TestLogFromLua(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := game.NewContext(game.Settings{Width: 80, Height: 50}, zap.NewNop())
	e := NewEngine(ctx, zap.New(core))
	defer e.Close()

	run(t, e, `
		log.add("one")
		log:add("two")
		local all = log.get()
		assert(#all == 2 and all[2] == "two", "log.get")
		World.new():add_cmp(42, Position{x = 1})
		console_log("debug", 3)
	`)
	msgs := ctx.Log.Messages()
	if len(msgs) != 3 || msgs[2] != "cannot add components - entity 42 does not exist" {
		t.Errorf("game log = %q", msgs)
	}
	if logs.FilterMessage("console_log").Len() != 1 {
		t.Error("console_log not logged")
	}
}

func TestLoadScriptDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"helpers.lua": `return { double = function(n) return n * 2 end }`,
		"main.lua":    `local h = require("helpers"); answer = h.double(21)`,
		"broken.lua":  `this is not lua`,
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e, _ := newTestEngine(t)
	if err := e.Load(dir, "main.lua"); err != nil {
		t.Fatal(err)
	}
	if e.vm.GetGlobal("answer") != lua.LNumber(42) {
		t.Errorf("answer = %v", e.vm.GetGlobal("answer"))
	}

	var se *ScriptError
	if err := e.Load(dir, "broken.lua"); !errors.As(err, &se) {
		t.Errorf("broken script err = %v", err)
	}
}

func TestBundledGame(t *testing.T) {
	e, ctx := newTestEngine(t)
	if err := e.Load(filepath.Join("..", "..", "scripts"), "main.lua"); err != nil {
		t.Fatal(err)
	}
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "left", "l", "k", "j", "y", "n", "h"} {
		ctx.Input = game.Input{Key: key}
		if err := e.Update(); err != nil {
			t.Fatalf("key %q: %v", key, err)
		}
		if len(ctx.Queue.Drain()) == 0 {
			t.Fatalf("key %q: nothing drawn", key)
		}
	}
	if msgs := ctx.Log.Messages(); len(msgs) == 0 || msgs[0] != "Welcome to the dungeon." {
		t.Errorf("log = %v", msgs)
	}

	ctx.Input = game.Input{Key: "q"}
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	cmds := ctx.Queue.Drain()
	if len(cmds) != 1 || cmds[0] != (render.RequestExit{}) {
		t.Errorf("quit queued %#v", cmds)
	}
}
