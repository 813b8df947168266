package world

import (
	"sort"

	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

// DrawMap queues every revealed tile: lit colours while visible, fog
// colours once merely remembered. Each tile targets its own console.
func DrawMap(m *gamemap.Map, q *render.Queue) {
	for idx := 0; idx < m.Size(); idx++ {
		if !m.Revealed(idx) {
			continue
		}
		t := m.Tile(idx)
		fg, bg := t.FGFog, t.BGFog
		if m.Visible(idx) {
			fg, bg = t.FG, t.BG
		}
		x, y := m.IdxXY(idx)
		q.Push(render.SetCell{X: x, Y: y, Glyph: t.Glyph, FG: fg, BG: bg, Console: t.Console})
	}
}

// DrawEntities queues every renderable entity standing on a visible cell,
// lowest Order first so items sit under monsters.
func DrawEntities(w *ecs.World, m *gamemap.Map, q *render.Queue) {
	type drawable struct {
		pos *component.Position
		r   *component.Renderable
	}
	var list []drawable
	ecs.Each2(w, func(_ ecs.Entity, pos *component.Position, r *component.Renderable) {
		if !m.InBounds(pos.X, pos.Y) || !m.Visible(m.XYIdx(pos.X, pos.Y)) {
			return
		}
		list = append(list, drawable{pos, r})
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].r.Order < list[j].r.Order })
	for _, d := range list {
		q.Push(render.SetCell{
			X: d.pos.X, Y: d.pos.Y,
			Glyph: d.r.Glyph, FG: d.r.FG, BG: d.r.BG,
			Console: d.r.Console,
		})
	}
}
