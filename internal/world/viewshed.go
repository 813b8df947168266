package world

import (
	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/geom"
)

// UpdateViewsheds recomputes every dirty viewshed. The player's viewshed
// also drives the map: visible is cleared and rebuilt, revealed only grows.
// Returns the number of viewsheds recomputed.
func UpdateViewsheds(w *ecs.World, m *gamemap.Map) int {
	n := 0
	ecs.Each2(w, func(e ecs.Entity, pos *component.Position, vs *component.Viewshed) {
		if !vs.Dirty {
			return
		}
		vs.Dirty = false
		n++

		pts := m.FieldOfView(geom.Point{X: pos.X, Y: pos.Y}, vs.Range)
		vs.Visible = vs.Visible[:0]
		for _, p := range pts {
			vs.Visible = append(vs.Visible, m.XYIdx(p.X, p.Y))
		}

		if _, isPlayer := w.Component(e, "Player"); !isPlayer {
			return
		}
		m.ClearVisible()
		for _, idx := range vs.Visible {
			m.RevealTile(idx)
			m.ShowTile(idx)
		}
	})
	return n
}

// CanSee reports whether idx is in e's current viewshed.
func CanSee(w *ecs.World, e ecs.Entity, idx int) bool {
	vs, ok := ecs.Get[*component.Viewshed](w, e)
	if !ok {
		return false
	}
	for _, v := range vs.Visible {
		if v == idx {
			return true
		}
	}
	return false
}
