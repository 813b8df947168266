package world

import (
	"github.com/glyphkeep/glyphkeep/internal/component"
	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
)

// IndexMap rebuilds the per-tick spatial state of m from w: terrain
// blocking first, then every positioned entity is indexed at its cell and
// entities with BlocksTile block it. Entities off the grid are skipped.
func IndexMap(w *ecs.World, m *gamemap.Map) {
	m.PopulateBlocked()
	m.ClearIndexedEntities()
	for _, row := range w.Query("Position") {
		pos, ok := row.Components[0].(*component.Position)
		if !ok || !m.InBounds(pos.X, pos.Y) {
			continue
		}
		idx := m.XYIdx(pos.X, pos.Y)
		if _, blocks := w.Component(row.Entity, "BlocksTile"); blocks {
			m.BlockTile(idx)
		}
		m.IndexEntity(idx, row.Entity)
	}
}
