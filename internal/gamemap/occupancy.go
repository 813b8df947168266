package gamemap

import "github.com/glyphkeep/glyphkeep/internal/core/ecs"

// IsWalkable reports whether idx can be entered: terrain and blocking
// entities are both folded into the blocked grid.
func (m *Map) IsWalkable(idx int) bool {
	return !m.blocked[idx]
}

// PopulateBlocked recomputes blocked from terrain alone. Call it after
// terrain edits and before BlockTile marks occupied cells.
func (m *Map) PopulateBlocked() {
	for i, t := range m.tiles {
		m.blocked[i] = t.Type == Wall
	}
}

// BlockTile marks idx as occupied by a blocking entity.
func (m *Map) BlockTile(idx int) {
	m.blocked[idx] = true
}

// ClearIndexedEntities empties every cell's occupant list. Backing arrays
// are kept so per-tick re-indexing does not reallocate.
func (m *Map) ClearIndexedEntities() {
	for i := range m.tileContent {
		m.tileContent[i] = m.tileContent[i][:0]
	}
}

// IndexEntity records e as an occupant of idx.
func (m *Map) IndexEntity(idx int, e ecs.Entity) {
	m.tileContent[idx] = append(m.tileContent[idx], e)
}

// EntitiesAt returns a copy of idx's occupants in insertion order.
func (m *Map) EntitiesAt(idx int) []ecs.Entity {
	src := m.tileContent[idx]
	out := make([]ecs.Entity, len(src))
	copy(out, src)
	return out
}
