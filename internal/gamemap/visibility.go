package gamemap

import "github.com/glyphkeep/glyphkeep/internal/geom"

func (m *Map) RevealTile(idx int) { m.revealed[idx] = true }

func (m *Map) ShowTile(idx int) { m.visible[idx] = true }

func (m *Map) Visible(idx int) bool { return m.visible[idx] }

func (m *Map) Revealed(idx int) bool { return m.revealed[idx] }

// ClearVisible hides every cell. Revealed cells stay revealed.
func (m *Map) ClearVisible() {
	for i := range m.visible {
		m.visible[i] = false
	}
}

// Dimensions and IsOpaque let the map serve as a geom.OpacityMap.
func (m *Map) Dimensions() (int, int) {
	return m.Width, m.Height
}

func (m *Map) IsOpaque(idx int) bool {
	return m.tiles[idx].Type == Wall
}

// FieldOfView returns the cells visible from origin within radius, sorted
// by index. An empty result is a valid answer, not an error.
func (m *Map) FieldOfView(origin geom.Point, radius int) []geom.Point {
	return m.sight.FieldOfView(origin, radius, m)
}
