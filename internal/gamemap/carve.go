package gamemap

import "github.com/glyphkeep/glyphkeep/internal/geom"

// ApplyRoom turns every cell in [X1,X2) x [Y1,Y2) into floor. Cells off the
// grid are skipped.
func (m *Map) ApplyRoom(r geom.Rect) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			m.carve(x, y)
		}
	}
}

// ApplyHorizontalTunnel carves row y from x1 to x2 inclusive, in either order.
func (m *Map) ApplyHorizontalTunnel(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.carve(x, y)
	}
}

// ApplyVerticalTunnel carves column x from y1 to y2 inclusive, in either order.
func (m *Map) ApplyVerticalTunnel(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.carve(x, y)
	}
}

func (m *Map) carve(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	idx := m.XYIdx(x, y)
	if m.tiles[idx].Type == Floor {
		return
	}
	m.tiles[idx] = m.tileSet.Build(Floor, m.rng)
}
