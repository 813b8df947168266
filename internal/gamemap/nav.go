package gamemap

import "github.com/glyphkeep/glyphkeep/internal/geom"

const (
	cardinalCost = 1.0
	diagonalCost = 1.45
)

var (
	cardinals = [4]geom.Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
	diagonals = [4]geom.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}
)

// isExitValid reports whether (x, y) is on the grid and not blocked.
func (m *Map) isExitValid(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.blocked[m.XYIdx(x, y)]
}

// Exits lists the cells reachable in one step from idx.
func (m *Map) Exits(idx int) []geom.Exit {
	x, y := m.IdxXY(idx)
	exits := make([]geom.Exit, 0, 8)
	for _, d := range cardinals {
		if m.isExitValid(x+d.X, y+d.Y) {
			exits = append(exits, geom.Exit{Idx: m.XYIdx(x+d.X, y+d.Y), Cost: cardinalCost})
		}
	}
	if m.Diagonals {
		for _, d := range diagonals {
			if m.isExitValid(x+d.X, y+d.Y) {
				exits = append(exits, geom.Exit{Idx: m.XYIdx(x+d.X, y+d.Y), Cost: diagonalCost})
			}
		}
	}
	return exits
}

// Distance is the Pythagorean distance between two cell indices.
func (m *Map) Distance(a, b int) float64 {
	ax, ay := m.IdxXY(a)
	bx, by := m.IdxXY(b)
	return geom.Distance2D(geom.Point{X: ax, Y: ay}, geom.Point{X: bx, Y: by})
}

// AStar finds a path from start to end over unblocked cells.
func (m *Map) AStar(start, end int) geom.NavigationPath {
	return m.paths.Path(start, end, m)
}
