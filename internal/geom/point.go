// Package geom holds grid geometry and the field-of-view and pathfinding
// algorithms the map delegates to.
package geom

import "math"

// Point is a grid coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Distance2D is the Pythagorean distance between two points.
func Distance2D(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle. X2/Y2 are exclusive when carving rooms.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// NewRect builds a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (r Rect) Width() int  { return r.X2 - r.X1 }
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Intersect reports whether r and o overlap or touch.
func (r Rect) Intersect(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

func (r Rect) Center() Point {
	return Point{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

// Contains reports whether p lies in [X1,X2) x [Y1,Y2).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}
