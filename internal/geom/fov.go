package geom

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// OpacityMap is what field-of-view needs from a grid.
type OpacityMap interface {
	Dimensions() (w, h int)
	IsOpaque(idx int) bool
}

// Sight computes the cells visible from an origin.
type Sight interface {
	FieldOfView(origin Point, radius int, m OpacityMap) []Point
}

// ShadowRays casts a Bresenham ray from the origin to every cell on the
// bounding square of the radius. A ray stops after the first opaque cell,
// which is itself visible, so walls bounding a room are lit.
type ShadowRays struct{}

func (ShadowRays) FieldOfView(origin Point, radius int, m OpacityMap) []Point {
	w, h := m.Dimensions()
	if !inBounds(origin, w, h) {
		return nil
	}
	seen := mapset.New[Point]()
	seen.Put(origin)
	if radius > 0 {
		r2 := radius * radius
		for _, edge := range square(origin, radius) {
			for _, p := range Line(origin, edge)[1:] {
				if !inBounds(p, w, h) {
					break
				}
				dx, dy := p.X-origin.X, p.Y-origin.Y
				if dx*dx+dy*dy > r2 {
					break
				}
				seen.Put(p)
				if m.IsOpaque(p.Y*w + p.X) {
					break
				}
			}
		}
	}

	out := make([]Point, 0, seen.Size())
	seen.Each(func(p Point) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// square lists the cells at Chebyshev distance r from c.
func square(c Point, r int) []Point {
	pts := make([]Point, 0, 8*r)
	for d := -r; d <= r; d++ {
		pts = append(pts,
			Point{c.X + d, c.Y - r},
			Point{c.X + d, c.Y + r},
		)
	}
	for d := -r + 1; d <= r-1; d++ {
		pts = append(pts,
			Point{c.X - r, c.Y + d},
			Point{c.X + r, c.Y + d},
		)
	}
	return pts
}

func inBounds(p Point, w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
