// Package gamemap is the spatial grid: terrain, rooms, visibility,
// per-cell occupancy and the glue to field-of-view and pathfinding.
package gamemap

import (
	"errors"
	"fmt"

	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/geom"
)

var (
	ErrRoomOutOfRange  = errors.New("room id out of range")
	ErrIndexOutOfRange = errors.New("tile index out of range")
)

// Map is a row-major grid (idx = y*Width + x). All per-cell slices are
// always exactly Width*Height long. Accessed only from the game loop.
type Map struct {
	Width  int
	Height int

	tiles       []Tile
	revealed    []bool
	visible     []bool
	blocked     []bool
	tileContent [][]ecs.Entity
	rooms       []geom.Rect

	// Diagonals enables the four diagonal exits in pathfinding.
	Diagonals bool

	tileSet *TileSet
	rng     Rand
	sight   geom.Sight
	paths   geom.Pathfinder
}

// Option configures a Map at construction.
type Option func(*Map)

// WithDiagonals toggles diagonal movement for pathfinding.
func WithDiagonals(on bool) Option {
	return func(m *Map) { m.Diagonals = on }
}

// WithSight replaces the field-of-view algorithm.
func WithSight(s geom.Sight) Option {
	return func(m *Map) { m.sight = s }
}

// WithPathfinder replaces the path search algorithm.
func WithPathfinder(p geom.Pathfinder) Option {
	return func(m *Map) { m.paths = p }
}

// New allocates a width x height map filled with walls. tiles may be nil to
// use DefaultTileSet.
func New(width, height int, tiles *TileSet, rng Rand, opts ...Option) *Map {
	if tiles == nil {
		tiles = DefaultTileSet()
	}
	size := width * height
	m := &Map{
		Width:       width,
		Height:      height,
		tiles:       make([]Tile, size),
		revealed:    make([]bool, size),
		visible:     make([]bool, size),
		blocked:     make([]bool, size),
		tileContent: make([][]ecs.Entity, size),
		rooms:       make([]geom.Rect, 0, 16),
		Diagonals:   true,
		tileSet:     tiles,
		rng:         rng,
		sight:       geom.ShadowRays{},
		paths:       geom.AStar{MaxSteps: 65536},
	}
	for _, o := range opts {
		o(m)
	}
	for i := range m.tiles {
		m.tiles[i] = tiles.Build(Wall, rng)
	}
	return m
}

// Size returns Width*Height.
func (m *Map) Size() int {
	return len(m.tiles)
}

func (m *Map) XYIdx(x, y int) int {
	return y*m.Width + x
}

func (m *Map) IdxXY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// InBounds reports whether (x, y) is on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// CheckIndex returns ErrIndexOutOfRange for an index outside the grid.
func (m *Map) CheckIndex(idx int) error {
	if idx < 0 || idx >= len(m.tiles) {
		return fmt.Errorf("index %d (size %d): %w", idx, len(m.tiles), ErrIndexOutOfRange)
	}
	return nil
}

// Tile returns the tile at idx.
func (m *Map) Tile(idx int) Tile {
	return m.tiles[idx]
}

// SetTile rebuilds the tile at idx with a fresh appearance for t.
func (m *Map) SetTile(idx int, t TileType) {
	m.tiles[idx] = m.tileSet.Build(t, m.rng)
}

// AddRoom appends r to the room registry.
func (m *Map) AddRoom(r geom.Rect) {
	m.rooms = append(m.rooms, r)
}

// Room returns the room registered under id (0-based).
func (m *Map) Room(id int) (geom.Rect, error) {
	if id < 0 || id >= len(m.rooms) {
		return geom.Rect{}, fmt.Errorf("room %d (have %d): %w", id, len(m.rooms), ErrRoomOutOfRange)
	}
	return m.rooms[id], nil
}

// Rooms returns a copy of the room registry in insertion order.
func (m *Map) Rooms() []geom.Rect {
	out := make([]geom.Rect, len(m.rooms))
	copy(out, m.rooms)
	return out
}
