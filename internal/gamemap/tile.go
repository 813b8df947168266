package gamemap

import (
	"fmt"

	"github.com/glyphkeep/glyphkeep/internal/color"
)

type TileType uint8

const (
	Wall TileType = iota
	Floor
)

func (t TileType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	}
	return fmt.Sprintf("TileType(%d)", uint8(t))
}

// ParseTileType is the inverse of String.
func ParseTileType(s string) (TileType, error) {
	switch s {
	case "wall":
		return Wall, nil
	case "floor":
		return Floor, nil
	}
	return 0, fmt.Errorf("unknown tile type %q", s)
}

// Tile is one grid cell. FG/BG are used while the cell is in view, the Fog
// variants once it has only been revealed. Tiles are values and never
// mutated after construction.
type Tile struct {
	Type    TileType
	Glyph   uint16
	FG      color.RGB
	FGFog   color.RGB
	BG      color.RGB
	BGFog   color.RGB
	Console int
}

// WeightedGlyph is one choice in a tile's glyph table.
type WeightedGlyph struct {
	Glyph  uint16
	Weight int
}

// TileSpec describes how to build tiles of one type.
type TileSpec struct {
	Glyphs  []WeightedGlyph
	FG      color.RGB
	FGFog   color.RGB
	BG      color.RGB
	BGFog   color.RGB
	Console int
}

// TileSet holds the specs for every tile type.
type TileSet struct {
	Wall  TileSpec
	Floor TileSpec
}

// Rand is the randomness the map needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

func (s *TileSet) spec(t TileType) *TileSpec {
	if t == Floor {
		return &s.Floor
	}
	return &s.Wall
}

// Build constructs a tile, picking its glyph by weight.
func (s *TileSet) Build(t TileType, rng Rand) Tile {
	sp := s.spec(t)
	return Tile{
		Type:    t,
		Glyph:   pickWeighted(sp.Glyphs, rng),
		FG:      sp.FG,
		FGFog:   sp.FGFog,
		BG:      sp.BG,
		BGFog:   sp.BGFog,
		Console: sp.Console,
	}
}

func pickWeighted(choices []WeightedGlyph, rng Rand) uint16 {
	total := 0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total == 0 {
		if len(choices) > 0 {
			return choices[0].Glyph
		}
		return 0
	}
	n := rng.Intn(total)
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		if n < c.Weight {
			return c.Glyph
		}
		n -= c.Weight
	}
	return choices[len(choices)-1].Glyph
}

// SpriteIndex converts a pixel offset in a 16-column, 8px sprite sheet into
// a glyph code.
func SpriteIndex(x, y int) uint16 {
	return uint16(x/8 + y/8*16)
}

// DefaultTileSet is the built-in palette used when no tile table is loaded.
func DefaultTileSet() *TileSet {
	return &TileSet{
		Wall: TileSpec{
			Glyphs: []WeightedGlyph{
				{185, 1}, {186, 1}, {187, 20}, {188, 20}, {189, 1},
			},
			FG:    color.MustHex("#cd8500"),
			FGFog: color.Grey(20),
			BG:    color.MustHex("#2d1e00"),
			BGFog: color.MustHex("#090012"),
		},
		Floor: TileSpec{
			Glyphs: []WeightedGlyph{
				{SpriteIndex(0, 256), 200},
				{SpriteIndex(40, 72), 1},
				{SpriteIndex(56, 112), 1},
				{SpriteIndex(64, 112), 1},
				{SpriteIndex(112, 224), 1},
				{SpriteIndex(120, 224), 1},
				{SpriteIndex(112, 232), 1},
				{SpriteIndex(120, 232), 1},
				{SpriteIndex(24, 16), 1},
			},
			FG:    color.Grey(15),
			FGFog: color.Grey(5),
			BG:    color.Grey(3),
			BGFog: color.Black,
		},
	}
}
