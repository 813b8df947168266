package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
)

// GlyphWeight is one weighted glyph choice. Either Code or Sprite is set;
// Sprite is a pixel offset [x, y] into a 16-column sheet of 8px cells.
type GlyphWeight struct {
	Code   *uint16 `yaml:"code"`
	Sprite []int   `yaml:"sprite"`
	Weight int     `yaml:"weight"`
}

// TileEntry is the yaml form of a gamemap.TileSpec. Colours are "#rrggbb"
// or a named colour.
type TileEntry struct {
	Console int           `yaml:"console"`
	FG      string        `yaml:"fg"`
	FGFog   string        `yaml:"fg_fog"`
	BG      string        `yaml:"bg"`
	BGFog   string        `yaml:"bg_fog"`
	Glyphs  []GlyphWeight `yaml:"glyphs"`
}

type tileFile struct {
	Wall  *TileEntry `yaml:"wall"`
	Floor *TileEntry `yaml:"floor"`
}

// LoadTileSet loads tiles.yaml. A missing file yields the built-in set;
// a type absent from the file keeps its built-in spec.
func LoadTileSet(path string) (*gamemap.TileSet, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return gamemap.DefaultTileSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tile set: %w", err)
	}
	return ParseTileSet(raw)
}

func ParseTileSet(raw []byte) (*gamemap.TileSet, error) {
	var f tileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tile set: %w", err)
	}
	set := gamemap.DefaultTileSet()
	if f.Wall != nil {
		spec, err := f.Wall.spec()
		if err != nil {
			return nil, fmt.Errorf("tile set wall: %w", err)
		}
		set.Wall = spec
	}
	if f.Floor != nil {
		spec, err := f.Floor.spec()
		if err != nil {
			return nil, fmt.Errorf("tile set floor: %w", err)
		}
		set.Floor = spec
	}
	return set, nil
}

func (e *TileEntry) spec() (gamemap.TileSpec, error) {
	var s gamemap.TileSpec
	s.Console = e.Console
	for _, c := range []struct {
		src string
		dst *color.RGB
	}{
		{e.FG, &s.FG}, {e.FGFog, &s.FGFog}, {e.BG, &s.BG}, {e.BGFog, &s.BGFog},
	} {
		rgb, err := parseColor(c.src)
		if err != nil {
			return s, err
		}
		*c.dst = rgb
	}
	for i, g := range e.Glyphs {
		var code uint16
		switch {
		case g.Code != nil:
			code = *g.Code
		case len(g.Sprite) == 2:
			code = gamemap.SpriteIndex(g.Sprite[0], g.Sprite[1])
		default:
			return s, fmt.Errorf("glyph %d: need code or sprite [x, y]", i)
		}
		s.Glyphs = append(s.Glyphs, gamemap.WeightedGlyph{Glyph: code, Weight: g.Weight})
	}
	return s, nil
}

func parseColor(s string) (color.RGB, error) {
	switch {
	case s == "":
		return color.Black, nil
	case strings.HasPrefix(s, "#"):
		return color.FromHex(s)
	}
	return color.Named(s)
}
