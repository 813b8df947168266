package data

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
)

func TestLoadTileSetMissingFile(t *testing.T) {
	set, err := LoadTileSet(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(set, gamemap.DefaultTileSet()) {
		t.Error("missing file did not give the built-in set")
	}
}

func TestParseTileSet(t *testing.T) {
	set, err := ParseTileSet([]byte(`
floor:
  console: 1
  fg: "#ffffff"
  bg: black
  glyphs:
    - {code: 46, weight: 9}
    - {sprite: [8, 16], weight: 1}
`))
	if err != nil {
		t.Fatal(err)
	}
	want := []gamemap.WeightedGlyph{{Glyph: 46, Weight: 9}, {Glyph: 33, Weight: 1}}
	if !reflect.DeepEqual(set.Floor.Glyphs, want) {
		t.Errorf("floor glyphs = %v", set.Floor.Glyphs)
	}
	if set.Floor.Console != 1 || set.Floor.FG != color.White || set.Floor.BG != color.Black {
		t.Errorf("floor spec = %+v", set.Floor)
	}
	if set.Floor.FGFog != color.Black {
		t.Errorf("unset colour = %v, want black", set.Floor.FGFog)
	}
	if !reflect.DeepEqual(set.Wall, gamemap.DefaultTileSet().Wall) {
		t.Error("wall lost its built-in spec")
	}
}

func TestParseTileSetErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "wall: [", "parse tile set"},
		{"colour", "wall: {fg: \"#zz\"}", "tile set wall"},
		{"glyph", "floor: {glyphs: [{weight: 2}]}", "need code or sprite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTileSet([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseGlyphTable(t *testing.T) {
	table, err := ParseGlyphTable([]byte("512: \".\"\n187: \"█\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if table[512] != '.' || table[187] != '█' || len(table) != 2 {
		t.Errorf("table = %v", table)
	}
	if _, err := ParseGlyphTable([]byte("1: \"ab\"\n")); err == nil {
		t.Error("multi-character glyph accepted")
	}
	empty, err := LoadGlyphTable(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil || len(empty) != 0 {
		t.Errorf("missing table = %v, %v", empty, err)
	}
}
