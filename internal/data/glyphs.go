package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// LoadGlyphTable loads glyphs.yaml, a map from glyph code to the single
// character drawn for it. A missing file yields an empty table.
func LoadGlyphTable(path string) (map[uint16]rune, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[uint16]rune{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read glyph table: %w", err)
	}
	return ParseGlyphTable(raw)
}

func ParseGlyphTable(raw []byte) (map[uint16]rune, error) {
	var entries map[uint16]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse glyph table: %w", err)
	}
	out := make(map[uint16]rune, len(entries))
	for code, s := range entries {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return nil, fmt.Errorf("glyph %d: %q is not a single character", code, s)
		}
		out[code] = r
	}
	return out, nil
}
