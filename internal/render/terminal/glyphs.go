package terminal

import "golang.org/x/text/encoding/charmap"

// cp437Low are the graphic forms of CP437 0x00-0x1F, which the charmap
// decodes as control characters.
var cp437Low = []rune(" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼")

// GlyphTable maps glyph codes to runes. Overrides win; codes below 256 fall
// back to code page 437; anything else renders as '?'.
type GlyphTable struct {
	overrides map[uint16]rune
}

func NewGlyphTable(overrides map[uint16]rune) *GlyphTable {
	if overrides == nil {
		overrides = map[uint16]rune{}
	}
	return &GlyphTable{overrides: overrides}
}

func (t *GlyphTable) Rune(code uint16) rune {
	if r, ok := t.overrides[code]; ok {
		return r
	}
	switch {
	case code < 0x20:
		return cp437Low[code]
	case code < 0x100:
		return charmap.CodePage437.DecodeByte(byte(code))
	}
	return '?'
}
