// Package color holds the RGB value type shared by tiles, components and the
// render command queue.
package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var ErrBadColor = errors.New("bad color")

// RGB is a colour with channels in [0,1].
type RGB struct {
	R, G, B float32
}

var (
	Black = RGB{}
	White = RGB{1, 1, 1}
)

// New clamps each channel into [0,1].
func New(r, g, b float32) RGB {
	return RGB{clamp(r), clamp(g), clamp(b)}
}

// FromBytes builds a colour from 0-255 channels.
func FromBytes(r, g, b uint8) RGB {
	return RGB{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// FromHex parses "#rrggbb" (the leading # is optional).
func FromHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("hex %q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("hex %q: %w", s, ErrBadColor)
	}
	return FromBytes(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustHex is FromHex for package-level tables.
func MustHex(s string) RGB {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Named resolves a W3C/X11 colour name ("orange", "darkslategray") or a
// "#rrggbb" string through tcell's colour table.
func Named(name string) (RGB, error) {
	c := tcell.GetColor(strings.ToLower(name))
	if c == tcell.ColorDefault {
		return RGB{}, fmt.Errorf("name %q: %w", name, ErrBadColor)
	}
	r, g, b := c.RGB()
	if r < 0 {
		return RGB{}, fmt.Errorf("name %q: %w", name, ErrBadColor)
	}
	return FromBytes(uint8(r), uint8(g), uint8(b)), nil
}

// Grey returns a neutral grey at the given percentage, like "grey20".
func Grey(pct int) RGB {
	v := clamp(float32(pct) / 100)
	return RGB{v, v, v}
}

// Lerp moves c towards o by t.
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Scale multiplies every channel by f.
func (c RGB) Scale(f float32) RGB {
	return New(c.R*f, c.G*f, c.B*f)
}

func (c RGB) Bytes() (uint8, uint8, uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

// TCell converts to a true-colour tcell colour.
func (c RGB) TCell() tcell.Color {
	r, g, b := c.Bytes()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (c RGB) String() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func toByte(v float32) uint8 {
	return uint8(clamp(v)*255 + 0.5)
}
