package gui

import (
	"testing"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

func cells(t *testing.T, q *render.Queue) map[[2]int]render.SetCell {
	t.Helper()
	out := map[[2]int]render.SetCell{}
	for _, cmd := range q.Drain() {
		c, ok := cmd.(render.SetCell)
		if !ok {
			t.Fatalf("unexpected command %T", cmd)
		}
		out[[2]int{c.X, c.Y}] = c
	}
	return out
}

func TestDrawBox(t *testing.T) {
	q := render.NewQueue()
	DrawBox(q, 2, 3, 4, 3, color.White, color.Black)
	got := cells(t, q)

	// 4x3 frame: 2*4 + 2*1 cells, interior untouched.
	if len(got) != 10 {
		t.Fatalf("drew %d cells, want 10", len(got))
	}
	if _, ok := got[[2]int{3, 4}]; ok {
		t.Error("interior cell drawn")
	}
	want := map[[2]int]uint16{
		{2, 3}: boxTopLeft, {5, 3}: boxTopRight,
		{2, 5}: boxBottomLeft, {5, 5}: boxBottomRight,
		{3, 3}: boxTop, {4, 5}: boxBottom,
		{2, 4}: boxLeft, {5, 4}: boxRight,
	}
	for pos, g := range want {
		if got[pos].Glyph != g {
			t.Errorf("cell %v glyph = %d, want %d", pos, got[pos].Glyph, g)
		}
	}
	if got[[2]int{2, 3}].Console != render.ConsoleMap {
		t.Error("box not on the map console")
	}

	DrawBox(q, 0, 0, 0, 5, color.White, color.Black)
	if q.Len() != 0 {
		t.Error("empty box drew cells")
	}
}

func TestDrawHBar(t *testing.T) {
	tests := []struct {
		name       string
		cur, total int
		full       int
	}{
		{"half", 5, 10, 5},
		{"full", 10, 10, 10},
		{"overfull", 30, 10, 10},
		{"negative", -3, 10, 0},
		{"zero total", 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := render.NewQueue()
			fg := color.MustHex("#ff0000")
			DrawHBar(q, 0, 0, 10, tt.cur, tt.total, fg, color.Black)
			got := cells(t, q)
			if len(got) != 10 {
				t.Fatalf("drew %d cells", len(got))
			}
			full := 0
			for _, c := range got {
				switch c.Glyph {
				case barFull:
					full++
					if c.FG != fg {
						t.Errorf("full cell fg = %v", c.FG)
					}
				case barEmpty:
					if c.FG != fg.Lerp(Background, 0.5) {
						t.Errorf("empty cell fg = %v", c.FG)
					}
				}
			}
			if full != tt.full {
				t.Errorf("full cells = %d, want %d", full, tt.full)
			}
		})
	}
}
