package color

import (
	"errors"
	"testing"
)

func TestFromHex(t *testing.T) {
	c, err := FromHex("#2d1e00")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if got := c.String(); got != "#2d1e00" {
		t.Errorf("round trip = %s, want #2d1e00", got)
	}
	if _, err := FromHex("#12"); !errors.Is(err, ErrBadColor) {
		t.Errorf("short hex error = %v, want ErrBadColor", err)
	}
	if _, err := FromHex("zzzzzz"); !errors.Is(err, ErrBadColor) {
		t.Errorf("non-hex error = %v, want ErrBadColor", err)
	}
}

func TestNamed(t *testing.T) {
	c, err := Named("White")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if c != White {
		t.Errorf("white = %v", c)
	}
	if _, err := Named("not-a-colour"); !errors.Is(err, ErrBadColor) {
		t.Errorf("unknown name error = %v, want ErrBadColor", err)
	}
}

func TestLerpAndClamp(t *testing.T) {
	mid := Black.Lerp(White, 0.5)
	if mid.String() != "#808080" {
		t.Errorf("lerp midpoint = %s", mid)
	}
	if got := New(2, -1, 0.5); got.R != 1 || got.G != 0 {
		t.Errorf("New did not clamp: %+v", got)
	}
	if got := Grey(20).String(); got != "#333333" {
		t.Errorf("Grey(20) = %s", got)
	}
}
