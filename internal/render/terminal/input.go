package terminal

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// KeyName normalises a key event to a lowercase name: the rune itself for
// printable keys ("a", "1", "<"), tcell's key name otherwise ("up", "enter",
// "esc", "f1").
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return lower.String(string(ev.Rune()))
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return lower.String(name)
	}
	return ""
}

// Pump forwards screen events to ch until the screen is finalised.
// It is the only goroutine besides the game loop.
func Pump(s tcell.Screen, ch chan<- tcell.Event) {
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			ch <- ev
		}
	}()
}
