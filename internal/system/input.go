package system

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/glyphkeep/glyphkeep/internal/core/event"
	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/render/terminal"
)

// InputSystem drains the terminal event pump into the tick's input snapshot.
// The key is one-shot: it reads "" on ticks without a key press, and the
// last key of the tick wins. Phase 0 (Input).
type InputSystem struct {
	events <-chan tcell.Event
	ctx    *game.Context
	bus    *event.Bus
	log    *zap.Logger
	closed bool
}

func NewInputSystem(events <-chan tcell.Event, ctx *game.Context, bus *event.Bus, log *zap.Logger) *InputSystem {
	return &InputSystem{events: events, ctx: ctx, bus: bus, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) error {
	in := s.ctx.Input
	in.Key = ""
drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				s.log.Info("terminal event pump closed")
				event.Emit(s.bus, event.ExitRequested{Tick: s.ctx.Ticks})
				break drain
			}
			s.handle(ev, &in)
		default:
			break drain
		}
	}
	s.ctx.Input = in
	return nil
}

func (s *InputSystem) handle(ev tcell.Event, in *game.Input) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if name := terminal.KeyName(ev); name != "" {
			in.Key = name
		}
	case *tcell.EventMouse:
		in.MouseX, in.MouseY = ev.Position()
	case *tcell.EventResize:
		w, h := ev.Size()
		event.Emit(s.bus, event.Resized{Width: w, Height: h})
	}
}
