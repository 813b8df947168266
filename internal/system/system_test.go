package system

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/glyphkeep/glyphkeep/internal/color"
	"github.com/glyphkeep/glyphkeep/internal/core/event"
	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

func newTestContext() *game.Context {
	return game.NewContext(game.Settings{Width: 20, Height: 10, Seed: 1}, zap.NewNop())
}

func TestInputSystem(t *testing.T) {
	ctx := newTestContext()
	bus := event.NewBus()
	events := make(chan tcell.Event, 8)
	s := NewInputSystem(events, ctx, bus, zap.NewNop())

	var resized []event.Resized
	event.Subscribe(bus, func(r event.Resized) { resized = append(resized, r) })

	events <- tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	events <- tcell.NewEventMouse(5, 6, tcell.ButtonNone, tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	events <- tcell.NewEventResize(100, 40)
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if ctx.Input.Key != "up" || ctx.Input.MouseX != 5 || ctx.Input.MouseY != 6 {
		t.Errorf("input = %+v", ctx.Input)
	}

	// Key is one-shot, the mouse position persists.
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if ctx.Input.Key != "" || ctx.Input.MouseX != 5 {
		t.Errorf("input after idle tick = %+v", ctx.Input)
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(resized) != 1 || resized[0] != (event.Resized{Width: 100, Height: 40}) {
		t.Errorf("resized = %v", resized)
	}
}

func TestInputSystemPumpClosed(t *testing.T) {
	ctx := newTestContext()
	bus := event.NewBus()
	events := make(chan tcell.Event)
	close(events)
	s := NewInputSystem(events, ctx, bus, zap.NewNop())

	exits := 0
	event.Subscribe(bus, func(event.ExitRequested) { exits++ })
	for i := 0; i < 3; i++ {
		if err := s.Update(0); err != nil {
			t.Fatal(err)
		}
	}
	bus.SwapBuffers()
	bus.DispatchAll()
	if exits != 1 {
		t.Errorf("exit requested %d times, want once", exits)
	}
}

type scriptFunc func() error

func (f scriptFunc) Update() error { return f() }

type recorder struct {
	cells    int
	presents int
}

func (r *recorder) Clear() {}
func (r *recorder) SetCell(_, _, _ int, _ uint16, _, _ color.RGB) { r.cells++ }
func (r *recorder) SetBackground(_, _, _ int, _ color.RGB) {}
func (r *recorder) Print(_, _, _ int, _ string, _, _ color.RGB) {}
func (r *recorder) SetScanlines(bool) {}
func (r *recorder) SetGlow(color.RGB) {}
func (r *recorder) Present() { r.presents++ }

// TestFrameStopsAfterExit runs the full phase pipeline: the frame that
// requests exit is drawn, and the script is not called again.
func TestFrameStopsAfterExit(t *testing.T) {
	ctx := newTestContext()
	bus := event.NewBus()
	backend := &recorder{}

	calls := 0
	script := scriptFunc(func() error {
		calls++
		ctx.Queue.Push(render.SetCell{X: 1, Y: 1, Glyph: '@'})
		if calls == 2 {
			ctx.Queue.Push(render.RequestExit{})
		}
		return nil
	})

	quit := false
	event.Subscribe(bus, func(event.ExitRequested) { quit = true })

	r := coresys.NewRunner()
	r.Register(NewRenderSystem(ctx, backend, bus, zap.NewNop()))
	r.Register(NewScriptSystem(script, ctx, bus))
	r.Register(NewEventDispatchSystem(bus))
	r.Register(NewInputSystem(nil, ctx, bus, zap.NewNop()))

	for i := 0; i < 5 && !quit; i++ {
		if err := r.Tick(time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	if !quit {
		t.Fatal("exit never dispatched")
	}
	if calls != 2 || ctx.Ticks != 2 {
		t.Errorf("script calls = %d, ticks = %d, want 2", calls, ctx.Ticks)
	}
	if backend.cells != 2 || backend.presents != 3 {
		t.Errorf("cells = %d, presents = %d", backend.cells, backend.presents)
	}
}

func TestScriptErrorAbortsTick(t *testing.T) {
	ctx := newTestContext()
	bus := event.NewBus()
	boom := errors.New("boom")
	backend := &recorder{}

	r := coresys.NewRunner()
	r.Register(NewScriptSystem(scriptFunc(func() error { return boom }), ctx, bus))
	r.Register(NewRenderSystem(ctx, backend, bus, zap.NewNop()))
	if err := r.Tick(0); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if backend.presents != 0 {
		t.Error("frame presented after script failure")
	}
}

type archive struct {
	calls [][]string
	froms []int
	err   error
}

func (a *archive) AppendLog(_ context.Context, _ int64, from int, msgs []string) error {
	if a.err != nil {
		return a.err
	}
	a.calls = append(a.calls, msgs)
	a.froms = append(a.froms, from)
	return nil
}

func TestPersistSystem(t *testing.T) {
	ctx := newTestContext()
	a := &archive{}
	s := NewPersistSystem(ctx, a, 1, zap.NewNop(), 2)

	ctx.Log.Add("one")
	s.Update(0)
	if len(a.calls) != 0 {
		t.Fatal("flushed before the interval")
	}
	s.Update(0)
	ctx.Log.Add("two")
	ctx.Log.Add("three")

	// A failing archive keeps the lines for the next interval.
	a.err = errors.New("db down")
	s.Update(0)
	s.Update(0)
	a.err = nil
	s.Update(0)
	s.Update(0)
	s.Update(0)
	s.Update(0)

	want := [][]string{{"one"}, {"two", "three"}}
	if !reflect.DeepEqual(a.calls, want) || !reflect.DeepEqual(a.froms, []int{0, 1}) {
		t.Errorf("calls = %v from %v", a.calls, a.froms)
	}
	if err := s.Flush(); err != nil || len(a.calls) != 2 {
		t.Errorf("empty flush: err=%v calls=%d", err, len(a.calls))
	}
}
