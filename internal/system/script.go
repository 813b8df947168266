package system

import (
	"time"

	"github.com/glyphkeep/glyphkeep/internal/core/event"
	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/game"
)

// Updater is the scripted per-tick callback (*scripting.Engine).
type Updater interface {
	Update() error
}

// ScriptSystem advances the tick counter and runs the script's update().
// Once an exit has been requested the script is no longer called.
// Phase 2 (Update).
type ScriptSystem struct {
	script  Updater
	ctx     *game.Context
	stopped bool
}

func NewScriptSystem(script Updater, ctx *game.Context, bus *event.Bus) *ScriptSystem {
	s := &ScriptSystem{script: script, ctx: ctx}
	event.Subscribe(bus, func(event.ExitRequested) { s.stopped = true })
	return s
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(_ time.Duration) error {
	if s.stopped {
		return nil
	}
	s.ctx.Ticks++
	return s.script.Update()
}
