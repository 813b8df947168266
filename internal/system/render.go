package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/glyphkeep/glyphkeep/internal/core/event"
	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

// RenderSystem drains the tick's command queue onto the backend. It is the
// only place that knows about the backend. Phase 4 (Output).
type RenderSystem struct {
	ctx     *game.Context
	backend render.Backend
	bus     *event.Bus
	log     *zap.Logger
}

func NewRenderSystem(ctx *game.Context, backend render.Backend, bus *event.Bus, log *zap.Logger) *RenderSystem {
	return &RenderSystem{ctx: ctx, backend: backend, bus: bus, log: log}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) error {
	cmds := s.ctx.Queue.Drain()
	if render.Apply(cmds, s.backend) {
		s.log.Info("script requested exit", zap.Uint64("tick", s.ctx.Ticks))
		event.Emit(s.bus, event.ExitRequested{Tick: s.ctx.Ticks})
	}
	return nil
}
