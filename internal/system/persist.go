package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/game"
)

// LogArchive stores game log lines for a run (*persist.RunRepo).
type LogArchive interface {
	AppendLog(ctx context.Context, runID int64, from int, msgs []string) error
}

// PersistSystem flushes new game log lines to the run archive every
// interval ticks. A failed flush is retried on the next interval.
// Phase 5 (Persist).
type PersistSystem struct {
	ctx       *game.Context
	archive   LogArchive
	runID     int64
	log       *zap.Logger
	tickCount int
	interval  int // flush every N ticks
	flushed   int // game log lines already archived
}

func NewPersistSystem(ctx *game.Context, archive LogArchive, runID int64, log *zap.Logger, intervalTicks int) *PersistSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	return &PersistSystem{
		ctx:      ctx,
		archive:  archive,
		runID:    runID,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistSystem) Update(_ time.Duration) error {
	s.tickCount++
	if s.tickCount < s.interval {
		return nil
	}
	s.tickCount = 0
	if err := s.Flush(); err != nil {
		s.log.Warn("game log flush failed", zap.Int64("run", s.runID), zap.Error(err))
	}
	return nil
}

// Flush archives every line added since the last successful flush.
// Called for graceful shutdown as well.
func (s *PersistSystem) Flush() error {
	msgs := s.ctx.Log.Since(s.flushed)
	if len(msgs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.archive.AppendLog(ctx, s.runID, s.flushed, msgs); err != nil {
		return err
	}
	s.flushed += len(msgs)
	s.log.Debug("game log flushed", zap.Int("lines", len(msgs)))
	return nil
}
