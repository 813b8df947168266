package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/glyphkeep/glyphkeep/internal/config"
	"github.com/glyphkeep/glyphkeep/internal/core/event"
	coresys "github.com/glyphkeep/glyphkeep/internal/core/system"
	"github.com/glyphkeep/glyphkeep/internal/data"
	"github.com/glyphkeep/glyphkeep/internal/game"
	"github.com/glyphkeep/glyphkeep/internal/persist"
	"github.com/glyphkeep/glyphkeep/internal/render/terminal"
	"github.com/glyphkeep/glyphkeep/internal/scripting"
	"github.com/glyphkeep/glyphkeep/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger. The terminal belongs to the game, so logs go to a file.
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if len(os.Args) > 1 && os.Args[1] == "runs" {
		return listRuns(cfg, log, os.Args[2:])
	}

	// 3. Load tile and glyph data
	tiles, err := data.LoadTileSet(cfg.Data.Tiles)
	if err != nil {
		return fmt.Errorf("load tiles: %w", err)
	}
	glyphs, err := data.LoadGlyphTable(cfg.Data.Glyphs)
	if err != nil {
		return fmt.Errorf("load glyphs: %w", err)
	}
	log.Info("data loaded", zap.Int("glyph_overrides", len(glyphs)))

	// 4. Application context and script engine
	ctx := game.NewContext(game.Settings{
		Width:     cfg.Game.Width,
		Height:    cfg.Game.Height,
		Seed:      cfg.Game.Seed,
		Diagonals: cfg.Game.DiagonalMoves,
		Tiles:     tiles,
	}, log)

	engine := scripting.NewEngine(ctx, log.Named("lua"))
	defer engine.Close()
	if err := engine.Load(cfg.Script.Dir, cfg.Script.Entry); err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	// 5. Optional run archive
	var (
		runs  *persist.RunRepo
		runID int64
	)
	if cfg.Database.Enabled {
		dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(dbCtx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		runs = persist.NewRunRepo(db)
		if runID, err = runs.Start(dbCtx, cfg.Game.Seed); err != nil {
			return fmt.Errorf("start run: %w", err)
		}
	}

	// 6. Terminal
	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer ts.Fini()
	ts.EnableMouse()
	ts.HideCursor()
	ts.SetTitle(cfg.Game.Title)

	screen := terminal.NewScreen(ts, cfg.Game.Width, cfg.Game.Height, terminal.NewGlyphTable(glyphs), terminal.Options{
		Consoles:    cfg.Game.Consoles,
		ScanlineDim: cfg.Render.ScanlineDim,
		GlowMix:     cfg.Render.GlowMix,
	})
	events := make(chan tcell.Event, 64)
	terminal.Pump(ts, events)

	// init() runs after the terminal is up so it may already draw.
	if err := engine.Init(); err != nil {
		return fmt.Errorf("script init: %w", err)
	}

	// 7. Create systems and register with runner
	bus := event.NewBus()
	quit := false
	event.Subscribe(bus, func(event.ExitRequested) { quit = true })
	event.Subscribe(bus, func(r event.Resized) {
		log.Debug("terminal resized", zap.Int("width", r.Width), zap.Int("height", r.Height))
		screen.Sync()
	})

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(events, ctx, bus, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewScriptSystem(engine, ctx, bus))
	runner.Register(system.NewRenderSystem(ctx, screen, bus, log))
	var persistSys *system.PersistSystem
	if runs != nil {
		persistSys = system.NewPersistSystem(ctx, runs, runID, log, cfg.Database.FlushInterval)
		runner.Register(persistSys)
	}

	// 8. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	log.Info("game loop started", zap.Duration("tick", cfg.Game.TickRate), zap.String("entry", cfg.Script.Entry))

	var loopErr error
	for !quit && loopErr == nil {
		select {
		case <-ticker.C:
			loopErr = runner.Tick(cfg.Game.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			quit = true
		}
	}
	if loopErr != nil {
		log.Error("game loop stopped", zap.Error(loopErr))
	}

	// 9. Archive the run before leaving
	if runs != nil {
		if err := persistSys.Flush(); err != nil {
			log.Warn("final game log flush failed", zap.Error(err))
		}
		var digest []byte
		if ctx.Map != nil {
			d := ctx.Map.Digest()
			digest = d[:]
		}
		finCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runs.Finish(finCtx, runID, ctx.Ticks, digest); err != nil {
			log.Warn("finish run failed", zap.Int64("run", runID), zap.Error(err))
		}
	}
	log.Info("game stopped", zap.Uint64("ticks", ctx.Ticks))
	return loopErr
}

// listRuns prints the newest archived runs, or the game log of one run
// when an id is given.
func listRuns(cfg *config.Config, log *zap.Logger, args []string) error {
	if !cfg.Database.Enabled {
		return fmt.Errorf("list runs: database is disabled in config")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	runs := persist.NewRunRepo(db)

	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("run id %q: %w", args[0], err)
		}
		msgs, err := runs.Messages(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Println(m)
		}
		return nil
	}

	rows, err := runs.Recent(ctx, 20)
	if err != nil {
		return err
	}
	for _, r := range rows {
		status := "unfinished"
		if r.FinishedAt != nil {
			status = r.FinishedAt.Format(time.DateTime)
		}
		fmt.Printf("%6d  seed %-20d  %s  %s  ticks %-8d  log %d\n",
			r.ID, r.Seed, r.StartedAt.Format(time.DateTime), status, r.Ticks, r.LogLines)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		if cfg.Format != "json" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
