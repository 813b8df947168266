// Package game holds the per-process application context that every host
// function and frame system receives explicitly.
package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/glyphkeep/glyphkeep/internal/core/ecs"
	"github.com/glyphkeep/glyphkeep/internal/gamelog"
	"github.com/glyphkeep/glyphkeep/internal/gamemap"
	"github.com/glyphkeep/glyphkeep/internal/render"
)

// Input is the per-tick input snapshot. It is overwritten once at the start
// of a tick and read-only afterwards.
type Input struct {
	Key    string // lowercase key name, "" when nothing was pressed
	MouseX int
	MouseY int
}

// Settings are the fixed parameters a Context is built from.
type Settings struct {
	Width     int
	Height    int
	Seed      int64
	Diagonals bool
	Tiles     *gamemap.TileSet
}

// Context owns the core stores. World and Map are replaced when a script
// creates new ones; Queue and Log live for the whole process.
type Context struct {
	World *ecs.World
	Map   *gamemap.Map
	Queue *render.Queue
	Log   *gamelog.Log
	Input Input
	Rand  *rand.Rand

	Settings Settings
	Ticks    uint64

	logger *zap.Logger
}

func NewContext(s Settings, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	if s.Tiles == nil {
		s.Tiles = gamemap.DefaultTileSet()
	}
	c := &Context{
		Queue:    render.NewQueue(),
		Log:      gamelog.New(),
		Rand:     rand.New(rand.NewSource(s.Seed)),
		Settings: s,
		logger:   log,
	}
	c.World = c.NewWorld()
	return c
}

func (c *Context) Logger() *zap.Logger { return c.logger }

// NewWorld creates an empty World wired to the game log and makes it current.
func (c *Context) NewWorld() *ecs.World {
	c.World = ecs.NewWorld(c.logger.Named("world"), c.Log)
	return c.World
}

// NewMap creates a w x h all-wall map and makes it current.
func (c *Context) NewMap(w, h int) *gamemap.Map {
	c.Map = gamemap.New(w, h, c.Settings.Tiles, c.Rand, gamemap.WithDiagonals(c.Settings.Diagonals))
	return c.Map
}
