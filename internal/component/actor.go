package component

import "github.com/glyphkeep/glyphkeep/internal/color"

// Renderable is how an entity is drawn. Order sorts draw calls (lower first).
type Renderable struct {
	Glyph   uint16
	FG      color.RGB
	BG      color.RGB
	Order   int
	Console int
}

func (*Renderable) ComponentType() string { return "Renderable" }

type Name struct {
	Name string
}

func (*Name) ComponentType() string { return "Name" }

// Player tags the player-controlled entity.
type Player struct{}

func (*Player) ComponentType() string { return "Player" }

type Monster struct{}

func (*Monster) ComponentType() string { return "Monster" }

type CombatStats struct {
	MaxHP   int
	HP      int
	Defense int
	Power   int
}

func (*CombatStats) ComponentType() string { return "CombatStats" }
