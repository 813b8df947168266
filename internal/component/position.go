package component

// Position places an entity on the map grid.
type Position struct {
	X int
	Y int
}

func (*Position) ComponentType() string { return "Position" }

// BlocksTile marks an entity that occupies its cell for pathing.
type BlocksTile struct{}

func (*BlocksTile) ComponentType() string { return "BlocksTile" }

// Viewshed is the set of cells an entity can currently see.
// Dirty is set whenever the entity moves; the cells are recomputed lazily.
type Viewshed struct {
	Range   int
	Visible []int
	Dirty   bool
}

func (*Viewshed) ComponentType() string { return "Viewshed" }
