package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageSink receives player-visible diagnostics (the game log).
type MessageSink interface {
	Add(message string)
}

// World is the entity/component/resource store driven by the scripts.
// Accessed only from the game loop goroutine, no locks.
type World struct {
	counter   entityCounter
	entities  map[Entity]componentSet
	resources *Resources

	log  *zap.Logger
	sink MessageSink
}

// NewWorld creates an empty World. sink may be nil.
func NewWorld(log *zap.Logger, sink MessageSink) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		entities:  make(map[Entity]componentSet, 256),
		resources: NewResources(),
		log:       log,
		sink:      sink,
	}
}

func (w *World) Resources() *Resources { return w.resources }

// AddEntity allocates the next id and installs cs. Duplicate types in cs are
// resolved last-write-wins.
func (w *World) AddEntity(cs ...Component) Entity {
	e := w.counter.next()
	w.entities[e] = make(componentSet, len(cs))
	w.AddComponents(e, cs...)
	return e
}

// AddComponents inserts or replaces each component by its type name. Adding to
// an entity that does not exist is a no-op reported to the log and the sink.
func (w *World) AddComponents(e Entity, cs ...Component) {
	set, ok := w.entities[e]
	if !ok {
		msg := fmt.Sprintf("cannot add components - entity %d does not exist", e)
		w.log.Warn("add components to missing entity", zap.Int32("entity", int32(e)))
		if w.sink != nil {
			w.sink.Add(msg)
		}
		return
	}
	for _, c := range cs {
		if c == nil {
			continue
		}
		set[c.ComponentType()] = c
	}
}

// Alive reports whether e was allocated and not yet deleted.
func (w *World) Alive(e Entity) bool {
	_, ok := w.entities[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// LastEntity returns the highest id ever allocated.
func (w *World) LastEntity() Entity {
	return w.counter.Last()
}

// Component returns the component of the given type. A missing entity or type
// is a normal outcome, not an error.
func (w *World) Component(e Entity, typ string) (Component, bool) {
	set, ok := w.entities[e]
	if !ok {
		return nil, false
	}
	c, ok := set[typ]
	return c, ok
}

// Components looks up each type in order. Absent slots are nil.
func (w *World) Components(e Entity, types ...string) []Component {
	out := make([]Component, len(types))
	for i, t := range types {
		if c, ok := w.Component(e, t); ok {
			out[i] = c
		}
	}
	return out
}

// RemoveComponent detaches one component type. No-op if either is absent.
func (w *World) RemoveComponent(e Entity, typ string) {
	if set, ok := w.entities[e]; ok {
		delete(set, typ)
	}
}

// ClearComponent removes typ from every entity that has it.
func (w *World) ClearComponent(typ string) {
	targets := w.Entities(typ)
	for _, e := range targets {
		w.RemoveComponent(e, typ)
	}
}

// DeleteEntity removes e and all of its components. Resources are untouched
// and ids are never renumbered.
func (w *World) DeleteEntity(e Entity) {
	delete(w.entities, e)
}

// Save stores a resource.
func (w *World) Save(key string, v any) {
	w.resources.Save(key, v)
}

// Fetch reads a resource; see Resources.Fetch.
func (w *World) Fetch(key string) (any, error) {
	return w.resources.Fetch(key)
}
