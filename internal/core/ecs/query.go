package ecs

import "sort"

// Row is one Query result. Components line up with the requested types and
// are never nil.
type Row struct {
	Entity     Entity
	Components []Component
}

// Entities returns every live entity holding all of types, in ascending id
// order. An empty filter matches every live entity.
func (w *World) Entities(types ...string) []Entity {
	out := make([]Entity, 0, len(w.entities))
	for e, set := range w.entities {
		if set.has(types) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Query is Entities followed by a component fetch for each match.
func (w *World) Query(types ...string) []Row {
	matched := w.Entities(types...)
	rows := make([]Row, 0, len(matched))
	for _, e := range matched {
		set := w.entities[e]
		cs := make([]Component, len(types))
		for i, t := range types {
			cs[i] = set[t]
		}
		rows = append(rows, Row{Entity: e, Components: cs})
	}
	return rows
}

// Each2 iterates entities holding host components A and B, ascending by id.
func Each2[A, B Component](w *World, fn func(Entity, A, B)) {
	var za A
	var zb B
	for _, row := range w.Query(za.ComponentType(), zb.ComponentType()) {
		a, okA := row.Components[0].(A)
		b, okB := row.Components[1].(B)
		if okA && okB {
			fn(row.Entity, a, b)
		}
	}
}

// Each3 is Each2 for three component kinds.
func Each3[A, B, C Component](w *World, fn func(Entity, A, B, C)) {
	var za A
	var zb B
	var zc C
	for _, row := range w.Query(za.ComponentType(), zb.ComponentType(), zc.ComponentType()) {
		a, okA := row.Components[0].(A)
		b, okB := row.Components[1].(B)
		c, okC := row.Components[2].(C)
		if okA && okB && okC {
			fn(row.Entity, a, b, c)
		}
	}
}
