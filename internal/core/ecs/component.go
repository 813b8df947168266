package ecs

// Component is a typed data fragment attached to an entity. The type name is
// the storage key: an entity holds at most one component per type name.
type Component interface {
	ComponentType() string
}

// componentSet is the per-entity component map keyed by type name.
type componentSet map[string]Component

func (s componentSet) has(types []string) bool {
	for _, t := range types {
		if _, ok := s[t]; !ok {
			return false
		}
	}
	return true
}

// Get returns the component of type T attached to e, if any.
// Only host-defined components (concrete Go types) can be fetched this way.
func Get[T Component](w *World, e Entity) (T, bool) {
	var zero T
	c, ok := w.Component(e, zero.ComponentType())
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}
