package ecs

import (
	"errors"
	"fmt"
)

// ErrResourceNotFound is returned by Fetch for a key that was never saved.
var ErrResourceNotFound = errors.New("resource not found")

// Resources holds World-level singletons (player id, turn counter, ...)
// keyed by name. Entries are only ever overwritten, never removed.
type Resources struct {
	data map[string]any
}

func NewResources() *Resources {
	return &Resources{data: make(map[string]any, 16)}
}

// Save creates or overwrites the value under key.
func (r *Resources) Save(key string, v any) {
	r.data[key] = v
}

// Fetch returns the value under key. Fetching before the first Save is a
// programming error in the caller and is reported as ErrResourceNotFound.
func (r *Resources) Fetch(key string) (any, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, fmt.Errorf("fetch %q: %w", key, ErrResourceNotFound)
	}
	return v, nil
}

func (r *Resources) Has(key string) bool {
	_, ok := r.data[key]
	return ok
}

func (r *Resources) Len() int {
	return len(r.data)
}
