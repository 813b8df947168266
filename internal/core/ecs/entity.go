package ecs

// Entity is an opaque id. Ids start at 1, increase monotonically and are never
// reused after deletion, so a stale id simply stops resolving.
type Entity int32

// IsZero reports whether e is the zero id, which is never allocated.
func (e Entity) IsZero() bool { return e == 0 }

// entityCounter hands out ids. Unlike a generational pool there is no free list.
type entityCounter struct {
	last Entity
}

func (c *entityCounter) next() Entity {
	c.last++
	return c.last
}

// Last returns the most recently allocated id (0 if none).
func (c *entityCounter) Last() Entity { return c.last }
