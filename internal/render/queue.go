package render

// Queue is the append-only buffer of commands issued during one tick.
// Drain hands the whole batch over and leaves the queue empty; there is no
// partial consumption.
type Queue struct {
	cmds []Command
}

func NewQueue() *Queue {
	return &Queue{cmds: make([]Command, 0, 1024)}
}

func (q *Queue) Push(cmd Command) {
	q.cmds = append(q.cmds, cmd)
}

// Drain returns every queued command in issue order and empties the queue.
func (q *Queue) Drain() []Command {
	if len(q.cmds) == 0 {
		return nil
	}
	out := q.cmds
	q.cmds = make([]Command, 0, cap(out))
	return out
}

func (q *Queue) Len() int {
	return len(q.cmds)
}
