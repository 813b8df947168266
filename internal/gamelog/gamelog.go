// Package gamelog is the player-visible message log.
package gamelog

// Log is an append-only ordered list of messages. The core never truncates it.
type Log struct {
	entries []string
}

func New() *Log {
	return &Log{entries: make([]string, 0, 64)}
}

func (l *Log) Add(message string) {
	l.entries = append(l.entries, message)
}

// Messages returns a snapshot of every message in insertion order.
func (l *Log) Messages() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns a snapshot of the messages from position n onwards.
func (l *Log) Since(n int) []string {
	if n < 0 {
		n = 0
	}
	if n >= len(l.entries) {
		return nil
	}
	out := make([]string, len(l.entries)-n)
	copy(out, l.entries[n:])
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}
