package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain terminal events into the input snapshot
	PhasePreUpdate               // 1: process last tick's events
	PhaseUpdate                  // 2: script update()
	PhasePostUpdate              // 3: host-side bookkeeping after the script
	PhaseOutput                  // 4: drain command queue, present frame
	PhasePersist                 // 5: game log flush
)

// System is one step of the frame. A returned error aborts the tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
