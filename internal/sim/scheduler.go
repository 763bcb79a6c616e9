// Package sim drives the display: the phase clock and the session that
// ties point fields, morphing and bubbles to it.
package sim

import (
	"time"

	"github.com/san-kum/skillwall/internal/show"
)

// PhaseChange is emitted when the scheduler moves to the next phase.
type PhaseChange struct {
	From  int
	To    int
	Phase show.Phase
}

type Observer interface {
	OnPhaseChange(c PhaseChange)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(PhaseChange)

func (f ObserverFunc) OnPhaseChange(c PhaseChange) { f(c) }

// Scheduler walks the phase list on elapsed frame time.
type Scheduler struct {
	phases    []show.Phase
	state     show.Schedule
	observers []Observer
}

// NewScheduler starts at phase 0 with nothing to morph from.
func NewScheduler(phases []show.Phase) (*Scheduler, error) {
	if len(phases) == 0 {
		return nil, show.ErrNoPhases
	}
	return &Scheduler{phases: phases}, nil
}

func (s *Scheduler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Advance adds dt to the phase clock. Once the current phase's duration is
// reached it moves to the next phase, wrapping at the end, resets elapsed to
// zero and notifies observers before returning. A single call advances at
// most one phase; leftover time is dropped.
func (s *Scheduler) Advance(dt time.Duration) bool {
	if dt > 0 {
		s.state.Elapsed += dt
	}
	if s.state.Elapsed < s.phases[s.state.Current].Duration {
		return false
	}

	from := s.state.Current
	s.state.Previous = from
	s.state.Current = (from + 1) % len(s.phases)
	s.state.Elapsed = 0

	c := PhaseChange{From: from, To: s.state.Current, Phase: s.phases[s.state.Current]}
	for _, o := range s.observers {
		o.OnPhaseChange(c)
	}
	return true
}

func (s *Scheduler) State() show.Schedule { return s.state }

// Phase is the current phase.
func (s *Scheduler) Phase() show.Phase { return s.phases[s.state.Current] }

func (s *Scheduler) Phases() []show.Phase { return s.phases }
