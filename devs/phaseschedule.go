package devs

// PhaseSchedule is a small helper for atomic models whose
// InternalTransition only cycles through a fixed, ordered set of phases
// with a per-phase duration, the way a traffic light does. It is not part
// of the core DEVS algorithm; a model embedding it still implements the
// full AtomicBehavior contract and may call into it from TimeAdvance and
// InternalTransition, or ignore it entirely for a hand-rolled state
// machine.
type PhaseSchedule[P comparable] struct {
	phase     P
	held      bool
	durations map[P]Duration
	next      map[P]P
}

// NewPhaseSchedule returns a PhaseSchedule starting at start, advancing
// phase-to-phase via next and holding each phase for durations[phase]
// before advancing.
func NewPhaseSchedule[P comparable](start P, durations map[P]Duration, next map[P]P) *PhaseSchedule[P] {
	return &PhaseSchedule[P]{
		phase:     start,
		durations: durations,
		next:      next,
	}
}

// Phase returns the schedule's current phase.
func (s *PhaseSchedule[P]) Phase() P {
	return s.phase
}

// TimeAdvance returns the current phase's duration, or Infinity once the
// schedule has been held.
func (s *PhaseSchedule[P]) TimeAdvance() Duration {
	if s.held {
		return Infinity
	}

	return s.durations[s.phase]
}

// Advance moves the schedule to the phase named by next for the current
// phase. A model's InternalTransition calls this when it wants the
// schedule's own cycling behavior.
func (s *PhaseSchedule[P]) Advance() {
	s.phase = s.next[s.phase]
}

// Hold pins the schedule at phase and reports Infinity from TimeAdvance
// from then on, for an external override that should never again fire on
// its own.
func (s *PhaseSchedule[P]) Hold(phase P) {
	s.phase = phase
	s.held = true
}

// Held reports whether Hold has been called.
func (s *PhaseSchedule[P]) Held() bool {
	return s.held
}
