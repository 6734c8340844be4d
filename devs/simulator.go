package devs

import "github.com/rs/xid"

// An Initializer is an optional AtomicBehavior extension: models that need
// to reset user state at the start of a run implement it, and the owning
// Simulator invokes it once during InitializeProcessor.
type Initializer interface {
	Initialize()
}

// A Processor is a stateful wrapper bound to one model: Simulator for
// atomic models, Coordinator for coupled models. RootCoordinator drives a
// top-level Processor without itself being one.
type Processor interface {
	Model() Model
	// ID returns the xid assigned to this processor at construction,
	// stable for the processor's lifetime and unique within a run.
	ID() string
	// Precision reports the finest scale at which this processor's own
	// planned durations are guaranteed representable; a Coordinator plans
	// a child's returned duration into its event set no finer than this.
	Precision() Scale
	InitializeProcessor(time TimePoint) (elapsed, planned Duration, err error)
	CollectOutputs(elapsed Duration) (Bag, error)
	PerformTransitions(time TimePoint, elapsed Duration, inputBag Bag) (planned Duration, err error)
}

// A processorState names where a Simulator sits in its per-model state
// machine.
type processorState int

const (
	processorPassive processorState = iota
	processorScheduled
	processorFiring
)

// Simulator is the atomic-model Processor: it tracks the model's planned
// duration and output bag, and dispatches to whichever of the model's three
// transition operations the DEVS algorithm selects.
type Simulator struct {
	*HookableBase

	model       *AtomicModel
	bag         Bag
	planned     Duration
	state       processorState
	id          string
	initialized bool
}

// NewSimulator returns a Simulator wrapping model.
func NewSimulator(model *AtomicModel) *Simulator {
	return &Simulator{
		HookableBase: NewHookableBase(),
		model:        model,
		bag:          NewBag(),
		state:        processorPassive,
		id:           xid.New().String(),
	}
}

// Model returns the wrapped atomic model.
func (s *Simulator) Model() Model {
	return s.model
}

// ID returns the Simulator's generated identity.
func (s *Simulator) ID() string {
	return s.id
}

// Precision returns the model's declared precision.
func (s *Simulator) Precision() Scale {
	return s.model.Precision()
}

// InitializeProcessor runs the model's state initializer if it has one,
// reads its default elapsed and first planned duration, and fixes that
// duration at the model's precision. It rejects a second call against the
// same Simulator: a processor owns its own state-init request, and the
// tree is only ever initialized once per run.
func (s *Simulator) InitializeProcessor(time TimePoint) (Duration, Duration, error) {
	if s.initialized {
		return Duration{}, Duration{}, &InvalidProcessorError{Model: s.model.Name()}
	}
	s.initialized = true

	if init, ok := s.model.Behavior().(Initializer); ok {
		init.Initialize()
	}

	elapsed := s.model.Elapsed()

	planned, err := s.fixPlanned(s.model.Behavior().TimeAdvance())
	if err != nil {
		return Duration{}, Duration{}, err
	}

	s.planned = planned
	s.state = s.stateFor(planned)

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosInitialize, Time: time, Elapsed: elapsed})

	return elapsed, planned, nil
}

// CollectOutputs invokes the model's output operation, returning the bag
// it populates. The bag is cleared at the start of each call, so callers
// must consume it before the next cycle. It rejects a value posted to a
// port the model does not itself own with an InvalidPortHostError.
func (s *Simulator) CollectOutputs(elapsed Duration) (Bag, error) {
	s.bag.Clear()
	s.model.Behavior().Output(s.bag)

	for port := range s.bag {
		if port.Host() != Model(s.model) {
			host := "<nil>"
			if port.Host() != nil {
				host = port.Host().Name()
			}

			return nil, &InvalidPortHostError{Port: port.Name(), Host: host, Actor: s.model.Name()}
		}
	}

	s.InvokeHook(HookCtx{Domain: s, Pos: HookPosOutput, Elapsed: elapsed, Payload: s.bag})

	return s.bag, nil
}

// PerformTransitions selects internal, external, or confluent transition
// by comparing the model's planned duration against elapsed and whether
// inputBag carries any values, invokes it, and returns the model's next
// planned duration.
func (s *Simulator) PerformTransitions(
	time TimePoint, elapsed Duration, inputBag Bag,
) (Duration, error) {
	s.state = processorFiring
	remaining := s.planned.Sub(elapsed)
	imminent := remaining.IsZero()
	hasInput := !inputBag.Empty()

	switch {
	case imminent && !hasInput:
		s.model.Behavior().InternalTransition()
		s.InvokeHook(HookCtx{Domain: s, Pos: HookPosInternalTransition, Time: time, Elapsed: elapsed})
	case imminent && hasInput:
		s.model.SetElapsed(elapsed)
		s.model.Behavior().ConfluentTransition(elapsed, inputBag)
		s.InvokeHook(HookCtx{Domain: s, Pos: HookPosConfluentTransition, Time: time, Elapsed: elapsed, Payload: inputBag})
	case !imminent && hasInput:
		s.model.SetElapsed(elapsed)
		s.model.Behavior().ExternalTransition(elapsed, inputBag)
		s.InvokeHook(HookCtx{Domain: s, Pos: HookPosExternalTransition, Time: time, Elapsed: elapsed, Payload: inputBag})
	default:
		return Duration{}, &BadSynchronisationError{Model: s.model.Name(), Time: time, Planned: s.planned}
	}

	planned, err := s.fixPlanned(s.model.Behavior().TimeAdvance())
	if err != nil {
		return Duration{}, err
	}

	s.planned = planned
	s.state = s.stateFor(planned)

	return planned, nil
}

func (s *Simulator) fixPlanned(raw Duration) (Duration, error) {
	if raw.IsInfinite() {
		return Infinity, nil
	}

	fixed := raw.FixedAt(s.model.Precision())
	if fixed.IsInfinite() {
		return Duration{}, &InvalidDurationError{Model: s.model.Name(), Precision: s.model.Precision(), Returned: raw}
	}

	return fixed, nil
}

func (s *Simulator) stateFor(planned Duration) processorState {
	if planned.IsInfinite() {
		return processorPassive
	}

	return processorScheduled
}
