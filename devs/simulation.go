package devs

// A Simulation drives a model to completion, exposing the surface a
// caller needs: run to completion, step one cycle at a time, read the
// current time, and inspect accumulated transition counts.
type Simulation struct {
	root  *RootCoordinator
	child Processor
	stats *TransitionStats

	runValidations bool
}

// SimulationBuilder constructs a Simulation with fluent configuration.
type SimulationBuilder struct {
	duration       Duration
	scheduler      SchedulerKind
	runValidations bool
	virtualTime    TimePoint

	virtualTimeSet bool
}

// MakeSimulationBuilder returns a SimulationBuilder with the core's
// defaults: unbounded duration, heap scheduler, validations off, virtual
// time starting at zero.
func MakeSimulationBuilder() SimulationBuilder {
	return SimulationBuilder{
		duration:  Infinity,
		scheduler: HeapScheduler,
	}
}

// WithDuration bounds the simulation to at most d of simulated time.
func (b SimulationBuilder) WithDuration(d Duration) SimulationBuilder {
	b.duration = d
	return b
}

// WithScheduler selects the EventSet backend used by every coordinator in
// the tree.
func (b SimulationBuilder) WithScheduler(kind SchedulerKind) SimulationBuilder {
	b.scheduler = kind
	return b
}

// WithRunValidations enables a coupling check at Build: every coupling of
// the root model must name both a source and a destination port. Couplings
// of nested coupled models and model precisions are not checked.
func (b SimulationBuilder) WithRunValidations() SimulationBuilder {
	b.runValidations = true
	return b
}

// WithVirtualTime sets the TimePoint the simulation starts from, default
// zero at BASE precision.
func (b SimulationBuilder) WithVirtualTime(tp TimePoint) SimulationBuilder {
	b.virtualTime = tp
	b.virtualTimeSet = true
	return b
}

// Build constructs the processor tree for root and returns the runnable
// Simulation.
func (b SimulationBuilder) Build(root *CoupledModel) (*Simulation, error) {
	if b.runValidations {
		if err := validateCoupledModel(root); err != nil {
			return nil, err
		}
	}

	start := b.virtualTime
	if !b.virtualTimeSet {
		start = NewTimePointAtBase(0)
	}

	coordinator := NewCoordinator(root, b.scheduler)
	stats := &TransitionStats{}
	attachStatsHooks(coordinator, stats)

	if _, _, err := coordinator.InitializeProcessor(start); err != nil {
		return nil, err
	}

	rootCoordinator := NewRootCoordinator(coordinator, start, b.duration)

	return &Simulation{
		root:           rootCoordinator,
		child:          coordinator,
		stats:          stats,
		runValidations: b.runValidations,
	}, nil
}

// Simulate runs every remaining cycle to completion.
func (s *Simulation) Simulate() error {
	for {
		more, err := s.Step()
		if err != nil {
			return err
		}

		if !more {
			return nil
		}
	}
}

// Step advances the simulation by exactly one cycle, returning false when
// nothing remains to run.
func (s *Simulation) Step() (bool, error) {
	return s.root.Step()
}

// Time returns the current simulated time.
func (s *Simulation) Time() TimePoint {
	return s.root.Time()
}

// TransitionStats returns the accumulated counts of each transition kind
// fired so far.
func (s *Simulation) TransitionStats() TransitionStats {
	return *s.stats
}

// Abort requests that the simulation stop before its next cycle.
func (s *Simulation) Abort() {
	s.root.Abort()
}

func attachStatsHooks(p Processor, stats *TransitionStats) {
	switch proc := p.(type) {
	case *Simulator:
		proc.AcceptHook(HookFunc(func(ctx HookCtx) {
			switch ctx.Pos {
			case HookPosInternalTransition:
				stats.Internal++
			case HookPosExternalTransition:
				stats.External++
			case HookPosConfluentTransition:
				stats.Confluent++
			}
		}))
	case *Coordinator:
		for _, child := range proc.children {
			attachStatsHooks(child, stats)
		}
	}
}

func validateCoupledModel(model *CoupledModel) error {
	for _, coupling := range model.Couplings() {
		if coupling.Source == nil || coupling.Destination == nil {
			return &NoSuchPortError{Model: model.Name(), Port: "<nil>"}
		}
	}

	return nil
}
