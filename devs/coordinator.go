package devs

import (
	"fmt"

	"github.com/rs/xid"
)

// Coordinator is the coupled-model Processor. It owns an EventSet of its
// children, a TimeCache recording when each child last transitioned, and
// the routing tables used to move values through the coupling graph once
// per cycle.
type Coordinator struct {
	*HookableBase

	model    *CoupledModel
	children []Processor
	byModel  map[Model]Processor
	bySource map[*Port][]Coupling

	events        EventSet[Processor]
	cache         *TimeCache[Processor]
	synchronize   map[Processor]struct{}
	influencees   map[Processor]Bag
	parentBag     Bag
	qualifiedName map[Processor]string
	id            string
	precision     Scale
	initialized   bool
}

// NewCoordinator builds a Coordinator for model, recursively constructing
// a Simulator or Coordinator for each child according to its kind. Each
// child's bare Name() is qualified with model's own name via BuildName, so
// errors bubbling up from deep in the tree can be reported against their
// full hierarchical position rather than a bare, possibly ambiguous, name.
func NewCoordinator(model *CoupledModel, kind SchedulerKind) *Coordinator {
	c := &Coordinator{
		HookableBase:  NewHookableBase(),
		model:         model,
		byModel:       make(map[Model]Processor),
		bySource:      make(map[*Port][]Coupling),
		events:        NewEventSet[Processor](kind),
		cache:         NewTimeCache[Processor](),
		synchronize:   make(map[Processor]struct{}),
		influencees:   make(map[Processor]Bag),
		parentBag:     NewBag(),
		qualifiedName: make(map[Processor]string),
		id:            xid.New().String(),
		precision:     Base,
	}

	for i, child := range model.Children() {
		var p Processor

		switch m := child.(type) {
		case *AtomicModel:
			p = NewSimulator(m)
		case *CoupledModel:
			p = NewCoordinator(m, kind)
		}

		c.children = append(c.children, p)
		c.byModel[child] = p
		c.qualifiedName[p] = BuildName(model.Name(), child.Name())

		if i == 0 || p.Precision().Finer(c.precision) {
			c.precision = p.Precision()
		}
	}

	for _, coupling := range model.Couplings() {
		c.bySource[coupling.Source] = append(c.bySource[coupling.Source], coupling)
	}

	return c
}

// ID returns the Coordinator's generated identity.
func (c *Coordinator) ID() string {
	return c.id
}

// Precision returns the finest precision declared by any direct child,
// or Base if the coordinator has no children.
func (c *Coordinator) Precision() Scale {
	return c.precision
}

// Model returns the wrapped coupled model.
func (c *Coordinator) Model() Model {
	return c.model
}

// QualifiedName returns the hierarchical name NewCoordinator assigned to
// one of its direct children, or "" if p is not a direct child.
func (c *Coordinator) QualifiedName(p Processor) string {
	return c.qualifiedName[p]
}

// wrapErr qualifies err with p's hierarchical name and generated identity,
// so a caller can tell apart two processors that happen to share a bare
// Name() deep in the tree.
func (c *Coordinator) wrapErr(p Processor, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s[%s]: %w", c.qualifiedName[p], p.ID(), err)
}

// InitializeProcessor initializes every child, plans its first finite
// duration into the event set, and retains its initial elapsed baseline.
// It returns the largest elapsed value reported by any child and the
// event set's resulting imminent duration. It rejects a second call
// against the same Coordinator with an InvalidProcessorError.
func (c *Coordinator) InitializeProcessor(time TimePoint) (Duration, Duration, error) {
	if c.initialized {
		return Duration{}, Duration{}, &InvalidProcessorError{Model: c.model.Name()}
	}
	c.initialized = true

	maxElapsed := ZeroDuration(Base)

	for _, p := range c.children {
		elapsed, planned, err := p.InitializeProcessor(time)
		if err != nil {
			return Duration{}, Duration{}, c.wrapErr(p, err)
		}

		if !planned.IsInfinite() {
			if err := c.events.PlanEvent(p, planned, p.Precision()); err != nil {
				return Duration{}, Duration{}, c.wrapErr(p, err)
			}
		}

		c.cache.RetainEvent(p, time, elapsed)

		if elapsed.Compare(maxElapsed) > 0 {
			maxElapsed = elapsed
		}
	}

	return maxElapsed, c.events.ImminentDuration(), nil
}

// CollectOutputs collects output from every imminent child, routes each
// produced value through internal couplings into influencees (marking
// targets for transition) or through external output couplings into the
// coordinator's own bag, and returns that bag. A child posting to a port
// it does not own aborts the whole collection with that child's
// InvalidPortHostError.
func (c *Coordinator) CollectOutputs(elapsed Duration) (Bag, error) {
	c.parentBag.Clear()

	var outErr error

	c.events.EachImminentEvent(func(p Processor) {
		c.synchronize[p] = struct{}{}

		if outErr != nil {
			return
		}

		childBag, err := p.CollectOutputs(elapsed)
		if err != nil {
			outErr = c.wrapErr(p, err)
			return
		}

		for sourcePort, values := range childBag {
			for _, coupling := range c.bySource[sourcePort] {
				switch coupling.Kind {
				case InternalCoupling:
					target := c.byModel[coupling.Destination.Host()]
					c.route(target, coupling.Destination, values)
					c.synchronize[target] = struct{}{}
				case ExternalOutputCoupling:
					for _, v := range values {
						c.parentBag.Append(coupling.Destination, v)
					}
				}
			}
		}
	})

	if outErr != nil {
		return nil, outErr
	}

	return c.parentBag, nil
}

func (c *Coordinator) route(target Processor, destination *Port, values []any) {
	bag, ok := c.influencees[target]
	if !ok {
		bag = NewBag()
		c.influencees[target] = bag
	}

	for _, v := range values {
		bag.Append(destination, v)
	}
}

// PerformTransitions advances the coordinator's own bookkeeping by
// elapsed, routes inputBag through external input couplings, runs every
// synchronized child's transition with its cached elapsed duration, and
// reschedules or cancels each child in the event set according to its
// returned planned duration.
func (c *Coordinator) PerformTransitions(
	time TimePoint, elapsed Duration, inputBag Bag,
) (Duration, error) {
	c.events.Advance(elapsed)

	for sourcePort, values := range inputBag {
		for _, coupling := range c.bySource[sourcePort] {
			if coupling.Kind != ExternalInputCoupling {
				continue
			}

			target := c.byModel[coupling.Destination.Host()]
			c.route(target, coupling.Destination, values)
			c.synchronize[target] = struct{}{}
		}
	}

	for p := range c.synchronize {
		childElapsed := c.cache.ElapsedDurationOf(p, time)
		bag := c.influencees[p]

		next, err := p.PerformTransitions(time, childElapsed, bag)
		if err != nil {
			return Duration{}, c.wrapErr(p, err)
		}

		c.cache.RetainEvent(p, time, ZeroDuration(Base))

		if next.IsInfinite() {
			c.events.CancelEvent(p)
		} else if err := c.events.PlanEvent(p, next, p.Precision()); err != nil {
			return Duration{}, c.wrapErr(p, err)
		}
	}

	for p := range c.synchronize {
		delete(c.synchronize, p)
	}

	for p := range c.influencees {
		delete(c.influencees, p)
	}

	return c.events.ImminentDuration(), nil
}
