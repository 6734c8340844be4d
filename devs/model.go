package devs

// A Named object knows its own name, for error messages and observer
// payloads.
type Named interface {
	Name() string
}

// A ModelKind distinguishes the two model variants a Model may be.
type ModelKind int

const (
	// AtomicKind models carry user state and the five DEVS operations.
	AtomicKind ModelKind = iota
	// CoupledKind models aggregate children through couplings.
	CoupledKind
)

// A Model is either an AtomicModel or a CoupledModel: the sum type §3
// describes, represented here as a tagged interface rather than an open
// class hierarchy.
type Model interface {
	Named
	Hookable

	Kind() ModelKind
	Ports() []*Port
	PortByName(name string) (*Port, error)
}

// AtomicBehavior is the user-supplied contract an atomic model provides.
// Every behavior implements ConfluentTransition itself; one that wants the
// internal-then-external fallback calls DefaultConfluentTransition.
type AtomicBehavior interface {
	TimeAdvance() Duration
	InternalTransition()
	ExternalTransition(elapsed Duration, bag Bag)
	ConfluentTransition(elapsed Duration, bag Bag)
	Output(bag Bag)
}

// DefaultConfluentTransition applies the classical DEVS fallback for
// confluent transitions: run the internal transition, then the external
// transition against the same input bag. Models with no special confluent
// handling implement ConfluentTransition by calling this.
func DefaultConfluentTransition(b AtomicBehavior, elapsed Duration, bag Bag) {
	b.InternalTransition()
	b.ExternalTransition(elapsed, bag)
}

// AtomicModel is the embeddable base for a leaf model: it supplies naming,
// port ownership, observer plumbing, and precision, deferring the five
// DEVS operations to a behavior supplied at construction.
type AtomicModel struct {
	*PortOwnerBase
	*HookableBase

	behavior  AtomicBehavior
	precision Scale
	elapsed   Duration
}

// NewAtomicModel returns an AtomicModel named name, delegating its
// operations to behavior, scheduled no finer than precision.
func NewAtomicModel(name string, behavior AtomicBehavior, precision Scale) *AtomicModel {
	return &AtomicModel{
		PortOwnerBase: NewPortOwnerBase(name),
		HookableBase:  NewHookableBase(),
		behavior:      behavior,
		precision:     precision,
	}
}

// Name returns the model's name.
func (m *AtomicModel) Name() string {
	return m.name
}

// Kind reports AtomicKind.
func (m *AtomicModel) Kind() ModelKind {
	return AtomicKind
}

// Precision returns the scale at which the model schedules events; its
// time_advance may not be fixed at a finer scale than this.
func (m *AtomicModel) Precision() Scale {
	return m.precision
}

// Behavior returns the user-supplied operations.
func (m *AtomicModel) Behavior() AtomicBehavior {
	return m.behavior
}

// Elapsed returns the time since the model's last transition, as recorded
// during the most recent external or confluent transition.
func (m *AtomicModel) Elapsed() Duration {
	return m.elapsed
}

// SetElapsed records elapsed for ExternalTransition to read back via
// Elapsed; the atomic Simulator calls this immediately before invoking the
// behavior.
func (m *AtomicModel) SetElapsed(elapsed Duration) {
	m.elapsed = elapsed
}

// AddInputPort adds and returns a new input port named name.
func (m *AtomicModel) AddInputPort(name string) *Port {
	p := NewPort(m, name, InputMode)
	m.AddPort(p)

	return p
}

// AddOutputPort adds and returns a new output port named name.
func (m *AtomicModel) AddOutputPort(name string) *Port {
	p := NewPort(m, name, OutputMode)
	m.AddPort(p)

	return p
}

// CoupledModel aggregates child models and the couplings wiring them
// together and to its own boundary ports.
type CoupledModel struct {
	*PortOwnerBase
	*HookableBase

	children  []Model
	couplings []Coupling
}

// NewCoupledModel returns an empty CoupledModel named name.
func NewCoupledModel(name string) *CoupledModel {
	return &CoupledModel{
		PortOwnerBase: NewPortOwnerBase(name),
		HookableBase:  NewHookableBase(),
	}
}

// Name returns the model's name.
func (m *CoupledModel) Name() string {
	return m.name
}

// Kind reports CoupledKind.
func (m *CoupledModel) Kind() ModelKind {
	return CoupledKind
}

// AddChild adds child to the coupled model's child list.
func (m *CoupledModel) AddChild(child Model) {
	m.children = append(m.children, child)
}

// Children returns the coupled model's children, in addition order.
func (m *CoupledModel) Children() []Model {
	return m.children
}

// Couple adds a Coupling from source to destination of the given kind.
func (m *CoupledModel) Couple(source, destination *Port, kind CouplingKind) {
	m.couplings = append(m.couplings, NewCoupling(source, destination, kind))
}

// Couplings returns every coupling registered on the model.
func (m *CoupledModel) Couplings() []Coupling {
	return m.couplings
}

// AddInputPort adds and returns a new boundary input port named name.
func (m *CoupledModel) AddInputPort(name string) *Port {
	p := NewPort(m, name, InputMode)
	m.AddPort(p)

	return p
}

// AddOutputPort adds and returns a new boundary output port named name.
func (m *CoupledModel) AddOutputPort(name string) *Port {
	p := NewPort(m, name, OutputMode)
	m.AddPort(p)

	return p
}
