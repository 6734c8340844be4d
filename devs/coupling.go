package devs

// A CouplingKind selects what a Coupling wires together.
type CouplingKind int

const (
	// InternalCoupling wires a child's output port to a sibling's input
	// port.
	InternalCoupling CouplingKind = iota
	// ExternalInputCoupling wires the coupled model's own input port to a
	// child's input port.
	ExternalInputCoupling
	// ExternalOutputCoupling wires a child's output port to the coupled
	// model's own output port.
	ExternalOutputCoupling
)

// A Coupling routes values from Source to Destination.
type Coupling struct {
	Source      *Port
	Destination *Port
	Kind        CouplingKind
}

// NewCoupling returns a Coupling of the given kind between source and
// destination.
func NewCoupling(source, destination *Port, kind CouplingKind) Coupling {
	return Coupling{Source: source, Destination: destination, Kind: kind}
}
