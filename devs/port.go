package devs

// Ports are observed through the single position HookPosPortNotify;
// observers inspect HookCtx.Payload for the delivered value.

// A PortMode distinguishes a port's direction.
type PortMode int

const (
	// InputMode marks a port that receives values routed by couplings.
	InputMode PortMode = iota
	// OutputMode marks a port that a model's output function appends to.
	OutputMode
)

func (m PortMode) String() string {
	if m == OutputMode {
		return "output"
	}

	return "input"
}

// A Port belongs to exactly one model and carries values of one direction.
// Observers may be attached to any externally observable port; see
// Observable.
type Port struct {
	*HookableBase

	name string
	mode PortMode
	host Model
}

// NewPort returns a Port named name, owned by host, in the given mode.
func NewPort(host Model, name string, mode PortMode) *Port {
	return &Port{
		HookableBase: NewHookableBase(),
		name:         name,
		mode:         mode,
		host:         host,
	}
}

// Name returns the port's name, unique among its host's ports.
func (p *Port) Name() string {
	return p.name
}

// Mode returns whether p is an input or output port.
func (p *Port) Mode() PortMode {
	return p.mode
}

// Host returns the model that owns p.
func (p *Port) Host() Model {
	return p.host
}

// Observable reports whether p may be observed. Input ports of atomic
// models, and every port of a coupled model, are internal wiring and are
// not externally observable.
func (p *Port) Observable() bool {
	if p.host.Kind() == CoupledKind {
		return false
	}

	return p.mode == OutputMode
}

// Notify invokes p's observers at HookPosPortNotify with the value just
// routed through it.
func (p *Port) Notify(time TimePoint, elapsed Duration, value any) {
	p.InvokeHook(HookCtx{
		Domain:  p,
		Pos:     HookPosPortNotify,
		Time:    time,
		Elapsed: elapsed,
		Payload: value,
	})
}

// AcceptHookChecked registers an observer, rejecting attachment to a port
// whose class is not externally visible.
func (p *Port) AcceptHookChecked(hook Hook) error {
	if !p.Observable() {
		return &UnobservablePortError{Port: p.name}
	}

	p.AcceptHook(hook)

	return nil
}
