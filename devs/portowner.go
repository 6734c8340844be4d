package devs

import "sort"

// A PortOwner is an element that communicates through named ports: models
// own ports directly, and every AtomicModel and CoupledModel embeds a
// PortOwnerBase.
type PortOwner interface {
	AddPort(port *Port)
	PortByName(name string) (*Port, error)
	Ports() []*Port
}

// PortOwnerBase implements PortOwner.
type PortOwnerBase struct {
	name  string
	ports map[string]*Port
}

// NewPortOwnerBase returns an empty PortOwnerBase identified by name for
// error messages. It panics via NameMustBeValid if name does not follow the
// qualified-naming convention, matching the teacher's own component/domain
// constructors.
func NewPortOwnerBase(name string) *PortOwnerBase {
	NameMustBeValid(name)

	return &PortOwnerBase{
		name:  name,
		ports: make(map[string]*Port),
	}
}

// AddPort registers port under its own name. It panics on a duplicate
// name: that is a model-construction bug, not a runtime condition the
// driver needs to recover from.
func (po *PortOwnerBase) AddPort(port *Port) {
	if _, found := po.ports[port.Name()]; found {
		panic("devs: port " + port.Name() + " already exists on " + po.name)
	}

	po.ports[port.Name()] = port
}

// PortByName returns the named port, or a NoSuchPortError if none exists.
func (po *PortOwnerBase) PortByName(name string) (*Port, error) {
	port, found := po.ports[name]
	if !found {
		return nil, &NoSuchPortError{Model: po.name, Port: name}
	}

	return port, nil
}

// Ports returns every port owned, sorted by name for deterministic
// iteration.
func (po *PortOwnerBase) Ports() []*Port {
	names := make([]string, 0, len(po.ports))
	for n := range po.ports {
		names = append(names, n)
	}

	sort.Strings(names)

	list := make([]*Port, 0, len(po.ports))
	for _, n := range names {
		list = append(list, po.ports[n])
	}

	return list
}
