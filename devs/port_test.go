package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubBehavior struct{}

func (stubBehavior) TimeAdvance() Duration                       { return Infinity }
func (stubBehavior) InternalTransition()                         {}
func (stubBehavior) ExternalTransition(elapsed Duration, bag Bag) {}
func (stubBehavior) ConfluentTransition(elapsed Duration, bag Bag) {}
func (stubBehavior) Output(bag Bag)                               {}

func TestPortObservableAtomicOutputIsObservable(t *testing.T) {
	m := NewAtomicModel("light", stubBehavior{}, Base)
	p := m.AddOutputPort("signal")

	assert.True(t, p.Observable())
}

func TestPortObservableAtomicInputIsNotObservable(t *testing.T) {
	m := NewAtomicModel("light", stubBehavior{}, Base)
	p := m.AddInputPort("control")

	assert.False(t, p.Observable())
}

func TestPortObservableCoupledPortsAreNotObservable(t *testing.T) {
	m := NewCoupledModel("intersection")
	in := m.AddInputPort("control")
	out := m.AddOutputPort("signal")

	assert.False(t, in.Observable())
	assert.False(t, out.Observable())
}

func TestPortAcceptHookCheckedRejectsUnobservablePort(t *testing.T) {
	m := NewAtomicModel("light", stubBehavior{}, Base)
	p := m.AddInputPort("control")

	err := p.AcceptHookChecked(HookFunc(func(ctx HookCtx) {}))

	var unobservable *UnobservablePortError
	assert.ErrorAs(t, err, &unobservable)
}

func TestPortAcceptHookCheckedAcceptsObservablePort(t *testing.T) {
	m := NewAtomicModel("light", stubBehavior{}, Base)
	p := m.AddOutputPort("signal")

	called := false
	err := p.AcceptHookChecked(HookFunc(func(ctx HookCtx) { called = true }))
	assert.NoError(t, err)

	p.Notify(NewTimePointAtBase(0), ZeroDuration(Base), "red")
	assert.True(t, called)
}
