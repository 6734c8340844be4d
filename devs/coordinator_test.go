package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// senderBehavior fires once at t=10 and emits a single value on its output
// port, then goes passive.
type senderBehavior struct {
	fired bool
	out   *Port
}

func (b *senderBehavior) TimeAdvance() Duration {
	if b.fired {
		return Infinity
	}

	return NewDuration(10, Base)
}
func (b *senderBehavior) InternalTransition()                         { b.fired = true }
func (b *senderBehavior) ExternalTransition(elapsed Duration, bag Bag) {}
func (b *senderBehavior) ConfluentTransition(elapsed Duration, bag Bag) {
	DefaultConfluentTransition(b, elapsed, bag)
}
func (b *senderBehavior) Output(bag Bag) { bag.Append(b.out, "ping") }

// receiverBehavior records every elapsed value and bag it was given during
// an external transition and counts its confluent transitions. It never
// fires on its own unless hasSchedule is set, in which case it plans
// scheduled again after every transition.
type receiverBehavior struct {
	externalElapsed []Duration
	externalBags    []Bag
	confluentCalls  int

	scheduled    Duration
	hasSchedule  bool
	fired        bool
}

func (b *receiverBehavior) TimeAdvance() Duration {
	if b.hasSchedule && !b.fired {
		return b.scheduled
	}

	return Infinity
}
func (b *receiverBehavior) InternalTransition()   {}
func (b *receiverBehavior) ExternalTransition(elapsed Duration, bag Bag) {
	b.externalElapsed = append(b.externalElapsed, elapsed)
	b.externalBags = append(b.externalBags, bag)
}
func (b *receiverBehavior) ConfluentTransition(elapsed Duration, bag Bag) {
	b.confluentCalls++
}
func (b *receiverBehavior) Output(bag Bag) {}

func buildSenderReceiver() (*CoupledModel, *senderBehavior, *receiverBehavior) {
	root := NewCoupledModel("root")

	sender := &senderBehavior{}
	senderModel := NewAtomicModel("sender", sender, Base)
	sender.out = senderModel.AddOutputPort("out")

	receiver := &receiverBehavior{}
	receiverModel := NewAtomicModel("receiver", receiver, Base)
	in := receiverModel.AddInputPort("in")

	root.AddChild(senderModel)
	root.AddChild(receiverModel)
	root.Couple(sender.out, in, InternalCoupling)

	return root, sender, receiver
}

// A's output at t=10 reaches B's external_transition exactly once, with
// elapsed == 10 measured from B's own initialization.
func TestCoordinatorExternalTransitionReceivesElapsedSinceInit(t *testing.T) {
	root, _, receiver := buildSenderReceiver()

	sim, err := MakeSimulationBuilder().
		WithDuration(NewDuration(10, Base)).
		Build(root)
	assert.NoError(t, err)
	assert.NoError(t, sim.Simulate())

	assert.Len(t, receiver.externalElapsed, 1)
	assert.True(t, receiver.externalElapsed[0].Equal(NewDuration(10, Base)))
	assert.Equal(t, []any{"ping"}, receiver.externalBags[0][receiverPortByName(receiver, root, "in")])
}

func receiverPortByName(_ *receiverBehavior, root *CoupledModel, name string) *Port {
	for _, child := range root.Children() {
		if child.Name() == "receiver" {
			p, _ := child.PortByName(name)
			return p
		}
	}

	return nil
}

// Two atomics scheduled identically at t=50, wired A->B, invoke B's
// confluent_transition rather than external or internal alone.
func TestCoordinatorConfluentTransitionOnSimultaneousFiring(t *testing.T) {
	root := NewCoupledModel("root")

	sender := &senderBehaviorAt50{}
	senderModel := NewAtomicModel("sender", sender, Base)
	sender.out = senderModel.AddOutputPort("out")

	receiver := &receiverBehavior{scheduled: NewDuration(50, Base), hasSchedule: true}
	receiverModel := NewAtomicModel("receiver", receiver, Base)
	in := receiverModel.AddInputPort("in")

	root.AddChild(senderModel)
	root.AddChild(receiverModel)
	root.Couple(sender.out, in, InternalCoupling)

	sim, err := MakeSimulationBuilder().
		WithDuration(NewDuration(50, Base)).
		Build(root)
	assert.NoError(t, err)
	assert.NoError(t, sim.Simulate())

	assert.Equal(t, 1, receiver.confluentCalls)
	assert.Len(t, receiver.externalElapsed, 0)
}

type senderBehaviorAt50 struct {
	fired bool
	out   *Port
}

func (b *senderBehaviorAt50) TimeAdvance() Duration {
	if b.fired {
		return Infinity
	}

	return NewDuration(50, Base)
}
func (b *senderBehaviorAt50) InternalTransition()                         { b.fired = true }
func (b *senderBehaviorAt50) ExternalTransition(elapsed Duration, bag Bag) {}
func (b *senderBehaviorAt50) ConfluentTransition(elapsed Duration, bag Bag) {
	DefaultConfluentTransition(b, elapsed, bag)
}
func (b *senderBehaviorAt50) Output(bag Bag) { bag.Append(b.out, "ping") }

// A Coordinator rejects a second InitializeProcessor call against the same
// coupled model, mirroring the Simulator's own guard.
func TestCoordinatorInitializeProcessorTwiceIsInvalid(t *testing.T) {
	root, _, _ := buildSenderReceiver()
	coordinator := NewCoordinator(root, HeapScheduler)

	_, _, err := coordinator.InitializeProcessor(NewTimePointAtBase(0))
	assert.NoError(t, err)

	_, _, err = coordinator.InitializeProcessor(NewTimePointAtBase(0))

	var invalidProcessor *InvalidProcessorError
	assert.ErrorAs(t, err, &invalidProcessor)
}

// A child's fatal error is reported qualified by its full hierarchical
// name and its own generated identity, so two processors sharing a bare
// name deep in the tree can still be told apart in the error text.
func TestCoordinatorWrapsChildErrorsWithQualifiedNameAndID(t *testing.T) {
	root := NewCoupledModel("root")
	model := NewAtomicModel("tight", femtoBoundBehavior{}, Femto)
	root.AddChild(model)

	coordinator := NewCoordinator(root, HeapScheduler)

	_, _, err := coordinator.InitializeProcessor(NewTimePointAtBase(0))

	assert.ErrorContains(t, err, "root.tight[")
	assert.ErrorContains(t, err, "]:")
}
