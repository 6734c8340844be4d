package devs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEventSetKinds() []SchedulerKind {
	return []SchedulerKind{HeapScheduler, InsertionScheduler}
}

func TestEventSetImminentDurationEmptyIsInfinite(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)
		assert.True(t, s.ImminentDuration().IsInfinite())
	}
}

func TestEventSetPlanAndImminentDuration(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)

		assert.NoError(t, s.PlanEvent("a", NewDuration(30, Base), Base))
		assert.NoError(t, s.PlanEvent("b", NewDuration(10, Base), Base))
		assert.NoError(t, s.PlanEvent("c", NewDuration(20, Base), Base))

		assert.Equal(t, 3, s.Len())
		assert.True(t, s.ImminentDuration().Equal(NewDuration(10, Base)))
	}
}

func TestEventSetPlanEventUpdatesExisting(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)

		assert.NoError(t, s.PlanEvent("a", NewDuration(30, Base), Base))
		assert.NoError(t, s.PlanEvent("a", NewDuration(5, Base), Base))

		assert.Equal(t, 1, s.Len())
		d, ok := s.DurationOf("a")
		assert.True(t, ok)
		assert.True(t, d.Equal(NewDuration(5, Base)))
	}
}

func TestEventSetCancelEvent(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)
		assert.NoError(t, s.PlanEvent("a", NewDuration(10, Base), Base))

		d, ok := s.CancelEvent("a")
		assert.True(t, ok)
		assert.True(t, d.Equal(NewDuration(10, Base)))
		assert.Equal(t, 0, s.Len())

		_, ok = s.CancelEvent("a")
		assert.False(t, ok)
	}
}

func TestEventSetEachImminentEventFIFOTiebreak(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)

		assert.NoError(t, s.PlanEvent("first", NewDuration(10, Base), Base))
		assert.NoError(t, s.PlanEvent("second", NewDuration(10, Base), Base))
		assert.NoError(t, s.PlanEvent("later", NewDuration(20, Base), Base))

		var visited []string
		s.EachImminentEvent(func(item string) {
			visited = append(visited, item)
		})

		assert.Equal(t, []string{"first", "second"}, visited)
		assert.Equal(t, 1, s.Len())
	}
}

func TestEventSetEachImminentEventOnEmptySetIsNoop(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)
		called := false
		s.EachImminentEvent(func(item string) { called = true })
		assert.False(t, called)
	}
}

func TestEventSetAdvanceReducesEveryEntry(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)
		assert.NoError(t, s.PlanEvent("a", NewDuration(30, Base), Base))
		assert.NoError(t, s.PlanEvent("b", NewDuration(50, Base), Base))

		s.Advance(NewDuration(10, Base))

		da, _ := s.DurationOf("a")
		db, _ := s.DurationOf("b")
		assert.True(t, da.Equal(NewDuration(20, Base)))
		assert.True(t, db.Equal(NewDuration(40, Base)))
	}
}

// Numeric ties at different precisions break in favor of the finer
// precision per Duration.Compare, so a finer-precision entry with the same
// magnitude fires ahead of a coarser one even though FIFO order would put
// the coarser one first.
func TestEventSetPrecisionTiebreakBeatsInsertionOrder(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)

		assert.NoError(t, s.PlanEvent("coarse", NewDuration(1, Base), Base))
		assert.NoError(t, s.PlanEvent("fine", NewDuration(1000, Milli), Milli))

		var visited []string
		s.EachImminentEvent(func(item string) {
			visited = append(visited, item)
		})

		assert.Equal(t, []string{"fine"}, visited)
		assert.Equal(t, 1, s.Len())
	}
}

// A duration cannot be fixed at a precision finer than its own when doing
// so would overflow MultiplierMax; plan_event rejects it with a
// PlanningError instead of storing an unrepresentable value.
func TestEventSetPlanEventRejectsUnrepresentablePrecision(t *testing.T) {
	for _, kind := range testEventSetKinds() {
		s := NewEventSet[string](kind)

		err := s.PlanEvent("x", NewDuration(500, Kilo), Femto)

		var planning *PlanningError
		assert.ErrorAs(t, err, &planning)
		assert.Equal(t, 0, s.Len())
	}
}
