package devs

import (
	"container/heap"
	"fmt"
)

// A SchedulerKind selects the backing data structure for an EventSet.
type SchedulerKind int

const (
	// HeapScheduler backs an EventSet with a binary heap: O(log n)
	// plan/cancel, appropriate for coordinators with many children.
	HeapScheduler SchedulerKind = iota
	// InsertionScheduler backs an EventSet with insertion-sort into a
	// slice: O(n) plan/cancel but a cheaper constant factor for small
	// child counts, and trivially stable.
	InsertionScheduler
)

// An EventSet is a priority queue of items, each carrying a Duration
// planned relative to a shared, implicit current time.
type EventSet[T comparable] interface {
	// PlanEvent inserts or updates item with a Duration measured from the
	// set's current baseline. It rejects d with a PlanningError if d
	// cannot be fixed at precision without its multiplier overflowing
	// MultiplierMax.
	PlanEvent(item T, d Duration, precision Scale) error
	// CancelEvent removes item, returning its prior planned duration and
	// whether it was present.
	CancelEvent(item T) (Duration, bool)
	// DurationOf returns the remaining duration until item fires.
	DurationOf(item T) (Duration, bool)
	// ImminentDuration returns the minimum planned duration among all
	// items, or Infinity if the set is empty. It does not mutate the set.
	ImminentDuration() Duration
	// EachImminentEvent visits and removes every item whose remaining
	// duration equals the current minimum, in FIFO insertion order among
	// ties. Calling it on an empty set is a no-op.
	EachImminentEvent(visit func(item T))
	// Advance shifts the set's reference point forward by d, reducing
	// every stored duration by d. Only the owning coordinator's driver
	// loop calls this; models never advance the set directly.
	Advance(d Duration)
	// Len returns the number of items currently planned.
	Len() int
}

type eventEntry[T comparable] struct {
	item      T
	duration  Duration
	seq       uint64
	heapIndex int
}

func entryLess[T comparable](a, b *eventEntry[T]) bool {
	if cmp := a.duration.Compare(b.duration); cmp != 0 {
		return cmp < 0
	}

	return a.seq < b.seq
}

// NewEventSet constructs an EventSet backed by the requested scheduler
// kind.
func NewEventSet[T comparable](kind SchedulerKind) EventSet[T] {
	switch kind {
	case InsertionScheduler:
		return newInsertionEventSet[T]()
	default:
		return newHeapEventSet[T]()
	}
}

// heapEventSet is the default EventSet backend: a binary min-heap keyed by
// duration, with an index for O(log n) cancellation and lookup.
type heapEventSet[T comparable] struct {
	entries eventHeap[T]
	index   map[T]*eventEntry[T]
	nextSeq uint64
}

func newHeapEventSet[T comparable]() *heapEventSet[T] {
	return &heapEventSet[T]{
		entries: make(eventHeap[T], 0),
		index:   make(map[T]*eventEntry[T]),
	}
}

func (s *heapEventSet[T]) PlanEvent(item T, d Duration, precision Scale) error {
	if fixed := d.FixedAt(precision); fixed.IsInfinite() && !d.IsInfinite() {
		return &PlanningError{Item: fmt.Sprintf("%v", item), Precision: precision, Requested: d}
	}

	if e, ok := s.index[item]; ok {
		e.duration = d
		heap.Fix(&s.entries, e.heapIndex)
		return nil
	}

	e := &eventEntry[T]{item: item, duration: d, seq: s.nextSeq}
	s.nextSeq++
	s.index[item] = e
	heap.Push(&s.entries, e)

	return nil
}

func (s *heapEventSet[T]) CancelEvent(item T) (Duration, bool) {
	e, ok := s.index[item]
	if !ok {
		return Duration{}, false
	}

	heap.Remove(&s.entries, e.heapIndex)
	delete(s.index, item)

	return e.duration, true
}

func (s *heapEventSet[T]) DurationOf(item T) (Duration, bool) {
	e, ok := s.index[item]
	if !ok {
		return Duration{}, false
	}

	return e.duration, true
}

func (s *heapEventSet[T]) ImminentDuration() Duration {
	if len(s.entries) == 0 {
		return Infinity
	}

	return s.entries[0].duration
}

func (s *heapEventSet[T]) EachImminentEvent(visit func(item T)) {
	if len(s.entries) == 0 {
		return
	}

	min := s.entries[0].duration

	var imminent []*eventEntry[T]
	for _, e := range s.entries {
		if e.duration.Compare(min) == 0 {
			imminent = append(imminent, e)
		}
	}

	orderedBySeq(imminent)

	for _, e := range imminent {
		heap.Remove(&s.entries, e.heapIndex)
		delete(s.index, e.item)
	}

	for _, e := range imminent {
		visit(e.item)
	}
}

func (s *heapEventSet[T]) Advance(d Duration) {
	for _, e := range s.entries {
		e.duration = e.duration.Sub(d)
	}
}

func (s *heapEventSet[T]) Len() int {
	return len(s.entries)
}

func orderedBySeq[T comparable](entries []*eventEntry[T]) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].seq < entries[j-1].seq; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// eventHeap adapts eventEntry pointers to container/heap, keeping each
// entry's heapIndex field in sync so the owning set can heap.Fix or
// heap.Remove it in place rather than re-scanning for its slot.
type eventHeap[T comparable] []*eventEntry[T]

func (h eventHeap[T]) Len() int { return len(h) }

func (h eventHeap[T]) Less(i, j int) bool {
	return entryLess(h[i], h[j])
}

func (h eventHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *eventHeap[T]) Push(x any) {
	e := x.(*eventEntry[T])
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}
