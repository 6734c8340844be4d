package devs

import "fmt"

// insertionEventSet is the InsertionScheduler EventSet backend: entries
// are kept in a sorted slice maintained by linear insertion, trading
// O(log n) lookups for a simpler, allocation-light structure that performs
// well for coordinators with few children.
type insertionEventSet[T comparable] struct {
	entries []*eventEntry[T]
	index   map[T]*eventEntry[T]
	nextSeq uint64
}

func newInsertionEventSet[T comparable]() *insertionEventSet[T] {
	return &insertionEventSet[T]{
		index: make(map[T]*eventEntry[T]),
	}
}

func (s *insertionEventSet[T]) PlanEvent(item T, d Duration, precision Scale) error {
	if fixed := d.FixedAt(precision); fixed.IsInfinite() && !d.IsInfinite() {
		return &PlanningError{Item: fmt.Sprintf("%v", item), Precision: precision, Requested: d}
	}

	if e, ok := s.index[item]; ok {
		s.remove(e)
		e.duration = d
		s.insert(e)

		return nil
	}

	e := &eventEntry[T]{item: item, duration: d, seq: s.nextSeq}
	s.nextSeq++
	s.index[item] = e
	s.insert(e)

	return nil
}

func (s *insertionEventSet[T]) insert(e *eventEntry[T]) {
	pos := len(s.entries)

	for i, o := range s.entries {
		if entryLess(e, o) {
			pos = i
			break
		}
	}

	s.entries = append(s.entries, nil)
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = e
}

func (s *insertionEventSet[T]) remove(e *eventEntry[T]) {
	for i, o := range s.entries {
		if o == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *insertionEventSet[T]) CancelEvent(item T) (Duration, bool) {
	e, ok := s.index[item]
	if !ok {
		return Duration{}, false
	}

	s.remove(e)
	delete(s.index, item)

	return e.duration, true
}

func (s *insertionEventSet[T]) DurationOf(item T) (Duration, bool) {
	e, ok := s.index[item]
	if !ok {
		return Duration{}, false
	}

	return e.duration, true
}

func (s *insertionEventSet[T]) ImminentDuration() Duration {
	if len(s.entries) == 0 {
		return Infinity
	}

	return s.entries[0].duration
}

func (s *insertionEventSet[T]) EachImminentEvent(visit func(item T)) {
	if len(s.entries) == 0 {
		return
	}

	min := s.entries[0].duration

	n := 0
	for n < len(s.entries) && s.entries[n].duration.Compare(min) == 0 {
		n++
	}

	imminent := s.entries[:n]
	s.entries = s.entries[n:]

	for _, e := range imminent {
		delete(s.index, e.item)
	}

	for _, e := range imminent {
		visit(e.item)
	}
}

func (s *insertionEventSet[T]) Advance(d Duration) {
	for _, e := range s.entries {
		e.duration = e.duration.Sub(d)
	}
}

func (s *insertionEventSet[T]) Len() int {
	return len(s.entries)
}
