package devs

// A Bag is a map from port to the values produced or delivered through it
// in one simulation cycle.
type Bag map[*Port][]any

// NewBag returns an empty Bag.
func NewBag() Bag {
	return make(Bag)
}

// Append adds value to the list associated with port.
func (b Bag) Append(port *Port, value any) {
	b[port] = append(b[port], value)
}

// Empty reports whether the bag carries no values on any port.
func (b Bag) Empty() bool {
	return len(b) == 0
}

// Clear removes every entry while retaining the map's allocated buckets,
// so a coordinator's reusable parent bag does not reallocate every cycle.
func (b Bag) Clear() {
	for k := range b {
		delete(b, k)
	}
}

// Merge appends every value in o onto b.
func (b Bag) Merge(o Bag) {
	for port, values := range o {
		b[port] = append(b[port], values...)
	}
}
