package devs

import "fmt"

// MultiplierLimit is the width of one epoch: 10^15 multiplier units.
const MultiplierLimit int64 = 1_000_000_000_000_000

// MultiplierMax is the largest magnitude a finite Duration multiplier may
// carry.
const MultiplierMax int64 = MultiplierLimit - 1

// A Duration is a signed, multiscale interval of time: a multiplier at a
// given Scale, optionally pinned ("fixed") at that scale.
type Duration struct {
	multiplier int64
	precision  Scale
	fixed      bool
	infinite   bool
}

// Infinity represents an unreachable time: no finite Duration compares
// greater than it.
var Infinity = Duration{infinite: true}

// NewDuration constructs a Duration, clamping to Infinity on overflow of
// MultiplierMax.
func NewDuration(multiplier int64, precision Scale) Duration {
	if multiplier > MultiplierMax || multiplier < -MultiplierMax {
		return Infinity
	}

	return Duration{multiplier: multiplier, precision: precision}
}

// ZeroDuration returns a zero-valued Duration at the given precision.
func ZeroDuration(precision Scale) Duration {
	return Duration{precision: precision}
}

// Multiplier returns the raw multiplier. Meaningless on an infinite
// Duration.
func (d Duration) Multiplier() int64 {
	return d.multiplier
}

// Precision returns the scale the multiplier is expressed at.
func (d Duration) Precision() Scale {
	return d.precision
}

// Fixed reports whether the Duration is pinned at its current precision.
func (d Duration) Fixed() bool {
	return d.fixed
}

// IsInfinite reports whether d is the Infinity sentinel.
func (d Duration) IsInfinite() bool {
	return d.infinite
}

// IsZero reports whether d is a zero-length, finite Duration. Zero
// durations compare equal regardless of precision.
func (d Duration) IsZero() bool {
	return !d.infinite && d.multiplier == 0
}

// Negate flips the sign of the multiplier. Infinity negates to itself: the
// kernel only ever represents an unreachable *future*.
func (d Duration) Negate() Duration {
	if d.infinite {
		return d
	}

	return Duration{multiplier: -d.multiplier, precision: d.precision, fixed: d.fixed}
}

// pow1000Checked returns 1000^n and whether computing it overflowed int64.
func pow1000Checked(n int) (int64, bool) {
	result := int64(1)

	for i := 0; i < n; i++ {
		next := result * 1000
		if next/1000 != result {
			return 0, true
		}

		result = next
	}

	return result, false
}

func mulOverflows(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}

	p := a * b
	if p/b != a {
		return 0, true
	}

	return p, false
}

// rescaleChecked re-expresses d at the given scale, reporting whether
// refining overflowed. Coarsening never overflows: the magnitude only
// shrinks.
func (d Duration) rescaleChecked(to Scale) (Duration, bool) {
	if d.infinite {
		return d, false
	}

	if to == d.precision || d.multiplier == 0 {
		return Duration{multiplier: d.multiplier, precision: to, fixed: d.fixed}, false
	}

	if to > d.precision {
		factor, overflowed := pow1000Checked(int(to - d.precision))
		if overflowed {
			return Duration{precision: to, fixed: d.fixed}, false
		}

		return Duration{multiplier: d.multiplier / factor, precision: to, fixed: d.fixed}, false
	}

	factor, overflowed := pow1000Checked(int(d.precision - to))
	if overflowed {
		return Duration{}, true
	}

	product, overflowed := mulOverflows(d.multiplier, factor)
	if overflowed || product > MultiplierMax || product < -MultiplierMax {
		return Duration{}, true
	}

	return Duration{multiplier: product, precision: to, fixed: d.fixed}, false
}

// Rescale returns d re-expressed at the given scale. Coarsening divides
// (floor toward zero); refining multiplies and may overflow to Infinity.
func (d Duration) Rescale(to Scale) Duration {
	result, overflowed := d.rescaleChecked(to)
	if overflowed {
		return Infinity
	}

	return result
}

// FixedAt attempts to express d at exactly the given scale, pinning the
// fixed flag on success. It fails (returns Infinity) exactly when refining
// to that scale would overflow MultiplierMax.
func (d Duration) FixedAt(to Scale) Duration {
	result, overflowed := d.rescaleChecked(to)
	if overflowed {
		return Infinity
	}

	result.fixed = true

	return result
}

// Add returns d + o, normalizing to the finer of the two precisions when
// that fits, otherwise falling back to the coarser precision.
func (d Duration) Add(o Duration) Duration {
	if d.infinite || o.infinite {
		return Infinity
	}

	finer := refined(d.precision, o.precision)

	da, overflowedA := d.rescaleChecked(finer)
	ob, overflowedB := o.rescaleChecked(finer)

	if !overflowedA && !overflowedB {
		return NewDuration(da.multiplier+ob.multiplier, finer)
	}

	coarser := coarsened(d.precision, o.precision)
	da, _ = d.rescaleChecked(coarser)
	ob, _ = o.rescaleChecked(coarser)

	return NewDuration(da.multiplier+ob.multiplier, coarser)
}

// Sub returns d - o.
func (d Duration) Sub(o Duration) Duration {
	return d.Add(o.Negate())
}

// Compare returns -1, 0, or 1 as d is less than, equal to, or greater than
// o. Infinity orders greatest. Numeric ties at different precisions break
// in favor of the finer precision (it is considered infinitesimally
// smaller), then by insertion is left to the caller (EventSet).
func (d Duration) Compare(o Duration) int {
	if d.infinite && o.infinite {
		return 0
	}

	if d.infinite {
		return 1
	}

	if o.infinite {
		return -1
	}

	if d.IsZero() && o.IsZero() {
		return 0
	}

	finer := refined(d.precision, o.precision)

	da, overflowedA := d.rescaleChecked(finer)
	ob, overflowedB := o.rescaleChecked(finer)

	if !overflowedA && !overflowedB {
		switch {
		case da.multiplier < ob.multiplier:
			return -1
		case da.multiplier > ob.multiplier:
			return 1
		case d.precision < o.precision:
			return -1
		case d.precision > o.precision:
			return 1
		default:
			return 0
		}
	}

	// Exact comparison is not representable: approximate by magnitude,
	// with the coarser side (which, by construction here, is the one that
	// could not be refined) treated as the larger.
	switch {
	case d.precision > o.precision:
		return 1
	case d.precision < o.precision:
		return -1
	case d.multiplier < o.multiplier:
		return -1
	case d.multiplier > o.multiplier:
		return 1
	default:
		return 0
	}
}

// Less reports whether d < o.
func (d Duration) Less(o Duration) bool {
	return d.Compare(o) < 0
}

// Equal reports whether d == o.
func (d Duration) Equal(o Duration) bool {
	return d.Compare(o) == 0
}

// String renders the Duration for diagnostics.
func (d Duration) String() string {
	if d.infinite {
		return "Infinity"
	}

	return fmt.Sprintf("%d@%s", d.multiplier, d.precision)
}
