package devs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A TimePoint is a variable-length, non-negative magnitude expressed in
// base 1000, little-endian (digits[0] is least significant), at a given
// precision Scale. It is the kernel's representation of absolute
// simulated time.
//
// The canonical form has no trailing (most significant) zero digit beyond
// size 1, and no leading (least significant) zero digit beyond size 1 —
// leading zeros are instead absorbed by coarsening precision upward.
type TimePoint struct {
	digits    []int32
	precision Scale
}

// NewTimePoint decomposes a non-negative value into base-1000 digits at
// the given precision and canonicalizes the result.
func NewTimePoint(value int64, precision Scale) TimePoint {
	if value == 0 {
		return TimePoint{digits: []int32{0}, precision: precision}
	}

	var digits []int32

	for value > 0 {
		digits = append(digits, int32(value%1000))
		value /= 1000
	}

	tp := TimePoint{digits: digits, precision: precision}
	tp.canonicalize()

	return tp
}

// NewTimePointAtBase is NewTimePoint at the BASE scale.
func NewTimePointAtBase(value int64) TimePoint {
	return NewTimePoint(value, Base)
}

// Precision returns the scale of the TimePoint's least significant digit.
func (tp TimePoint) Precision() Scale {
	return tp.precision
}

// Size returns the number of base-1000 digits in the canonical form.
func (tp TimePoint) Size() int {
	return len(tp.digits)
}

// DigitAt returns the digit at the given scale, or 0 if the scale lies
// outside the represented range.
func (tp TimePoint) DigitAt(scale Scale) int32 {
	idx := int(scale - tp.precision)
	if idx < 0 || idx >= len(tp.digits) {
		return 0
	}

	return tp.digits[idx]
}

// IsZero reports whether the TimePoint represents the value zero.
func (tp TimePoint) IsZero() bool {
	return len(tp.digits) == 1 && tp.digits[0] == 0
}

// Clone returns an independent copy of tp, safe to mutate or alias
// separately from the original.
func (tp TimePoint) Clone() TimePoint {
	digits := make([]int32, len(tp.digits))
	copy(digits, tp.digits)

	return TimePoint{digits: digits, precision: tp.precision}
}

func (tp *TimePoint) canonicalize() {
	for len(tp.digits) > 1 && tp.digits[len(tp.digits)-1] == 0 {
		tp.digits = tp.digits[:len(tp.digits)-1]
	}

	for len(tp.digits) > 1 && tp.digits[0] == 0 {
		tp.digits = tp.digits[1:]
		tp.precision++
	}
}

// Advance updates tp in place by the given Duration. When d is expressed
// at a finer scale than tp's current precision, the finer part is
// truncated away (lossily coarsening d to tp's precision) rather than
// growing tp's precision; use AdvanceExact to extend tp instead.
func (tp *TimePoint) Advance(d Duration) {
	tp.advance(d, true)
}

// AdvanceExact is Advance with truncation disabled: if d is finer than
// tp's current precision, tp is extended with leading (low-end) zero
// digits down to d's precision so no accuracy is lost.
func (tp *TimePoint) AdvanceExact(d Duration) {
	tp.advance(d, false)
}

func (tp *TimePoint) advance(d Duration, truncate bool) {
	if d.IsInfinite() {
		panic("cannot advance a TimePoint by an infinite Duration")
	}

	digits := append([]int32{}, tp.digits...)
	precision := tp.precision

	switch {
	case d.precision < precision:
		// d is finer than tp: either coarsen d up to tp's precision
		// (lossy, default) or extend tp down to d's precision (exact).
		if truncate {
			d = d.Rescale(precision)
		} else {
			extend := int(precision - d.precision)
			padded := make([]int32, extend, extend+len(digits))
			padded = append(padded, digits...)
			digits = padded
			precision = d.precision
		}
	case d.precision > precision:
		// tp is finer than d: by default, truncate tp's low-order digits
		// away up to d's coarser precision before applying d. Disabling
		// truncation leaves tp's finer digits untouched; d's multiplier
		// is simply added at the matching (higher) digit index.
		if truncate {
			drop := int(d.precision - precision)
			if drop >= len(digits) {
				digits = []int32{0}
			} else {
				digits = digits[drop:]
			}

			precision = d.precision
		}
	}

	idx := int(d.precision - precision)
	for len(digits) <= idx {
		digits = append(digits, 0)
	}

	carry := d.Multiplier()
	i := idx

	for carry != 0 {
		if i >= len(digits) {
			digits = append(digits, 0)
		}

		total := int64(digits[i]) + carry
		digit := total % 1000
		carryOut := total / 1000

		if digit < 0 {
			digit += 1000
			carryOut--
		}

		digits[i] = int32(digit)
		carry = carryOut
		i++
	}

	tp.digits = digits
	tp.precision = precision
	tp.canonicalize()
}

// Compare returns -1, 0, or 1 as tp is less than, equal to, or greater
// than o, by normalized magnitude.
func (tp TimePoint) Compare(o TimePoint) int {
	lo := refined(tp.precision, o.precision)
	hiA := tp.precision + Scale(len(tp.digits)) - 1
	hiB := o.precision + Scale(len(o.digits)) - 1
	hi := coarsened(hiA, hiB)

	for s := hi; s >= lo; s-- {
		da := tp.DigitAt(s)
		db := o.DigitAt(s)

		if da != db {
			if da < db {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Less reports whether tp < o.
func (tp TimePoint) Less(o TimePoint) bool {
	return tp.Compare(o) < 0
}

// Equal reports whether tp == o.
func (tp TimePoint) Equal(o TimePoint) bool {
	return tp.Compare(o) == 0
}

// signedDiffDigits computes tp - o as a sign and a canonical (high-zero
// stripped, low-zero absorbed) base-1000 digit magnitude at the finer of
// the two precisions.
func signedDiffDigits(tp, o TimePoint) (sign int, digits []int32, precision Scale) {
	if tp.Compare(o) < 0 {
		s, d, p := signedDiffDigits(o, tp)
		return -s, d, p
	}

	precision = refined(tp.precision, o.precision)
	hiA := tp.precision + Scale(len(tp.digits)) - 1
	hiB := o.precision + Scale(len(o.digits)) - 1
	hi := coarsened(hiA, hiB)

	n := int(hi-precision) + 1
	if n < 1 {
		n = 1
	}

	digits = make([]int32, n)
	borrow := int64(0)

	for i := 0; i < n; i++ {
		s := precision + Scale(i)
		total := int64(tp.DigitAt(s)) - int64(o.DigitAt(s)) - borrow

		if total < 0 {
			total += 1000
			borrow = 1
		} else {
			borrow = 0
		}

		digits[i] = int32(total)
	}

	for len(digits) > 1 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}

	for len(digits) > 1 && digits[0] == 0 {
		digits = digits[1:]
		precision++
	}

	if len(digits) == 1 && digits[0] == 0 {
		return 0, digits, precision
	}

	return 1, digits, precision
}

// representableWindow keeps the top 5 base-1000 digits of a canonical
// magnitude: 1000^5 - 1 == MultiplierMax, so 5 digits is exactly the
// widest window a Duration multiplier can carry.
const representableWindow = 5

func durationFromDiff(sign int, digits []int32, precision Scale) Duration {
	drop := len(digits) - representableWindow
	if drop < 0 {
		drop = 0
	}

	var multiplier int64
	for i := len(digits) - 1; i >= drop; i-- {
		multiplier = multiplier*1000 + int64(digits[i])
	}

	return NewDuration(int64(sign)*multiplier, precision+Scale(drop))
}

// Sub returns tp - o as a Duration, exact whenever the difference fits in
// MultiplierMax at some scale, otherwise the finest approximation
// satisfying the one-quantum error bound. It returns Infinity only if no
// representable scale satisfies that bound, which cannot occur for any
// magnitude expressible by this implementation's unbounded Scale.
func (tp TimePoint) Sub(o TimePoint) Duration {
	sign, digits, precision := signedDiffDigits(tp, o)
	return durationFromDiff(sign, digits, precision)
}

// Gap returns tp - o as a Duration, coarsening as far as necessary for
// the magnitude to fit; unlike Sub it never reports Infinity.
func (tp TimePoint) Gap(o TimePoint) Duration {
	return tp.Sub(o)
}

// EpochPhase returns the time modulo MultiplierLimit * 1000^scale, as a
// Duration at the given scale, always in [0, MultiplierLimit).
func (tp TimePoint) EpochPhase(scale Scale) Duration {
	var value int64
	for i := representableWindow - 1; i >= 0; i-- {
		value = value*1000 + int64(tp.DigitAt(scale+Scale(i)))
	}

	return NewDuration(value, scale)
}

// PhaseFromDuration answers: at what phase, relative to the next epoch
// boundary at or past tp, does tp + d land?
func (tp TimePoint) PhaseFromDuration(d Duration) Duration {
	phase := tp.EpochPhase(d.precision).Multiplier()
	sum := phase + d.Multiplier()

	var resultMultiplier int64
	if sum < MultiplierLimit {
		resultMultiplier = sum
	} else {
		resultMultiplier = sum - MultiplierLimit
	}

	result := Duration{multiplier: resultMultiplier, precision: d.precision}

	for result.multiplier != 0 && result.multiplier%1000 == 0 {
		result.multiplier /= 1000
		result.precision++
	}

	switch {
	case tp.IsZero():
		result.precision = Base
	case d.IsZero():
		result.precision = tp.precision
	}

	return result
}

// DurationFromPhase returns phase - EpochPhase(phase.Precision()) as a
// Duration at the phase's precision.
func (tp TimePoint) DurationFromPhase(phase Duration) Duration {
	epoch := tp.EpochPhase(phase.Precision())
	return Duration{
		multiplier: phase.Multiplier() - epoch.Multiplier(),
		precision:  phase.Precision(),
	}
}

// RefinedDuration re-expresses d as it would actually elapse at
// targetScale, honoring the truncation that advancing tp by d at tp's
// current precision would apply.
func (tp TimePoint) RefinedDuration(d Duration, target Scale) Duration {
	effective := d
	if d.Precision() < tp.precision {
		effective = d.Rescale(tp.precision)
	}

	return effective.Rescale(target)
}

// ToInt64 truncates the TimePoint to an integer in units of its
// precision; this overflows silently for magnitudes beyond int64 range,
// matching the "truncating" contract rather than an exact-value contract.
func (tp TimePoint) ToInt64() int64 {
	var v int64
	for i := len(tp.digits) - 1; i >= 0; i-- {
		v = v*1000 + int64(tp.digits[i])
	}

	return v
}

// ToFloat64 returns a floating-point approximation of the TimePoint at
// scale 0.
func (tp TimePoint) ToFloat64() float64 {
	var v float64
	for i := len(tp.digits) - 1; i >= 0; i-- {
		v = v*1000 + float64(tp.digits[i])
	}

	return v * math.Pow(1000, float64(tp.precision))
}

// String renders the exact base-10 integer built from the digits,
// suffixed with e+k or e-k when precision is not BASE.
func (tp TimePoint) String() string {
	var sb strings.Builder

	for i := len(tp.digits) - 1; i >= 0; i-- {
		if i == len(tp.digits)-1 {
			sb.WriteString(strconv.Itoa(int(tp.digits[i])))
		} else {
			fmt.Fprintf(&sb, "%03d", tp.digits[i])
		}
	}

	if tp.precision != Base {
		exp := int(tp.precision) * 3
		if exp > 0 {
			fmt.Fprintf(&sb, "e+%d", exp)
		} else {
			fmt.Fprintf(&sb, "e%d", exp)
		}
	}

	return sb.String()
}
