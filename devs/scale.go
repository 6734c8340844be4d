package devs

import "fmt"

// A Scale selects a base-1000 unit: unit size is 1000^n for exponent n.
// Smaller n is finer; larger n is coarser.
type Scale int

// Named scales, ordered from finest to coarsest.
const (
	Femto Scale = -5
	Pico  Scale = -4
	Nano  Scale = -3
	Micro Scale = -2
	Milli Scale = -1
	Base  Scale = 0
	Kilo  Scale = 1
	Mega  Scale = 2
	Giga  Scale = 3
	Tera  Scale = 4
)

var scaleNames = map[Scale]string{
	Femto: "femto",
	Pico:  "pico",
	Nano:  "nano",
	Micro: "micro",
	Milli: "milli",
	Base:  "base",
	Kilo:  "kilo",
	Mega:  "mega",
	Giga:  "giga",
	Tera:  "tera",
}

// String returns the named scale if known, otherwise a numeric exponent.
func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}

	return fmt.Sprintf("scale(%d)", int(s))
}

// Finer reports whether s is a finer (smaller-exponent) scale than o.
func (s Scale) Finer(o Scale) bool {
	return s < o
}

// refined returns the finer of two scales.
func refined(a, b Scale) Scale {
	if a < b {
		return a
	}

	return b
}

// coarsened returns the coarser of two scales.
func coarsened(a, b Scale) Scale {
	if a > b {
		return a
	}

	return b
}
