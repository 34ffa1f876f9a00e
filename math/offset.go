/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	"fmt"
	m "math"
)

const (
	OFFSET_LIMIT = 20   // offsets are accepted in [-OFFSET_LIMIT, OFFSET_LIMIT]
	EPSILON      = 1e-9 // nudge applied before rounding to absorb representation error
)

// OffsetRangeError reports a granularity encoding outside the accepted range.
type OffsetRangeError struct {
	Param string  // name of the offending parameter
	Value float64 // value supplied
	Min   float64
	Max   float64
}

func (e *OffsetRangeError) Error() string {
	return fmt.Sprintf("%v must be between %g and %g, got %g", e.Param, e.Min, e.Max, e.Value)
}

// Offset is a decoded granularity ("grain") encoding.
//
// The encoding is an OoM shift plus an optional fraction of the unit:
//
//	 0    = current OoM
//	-1    = one OoM finer
//	 1    = one OoM coarser
//	±0.5  = half of the current OoM
//	-1.5  = half of one OoM finer
type Offset struct {
	Shift    int     // orders of magnitude relative to the value's own
	Fraction float64 // multiple of the shifted unit, in (0, 1]
}

// ResolveOffset validates encoding and decomposes it into an Offset. param
// names the parameter in the returned *OffsetRangeError.
func ResolveOffset(encoding float64, param string) (Offset, error) {
	if m.IsNaN(encoding) || encoding < -OFFSET_LIMIT || encoding > OFFSET_LIMIT {
		return Offset{}, &OffsetRangeError{Param: param, Value: encoding, Min: -OFFSET_LIMIT, Max: OFFSET_LIMIT}
	}
	shift := m.Trunc(encoding)
	fraction := m.Abs(encoding - shift)
	if fraction == 0 {
		fraction = 1 // whole encoding: round to a whole unit, not to zero
	}
	return Offset{Shift: int(shift), Fraction: fraction}, nil
}

// Base returns the rounding base for a value of magnitude mag.
func (o Offset) Base(mag int) float64 {
	return m.Pow10(mag+o.Shift) * o.Fraction
}
