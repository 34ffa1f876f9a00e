/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

// RoundWithOffset rounds x to the nearest multiple of the base derived from
// its own magnitude and o. x must be finite and nonzero; callers handle zero
// and non-numeric values before getting here.
func RoundWithOffset(x float64, o Offset) float64 {
	base := o.Base(Magnitude(x))
	switch {
	case m.IsInf(base, 0):
		return 0 // coarser than any float64
	case base == 0:
		return x // finer than any float64
	}
	// the nudge keeps stored half-way values (0.35 == 0.34999...) rounding up
	return m.Round(x/base+EPSILON) * base
}

// Round rounds x at the given granularity encoding relative to its own
// magnitude. Zero rounds to zero; NaN and infinities are returned as is. An
// encoding outside [-20, 20] fails with *OffsetRangeError naming "offset".
func Round(x float64, encoding float64) (float64, error) {
	o, err := ResolveOffset(encoding, "offset")
	if err != nil {
		return 0, err
	}
	if x == 0 || m.IsNaN(x) || m.IsInf(x, 0) {
		return x, nil
	}
	return RoundWithOffset(x, o), nil
}
