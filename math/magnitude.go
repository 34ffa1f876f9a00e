/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

// Magnitude returns the base-10 order of magnitude of x, floor(log10(|x|)).
// x must be finite and nonzero.
func Magnitude(x float64) int {
	a := m.Abs(x)
	mag := int(m.Floor(m.Log10(a)))

	// Log10 is off by one ulp for some exact powers of ten (e.g. 1000);
	// correct against the exact Pow10 table
	if mag < 308 && m.Pow10(mag+1) <= a {
		mag++
	} else if mag > -324 && m.Pow10(mag) > a {
		mag--
	}
	return mag
}
