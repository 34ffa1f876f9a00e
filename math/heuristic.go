/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

// SelectOffset picks the granularity for a value of magnitude mag within a
// dataset whose largest magnitude is maxMag (hasMax=false when the dataset
// has no usable numbers). Values within topTierWidth orders of magnitude of
// the maximum get top; everything else gets other.
func SelectOffset(mag int, maxMag int, hasMax bool, top, other Offset, topTierWidth int) Offset {
	if hasMax && maxMag-mag < topTierWidth {
		return top
	}
	return other
}

// RoundCell rounds one cell against a dataset reference magnitude. Cells that
// do not parse as numbers are returned unchanged; numeric zero (including
// text such as "$0") yields 0.
func RoundCell(value interface{}, maxMag int, hasMax bool, top, other Offset, topTierWidth int) interface{} {
	x, ok := Parse(value)
	if !ok {
		return value
	}
	if x == 0 {
		return 0.0
	}
	o := SelectOffset(Magnitude(x), maxMag, hasMax, top, other, topTierWidth)
	return RoundWithOffset(x, o)
}
