/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

// MaxMagnitudeOf returns the largest order of magnitude among samples,
// skipping zeros, NaN and infinities. ok is false if no sample qualified.
func MaxMagnitudeOf(samples ...float64) (max int, ok bool) {
	for _, v := range samples {
		if v == 0 || m.IsNaN(v) || m.IsInf(v, 0) {
			continue
		}
		if mag := Magnitude(v); !ok || mag > max {
			max = mag
			ok = true
		}
	}
	return
}

// MaxMagnitude returns the largest order of magnitude across every cell of a
// rectangular (or ragged) collection. Cells that are zero or not numeric
// (see Parse) are skipped entirely; ok is false if none remain.
func MaxMagnitude(rows [][]interface{}) (max int, ok bool) {
	var samples []float64
	for _, row := range rows {
		for _, cell := range row {
			if v, valid := Parse(cell); valid {
				samples = append(samples, v)
			}
		}
	}
	return MaxMagnitudeOf(samples...)
}
