/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package prometheus

import (
	"math"
	"sort"

	"github.com/prometheus/common/model"
)

type ValueStats struct {
	N       int
	Min     float64
	Max     float64
	Sum     float64
	Average float64
	Median  float64
}

// calcSamplePairStats summarizes the finite values of a series; NaN and
// infinite samples (stale markers, division by zero) are skipped.
func calcSamplePairStats(samples []model.SamplePair) (res ValueStats) {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		v := float64(s.Value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}

	// handle the no-data case (Min, Max are not valid if N==0)
	if len(values) == 0 {
		return
	}

	// accumulate min, max and sum
	res.N = len(values)
	res.Min = values[0]
	res.Max = values[0]
	for _, v := range values {
		res.Sum += v
		if v < res.Min {
			res.Min = v
		}
		if v > res.Max {
			res.Max = v
		}
	}

	// compute average
	res.Average = res.Sum / float64(res.N) // N != 0 always

	// compute median
	sort.Float64s(values)
	if res.N%2 == 1 {
		res.Median = values[(res.N+1)/2-1]
	} else {
		res.Median = (values[res.N/2-1] + values[res.N/2]) / 2
	}

	return
}
