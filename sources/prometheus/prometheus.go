/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package prometheus

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/log"
)

// Example API usage: https://github.com/prometheus/client_golang/blob/master/api/prometheus/v1/example_test.go

const QUERY_TIMEOUT = 30 * time.Second

var (
	instantColumns = []string{"series", "value"}
	rangeColumns   = []string{"series", "min", "avg", "median", "max"}
)

func CreateAPI(uri *url.URL) (v1.API, error) {
	client, err := api.NewClient(api.Config{
		Address: uri.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Prometheus client: %w", err)
	}

	return v1.NewAPI(client), nil
}

// InstantDataset runs an instant query and returns one row per series:
// the series labels and its value at ts. A range vector result yields the
// same rows as RangeDataset.
func InstantDataset(ctx context.Context, promApi v1.API, query string, ts time.Time) (*appmodel.Dataset, v1.Warnings, error) {
	// set up query context with timeout
	ctx, cancel := context.WithTimeout(ctx, QUERY_TIMEOUT)
	defer cancel()

	result, warnings, err := promApi.Query(ctx, query, ts)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying Prometheus for %q: %w", query, err)
	}
	logWarnings(query, warnings)

	d := &appmodel.Dataset{Name: query, Columns: instantColumns}
	switch r := result.(type) {
	case model.Vector:
		sort.Slice(r, func(i, j int) bool { return r[i].Metric.String() < r[j].Metric.String() })
		for _, s := range r {
			d.Rows = append(d.Rows, []interface{}{s.Metric.String(), float64(s.Value)})
		}
	case *model.Scalar:
		d.Rows = append(d.Rows, []interface{}{query, float64(r.Value)})
	case model.Matrix:
		return matrixDataset(query, r), warnings, nil
	default:
		return nil, warnings, fmt.Errorf("query %q returned %T, expected a vector, scalar or matrix", query, result)
	}
	return d, warnings, nil
}

// RangeDataset runs a range query and returns one row per series with the
// statistics of its samples over the range.
func RangeDataset(ctx context.Context, promApi v1.API, query string, timeRange v1.Range) (*appmodel.Dataset, v1.Warnings, error) {
	// set up query context with timeout
	ctx, cancel := context.WithTimeout(ctx, QUERY_TIMEOUT)
	defer cancel()

	result, warnings, err := promApi.QueryRange(ctx, query, timeRange)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying Prometheus for %q: %w", query, err)
	}
	logWarnings(query, warnings)

	series, ok := result.(model.Matrix)
	if !ok {
		return nil, warnings, fmt.Errorf("query %q returned %T instead of Matrix", query, result)
	}
	return matrixDataset(query, series), warnings, nil
}

func matrixDataset(query string, series model.Matrix) *appmodel.Dataset {
	sort.Slice(series, func(i, j int) bool { return series[i].Metric.String() < series[j].Metric.String() })

	d := &appmodel.Dataset{Name: query, Columns: rangeColumns}
	for _, s := range series {
		label := s.Metric.String()
		st := calcSamplePairStats(s.Values)
		if st.N == 0 {
			log.Warnf("No usable samples in series %v", label)
			d.Rows = append(d.Rows, []interface{}{label, "", "", "", ""})
			continue
		}
		log.Tracef("Series statistics for %v: %#v", label, st)
		d.Rows = append(d.Rows, []interface{}{label, st.Min, st.Average, st.Median, st.Max})
	}
	return d
}

func logWarnings(query string, warnings v1.Warnings) {
	for _, w := range warnings {
		log.WithField("query", query).Warnf("Prometheus warning: %v", w)
	}
}
