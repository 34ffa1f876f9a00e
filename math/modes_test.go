package math

import (
	"errors"
	m "math"
	"testing"
	"time"
)

func gcpData() [][]interface{} {
	return [][]interface{}{
		{4428910.41},
		{3892105.59},
		{1011204.89},
		{983321.11},
		{824479.02},
		{84211},
		{42109.45},
		{21550.20},
		{1510.44},
		{1127.10},
		{67.44},
		{42.66},
	}
}

func decimalsData() [][]interface{} {
	return [][]interface{}{{0.35}, {0.12}, {0.047}, {0.0083}}
}

func cellEqual(got, want interface{}) bool {
	if w, ok := want.(float64); ok {
		g, ok := got.(float64)
		return ok && approxEqual(g, w)
	}
	return got == want
}

func checkRows(t *testing.T, name string, got, want [][]interface{}) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%v: expected %d rows, got %d", name, len(want), len(got))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Errorf("%v: row %d: expected %d cells, got %d", name, i, len(want[i]), len(got[i]))
			continue
		}
		for j := range want[i] {
			if !cellEqual(got[i][j], want[i][j]) {
				t.Errorf("%v: [%d][%d] should be %#v, got %#v", name, i, j, want[i][j], got[i][j])
			}
		}
	}
}

func column(values ...interface{}) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, v := range values {
		rows[i] = []interface{}{v}
	}
	return rows
}

func TestDatasetModeDefaults(t *testing.T) {
	res, err := DatasetMode(gcpData(), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "GCP defaults", res, column(
		4500000.0, 4000000.0, 1000000.0,
		1000000.0, 800000.0, 80000.0, 40000.0, 20000.0, 2000.0, 1000.0, 70.0, 40.0))
}

func TestDatasetModeTuning(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		want [][]interface{}
	}{
		{"top=-1", Params{-1, 0, 1}, column(
			4400000.0, 3900000.0, 1000000.0,
			1000000.0, 800000.0, 80000.0, 40000.0, 20000.0, 2000.0, 1000.0, 70.0, 40.0)},
		{"other=-1", Params{-0.5, -1, 1}, column(
			4500000.0, 4000000.0, 1000000.0,
			980000.0, 820000.0, 84000.0, 42000.0, 22000.0, 1500.0, 1100.0, 67.0, 43.0)},
		{"width=2", Params{-0.5, 0, 2}, column(
			4500000.0, 4000000.0, 1000000.0,
			1000000.0, 800000.0, 80000.0, 40000.0, 20000.0, 2000.0, 1000.0, 70.0, 40.0)},
	}
	for _, c := range cases {
		res, err := DatasetMode(gcpData(), c.p)
		if err != nil {
			t.Errorf("%v: %v", c.name, err)
			continue
		}
		checkRows(t, c.name, res, c.want)
	}
}

func TestDatasetModePassThrough(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	clock := time.Date(1970, 1, 1, 9, 30, 0, 0, time.UTC)
	inf := m.Inf(1)
	rows := [][]interface{}{
		{4428910.41, "Cloud CDN"},
		{0, ""},
		{date, clock},
		{true, nil},
		{inf, "$1,234.56"},
		{"(500)", 42.66},
	}
	res, err := DatasetMode(rows, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "mixed", res, [][]interface{}{
		{4500000.0, "Cloud CDN"},
		{0.0, ""},
		{date, clock},
		{true, nil},
		{inf, 1000.0},
		{-500.0, 40.0},
	})

	// the input is left alone
	if rows[0][0] != 4428910.41 {
		t.Errorf("DatasetMode modified its input")
	}
}

func TestDatasetModeDecimals(t *testing.T) {
	res, err := DatasetMode(decimalsData(), DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "decimals", res, column(0.35, 0.1, 0.05, 0.008))
}

func TestDatasetModeShapes(t *testing.T) {
	res, err := DatasetMode(nil, DefaultParams())
	if err != nil || len(res) != 0 {
		t.Errorf("DatasetMode(nil) should return an empty result, got %v, %v", res, err)
	}

	ragged := [][]interface{}{{4428910, 983321, 42109}, {}, {87654321}}
	res, err = DatasetMode(ragged, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "ragged", res, [][]interface{}{{4000000.0, 1000000.0, 40000.0}, {}, {90000000.0}})

	// no usable numbers at all
	res, _ = DatasetMode([][]interface{}{{"a", "", 0}}, DefaultParams())
	checkRows(t, "no numbers", res, [][]interface{}{{"a", "", 0.0}})
}

func TestDatasetModeStableUnderReordering(t *testing.T) {
	data := gcpData()
	reversed := make([][]interface{}, len(data))
	for i := range data {
		reversed[len(data)-1-i] = data[i]
	}
	reversed = append(reversed, data[3], data[0])

	a, _ := DatasetMode(data, DefaultParams())
	b, _ := DatasetMode(reversed, DefaultParams())
	for i := range data {
		if !cellEqual(b[len(data)-1-i][0], a[i][0]) {
			t.Errorf("value %v rounds differently after reordering: %v vs %v", data[i][0], a[i][0], b[len(data)-1-i][0])
		}
	}
}

func TestDatasetModeOffsetErrors(t *testing.T) {
	var rangeErr *OffsetRangeError
	_, err := DatasetMode(gcpData(), Params{21, 0, 1})
	if !errors.As(err, &rangeErr) || rangeErr.Param != "top_offset" {
		t.Errorf("expected top_offset range error, got %v", err)
	}
	_, err = DatasetMode(gcpData(), Params{-0.5, -20.5, 1})
	if !errors.As(err, &rangeErr) || rangeErr.Param != "other_offset" {
		t.Errorf("expected other_offset range error, got %v", err)
	}
	if _, err := DatasetMode(gcpData(), Params{-20, 20, 1}); err != nil {
		t.Errorf("limits should be accepted, got %v", err)
	}
}

func TestDatasetAwareMode(t *testing.T) {
	cases := []struct {
		value interface{}
		ref   [][]interface{}
		p     Params
		want  interface{}
	}{
		{4428910.41, gcpData(), DefaultParams(), 4500000.0},
		{983321.11, gcpData(), DefaultParams(), 1000000.0},
		{42.66, gcpData(), DefaultParams(), 40.0},
		{4428910.41, gcpData(), Params{-1, 0, 1}, 4400000.0},
		{983321.11, gcpData(), Params{-0.5, -1, 1}, 980000.0},
		{983321.11, gcpData(), Params{-0.5, 0, 2}, 1000000.0},
		{0.35, decimalsData(), DefaultParams(), 0.35},
		{0.047, decimalsData(), DefaultParams(), 0.05},
		{"Cloud CDN", gcpData(), DefaultParams(), "Cloud CDN"},
		{0, gcpData(), DefaultParams(), 0.0},
		{"", gcpData(), DefaultParams(), ""},
		{4428910.41, [][]interface{}{{4428910.41}, {time.Now()}, {1000}}, DefaultParams(), 4500000.0},
		// the value is not part of its own reference; above the reference max still counts as top
		{4428910.41, [][]interface{}{{42.66}}, DefaultParams(), 4500000.0},
		{42109, [][]interface{}{{4428910.41}}, DefaultParams(), 40000.0},
		// no reference numbers: "other" granularity
		{4428910.41, [][]interface{}{{"n/a"}}, DefaultParams(), 4000000.0},
	}
	for _, c := range cases {
		got, err := DatasetAwareMode(c.value, c.ref, c.p)
		if err != nil {
			t.Errorf("DatasetAwareMode(%v) failed: %v", c.value, err)
			continue
		}
		if !cellEqual(got, c.want) {
			t.Errorf("DatasetAwareMode(%v, %+v) should return %#v, got %#v", c.value, c.p, c.want, got)
		}
	}
}

func TestDatasetAwareModeMatchesDatasetMode(t *testing.T) {
	data := gcpData()
	all, _ := DatasetMode(data, Params{-1.5, -0.5, 2})
	for i, row := range data {
		got, _ := DatasetAwareMode(row[0], data, Params{-1.5, -0.5, 2})
		if !cellEqual(got, all[i][0]) {
			t.Errorf("row %d: dataset-aware %v, dataset %v", i, got, all[i][0])
		}
	}
}

func TestSingleMode(t *testing.T) {
	date := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		value  interface{}
		offset float64
		want   interface{}
	}{
		{87654321, 0, 90000000.0},
		{87654321, -1, 88000000.0},
		{"$1,234.56", 0, 1000.0},
		{"1,234,567", 0, 1000000.0},
		{"(500)", 0, -500.0},
		{"€1,234", 0, 1000.0},
		{"1.5e6", 0, 2000000.0},
		{"Cloud CDN", 0, "Cloud CDN"},
		{"", 0, ""},
		{nil, 0, nil},
		{true, 0, true},
		{false, 0, false},
		{date, 0, date},
		{0, 0, 0.0},
		{"0", -3, 0.0},
		{m.Inf(-1), 0, m.Inf(-1)},
	}
	for _, c := range cases {
		got, err := SingleMode(c.value, c.offset)
		if err != nil {
			t.Errorf("SingleMode(%#v, %g) failed: %v", c.value, c.offset, err)
			continue
		}
		if !cellEqual(got, c.want) {
			t.Errorf("SingleMode(%#v, %g) should return %#v, got %#v", c.value, c.offset, c.want, got)
		}
	}

	if _, err := SingleMode(1000, 21); err == nil {
		t.Errorf("SingleMode(1000, 21) should fail")
	}
	if _, err := SingleMode("Cloud CDN", -21); err == nil {
		t.Errorf("offset validation must not depend on the value")
	}
}

func TestColumnMode(t *testing.T) {
	rows := [][]interface{}{
		{"compute", 4428910.41, 12},
		{"storage", 983321.11, 7},
		{"cdn", 42.66},
		{"short"},
	}
	res, err := ColumnMode(rows, 1, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "column", res, [][]interface{}{
		{"compute", 4500000.0, 12},
		{"storage", 1000000.0, 7},
		{"cdn", 40.0},
		{"short"},
	})
}

func TestColumnSingleMode(t *testing.T) {
	rows := [][]interface{}{
		{"compute", 4428910.41, 12},
		{"storage", "$983,321.11"},
		{"cdn", 42.66},
		{"free", "$0"},
		{"n/a", "TBD"},
		{"short"},
	}
	res, err := ColumnSingleMode(rows, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "offset 0", res, [][]interface{}{
		{"compute", 4000000.0, 12},
		{"storage", 1000000.0},
		{"cdn", 40.0},
		{"free", 0.0},
		{"n/a", "TBD"},
		{"short"},
	})

	// each value by its own magnitude, unlike ColumnMode
	res, err = ColumnSingleMode(rows, 1, -0.5)
	if err != nil {
		t.Fatal(err)
	}
	checkRows(t, "offset -0.5", res, [][]interface{}{
		{"compute", 4500000.0, 12},
		{"storage", 1000000.0},
		{"cdn", 45.0},
		{"free", 0.0},
		{"n/a", "TBD"},
		{"short"},
	})
	if rows[1][1] != "$983,321.11" {
		t.Errorf("ColumnSingleMode should not modify its input")
	}

	var rangeErr *OffsetRangeError
	if _, err := ColumnSingleMode(rows, 1, 21); !errors.As(err, &rangeErr) || rangeErr.Param != "offset" {
		t.Errorf("ColumnSingleMode with offset 21 should fail naming offset, got %v", err)
	}
}
