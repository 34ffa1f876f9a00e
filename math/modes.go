/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

const VERSION = "0.2.1"

const (
	DEFAULT_SINGLE_OFFSET  = 0.0  // single-value mode
	DEFAULT_TOP_OFFSET     = -0.5 // top tier(s) in dataset modes
	DEFAULT_OTHER_OFFSET   = 0.0  // remaining values in dataset modes
	DEFAULT_TOP_TIER_WIDTH = 1    // number of OoM tiers treated as top tier
)

// Params holds the tuning parameters of the dataset-aware modes.
type Params struct {
	TopOffset    float64 `yaml:"top_offset"`
	OtherOffset  float64 `yaml:"other_offset"`
	TopTierWidth int     `yaml:"top_tier_width"`
}

func DefaultParams() Params {
	return Params{
		TopOffset:    DEFAULT_TOP_OFFSET,
		OtherOffset:  DEFAULT_OTHER_OFFSET,
		TopTierWidth: DEFAULT_TOP_TIER_WIDTH,
	}
}

// resolve validates both offsets, naming the one that is out of range
func (p Params) resolve() (top, other Offset, err error) {
	if top, err = ResolveOffset(p.TopOffset, "top_offset"); err != nil {
		return
	}
	other, err = ResolveOffset(p.OtherOffset, "other_offset")
	return
}

// SingleMode rounds one cell relative to its own magnitude. Non-numeric cells
// are returned unchanged.
func SingleMode(value interface{}, offset float64) (interface{}, error) {
	o, err := ResolveOffset(offset, "offset")
	if err != nil {
		return nil, err
	}
	x, ok := Parse(value)
	if !ok {
		return value, nil
	}
	if x == 0 {
		return 0.0, nil
	}
	return RoundWithOffset(x, o), nil
}

// DatasetMode rounds every cell of rows, using the whole collection as the
// magnitude reference. The result has the same shape as rows; rows itself is
// not modified.
func DatasetMode(rows [][]interface{}, p Params) ([][]interface{}, error) {
	top, other, err := p.resolve()
	if err != nil {
		return nil, err
	}
	maxMag, hasMax := MaxMagnitude(rows)

	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = make([]interface{}, len(row))
		for j, cell := range row {
			out[i][j] = RoundCell(cell, maxMag, hasMax, top, other, p.TopTierWidth)
		}
	}
	return out, nil
}

// DatasetAwareMode rounds a single value using ref only as the magnitude
// reference, so that a value displayed inline with a (sorted) dataset rounds
// exactly as it would inside DatasetMode over that dataset.
func DatasetAwareMode(value interface{}, ref [][]interface{}, p Params) (interface{}, error) {
	top, other, err := p.resolve()
	if err != nil {
		return nil, err
	}
	maxMag, hasMax := MaxMagnitude(ref)
	return RoundCell(value, maxMag, hasMax, top, other, p.TopTierWidth), nil
}

// ColumnMode rounds column col of rows in dataset mode, using that column
// alone as the reference. Other columns, and rows too short to have the
// column, are copied unchanged.
func ColumnMode(rows [][]interface{}, col int, p Params) ([][]interface{}, error) {
	top, other, err := p.resolve()
	if err != nil {
		return nil, err
	}
	column := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		if col >= 0 && col < len(row) {
			column = append(column, row[col:col+1])
		}
	}
	maxMag, hasMax := MaxMagnitude(column)

	return mapColumn(rows, col, func(cell interface{}) interface{} {
		return RoundCell(cell, maxMag, hasMax, top, other, p.TopTierWidth)
	}), nil
}

// ColumnSingleMode rounds every cell of column col in single-value mode, each
// by its own magnitude. Other columns are copied unchanged.
func ColumnSingleMode(rows [][]interface{}, col int, offset float64) ([][]interface{}, error) {
	o, err := ResolveOffset(offset, "offset")
	if err != nil {
		return nil, err
	}
	return mapColumn(rows, col, func(cell interface{}) interface{} {
		x, ok := Parse(cell)
		switch {
		case !ok:
			return cell
		case x == 0:
			return 0.0
		}
		return RoundWithOffset(x, o)
	}), nil
}

// mapColumn copies rows, replacing the cells of column col with f(cell).
func mapColumn(rows [][]interface{}, col int, f func(cell interface{}) interface{}) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = append([]interface{}(nil), row...)
		if col >= 0 && col < len(row) {
			out[i][col] = f(row[col])
		}
	}
	return out
}
