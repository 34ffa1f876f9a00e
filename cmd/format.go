/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"
	m "math"
	"strconv"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"gopkg.in/yaml.v3"
)

// DISPLAY_DIGITS hides binary noise such as 0.35000000000000003.
const DISPLAY_DIGITS = 15

// formatNumber prints x as a plain decimal of at most DISPLAY_DIGITS
// significant digits. Values the decimal package cannot hold exactly (very
// large, or smaller than its 19 fractional digits) use exponent form instead.
func formatNumber(x float64) string {
	short := strconv.FormatFloat(x, 'g', DISPLAY_DIGITS, 64)
	if m.IsNaN(x) || m.IsInf(x, 0) {
		return short
	}
	d, err := decimal.Parse(short)
	if err != nil {
		return short
	}
	plain := d.Reduce().String()
	// Parse rounds away digits past its maximum scale instead of failing
	if back, err := strconv.ParseFloat(plain, 64); err != nil || back != cleanNumber(x) {
		return short
	}
	return plain
}

// cleanNumber is x with the display noise removed.
func cleanNumber(x float64) float64 {
	y, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', DISPLAY_DIGITS, 64), 64)
	if err != nil {
		return x
	}
	return y
}

// FormatCell renders one cell for table and CSV output.
func FormatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	case bool:
		return strings.ToUpper(strconv.FormatBool(x))
	case time.Time:
		if x.Equal(x.Truncate(24 * time.Hour)) {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// isNumberCell tells whether a cell renders as a number (for alignment).
func isNumberCell(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// yamlCell prepares a cell for the yaml encoder: finite floats become plain
// scalars carrying the formatNumber text, so 4500000 is not written as 4.5e+06.
func yamlCell(v interface{}) interface{} {
	var x float64
	switch t := v.(type) {
	case float64:
		x = t
	case float32:
		x = float64(t)
	default:
		return v
	}
	if m.IsNaN(x) || m.IsInf(x, 0) {
		return x
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: formatNumber(x)}
}
