/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// formatting stripped from numeric text before conversion: currency symbols,
// thousands separators and any whitespace, including the no-break and narrow
// spaces used as group separators
var formattingRegex = regexp.MustCompile(`[$€£¥,\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`)

// accounting-style negative, e.g. (500)
var accountingRegex = regexp.MustCompile(`^\((.+)\)$`)

// accepted numeric text after cleanup: integers, decimals, scientific notation
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// unsigned integer literals with a base prefix: 0x1F, 0b101, 0o17
var prefixedIntRegex = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[bB][01]+|[oO][0-7]+)$`)

// IsBlank reports whether v is an empty cell: nil or whitespace-only text.
func IsBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// Parse converts a cell value into a finite number. It returns ok=false for
// anything that must not be rounded (blanks, text, booleans, dates, NaN/Inf,
// any type that is not a plain Go number or string); such values are passed
// through unchanged by the callers.
//
// Only the built-in number types are accepted. Named types such as
// time.Duration or time.Month are not coerced, even though they are numeric
// underneath.
func Parse(v interface{}) (x float64, ok bool) {
	switch t := v.(type) {
	case float64:
		x = t
	case float32:
		x = float64(t)
	case int:
		x = float64(t)
	case int8:
		x = float64(t)
	case int16:
		x = float64(t)
	case int32:
		x = float64(t)
	case int64:
		x = float64(t)
	case uint:
		x = float64(t)
	case uint8:
		x = float64(t)
	case uint16:
		x = float64(t)
	case uint32:
		x = float64(t)
	case uint64:
		x = float64(t)
	case string:
		return ParseText(t)
	default:
		return 0, false
	}
	if m.IsNaN(x) || m.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// ParseText converts loosely formatted numeric text such as "$1,234.56",
// "(500)", "1.5e6" or "0x1F" into a finite number.
func ParseText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = formattingRegex.ReplaceAllString(s, "")
	s = accountingRegex.ReplaceAllString(s, "-$1")
	if prefixedIntRegex.MatchString(s) {
		return parsePrefixedInt(s)
	}
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || m.IsInf(x, 0) || m.IsNaN(x) {
		return 0, false // overflow, e.g. "1e999"
	}
	return x, true
}

// parsePrefixedInt converts a base-prefixed literal of any length; signs are
// not accepted.
func parsePrefixedInt(s string) (float64, bool) {
	i, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return 0, false
	}
	x, _ := new(big.Float).SetInt(i).Float64()
	if m.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}
