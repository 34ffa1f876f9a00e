/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package dispatch

import (
	"fmt"

	appmodel "dynamic-rounding/app/model"
)

type ArgKind int

const (
	ARG_OMITTED = iota
	ARG_SCALAR
	ARG_COLLECTION
)

func (k ArgKind) String() string {
	return []string{"omitted", "scalar", "collection"}[k]
}

// Arg is one raw call argument, classified by shape.
type Arg struct {
	Kind  ArgKind
	Value interface{}     // ARG_SCALAR only
	Rows  [][]interface{} // ARG_COLLECTION only
}

func Omitted() Arg {
	return Arg{Kind: ARG_OMITTED}
}

func Scalar(v interface{}) Arg {
	return Arg{Kind: ARG_SCALAR, Value: v}
}

func Collection(rows [][]interface{}) Arg {
	return Arg{Kind: ARG_COLLECTION, Rows: rows}
}

func (a Arg) String() string {
	switch a.Kind {
	case ARG_SCALAR:
		return fmt.Sprintf("scalar(%v)", a.Value)
	case ARG_COLLECTION:
		return fmt.Sprintf("collection(%d rows)", len(a.Rows))
	}
	return "omitted"
}

// Classify wraps a raw argument. nil is Omitted; slices and datasets are
// collections (a one-dimensional slice becomes a single row); an Arg is
// returned as is; anything else is a scalar.
func Classify(v interface{}) Arg {
	switch t := v.(type) {
	case Arg:
		return t
	case nil:
		return Omitted()
	case *appmodel.Dataset:
		if t == nil {
			return Omitted()
		}
		return Collection(t.Rows)
	case [][]interface{}:
		return Collection(t)
	case []interface{}:
		return Collection([][]interface{}{t})
	case [][]float64:
		rows := make([][]interface{}, len(t))
		for i, r := range t {
			rows[i] = floatRow(r)
		}
		return Collection(rows)
	case []float64:
		return Collection([][]interface{}{floatRow(t)})
	case [][]string:
		rows := make([][]interface{}, len(t))
		for i, r := range t {
			rows[i] = stringRow(r)
		}
		return Collection(rows)
	case []string:
		return Collection([][]interface{}{stringRow(t)})
	}
	return Scalar(v)
}

func floatRow(r []float64) []interface{} {
	row := make([]interface{}, len(r))
	for i, v := range r {
		row[i] = v
	}
	return row
}

func stringRow(r []string) []interface{} {
	row := make([]interface{}, len(r))
	for i, v := range r {
		row[i] = v
	}
	return row
}
