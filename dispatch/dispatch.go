/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package dispatch

import (
	"fmt"
	m "math"

	"dynamic-rounding/log"
	dynmath "dynamic-rounding/math"
)

type Mode int

const (
	MODE_SINGLE = iota
	MODE_DATASET
	MODE_DATASET_AWARE
)

func (mo Mode) String() string {
	return []string{"single", "dataset", "dataset-aware"}[mo]
}

const MAX_ARGS = 5

// ParamError reports a tuning parameter that cannot be used at all (as
// opposed to a number outside the offset range, see math.OffsetRangeError).
type ParamError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v %v, got %#v", e.Param, e.Reason, e.Value)
}

// Defaults are substituted for omitted or blank parameters.
type Defaults struct {
	SingleOffset float64 `yaml:"single_offset"`
	dynmath.Params `yaml:",inline"`
}

func StandardDefaults() Defaults {
	return Defaults{
		SingleOffset: dynmath.DEFAULT_SINGLE_OFFSET,
		Params:       dynmath.DefaultParams(),
	}
}

// Result of one evaluation. Rows is set in dataset mode, Value otherwise.
type Result struct {
	Mode  Mode
	Value interface{}
	Rows  [][]interface{}
}

// Output returns the rows in dataset mode and the value otherwise.
func (r Result) Output() interface{} {
	if r.Mode == MODE_DATASET {
		return r.Rows
	}
	return r.Value
}

// Dispatcher implements the positional calling convention of the rounding
// function:
//
//	single value:   (value, [offset])
//	dataset:        (collection, [top_offset], [other_offset], [top_tier_width])
//	dataset-aware:  (value, collection, [top_offset], [other_offset], [top_tier_width])
type Dispatcher struct {
	Defaults Defaults
}

func New(defaults Defaults) *Dispatcher {
	return &Dispatcher{Defaults: defaults}
}

// Evaluate classifies raw arguments (see Classify) and runs the mode their
// shapes select.
func (d *Dispatcher) Evaluate(raw ...interface{}) (Result, error) {
	if len(raw) == 0 {
		return Result{}, fmt.Errorf("missing value to round")
	}
	if len(raw) > MAX_ARGS {
		return Result{}, fmt.Errorf("too many arguments: %d (at most %d)", len(raw), MAX_ARGS)
	}
	var args [MAX_ARGS]Arg
	for i, v := range raw {
		args[i] = Classify(v)
	}

	switch {
	case args[0].Kind == ARG_COLLECTION:
		if args[4].Kind != ARG_OMITTED {
			log.Warnf("Ignoring argument 5 (%v) in dataset mode", args[4])
		}
		p, err := d.params(args[1], args[2], args[3])
		if err != nil {
			return Result{}, err
		}
		log.Tracef("Rounding %d row(s) in dataset mode with %+v", len(args[0].Rows), p)
		rows, err := dynmath.DatasetMode(args[0].Rows, p)
		return Result{Mode: MODE_DATASET, Rows: rows}, err

	case args[1].Kind == ARG_COLLECTION:
		p, err := d.params(args[2], args[3], args[4])
		if err != nil {
			return Result{}, err
		}
		log.Tracef("Rounding %v against %d reference row(s) with %+v", args[0], len(args[1].Rows), p)
		v, err := dynmath.DatasetAwareMode(scalarValue(args[0]), args[1].Rows, p)
		return Result{Mode: MODE_DATASET_AWARE, Value: v}, err
	}

	for i := 2; i < MAX_ARGS; i++ {
		if args[i].Kind != ARG_OMITTED {
			log.Warnf("Ignoring argument %d (%v) in single value mode", i+1, args[i])
		}
	}
	offset, err := paramFloat(args[1], "offset", d.Defaults.SingleOffset)
	if err != nil {
		return Result{}, err
	}
	log.Tracef("Rounding %v in single value mode with offset %v", args[0], offset)
	v, err := dynmath.SingleMode(scalarValue(args[0]), offset)
	return Result{Mode: MODE_SINGLE, Value: v}, err
}

// an omitted value rounds like a blank cell
func scalarValue(a Arg) interface{} {
	if a.Kind == ARG_OMITTED {
		return ""
	}
	return a.Value
}

func (d *Dispatcher) params(top, other, width Arg) (p dynmath.Params, err error) {
	if p.TopOffset, err = paramFloat(top, "top_offset", d.Defaults.TopOffset); err != nil {
		return
	}
	if p.OtherOffset, err = paramFloat(other, "other_offset", d.Defaults.OtherOffset); err != nil {
		return
	}
	p.TopTierWidth, err = paramWidth(width, "top_tier_width", d.Defaults.TopTierWidth)
	return
}

func paramFloat(a Arg, name string, def float64) (float64, error) {
	switch a.Kind {
	case ARG_OMITTED:
		return def, nil
	case ARG_COLLECTION:
		return 0, &ParamError{Param: name, Value: a.Rows, Reason: "must be a single value"}
	}
	if dynmath.IsBlank(a.Value) {
		return def, nil
	}
	x, ok := dynmath.Parse(a.Value)
	if !ok {
		return 0, &ParamError{Param: name, Value: a.Value, Reason: "must be a number"}
	}
	return x, nil
}

func paramWidth(a Arg, name string, def int) (int, error) {
	x, err := paramFloat(a, name, float64(def))
	if err != nil {
		return 0, err
	}
	if x < 1 || x != m.Trunc(x) || x > m.MaxInt32 {
		return 0, &ParamError{Param: name, Value: a.Value, Reason: "must be a positive integer"}
	}
	return int(x), nil
}

// Params resolves raw dataset tuning parameters the way Evaluate does, for
// callers that run a mode directly (e.g. math.ColumnMode).
func (d *Dispatcher) Params(top, other, width interface{}) (dynmath.Params, error) {
	return d.params(Classify(top), Classify(other), Classify(width))
}

// Offset resolves a raw single value offset the way Evaluate does.
func (d *Dispatcher) Offset(raw interface{}) (float64, error) {
	return paramFloat(Classify(raw), "offset", d.Defaults.SingleOffset)
}
