/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

// Package file loads datasets from CSV and YAML documents.
package file

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	appmodel "dynamic-rounding/app/model"
)

const (
	FORMAT_CSV  = "csv"
	FORMAT_YAML = "yaml"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatFromPath picks the document format from a file extension. Anything
// that is not .yaml/.yml is read as CSV.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FORMAT_YAML
	}
	return FORMAT_CSV
}

// Load reads a dataset from path ("-" for stdin). header tells whether the
// first CSV record holds column names; YAML documents carry their own.
func Load(path string, header bool) (*appmodel.Dataset, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	d, err := Read(r, FormatFromPath(path), header)
	if err != nil {
		return nil, fmt.Errorf("failed to load %v: %w", path, err)
	}
	if d.Name == "" && path != "-" {
		d.Name = filepath.Base(path)
	}
	return d, nil
}

// Read decodes a dataset in the given format.
func Read(r io.Reader, format string, header bool) (*appmodel.Dataset, error) {
	switch format {
	case FORMAT_CSV:
		return ReadCSV(r, header)
	case FORMAT_YAML:
		return ReadYAML(r)
	}
	return nil, fmt.Errorf("unsupported dataset format %q", format)
}

// ReadCSV reads CSV records as text cells; rows may have different lengths.
func ReadCSV(r io.Reader, header bool) (*appmodel.Dataset, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	d := &appmodel.Dataset{Rows: make([][]interface{}, 0, len(records))}
	if header && len(records) > 0 {
		d.Columns = records[0]
		records = records[1:]
	}
	for _, rec := range records {
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

// ReadYAML accepts either a dataset mapping (name, columns, rows), a sequence
// of rows, or a flat sequence of values (one value per row).
func ReadYAML(r io.Reader) (*appmodel.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &appmodel.Dataset{}, nil
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return &appmodel.Dataset{}, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.MappingNode:
		d := &appmodel.Dataset{}
		if err := root.Decode(d); err != nil {
			return nil, err
		}
		return d, nil
	case yaml.SequenceNode:
		var values []interface{}
		if err := root.Decode(&values); err != nil {
			return nil, err
		}
		return &appmodel.Dataset{Rows: sequenceRows(values)}, nil
	}
	return nil, fmt.Errorf("line %d: expected a mapping or a sequence, got %v", root.Line, root.Tag)
}

func sequenceRows(values []interface{}) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, v := range values {
		if row, ok := v.([]interface{}); ok {
			rows[i] = row
		} else {
			rows[i] = []interface{}{v}
		}
	}
	return rows
}
