/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/log"
)

type DatasetTable struct {
	wr    io.Writer
	width int
	t     *tablewriter.Table // table writer, if used
	yaml  *yaml.Encoder      // yaml encoder, if used
	csv   *csv.Writer        // csv writer, if used
	rows  [][]interface{}    // rows collected for yaml
	meta  *appmodel.Dataset
}

type DisplayMethods struct {
	WriteHeader func(table *DatasetTable, d *appmodel.Dataset)
	WriteRow    func(table *DatasetTable, row []interface{})
	WriteOut    func(table *DatasetTable) error
}

func getDisplayMethods() map[string]DisplayMethods {
	return map[string]DisplayMethods{
		OUTPUT_TABLE: {(*DatasetTable).outputTableHeader, (*DatasetTable).outputTableRow, (*DatasetTable).outputTableOut},
		OUTPUT_YAML:  {(*DatasetTable).outputYamlHeader, (*DatasetTable).outputYamlRow, (*DatasetTable).outputYamlOut},
		OUTPUT_CSV:   {(*DatasetTable).outputCsvHeader, (*DatasetTable).outputCsvRow, (*DatasetTable).outputCsvOut},
	}
}

// columnName follows spreadsheet naming: A..Z, AA..AZ, ...
func columnName(i int) string {
	name := ""
	for i++; i > 0; i = (i - 1) / 26 {
		name = string(rune('A'+(i-1)%26)) + name
	}
	return name
}

func (table *DatasetTable) headerNames(d *appmodel.Dataset) []string {
	names := make([]string, table.width)
	for i := range names {
		if i < len(d.Columns) {
			names[i] = d.Columns[i]
		} else {
			names[i] = columnName(i)
		}
	}
	return names
}

// padded renders a row as exactly table.width cells.
func (table *DatasetTable) padded(row []interface{}) []string {
	cells := make([]string, table.width)
	for i := range cells {
		if i < len(row) {
			cells[i] = FormatCell(row[i])
		}
	}
	return cells
}

func (table *DatasetTable) outputTableHeader(d *appmodel.Dataset) {
	const RIGHT = tablewriter.ALIGN_RIGHT
	const LEFT = tablewriter.ALIGN_LEFT

	// numeric columns align right
	alignment := make([]int, table.width)
	for i := range alignment {
		alignment[i] = RIGHT
		for _, row := range d.Rows {
			if i < len(row) && !isNumberCell(row[i]) && FormatCell(row[i]) != "" {
				alignment[i] = LEFT
				break
			}
		}
	}

	table.t.SetHeader(table.headerNames(d))
	table.t.SetAutoFormatHeaders(false)
	table.t.SetColumnAlignment(alignment)
	table.t.SetCenterSeparator("")
	table.t.SetColumnSeparator("")
	table.t.SetRowSeparator("")
	table.t.SetHeaderLine(false)
	table.t.SetBorder(false)
}

func (table *DatasetTable) outputTableRow(row []interface{}) {
	table.t.Append(table.padded(row))
}

func (table *DatasetTable) outputTableOut() error {
	table.t.Render()
	return nil
}

func (table *DatasetTable) outputYamlHeader(d *appmodel.Dataset) {
	table.yaml = yaml.NewEncoder(table.wr)
	table.meta = d
}

func (table *DatasetTable) outputYamlRow(row []interface{}) {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = yamlCell(v)
	}
	table.rows = append(table.rows, cells)
}

func (table *DatasetTable) outputYamlOut() error {
	defer table.yaml.Close()
	if table.rows == nil {
		table.rows = [][]interface{}{}
	}
	return table.yaml.Encode(table.meta.WithRows(table.rows))
}

func (table *DatasetTable) outputCsvHeader(d *appmodel.Dataset) {
	table.csv = csv.NewWriter(table.wr)
	if len(d.Columns) > 0 {
		if err := table.csv.Write(table.headerNames(d)); err != nil {
			log.Errorf("Failed to write csv header: %v", err)
		}
	}
}

func (table *DatasetTable) outputCsvRow(row []interface{}) {
	if err := table.csv.Write(table.padded(row)); err != nil {
		log.Errorf("Failed to write csv row: %v", err)
	}
}

func (table *DatasetTable) outputCsvOut() error {
	table.csv.Flush()
	return table.csv.Error()
}

func newDatasetTable(wr io.Writer, width int) *DatasetTable {
	return &DatasetTable{wr: wr, width: width, t: tablewriter.NewWriter(wr)}
}

// writeDataset renders d in the given output format.
func writeDataset(wr io.Writer, format string, d *appmodel.Dataset) error {
	display, ok := getDisplayMethods()[format]
	if !ok {
		return fmt.Errorf("unsupported output format %q", format)
	}
	table := newDatasetTable(wr, d.Width())
	display.WriteHeader(table, d)
	for _, row := range d.Rows {
		display.WriteRow(table, row)
	}
	return display.WriteOut(table)
}

type valueOutput struct {
	Mode  string      `yaml:"mode"`
	Input interface{} `yaml:"input"`
	Value interface{} `yaml:"value"`
}

// writeValue renders a single rounded value: a bare line for table and csv,
// a small document for yaml.
func writeValue(wr io.Writer, format string, mode string, input, value interface{}) error {
	switch format {
	case OUTPUT_YAML:
		enc := yaml.NewEncoder(wr)
		defer enc.Close()
		return enc.Encode(valueOutput{Mode: mode, Input: yamlCell(input), Value: yamlCell(value)})
	case OUTPUT_TABLE, OUTPUT_CSV:
		_, err := fmt.Fprintln(wr, FormatCell(value))
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}
