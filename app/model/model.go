package model

import "fmt"

// Dataset is a table of heterogeneous cells (numbers, formatted text, blanks,
// booleans, dates) with optional column names. Rows may be ragged.
type Dataset struct {
	Name    string          `yaml:"name,omitempty"`
	Columns []string        `yaml:"columns,omitempty"`
	Rows    [][]interface{} `yaml:"rows"`
}

// Width returns the number of columns: the larger of the header length and
// the longest row.
func (d *Dataset) Width() int {
	w := len(d.Columns)
	for _, r := range d.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// ColumnIndexByName returns the index of the named column.
func (d *Dataset) ColumnIndexByName(name string) (index int, ok bool) {
	ok = false
	for index = range d.Columns {
		if d.Columns[index] == name {
			ok = true
			return
		}
	}
	return
}

// WithRows returns a copy of d's metadata holding rows instead of d.Rows.
func (d *Dataset) WithRows(rows [][]interface{}) *Dataset {
	return &Dataset{Name: d.Name, Columns: d.Columns, Rows: rows}
}

func (d *Dataset) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%v (%dx%d)", d.Name, len(d.Rows), d.Width())
	}
	return fmt.Sprintf("%dx%d", len(d.Rows), d.Width())
}

// FromColumn builds a single-column dataset, the shape of a spreadsheet range
// such as A1:A12.
func FromColumn(name string, values ...interface{}) *Dataset {
	rows := make([][]interface{}, len(values))
	for i, v := range values {
		rows[i] = []interface{}{v}
	}
	d := &Dataset{Rows: rows}
	if name != "" {
		d.Columns = []string{name}
	}
	return d
}
