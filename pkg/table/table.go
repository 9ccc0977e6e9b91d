// Package table reads delimited text tables into columnar form.
//
// The reader is built on a character-level state machine that scans the
// whole input in one pass and writes every field into a per-column
// buffer. The dialect is simpler than RFC 4180: a quote character at the
// start of a field groups delimiters and newlines into the field, there
// is no doubled-quote escaping, lines opening with the comment character
// are skipped whole, and whitespace stripping around lines and fields is
// configurable.
//
// # Basic Usage
//
// Read a table with headers and extract typed columns:
//
//	r, err := table.NewReader(table.DefaultReaderOptions())
//	if err != nil {
//	    // handle error
//	}
//	tbl, err := r.Read("name,mass\nceres,9.4e20\npallas,2.1e20\n")
//	if err != nil {
//	    // handle error
//	}
//	mass, err := tbl.Floats("mass")
//
// Unmarshal rows into structs using `table:"name"` tags:
//
//	type Body struct {
//	    Name string  `table:"name"`
//	    Mass float64 `table:"mass"`
//	}
//	var bodies []Body
//	err := table.Unmarshal(data, &bodies)
//
// # Thread Safety
//
// A Reader owns a single tokenizer and must not be used from multiple
// goroutines concurrently; create one Reader per goroutine. A Table is
// an immutable snapshot of one read and is safe for concurrent reads.
package table

import (
	"fmt"

	"github.com/shapestone/shape-table/internal/tokenizer"
)

// Table is the materialized result of reading a delimited source.
// Values are stored column-major: one string slice per selected column,
// all of equal length. A Table is immutable once returned.
type Table struct {
	headers []string
	columns [][]string
}

// newTable wraps header names and column-major data. Ownership of both
// slices passes to the table.
func newTable(headers []string, columns [][]string) *Table {
	return &Table{headers: headers, columns: columns}
}

// NumRows returns the number of data rows in the table.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int {
	return len(t.headers)
}

// Headers returns the column names in table order.
// Without a header row the names are the synthesized col1..colN.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.headers))
	copy(headers, t.headers)
	return headers
}

// index returns the position of the named column.
func (t *Table) index(name string) (int, bool) {
	for i, h := range t.headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the values of the column at the given index, top to
// bottom. Returns (nil, false) if the index is out of bounds.
func (t *Table) Column(index int) ([]string, bool) {
	if index < 0 || index >= len(t.columns) {
		return nil, false
	}
	col := make([]string, len(t.columns[index]))
	copy(col, t.columns[index])
	return col, true
}

// ColumnByName returns the values of the named column, top to bottom.
// Returns (nil, false) if no column has that name.
func (t *Table) ColumnByName(name string) ([]string, bool) {
	i, ok := t.index(name)
	if !ok {
		return nil, false
	}
	return t.Column(i)
}

// Row returns the row at the given index.
// Returns (Row, false) if the index is out of bounds.
func (t *Table) Row(index int) (Row, bool) {
	if index < 0 || index >= t.NumRows() {
		return Row{}, false
	}
	fields := make([]string, len(t.columns))
	for i, col := range t.columns {
		fields[i] = col[index]
	}
	return Row{index: index, fields: fields, headers: t.headers}, true
}

// Records returns all data rows in row-major order.
// The result is a copy; mutating it does not affect the table.
func (t *Table) Records() [][]string {
	records := make([][]string, t.NumRows())
	for i := range records {
		row := make([]string, len(t.columns))
		for j, col := range t.columns {
			row[j] = col[i]
		}
		records[i] = row
	}
	return records
}

// Ints converts the named column to signed 64-bit integers. The grammar
// matches the engine conversions: base inferred from the literal (0x
// hex, leading 0 octal), leading whitespace skipped, trailing junk
// rejected. The first offending field aborts with a ConvertError.
func (t *Table) Ints(name string) ([]int64, error) {
	i, ok := t.index(name)
	if !ok {
		return nil, fmt.Errorf("table: column %q: %w", name, ErrNoSuchColumn)
	}
	out := make([]int64, len(t.columns[i]))
	for row, s := range t.columns[i] {
		v, err := tokenizer.ParseLong(s)
		if err != nil {
			return nil, &ConvertError{Column: name, Row: row, Value: s, Err: err}
		}
		out[row] = v
	}
	return out, nil
}

// Floats converts the named column to 64-bit floats with the engine
// conversion grammar. The first offending field aborts with a
// ConvertError.
func (t *Table) Floats(name string) ([]float64, error) {
	i, ok := t.index(name)
	if !ok {
		return nil, fmt.Errorf("table: column %q: %w", name, ErrNoSuchColumn)
	}
	out := make([]float64, len(t.columns[i]))
	for row, s := range t.columns[i] {
		v, err := tokenizer.ParseDouble(s)
		if err != nil {
			return nil, &ConvertError{Column: name, Row: row, Value: s, Err: err}
		}
		out[row] = v
	}
	return out, nil
}

// Row represents a single data row with access by index or by column
// name.
type Row struct {
	index   int
	fields  []string
	headers []string
}

// Get returns the field value at the given column index.
// Returns ("", false) if the index is out of bounds.
func (r Row) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName returns the field value in the named column.
// Returns ("", false) if no column has that name.
func (r Row) GetByName(name string) (string, bool) {
	for i, h := range r.headers {
		if h == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns all field values in the row.
// This returns a copy of the fields slice.
func (r Row) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the row.
func (r Row) Len() int {
	return len(r.fields)
}

// Int converts the field at the given column index with the engine
// integer grammar.
func (r Row) Int(index int) (int64, error) {
	s, ok := r.Get(index)
	if !ok {
		return 0, fmt.Errorf("table: column %d: %w", index, ErrNoSuchColumn)
	}
	v, err := tokenizer.ParseLong(s)
	if err != nil {
		return v, &ConvertError{Column: r.columnName(index), Row: r.index, Value: s, Err: err}
	}
	return v, nil
}

// Float converts the field at the given column index with the engine
// float grammar.
func (r Row) Float(index int) (float64, error) {
	s, ok := r.Get(index)
	if !ok {
		return 0, fmt.Errorf("table: column %d: %w", index, ErrNoSuchColumn)
	}
	v, err := tokenizer.ParseDouble(s)
	if err != nil {
		return v, &ConvertError{Column: r.columnName(index), Row: r.index, Value: s, Err: err}
	}
	return v, nil
}

// IntByName converts the field in the named column with the engine
// integer grammar.
func (r Row) IntByName(name string) (int64, error) {
	for i, h := range r.headers {
		if h == name {
			return r.Int(i)
		}
	}
	return 0, fmt.Errorf("table: column %q: %w", name, ErrNoSuchColumn)
}

// FloatByName converts the field in the named column with the engine
// float grammar.
func (r Row) FloatByName(name string) (float64, error) {
	for i, h := range r.headers {
		if h == name {
			return r.Float(i)
		}
	}
	return 0, fmt.Errorf("table: column %q: %w", name, ErrNoSuchColumn)
}

func (r Row) columnName(index int) string {
	if index >= 0 && index < len(r.headers) {
		return r.headers[index]
	}
	return fmt.Sprintf("col%d", index+1)
}
