// Package table provides error types for table reading and writing.
package table

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-table/internal/tokenizer"
)

// Sentinel errors reported by the tokenizer engine. Errors returned from
// Read operations wrap these; test with errors.Is.
var (
	// ErrInvalidLine indicates no parseable line where one was required,
	// for example a header pass that ran past the end of the input.
	ErrInvalidLine = tokenizer.ErrInvalidLine

	// ErrTooManyColumns indicates a row with more fields than the table
	// has columns.
	ErrTooManyColumns = tokenizer.ErrTooManyColumns

	// ErrNotEnoughColumns indicates a row with fewer fields than the
	// table has columns, with FillExtraColumns disabled.
	ErrNotEnoughColumns = tokenizer.ErrNotEnoughColumns

	// ErrConversion indicates a field that could not be parsed as the
	// requested numeric type.
	ErrConversion = tokenizer.ErrConversion

	// ErrOverflow indicates a numeric field outside the representable
	// range of the requested type.
	ErrOverflow = tokenizer.ErrOverflow
)

// Errors reported by the reading and writing surface.
var (
	// ErrNoColumnsSelected indicates a column selection that matches no
	// column of the table being read.
	ErrNoColumnsSelected = errors.New("column selection matches no columns")

	// ErrUnquotableField indicates a field that needs quoting but
	// contains the quote character. The dialect has no quote escaping,
	// so such a field cannot be written losslessly.
	ErrUnquotableField = errors.New("field requires quoting but contains the quote character")

	// ErrNoSuchColumn indicates a column index or name that does not
	// exist in the table.
	ErrNoSuchColumn = errors.New("no such column")
)

// ParseError reports a failed read with row context.
// Row is the 1-based data row being parsed when the error occurred,
// counting from the first non-skipped data row; blank and comment lines
// do not advance the count. Row 0 means the error occurred in the
// header pass.
type ParseError struct {
	Row int
	Err error
}

// Error returns a formatted error message with row context.
func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("table: header: %v", e.Err)
	}
	return fmt.Sprintf("table: row %d: %v", e.Row, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConvertError reports a failed typed extraction with column and row
// context.
type ConvertError struct {
	// Column is the name of the column being converted.
	Column string
	// Row is the 0-based data row of the offending field.
	Row int
	// Value is the field value that failed to convert.
	Value string
	// Err is the underlying error, ErrConversion or ErrOverflow.
	Err error
}

// Error returns a formatted error message with field context.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("table: column %q row %d: cannot convert %q: %v", e.Column, e.Row, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConvertError) Unwrap() error {
	return e.Err
}
