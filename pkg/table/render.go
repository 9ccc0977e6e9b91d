// Package table provides rendering of tables back to delimited text.
package table

import (
	"bytes"
	"fmt"
	"strings"
)

// Render converts a table to delimited text with the default writer
// options. The header row is written first, then every data row.
func Render(tbl *Table) ([]byte, error) {
	return RenderWithOptions(tbl, DefaultWriterOptions())
}

// RenderWithOptions converts a table to delimited text.
//
// Quoting follows the read dialect: a field containing the delimiter, a
// line break, or the comment character is wrapped in quotes. The
// dialect has no quote escaping, so a field that needs quoting and also
// contains a quote character fails with ErrUnquotableField; so does a
// field starting with a quote, which would read back as quoted.
//
// Example:
//
//	opts := table.DefaultWriterOptions()
//	opts.Delimiter = '\t'
//	data, err := table.RenderWithOptions(tbl, opts)
func RenderWithOptions(tbl *Table, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tbl.NumCols() == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	lineEnding := "\n"
	if opts.UseCRLF {
		lineEnding = "\r\n"
	}

	if err := writeFields(&buf, tbl.headers, opts, lineEnding); err != nil {
		return nil, err
	}

	numRows := tbl.NumRows()
	for row := 0; row < numRows; row++ {
		for col := range tbl.columns {
			if col > 0 {
				buf.WriteRune(opts.Delimiter)
			}
			if err := writeField(&buf, tbl.columns[col][row], opts); err != nil {
				return nil, err
			}
		}
		buf.WriteString(lineEnding)
	}

	return buf.Bytes(), nil
}

// RenderRecords converts raw rows to delimited text without a header
// row. Rows may have differing lengths; each is written as-is.
func RenderRecords(records [][]string, opts WriterOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	lineEnding := "\n"
	if opts.UseCRLF {
		lineEnding = "\r\n"
	}

	for _, record := range records {
		if err := writeFields(&buf, record, opts, lineEnding); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// writeFields writes one row of fields followed by the line ending.
func writeFields(buf *bytes.Buffer, fields []string, opts WriterOptions, lineEnding string) error {
	for i, field := range fields {
		if i > 0 {
			buf.WriteRune(opts.Delimiter)
		}
		if err := writeField(buf, field, opts); err != nil {
			return err
		}
	}
	buf.WriteString(lineEnding)
	return nil
}

// writeField writes one field, quoting when the dialect requires it.
func writeField(buf *bytes.Buffer, field string, opts WriterOptions) error {
	needsQuoting := strings.ContainsRune(field, opts.Delimiter) ||
		strings.ContainsAny(field, "\n\r") ||
		(opts.Comment != 0 && strings.ContainsRune(field, opts.Comment)) ||
		strings.HasPrefix(field, `"`)

	if !needsQuoting {
		buf.WriteString(field)
		return nil
	}
	if strings.Contains(field, `"`) {
		return fmt.Errorf("table: field %q: %w", field, ErrUnquotableField)
	}

	buf.WriteByte('"')
	buf.WriteString(field)
	buf.WriteByte('"')
	return nil
}
