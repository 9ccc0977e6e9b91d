// Package table provides the reading pipeline from raw delimited text
// to a Table.
package table

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/transform"

	"github.com/shapestone/shape-table/internal/tokenizer"
)

// Reader reads delimited sources into Tables. Every read runs two
// tokenization passes: a header pass discovers the column names (or
// counts the first data row's fields when HasHeader is false), then a
// data pass fills the selected columns.
//
// A Reader may be reused for any number of reads but must not be used
// from multiple goroutines concurrently.
type Reader struct {
	opts   ReaderOptions
	engine *tokenizer.Tokenizer
}

// NewReader creates a Reader with the given options.
// Returns an error if the options are invalid.
func NewReader(opts ReaderOptions) (*Reader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Reader{opts: opts}
	if err := r.opts.Columns.Compile(); err != nil {
		return nil, &OptionsError{Field: "Columns", Message: err.Error()}
	}
	r.engine = tokenizer.New(tokenizer.Options{
		Delimiter:             opts.Delimiter,
		Comment:               opts.Comment,
		Quote:                 opts.Quote,
		FillExtraColumns:      opts.FillExtraColumns,
		StripWhitespaceLines:  opts.StripWhitespaceLines,
		StripWhitespaceFields: opts.StripWhitespaceFields,
	})
	return r, nil
}

// Read reads a table from a string.
//
// Example:
//
//	r, _ := table.NewReader(table.DefaultReaderOptions())
//	tbl, err := r.Read("a,b\n1,2\n3,4\n")
func (r *Reader) Read(input string) (*Table, error) {
	return r.ReadBytes([]byte(input))
}

// ReadBytes reads a table from a byte slice.
// The slice is borrowed for the duration of the call and never mutated;
// the returned Table owns copies of every value.
func (r *Reader) ReadBytes(data []byte) (*Table, error) {
	if r.opts.Encoding != nil {
		decoded, err := r.opts.Encoding.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("table: decode source: %w", err)
		}
		data = decoded
	}
	return r.read(normalize(data))
}

// ReadFrom reads a table from an io.Reader, decoding through the
// configured encoding when one is set.
func (r *Reader) ReadFrom(src io.Reader) (*Table, error) {
	if r.opts.Encoding != nil {
		src = transform.NewReader(src, r.opts.Encoding.NewDecoder())
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("table: read source: %w", err)
	}
	return r.read(normalize(data))
}

// ReadFile reads a table from the named file. On Unix platforms the
// file is memory-mapped for the duration of the read; the returned
// Table owns copies of every value, so nothing references the mapping
// afterwards.
func (r *Reader) ReadFile(path string) (*Table, error) {
	data, cleanup, err := MmapFile(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	tbl, err := r.ReadBytes(data)
	// Drop the engine's borrow before the mapping goes away.
	r.engine.Reset(nil)
	return tbl, err
}

// read runs the two tokenization passes over prepared input and
// materializes the result.
func (r *Reader) read(data []byte) (*Table, error) {
	if len(data) == 0 {
		return newTable(nil, nil), nil
	}
	eng := r.engine
	eng.Reset(data)

	if err := eng.TokenizeHeader(r.opts.SkipRows); err != nil {
		return nil, &ParseError{Row: 0, Err: err}
	}
	names := headerFields(eng)
	if len(names) == 0 {
		// Nothing but blank or comment lines.
		return newTable(nil, nil), nil
	}

	dataSrc := data
	dataSkip := r.opts.SkipRows
	if r.opts.HasHeader {
		// The header pass consumed the skipped lines, any blank or
		// comment lines, and the header line itself. The data pass
		// resumes where it stopped; re-counting physical lines would
		// land wrong when blank or comment lines precede the header.
		dataSrc, dataSkip = data[eng.Pos():], 0
	} else {
		for i := range names {
			names[i] = fmt.Sprintf("col%d", i+1)
		}
	}

	mask, selected := r.resolveColumns(names)
	if len(selected) == 0 {
		return nil, ErrNoColumnsSelected
	}

	eng.SetNumCols(len(selected))
	eng.Reset(dataSrc)
	if err := eng.TokenizeData(mask, dataSkip); err != nil {
		return nil, &ParseError{Row: eng.NumRows() + 1, Err: err}
	}

	numRows := eng.NumRows()
	columns := make([][]string, len(selected))
	for i := range columns {
		col := make([]string, 0, numRows)
		eng.StartIteration(i)
		for len(col) < numRows && !eng.FinishedIteration() {
			col = append(col, string(eng.NextField()))
		}
		columns[i] = col
	}
	return newTable(selected, columns), nil
}

// resolveColumns maps the column selection onto the physical header,
// producing the engine's use-column mask and the selected names in
// physical order.
func (r *Reader) resolveColumns(names []string) ([]bool, []string) {
	mask := make([]bool, len(names))
	selected := make([]string, 0, len(names))
	for i, name := range names {
		if r.opts.Columns.ShouldInclude(name, i) {
			mask[i] = true
			selected = append(selected, name)
		}
	}
	return mask, selected
}

// headerFields drains the header iteration into a fresh string slice.
func headerFields(eng *tokenizer.Tokenizer) []string {
	var names []string
	eng.StartHeaderIteration()
	for !eng.FinishedHeaderIteration() {
		names = append(names, string(eng.NextField()))
	}
	return names
}

// Read reads a table from a string with the default reader options.
//
// Example:
//
//	tbl, err := table.Read("name,mass\nceres,9.4e20\n")
func Read(input string) (*Table, error) {
	r, err := NewReader(DefaultReaderOptions())
	if err != nil {
		return nil, err
	}
	return r.Read(input)
}

// ReadFile reads a table from the named file with the default reader
// options.
//
// Example:
//
//	tbl, err := table.ReadFile("data.txt")
func ReadFile(path string) (*Table, error) {
	r, err := NewReader(DefaultReaderOptions())
	if err != nil {
		return nil, err
	}
	return r.ReadFile(path)
}

// normalize rewrites CRLF line endings to LF and guarantees the
// trailing-newline convention the engine expects. The input slice is
// returned unchanged when nothing needs rewriting; it is never grown or
// mutated in place.
func normalize(data []byte) []byte {
	if bytes.Contains(data, []byte("\r\n")) {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	}
	if n := len(data); n > 0 && data[n-1] != '\n' {
		buf := make([]byte, n+1)
		copy(buf, data)
		buf[n] = '\n'
		data = buf
	}
	return data
}
