package table

import (
	"io"
)

// Scanner provides a row-at-a-time interface for reading a delimited
// source. The source is parsed in full on the first Scan; rows are then
// served from the materialized table, so Scan never fails after the
// first call.
//
// Example usage:
//
//	file, _ := os.Open("data.txt")
//	defer file.Close()
//
//	scanner := table.NewScanner(file)
//	for scanner.Scan() {
//	    row := scanner.Row()
//	    name, _ := row.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader io.Reader
	opts   ReaderOptions
	tbl    *Table
	index  int
	err    error
	parsed bool
}

// NewScanner creates a new Scanner that reads a table from the given
// io.Reader with the default reader options.
//
// Example:
//
//	scanner := table.NewScanner(reader)
func NewScanner(reader io.Reader) *Scanner {
	return &Scanner{
		reader: reader,
		opts:   DefaultReaderOptions(),
		index:  -1,
	}
}

// SetOptions replaces the scanner's reader options. It has no effect
// after the first call to Scan.
// Returns the Scanner for method chaining.
func (s *Scanner) SetOptions(opts ReaderOptions) *Scanner {
	s.opts = opts
	return s
}

// SetHasHeader sets whether the first row names the columns. Without a
// header, columns are named col1..colN.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := table.NewScanner(reader).SetHasHeader(false)
func (s *Scanner) SetHasHeader(hasHeader bool) *Scanner {
	s.opts.HasHeader = hasHeader
	return s
}

// Scan advances the scanner to the next row.
// It returns false when there are no more rows or an error occurs.
// After Scan returns false, the Err method will return any error that
// occurred.
//
// Example:
//
//	for scanner.Scan() {
//	    row := scanner.Row()
//	    // process row
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
func (s *Scanner) Scan() bool {
	if !s.parsed {
		// Marked before parsing so a failed parse is not retried
		// against the drained reader.
		s.parsed = true
		if err := s.parse(); err != nil {
			s.err = err
			return false
		}
	}

	s.index++
	return s.tbl != nil && s.index < s.tbl.NumRows()
}

// Row returns the current row.
// This should only be called after Scan() returns true.
//
// The returned Row provides access to field values by index or by
// column name, plus typed conversion with the engine grammar.
func (s *Scanner) Row() Row {
	if s.tbl == nil {
		return Row{}
	}
	row, ok := s.tbl.Row(s.index)
	if !ok {
		return Row{headers: s.tbl.headers}
	}
	return row
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the column names.
// This is available after the first call to Scan().
func (s *Scanner) Headers() []string {
	if s.tbl == nil {
		return []string{}
	}
	return s.tbl.Headers()
}

// Table returns the fully parsed table backing the scanner, or nil
// before the first Scan or after a failed parse.
func (s *Scanner) Table() *Table {
	return s.tbl
}

// parse reads and tokenizes the entire source.
func (s *Scanner) parse() error {
	r, err := NewReader(s.opts)
	if err != nil {
		return err
	}
	tbl, err := r.ReadFrom(s.reader)
	if err != nil {
		return err
	}
	s.tbl = tbl
	return nil
}
