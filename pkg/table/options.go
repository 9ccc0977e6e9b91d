// Package table provides configurable options for reading and writing
// delimited tables.
package table

import (
	"fmt"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"golang.org/x/text/encoding"
)

// ReaderOptions configures table reading behavior.
// The dialect options mirror the tokenizer engine configuration; the
// remaining fields control the surrounding read pipeline.
type ReaderOptions struct {
	// Delimiter is the field separator.
	// It must be a valid code point and not \r, \n, or the Unicode
	// replacement character (0xFFFD).
	// Default: ','
	Delimiter rune

	// Comment, if not 0, is the comment character. A line whose first
	// significant character is the comment character is skipped whole.
	// Elsewhere in a line the character is ordinary field content.
	// Default: 0 (disabled)
	Comment rune

	// Quote is the quote character. A quote at the start of a field
	// groups delimiters and newlines into the field; inside a field it
	// is literal. There is no doubled-quote escaping in this dialect.
	// Default: '"'
	Quote rune

	// FillExtraColumns controls whether rows with fewer fields than the
	// table's column count are padded with empty fields instead of
	// failing the read.
	// Default: false
	FillExtraColumns bool

	// StripWhitespaceLines controls whether spaces and tabs at the start
	// of a line and before the line ending are ignored.
	// Default: true
	StripWhitespaceLines bool

	// StripWhitespaceFields controls whether spaces and tabs around each
	// field are stripped. Stripping also applies to quoted fields.
	// Default: true
	StripWhitespaceFields bool

	// SkipRows is the number of leading lines to skip before the header
	// (or, without a header, before the first data row).
	// Default: 0
	SkipRows int

	// HasHeader controls whether the first non-skipped line names the
	// columns. When false, columns are named col1..colN from the field
	// count of the first data row.
	// Default: true
	HasHeader bool

	// Columns selects a subset of columns to read. The zero value
	// selects every column.
	Columns ColumnSelector

	// Encoding, if not nil, decodes the source from the given character
	// encoding before tokenization, for example charmap.ISO8859_1 or
	// unicode.UTF8BOM to tolerate a byte-order mark. Nil means the
	// source is already UTF-8 (or a byte-compatible superset).
	// Default: nil
	Encoding encoding.Encoding
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Delimiter:             ',',
		Comment:               0,
		Quote:                 '"',
		FillExtraColumns:      false,
		StripWhitespaceLines:  true,
		StripWhitespaceFields: true,
		SkipRows:              0,
		HasHeader:             true,
	}
}

// WriterOptions configures table writing behavior.
type WriterOptions struct {
	// Delimiter is the field separator.
	// Default: ','
	Delimiter rune

	// Comment, if not 0, is the comment character the written table is
	// expected to be read back with. Fields containing it are quoted.
	// Default: 0
	Comment rune

	// UseCRLF controls whether to use \r\n (true) or \n (false) as the
	// line terminator.
	// Default: false (use \n)
	UseCRLF bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Delimiter: ',',
		Comment:   0,
		UseCRLF:   false,
	}
}

// validDelim reports whether r can serve as a delimiter, quote, or
// comment character.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the options are valid.
// Returns an error if the options are invalid.
func (o ReaderOptions) Validate() error {
	if !validDelim(o.Delimiter) {
		return &OptionsError{Field: "Delimiter", Message: "invalid delimiter"}
	}
	if !validDelim(o.Quote) {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if o.Comment != 0 && !validDelim(o.Comment) {
		return &OptionsError{Field: "Comment", Message: "invalid comment character"}
	}
	if o.Quote == o.Delimiter {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	if o.Comment == o.Delimiter {
		return &OptionsError{Field: "Comment", Message: "comment character same as delimiter"}
	}
	if o.Comment != 0 && o.Comment == o.Quote {
		return &OptionsError{Field: "Comment", Message: "comment character same as quote"}
	}
	if o.SkipRows < 0 {
		return &OptionsError{Field: "SkipRows", Message: "must not be negative"}
	}
	for _, p := range o.Columns.UseColPatterns {
		if _, err := glob.Compile(p); err != nil {
			return &OptionsError{Field: "Columns", Message: fmt.Sprintf("bad pattern %q: %v", p, err)}
		}
	}
	return nil
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if !validDelim(o.Delimiter) || o.Delimiter == '"' {
		return &OptionsError{Field: "Delimiter", Message: "invalid delimiter"}
	}
	if o.Comment != 0 && (!validDelim(o.Comment) || o.Comment == o.Delimiter || o.Comment == '"') {
		return &OptionsError{Field: "Comment", Message: "invalid comment character"}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "table: invalid " + e.Field + ": " + e.Message
}
