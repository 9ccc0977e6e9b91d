// Package tokenizer implements the character-level engine that turns a
// delimited text buffer into per-column byte buffers.
//
// The engine is a single-pass finite-state machine over variable-width code
// points. It handles quoting, embedded newlines inside quotes, comment
// detection, whitespace stripping at line and field granularity, and
// column-count mismatches, writing each field as a terminated byte run into
// a growable buffer per output column. Parsed fields are read back through
// the iteration API in write order: field order for the header, row order
// for a column.
//
// The quoting dialect is deliberately simpler than RFC 4180: there is no
// doubled-quote escaping, and a quote character always toggles quoted mode.
// Text after a closing quote continues the same field unquoted.
//
// A Tokenizer is created once per logical table read and reused across a
// header pass and a data pass. It is not safe for concurrent use; separate
// instances are fully independent.
package tokenizer

// Options configures the tokenizer behavior. Options are fixed at
// construction; the engine never validates them, so callers are expected to
// pass a delimiter, quote, and comment that are mutually distinct (see
// pkg/table for the validating surface).
type Options struct {
	// Delimiter is the field separator code point. Default: ','
	Delimiter rune
	// Comment is the comment code point; lines whose first significant
	// character is Comment are ignored. 0 disables comment detection.
	Comment rune
	// Quote is the quote code point. Default: '"'
	Quote rune
	// FillExtraColumns synthesizes empty fields for rows with fewer
	// fields than the declared column count instead of failing.
	FillExtraColumns bool
	// StripWhitespaceLines skips space and tab at the start of lines and
	// before line endings.
	StripWhitespaceLines bool
	// StripWhitespaceFields strips space and tab around each field.
	StripWhitespaceFields bool
}

// DefaultOptions returns the default tokenizer configuration.
func DefaultOptions() Options {
	return Options{
		Delimiter:             ',',
		Comment:               0,
		Quote:                 '"',
		FillExtraColumns:      false,
		StripWhitespaceLines:  true,
		StripWhitespaceFields: true,
	}
}

// scanState identifies the state machine's position within a line.
type scanState uint8

const (
	stateStartLine scanState = iota
	stateStartField
	stateStartQuotedField
	stateField
	stateQuotedField
	stateQuotedFieldNewline
	stateComment
)

// Tokenizer scans a delimited text buffer into per-column output buffers.
// The zero value is not usable; construct with New.
type Tokenizer struct {
	// configuration, immutable after New
	delimiter             rune
	comment               rune
	quote                 rune
	fillExtraColumns      bool
	stripWhitespaceLines  bool
	stripWhitespaceFields bool

	source  []byte // borrowed input; never copied, never mutated
	pos     int    // byte offset of the parse cursor
	lastLen int    // byte length of the most recently decoded code point

	header outputBuffer
	cols   []outputBuffer

	numCols int // declared output columns for the data pass
	numRows int // completed lines in the current pass

	state scanState
	code  ErrorCode

	// iteration cursor; see iterate.go
	iterBuf *outputBuffer
	iterPos int
}

// New creates a Tokenizer with the given options. Bind an input with Reset
// before tokenizing.
func New(opts Options) *Tokenizer {
	return &Tokenizer{
		delimiter:             opts.Delimiter,
		comment:               opts.Comment,
		quote:                 opts.Quote,
		fillExtraColumns:      opts.FillExtraColumns,
		stripWhitespaceLines:  opts.StripWhitespaceLines,
		stripWhitespaceFields: opts.StripWhitespaceFields,
		state:                 stateStartLine,
	}
}

// Reset binds the tokenizer to a source buffer. The buffer is borrowed: the
// engine never copies or mutates it, and the caller must not mutate it
// during a tokenization call. The buffer should end with a newline; a final
// line without one is not registered as a row.
//
// Reset discards the results of any previous tokenization call and
// invalidates outstanding iteration cursors.
func (t *Tokenizer) Reset(src []byte) {
	t.source = src
	t.pos = 0
	t.lastLen = 0
	t.state = stateStartLine
	t.code = NoError
	t.numRows = 0
	t.clearData()
}

// SetNumCols declares the number of output columns for the data pass,
// typically the field count discovered by the header pass.
func (t *Tokenizer) SetNumCols(n int) { t.numCols = n }

// NumCols returns the declared number of output columns.
func (t *Tokenizer) NumCols() int { return t.numCols }

// NumRows returns the number of completed rows in the last data pass.
func (t *Tokenizer) NumRows() int { return t.numRows }

// Pos returns the byte offset of the parse cursor. After a successful
// TokenizeHeader it is the offset of the first byte past the header line,
// where a data pass over the same source resumes.
func (t *Tokenizer) Pos() int { return t.pos }

// Code returns the error code recorded by the most recent operation. It is
// cleared by the next tokenization call, not by intervening successes of
// other operations.
func (t *Tokenizer) Code() ErrorCode { return t.code }

// TokenizeHeader parses one header line, after skipping skipRows complete
// lines, into the header buffer. It fails with ErrInvalidLine when the
// input is exhausted before a header line is found.
func (t *Tokenizer) TokenizeHeader(skipRows int) error {
	return t.tokenize(true, nil, skipRows)
}

// TokenizeData parses every remaining row, after skipping skipRows complete
// lines, into one output buffer per declared column. useCols marks which
// physical columns are retained in the output; unselected columns are
// scanned but discarded. A nil useCols selects every declared column. An
// input exhausted while skipping yields success with zero rows.
//
// On ErrTooManyColumns or ErrNotEnoughColumns the scan stops immediately
// and the partially filled buffers are invalid; the next tokenization call
// discards them.
func (t *Tokenizer) TokenizeData(useCols []bool, skipRows int) error {
	return t.tokenize(false, useCols, skipRows)
}

// pass carries the per-call counters of one tokenize run.
type pass struct {
	header  bool
	useCols []bool
	col     int  // output column index, counting selected columns only
	realCol int  // physical column index, counting every column
	ws      bool // current field is whitespace-only so far
	done    bool // header mode: line complete
}

// tokenize is the shared driver for the header and data passes. It releases
// buffers from any prior call, skips leading lines, allocates fresh output
// buffers, and runs the state machine until the source is exhausted, the
// header line completes, or a column-count error stops the scan.
func (t *Tokenizer) tokenize(header bool, useCols []bool, skipRows int) error {
	t.clearData()
	t.code = NoError
	t.numRows = 0
	t.pos = 0

	for skipped := 0; skipped < skipRows; {
		// The final newline does not begin a skippable line.
		if t.pos >= len(t.source)-1 {
			if header {
				return t.fail(InvalidLine)
			}
			return nil // no data rows left
		}
		c := t.nextChar()
		t.pos += t.lastLen
		if c == '\n' {
			skipped++
		}
	}

	if header {
		t.header = newOutputBuffer(initialHeaderSize)
	} else {
		if useCols == nil {
			useCols = make([]bool, t.numCols)
			for i := range useCols {
				useCols[i] = true
			}
		}
		t.cols = make([]outputBuffer, t.numCols)
		for i := range t.cols {
			t.cols[i] = newOutputBuffer(initialColSize)
		}
	}

	p := &pass{header: header, useCols: useCols, ws: true}
	t.state = stateStartLine

	for t.pos < len(t.source) && !p.done {
		c := t.nextChar()

		// Re-evaluate the same code point after a state change that
		// requests it. A repeat always accompanies a transition, so
		// the inner loop is bounded by the number of states.
		repeat := true
		for repeat && !p.done {
			repeat = false

			switch t.state {
			case stateStartLine:
				switch {
				case c == '\n':
					// blank line
				case (c == ' ' || c == '\t') && t.stripWhitespaceLines:
					// leading line whitespace
				case t.comment != 0 && c == t.comment:
					t.state = stateComment
				default:
					p.col = 0
					p.realCol = 0
					t.beginField(p)
					repeat = true
				}

			case stateStartField:
				switch {
				case (c == ' ' || c == '\t') && t.stripWhitespaceFields:
					// leading field whitespace
				case !t.stripWhitespaceLines && t.comment != 0 && c == t.comment:
					// with line stripping off, StartLine cannot have
					// caught a comment behind leading whitespace
					t.state = stateComment
				case c == t.delimiter:
					// field ends before it begins
					if err := t.endField(p); err != nil {
						return err
					}
					t.beginField(p)
				case c == '\n':
					if t.stripWhitespaceLines {
						// A whitespace delimiter swallows the trailing
						// field ("1 2 3   " scans as three fields);
						// any other delimiter registers an empty one
						// ("1,2," as three).
						if t.delimiter != ' ' && t.delimiter != '\t' {
							if err := t.endField(p); err != nil {
								return err
							}
						}
					}
					// With line stripping off, the pending whitespace
					// run is dropped rather than re-read as a field.
					if err := t.endLine(p); err != nil {
						return err
					}
					t.state = stateStartLine
				case c == t.quote:
					t.state = stateStartQuotedField
				default:
					t.state = stateField
					repeat = true
				}

			case stateStartQuotedField:
				switch {
				case (c == ' ' || c == '\t') && t.stripWhitespaceFields:
					// whitespace between opening quote and content
				case c == t.quote:
					// empty quoted field
					if err := t.endField(p); err != nil {
						return err
					}
				default:
					t.state = stateQuotedField
					repeat = true
				}

			case stateField:
				switch {
				case t.comment != 0 && c == t.comment && p.ws && p.col == 0:
					// comment behind unstripped leading whitespace;
					// whatever whitespace was pushed stays in the
					// buffer but the line registers no fields
					t.state = stateComment
				case c == t.delimiter:
					if err := t.endField(p); err != nil {
						return err
					}
					t.beginField(p)
				case c == '\n':
					if err := t.endField(p); err != nil {
						return err
					}
					if err := t.endLine(p); err != nil {
						return err
					}
					t.state = stateStartLine
				default:
					if c != ' ' && c != '\t' {
						p.ws = false
					}
					t.pushChar(p)
				}

			case stateQuotedField:
				switch {
				case c == t.quote:
					// closing quote; any remainder of the field is
					// parsed unquoted
					t.state = stateField
				case c == '\n':
					t.state = stateQuotedFieldNewline
				default:
					t.pushChar(p)
				}

			case stateQuotedFieldNewline:
				// Newlines are skipped unconditionally, whitespace only
				// when line stripping is on. The skipped bytes are not
				// restored when quoted content resumes.
				switch {
				case c == '\n' || ((c == ' ' || c == '\t') && t.stripWhitespaceLines):
					// skip blank continuation
				case c == t.quote:
					t.state = stateField
				default:
					t.state = stateQuotedField
					repeat = true
				}

			case stateComment:
				if c == '\n' {
					t.state = stateStartLine
				}
			}
		}

		t.pos += t.lastLen
	}

	return nil
}

// beginField resets the per-field scan state. The whitespace flag starts
// true so a comment character is still recognized behind leading spaces
// when stripping is disabled.
func (t *Tokenizer) beginField(p *pass) {
	t.state = stateStartField
	p.ws = true
}

// nextChar decodes the code point at the parse cursor, recording its byte
// length for the subsequent cursor advance.
func (t *Tokenizer) nextChar() rune {
	c, size := decodeChar(t.source, t.pos)
	t.lastLen = size
	return c
}

// pushChar appends the raw bytes of the current code point to the active
// output buffer.
func (t *Tokenizer) pushChar(p *pass) {
	t.pushBytes(p, t.source[t.pos:t.pos+t.lastLen])
}

// pushBytes appends raw bytes to the header buffer in header mode. In data
// mode the bytes land in the current column's buffer only when the column
// is within the declared count and selected by the use-column mask;
// otherwise they are discarded while the counters still advance in
// endField.
func (t *Tokenizer) pushBytes(p *pass, raw []byte) {
	if p.header {
		t.header.push(raw)
		return
	}
	if p.col < t.numCols && p.realCol < len(p.useCols) && p.useCols[p.realCol] {
		t.cols[p.col].push(raw)
	}
}

// pushFieldByte appends a single marker byte under the same mode and
// selection rules as pushBytes.
func (t *Tokenizer) pushFieldByte(p *pass, c byte) {
	if p.header {
		t.header.pushByte(c)
		return
	}
	if p.col < t.numCols && p.realCol < len(p.useCols) && p.useCols[p.realCol] {
		t.cols[p.col].pushByte(c)
	}
}

// endField terminates the current field: trailing whitespace is trimmed
// when field stripping is on, a field left empty is recorded as the
// empty-field marker, and the terminator is written. In data mode the
// column counters advance and the column-count checks fire: mask exhaustion
// is checked before selection, the declared-count check after the selected
// column advances.
func (t *Tokenizer) endField(p *pass) error {
	if p.header {
		if t.stripWhitespaceFields {
			t.header.trimTrailingWhitespace()
		}
		if t.header.atFieldStart() {
			t.header.pushByte(emptyFieldMarker)
		}
		t.header.pushByte(fieldTerminator)
		p.realCol++
		return nil
	}

	if p.realCol >= len(p.useCols) {
		return t.fail(TooManyCols)
	}
	if p.useCols[p.realCol] {
		if p.col < t.numCols {
			buf := &t.cols[p.col]
			if t.stripWhitespaceFields {
				buf.trimTrailingWhitespace()
			}
			if buf.atFieldStart() {
				buf.pushByte(emptyFieldMarker)
			}
			buf.pushByte(fieldTerminator)
		}
		p.col++
		if p.col > t.numCols {
			return t.fail(TooManyCols)
		}
	}
	p.realCol++
	return nil
}

// endLine applies the end-of-line policy. Header mode completes after its
// single line. In data mode a short row is either filled with synthesized
// empty fields or rejected, and the row counter advances.
func (t *Tokenizer) endLine(p *pass) error {
	switch {
	case p.header:
		p.done = true
	case t.fillExtraColumns:
		for p.col < t.numCols {
			t.pushFieldByte(p, emptyFieldMarker)
			if err := t.endField(p); err != nil {
				return err
			}
		}
	case p.col < t.numCols:
		return t.fail(NotEnoughCols)
	}
	t.numRows++
	return nil
}

// fail records the error code and returns its sentinel error.
func (t *Tokenizer) fail(code ErrorCode) error {
	t.code = code
	return code.Err()
}

// clearData releases the output buffers of a previous tokenization call and
// invalidates outstanding iteration cursors.
func (t *Tokenizer) clearData() {
	t.header = outputBuffer{}
	t.cols = nil
	t.iterBuf = nil
	t.iterPos = 0
}
