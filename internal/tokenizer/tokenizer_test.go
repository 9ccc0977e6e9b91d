package tokenizer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// tokenizeRows runs a data pass over input with numCols declared columns and
// returns the parsed rows in row-major order.
func tokenizeRows(t *testing.T, opts Options, input string, numCols int) [][]string {
	t.Helper()
	tok := New(opts)
	tok.Reset([]byte(input))
	tok.SetNumCols(numCols)
	if err := tok.TokenizeData(nil, 0); err != nil {
		t.Fatalf("TokenizeData(%q) failed: %v", input, err)
	}
	return dataRows(tok)
}

// columnValues drains output column col into a slice.
func columnValues(tok *Tokenizer, col int) []string {
	var vals []string
	tok.StartIteration(col)
	for !tok.FinishedIteration() {
		vals = append(vals, string(tok.NextField()))
	}
	return vals
}

// headerValues drains the header buffer into a slice.
func headerValues(tok *Tokenizer) []string {
	var vals []string
	tok.StartHeaderIteration()
	for !tok.FinishedHeaderIteration() {
		vals = append(vals, string(tok.NextField()))
	}
	return vals
}

// dataRows transposes the column buffers into NumRows row-major records.
func dataRows(tok *Tokenizer) [][]string {
	cols := make([][]string, tok.NumCols())
	for i := range cols {
		cols[i] = columnValues(tok, i)
	}
	rows := make([][]string, tok.NumRows())
	for i := range rows {
		rows[i] = make([]string, len(cols))
		for j := range cols {
			rows[i][j] = cols[j][i]
		}
	}
	return rows
}

// TestTokenizeData_Rows tests basic row and field splitting with default
// options.
func TestTokenizeData_Rows(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		numCols int
		want    [][]string
	}{
		{
			name:    "single row",
			input:   "1,2,3\n",
			numCols: 3,
			want:    [][]string{{"1", "2", "3"}},
		},
		{
			name:    "multiple rows",
			input:   "a,b\nc,d\ne,f\n",
			numCols: 2,
			want:    [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name:    "empty field in middle",
			input:   "a,,c\n",
			numCols: 3,
			want:    [][]string{{"a", "", "c"}},
		},
		{
			name:    "empty field at start",
			input:   ",b\n",
			numCols: 2,
			want:    [][]string{{"", "b"}},
		},
		{
			name:    "empty field at end",
			input:   "1,2,\n",
			numCols: 3,
			want:    [][]string{{"1", "2", ""}},
		},
		{
			name:    "all fields empty",
			input:   ",,\n",
			numCols: 3,
			want:    [][]string{{"", "", ""}},
		},
		{
			name:    "blank lines between rows",
			input:   "a\n\n\nb\n",
			numCols: 1,
			want:    [][]string{{"a"}, {"b"}},
		},
		{
			name:    "multi-byte field content",
			input:   "α,β\nγ,δ\n",
			numCols: 2,
			want:    [][]string{{"α", "β"}, {"γ", "δ"}},
		},
		{
			name:    "single column",
			input:   "x\ny\nz\n",
			numCols: 1,
			want:    [][]string{{"x"}, {"y"}, {"z"}},
		},
		{
			name:    "missing final newline drops last row",
			input:   "a,b",
			numCols: 2,
			want:    [][]string{},
		},
		{
			name:    "empty input",
			input:   "",
			numCols: 2,
			want:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeRows(t, DefaultOptions(), tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_CustomDelimiter tests non-comma delimiters, including a
// multi-byte one.
func TestTokenizeData_CustomDelimiter(t *testing.T) {
	tests := []struct {
		name      string
		delimiter rune
		input     string
		numCols   int
		want      [][]string
	}{
		{
			name:      "semicolon",
			delimiter: ';',
			input:     "a;b;c\n",
			numCols:   3,
			want:      [][]string{{"a", "b", "c"}},
		},
		{
			name:      "pipe",
			delimiter: '|',
			input:     "1|2\n3|4\n",
			numCols:   2,
			want:      [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:      "multi-byte delimiter",
			delimiter: '§',
			input:     "a§b§c\n",
			numCols:   3,
			want:      [][]string{{"a", "b", "c"}},
		},
		{
			name:      "comma is literal under another delimiter",
			delimiter: ';',
			input:     "a,b;c\n",
			numCols:   2,
			want:      [][]string{{"a,b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Delimiter = tt.delimiter
			got := tokenizeRows(t, opts, tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_Quoting tests the quoting dialect: delimiters are literal
// inside quotes, a closing quote hands the rest of the field back to
// unquoted parsing, and there is no doubled-quote escaping.
func TestTokenizeData_Quoting(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		numCols int
		want    [][]string
	}{
		{
			name:    "delimiter inside quotes is literal",
			input:   "\"a,b\",c\n",
			numCols: 2,
			want:    [][]string{{"a,b", "c"}},
		},
		{
			name:    "text continues after closing quote",
			input:   "\"ab\"cd,x\n",
			numCols: 2,
			want:    [][]string{{"abcd", "x"}},
		},
		{
			name:    "quote inside unquoted field is literal",
			input:   "a\"b,c\n",
			numCols: 2,
			want:    [][]string{{"a\"b", "c"}},
		},
		{
			name:    "whole line quoted",
			input:   "\"x y\"\n",
			numCols: 1,
			want:    [][]string{{"x y"}},
		},
		{
			name:    "whitespace after opening quote is stripped",
			input:   "\"  a\",b\n",
			numCols: 2,
			want:    [][]string{{"a", "b"}},
		},
		{
			name:    "newline inside quotes is dropped",
			input:   "\"a\nb\",c\n",
			numCols: 2,
			want:    [][]string{{"ab", "c"}},
		},
		{
			name:    "blank continuation lines inside quotes",
			input:   "\"a\n\n   \nb\",c\n",
			numCols: 2,
			want:    [][]string{{"ab", "c"}},
		},
		{
			name:    "quote closing right after newline",
			input:   "\"a\n\",c\n",
			numCols: 2,
			want:    [][]string{{"a", "c"}},
		},
		{
			name:    "unterminated quote yields no complete rows",
			input:   "\"abc\n",
			numCols: 1,
			want:    [][]string{},
		},
		{
			name:    "empty quoted field leaves the line unterminated",
			input:   "a,\"\"\n",
			numCols: 2,
			want:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeRows(t, DefaultOptions(), tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_WhitespaceStripping tests line- and field-level
// whitespace policies independently.
func TestTokenizeData_WhitespaceStripping(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		input   string
		numCols int
		want    [][]string
	}{
		{
			name:    "fields stripped",
			opts:    DefaultOptions(),
			input:   "  1 ,  2  \n",
			numCols: 2,
			want:    [][]string{{"1", "2"}},
		},
		{
			name: "stripping disabled keeps whitespace",
			opts: Options{
				Delimiter: ',',
				Quote:     '"',
			},
			input:   "  1 ,  2  \n",
			numCols: 2,
			want:    [][]string{{"  1 ", "  2  "}},
		},
		{
			name: "line stripping only",
			opts: Options{
				Delimiter:            ',',
				Quote:                '"',
				StripWhitespaceLines: true,
			},
			input:   "  a , b\n",
			numCols: 2,
			want:    [][]string{{"a ", " b"}},
		},
		{
			name: "whitespace delimiter swallows trailing blanks",
			opts: func() Options {
				opts := DefaultOptions()
				opts.Delimiter = ' '
				return opts
			}(),
			input:   "1 2 3   \n",
			numCols: 3,
			want:    [][]string{{"1", "2", "3"}},
		},
		{
			name:    "trailing blank registers an empty field",
			opts:    DefaultOptions(),
			input:   "1,2, \n",
			numCols: 3,
			want:    [][]string{{"1", "2", ""}},
		},
		{
			name: "tab delimiter",
			opts: func() Options {
				opts := DefaultOptions()
				opts.Delimiter = '\t'
				return opts
			}(),
			input:   "a\tb\tc\n",
			numCols: 3,
			want:    [][]string{{"a", "b", "c"}},
		},
		{
			name: "tabs inside fields kept when stripping disabled",
			opts: Options{
				Delimiter: ',',
				Quote:     '"',
			},
			input:   "a\tb,c\n",
			numCols: 2,
			want:    [][]string{{"a\tb", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeRows(t, tt.opts, tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_Comments tests comment detection in its three positions:
// at line start, behind unstripped whitespace, and disabled.
func TestTokenizeData_Comments(t *testing.T) {
	withComment := func(opts Options) Options {
		opts.Comment = '#'
		return opts
	}

	tests := []struct {
		name    string
		opts    Options
		input   string
		numCols int
		want    [][]string
	}{
		{
			name:    "comment line skipped",
			opts:    withComment(DefaultOptions()),
			input:   "# ignore\n1,2\n",
			numCols: 2,
			want:    [][]string{{"1", "2"}},
		},
		{
			name:    "trailing comment line",
			opts:    withComment(DefaultOptions()),
			input:   "1,2\n# done\n",
			numCols: 2,
			want:    [][]string{{"1", "2"}},
		},
		{
			name:    "consecutive comment lines",
			opts:    withComment(DefaultOptions()),
			input:   "#a\n#b\n1,2\n#c\n3,4\n",
			numCols: 2,
			want:    [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "comment disabled",
			opts:    DefaultOptions(),
			input:   "#1,2\n",
			numCols: 2,
			want:    [][]string{{"#1", "2"}},
		},
		{
			name:    "comment char after data is literal",
			opts:    withComment(DefaultOptions()),
			input:   "1,2 # note\n",
			numCols: 2,
			want:    [][]string{{"1", "2 # note"}},
		},
		{
			name: "comment behind whitespace without line stripping",
			opts: withComment(Options{
				Delimiter:             ',',
				Quote:                 '"',
				StripWhitespaceFields: true,
			}),
			input:   "  # note\n1,2\n",
			numCols: 2,
			want:    [][]string{{"1", "2"}},
		},
		{
			name: "comment behind whitespace with all stripping off",
			opts: withComment(Options{
				Delimiter: ',',
				Quote:     '"',
			}),
			// The whitespace scanned before the comment character is
			// detected stays in the column buffer and prefixes the
			// next value written there.
			input:   "  #c\n1,2\n",
			numCols: 2,
			want:    [][]string{{"  1", "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeRows(t, tt.opts, tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_FillExtraColumns tests synthesizing empty fields for
// short rows.
func TestTokenizeData_FillExtraColumns(t *testing.T) {
	opts := DefaultOptions()
	opts.FillExtraColumns = true

	tests := []struct {
		name    string
		input   string
		numCols int
		want    [][]string
	}{
		{
			name:    "one missing field",
			input:   "1,2,3\n4,5\n",
			numCols: 3,
			want:    [][]string{{"1", "2", "3"}, {"4", "5", ""}},
		},
		{
			name:    "several missing fields",
			input:   "1\n",
			numCols: 3,
			want:    [][]string{{"1", "", ""}},
		},
		{
			name:    "full rows unaffected",
			input:   "1,2\n3,4\n",
			numCols: 2,
			want:    [][]string{{"1", "2"}, {"3", "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeRows(t, opts, tt.input, tt.numCols)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeData_ColumnCountErrors tests rejection of rows that do not
// match the declared column count.
func TestTokenizeData_ColumnCountErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		numCols  int
		wantErr  error
		wantRows int
	}{
		{
			name:     "too many columns",
			input:    "1,2,3,4\n",
			numCols:  3,
			wantErr:  ErrTooManyColumns,
			wantRows: 0,
		},
		{
			name:     "not enough columns",
			input:    "1,2,3\n4,5\n",
			numCols:  3,
			wantErr:  ErrNotEnoughColumns,
			wantRows: 1,
		},
		{
			name:     "excess after complete rows",
			input:    "1,2\n3,4\n5,6,7\n",
			numCols:  2,
			wantErr:  ErrTooManyColumns,
			wantRows: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(DefaultOptions())
			tok.Reset([]byte(tt.input))
			tok.SetNumCols(tt.numCols)

			err := tok.TokenizeData(nil, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("TokenizeData error = %v, want %v", err, tt.wantErr)
			}
			if tok.NumRows() != tt.wantRows {
				t.Errorf("NumRows() = %d, want %d", tok.NumRows(), tt.wantRows)
			}
		})
	}
}

// TestTokenizeData_UseCols tests the use-column mask: unselected columns are
// scanned but not written, and mask exhaustion rejects the row.
func TestTokenizeData_UseCols(t *testing.T) {
	t.Run("select subset", func(t *testing.T) {
		tok := New(DefaultOptions())
		tok.Reset([]byte("1,2,3\n4,5,6\n"))
		tok.SetNumCols(2)

		if err := tok.TokenizeData([]bool{true, false, true}, 0); err != nil {
			t.Fatalf("TokenizeData failed: %v", err)
		}

		if got, want := columnValues(tok, 0), []string{"1", "4"}; !reflect.DeepEqual(got, want) {
			t.Errorf("column 0 = %q, want %q", got, want)
		}
		if got, want := columnValues(tok, 1), []string{"3", "6"}; !reflect.DeepEqual(got, want) {
			t.Errorf("column 1 = %q, want %q", got, want)
		}
	})

	t.Run("drop trailing column", func(t *testing.T) {
		tok := New(DefaultOptions())
		tok.Reset([]byte("1,2\n3,4\n"))
		tok.SetNumCols(1)

		if err := tok.TokenizeData([]bool{true, false}, 0); err != nil {
			t.Fatalf("TokenizeData failed: %v", err)
		}
		if got, want := columnValues(tok, 0), []string{"1", "3"}; !reflect.DeepEqual(got, want) {
			t.Errorf("column 0 = %q, want %q", got, want)
		}
	})

	t.Run("mask shorter than row", func(t *testing.T) {
		tok := New(DefaultOptions())
		tok.Reset([]byte("1,2\n"))
		tok.SetNumCols(1)

		err := tok.TokenizeData([]bool{true}, 0)
		if !errors.Is(err, ErrTooManyColumns) {
			t.Fatalf("TokenizeData error = %v, want %v", err, ErrTooManyColumns)
		}
	})
}

// TestTokenizeData_SkipRows tests skipping leading lines before the data
// scan begins.
func TestTokenizeData_SkipRows(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		skipRows int
		numCols  int
		want     [][]string
	}{
		{
			name:     "skip leading junk",
			input:    "junk line\nanother\n1,2\n",
			skipRows: 2,
			numCols:  2,
			want:     [][]string{{"1", "2"}},
		},
		{
			name:     "skip zero",
			input:    "1,2\n",
			skipRows: 0,
			numCols:  2,
			want:     [][]string{{"1", "2"}},
		},
		{
			name:     "skip past end of input",
			input:    "a\nb\n",
			skipRows: 5,
			numCols:  2,
			want:     [][]string{},
		},
		{
			name:     "skip the only row",
			input:    "a,b\n",
			skipRows: 1,
			numCols:  2,
			want:     [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(DefaultOptions())
			tok.Reset([]byte(tt.input))
			tok.SetNumCols(tt.numCols)

			if err := tok.TokenizeData(nil, tt.skipRows); err != nil {
				t.Fatalf("TokenizeData failed: %v", err)
			}
			got := dataRows(tok)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeHeader tests header-line discovery and field naming.
func TestTokenizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		input    string
		skipRows int
		want     []string
	}{
		{
			name:  "basic header",
			opts:  DefaultOptions(),
			input: "a,b,c\n1,2,3\n",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "header stops after first line",
			opts:  DefaultOptions(),
			input: "a,b\nc,d\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "quoted header name",
			opts:  DefaultOptions(),
			input: "\"col,1\",col2\n",
			want:  []string{"col,1", "col2"},
		},
		{
			name:  "whitespace stripped from names",
			opts:  DefaultOptions(),
			input: " a , b \n",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty header field",
			opts:  DefaultOptions(),
			input: "a,,c\n",
			want:  []string{"a", "", "c"},
		},
		{
			name:     "skip rows before header",
			opts:     DefaultOptions(),
			input:    "title line\nx,y\n1,2\n",
			skipRows: 1,
			want:     []string{"x", "y"},
		},
		{
			name: "comment lines before header",
			opts: func() Options {
				opts := DefaultOptions()
				opts.Comment = '#'
				return opts
			}(),
			input: "# created by export\na,b\n",
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.opts)
			tok.Reset([]byte(tt.input))

			if err := tok.TokenizeHeader(tt.skipRows); err != nil {
				t.Fatalf("TokenizeHeader failed: %v", err)
			}
			got := headerValues(tok)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("header = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestTokenizeHeader_Missing tests the failure when no header line exists.
func TestTokenizeHeader_Missing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		skipRows int
	}{
		{name: "skip past end", input: "a,b\n", skipRows: 3},
		{name: "empty input with skip", input: "", skipRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(DefaultOptions())
			tok.Reset([]byte(tt.input))

			err := tok.TokenizeHeader(tt.skipRows)
			if !errors.Is(err, ErrInvalidLine) {
				t.Fatalf("TokenizeHeader error = %v, want %v", err, ErrInvalidLine)
			}
			if tok.Code() != InvalidLine {
				t.Errorf("Code() = %v, want %v", tok.Code(), InvalidLine)
			}
		})
	}
}

// TestTokenizer_TwoPass tests the canonical header-then-data sequence on one
// engine instance.
func TestTokenizer_TwoPass(t *testing.T) {
	input := "name,value\nfoo,1\nbar,2\n"

	tok := New(DefaultOptions())
	tok.Reset([]byte(input))

	if err := tok.TokenizeHeader(0); err != nil {
		t.Fatalf("TokenizeHeader failed: %v", err)
	}
	header := headerValues(tok)
	if want := []string{"name", "value"}; !reflect.DeepEqual(header, want) {
		t.Fatalf("header = %q, want %q", header, want)
	}

	tok.SetNumCols(len(header))
	if err := tok.TokenizeData(nil, 1); err != nil {
		t.Fatalf("TokenizeData failed: %v", err)
	}

	want := [][]string{{"foo", "1"}, {"bar", "2"}}
	if got := dataRows(tok); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

// TestTokenizeHeader_Pos tests that the cursor stops at the first byte past
// the header line, including when blank and comment lines precede it.
func TestTokenizeHeader_Pos(t *testing.T) {
	opts := DefaultOptions()
	opts.Comment = '#'
	tok := New(opts)

	tests := []struct {
		name     string
		input    string
		skipRows int
		want     int
	}{
		{name: "plain", input: "a,b\n1,2\n", want: 4},
		{name: "comment before header", input: "# note\na,b\n1,2\n", want: 11},
		{name: "blank before header", input: "\n\na,b\n1,2\n", want: 6},
		{name: "skipped line", input: "junk\na,b\n1,2\n", skipRows: 1, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok.Reset([]byte(tt.input))
			if err := tok.TokenizeHeader(tt.skipRows); err != nil {
				t.Fatalf("TokenizeHeader failed: %v", err)
			}
			if got := tok.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestTokenizer_Retokenize tests that a new tokenization call fully discards
// the previous call's buffers.
func TestTokenizer_Retokenize(t *testing.T) {
	tok := New(DefaultOptions())
	tok.Reset([]byte("1,2\n3,4\n"))
	tok.SetNumCols(2)
	if err := tok.TokenizeData(nil, 0); err != nil {
		t.Fatalf("first TokenizeData failed: %v", err)
	}
	if got := tok.NumRows(); got != 2 {
		t.Fatalf("NumRows() = %d, want 2", got)
	}

	tok.Reset([]byte("9\n"))
	tok.SetNumCols(1)
	if err := tok.TokenizeData(nil, 0); err != nil {
		t.Fatalf("second TokenizeData failed: %v", err)
	}

	want := [][]string{{"9"}}
	if got := dataRows(tok); !reflect.DeepEqual(got, want) {
		t.Errorf("rows after retokenize = %q, want %q", got, want)
	}
	if got := tok.NumRows(); got != 1 {
		t.Errorf("NumRows() = %d, want 1", got)
	}
}

// TestTokenizer_ErrorCode tests the sticky error code lifecycle across
// calls.
func TestTokenizer_ErrorCode(t *testing.T) {
	tok := New(DefaultOptions())
	tok.Reset([]byte("1,2,3\n"))
	tok.SetNumCols(2)

	if err := tok.TokenizeData(nil, 0); !errors.Is(err, ErrTooManyColumns) {
		t.Fatalf("TokenizeData error = %v, want %v", err, ErrTooManyColumns)
	}
	if tok.Code() != TooManyCols {
		t.Errorf("Code() after failure = %v, want %v", tok.Code(), TooManyCols)
	}

	tok.Reset([]byte("1,2\n"))
	tok.SetNumCols(2)
	if err := tok.TokenizeData(nil, 0); err != nil {
		t.Fatalf("TokenizeData failed: %v", err)
	}
	if tok.Code() != NoError {
		t.Errorf("Code() after success = %v, want %v", tok.Code(), NoError)
	}
}

// TestTokenizeData_BufferGrowth tests that fields far larger than the
// initial buffer capacity survive growth intact.
func TestTokenizeData_BufferGrowth(t *testing.T) {
	long := strings.Repeat("x", 10000)
	input := long + ",y\n"

	got := tokenizeRows(t, DefaultOptions(), input, 2)
	want := [][]string{{long, "y"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("long field round-trip failed: got %d rows", len(got))
	}
}

// TestTokenizeData_ManyRows tests buffer growth across many rows per column.
func TestTokenizeData_ManyRows(t *testing.T) {
	var sb strings.Builder
	want := make([][]string, 500)
	for i := 0; i < 500; i++ {
		sb.WriteString("field_a,field_b,field_c\n")
		want[i] = []string{"field_a", "field_b", "field_c"}
	}

	got := tokenizeRows(t, DefaultOptions(), sb.String(), 3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %d identical rows, got %d rows", len(want), len(got))
	}
}
