package tokenizer

import (
	"errors"
	"strconv"
	"strings"
)

// leadingSpace is the whitespace set skipped before numeric parsing,
// matching C's isspace in the POSIX locale.
const leadingSpace = " \t\n\v\f\r"

// ParseLong parses s as a signed 64-bit integer. The base is inferred
// from the literal: 0x or 0X selects hex, a leading 0 selects octal,
// otherwise decimal. Leading whitespace is skipped; digit separators and
// trailing non-numeric characters fail the parse. A range failure
// returns the clamped value together with ErrOverflow.
func ParseLong(s string) (int64, error) {
	s = strings.TrimLeft(s, leadingSpace)
	if strings.ContainsRune(s, '_') {
		// ParseInt's base-0 grammar accepts digit separators; the
		// table dialect does not.
		return 0, ErrConversion
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, ErrOverflow
		}
		return 0, ErrConversion
	}
	return v, nil
}

// ParseDouble parses s as a 64-bit float, accepting decimal and hex
// float literals plus inf and nan spellings. Leading whitespace is
// skipped; digit separators and trailing non-numeric characters fail
// the parse. A range failure returns the clamped value (signed
// infinity) together with ErrOverflow.
func ParseDouble(s string) (float64, error) {
	s = strings.TrimLeft(s, leadingSpace)
	if strings.ContainsRune(s, '_') {
		return 0, ErrConversion
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, ErrOverflow
		}
		return 0, ErrConversion
	}
	return v, nil
}

// StrToLong parses s as a signed 64-bit integer with ParseLong's
// grammar. On failure the engine's error code is set as a side effect
// and the sentinel error returned; a range failure still yields the
// clamped value. A success does not clear a previously recorded code.
func (t *Tokenizer) StrToLong(s string) (int64, error) {
	v, err := ParseLong(s)
	t.recordConversion(err)
	return v, err
}

// StrToDouble parses s as a 64-bit float with ParseDouble's grammar.
// Error behavior matches StrToLong: the code is set, never cleared, and
// a range failure yields the clamped value.
func (t *Tokenizer) StrToDouble(s string) (float64, error) {
	v, err := ParseDouble(s)
	t.recordConversion(err)
	return v, err
}

func (t *Tokenizer) recordConversion(err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrOverflow):
		t.code = OverflowError
	default:
		t.code = ConversionError
	}
}
