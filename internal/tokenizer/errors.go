package tokenizer

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the class of the most recent failure recorded by a
// Tokenizer. It mirrors the sentinel error values below; operations report
// failures through returned errors, and the engine additionally retains the
// code for inspection via Code().
type ErrorCode int

const (
	// NoError means the last operation completed successfully.
	NoError ErrorCode = iota
	// InvalidLine means a header pass found no header line to parse
	// (for example, skip-rows ran past the end of the input).
	InvalidLine
	// TooManyCols means a row produced more fields than the declared
	// column count or than the use-column mask can address.
	TooManyCols
	// NotEnoughCols means a row produced fewer fields than the declared
	// column count and filling short rows is disabled.
	NotEnoughCols
	// ConversionError means a numeric conversion consumed no characters
	// or left trailing non-numeric characters.
	ConversionError
	// OverflowError means a numeric conversion exceeded the target range.
	OverflowError
)

// String returns the string representation of an ErrorCode.
func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "no error"
	case InvalidLine:
		return "invalid line"
	case TooManyCols:
		return "too many columns"
	case NotEnoughCols:
		return "not enough columns"
	case ConversionError:
		return "conversion error"
	case OverflowError:
		return "overflow error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Tokenization and conversion errors
var (
	// ErrInvalidLine indicates the header pass found no header line.
	ErrInvalidLine = errors.New("no header line in input")

	// ErrTooManyColumns indicates a row with more fields than declared columns.
	ErrTooManyColumns = errors.New("too many columns in row")

	// ErrNotEnoughColumns indicates a short row with filling disabled.
	ErrNotEnoughColumns = errors.New("not enough columns in row")

	// ErrConversion indicates a field could not be parsed as a number.
	ErrConversion = errors.New("cannot convert field to number")

	// ErrOverflow indicates a numeric field outside the representable range.
	ErrOverflow = errors.New("numeric field out of range")
)

// Err returns the sentinel error value for the code, or nil for NoError.
func (c ErrorCode) Err() error {
	switch c {
	case InvalidLine:
		return ErrInvalidLine
	case TooManyCols:
		return ErrTooManyColumns
	case NotEnoughCols:
		return ErrNotEnoughColumns
	case ConversionError:
		return ErrConversion
	case OverflowError:
		return ErrOverflow
	default:
		return nil
	}
}
