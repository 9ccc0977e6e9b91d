// Package table provides type converters for table field values.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Converter is the interface for type converters.
// Converters transform string field values into typed Go values.
type Converter interface {
	// Convert transforms a string value into the target type.
	// Returns the converted value and any error encountered.
	Convert(value string) (interface{}, error)
}

// ConverterFunc is a function adapter for the Converter interface.
type ConverterFunc func(string) (interface{}, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(value string) (interface{}, error) {
	return f(value)
}

// IntConverter converts string values to int64.
type IntConverter struct {
	// Base is the numeric base for parsing (default: 10).
	// Base 0 infers the base from the literal prefix (0x hex, leading
	// 0 octal) like the engine conversions.
	Base int
}

// Convert implements Converter for IntConverter.
func (c IntConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return int64(0), nil
	}
	base := c.Base
	if base == 0 {
		base = 10
	}
	return strconv.ParseInt(strings.TrimSpace(value), base, 64)
}

// FloatConverter converts string values to float64.
type FloatConverter struct{}

// Convert implements Converter for FloatConverter.
func (c FloatConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return float64(0), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// BoolConverter converts string values to bool.
// Recognizes: true/false, 1/0, yes/no, y/n, on/off, t/f (case-insensitive)
type BoolConverter struct{}

// Convert implements Converter for BoolConverter.
func (c BoolConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return false, nil
	}
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	default:
		return false, fmt.Errorf("cannot convert %q to bool", value)
	}
}

// ComplexConverter converts string values to complex128.
// Accepts the Go complex literal forms, for example "1+2i" or "3i".
type ComplexConverter struct{}

// Convert implements Converter for ComplexConverter.
func (c ComplexConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return complex128(0), nil
	}
	return strconv.ParseComplex(strings.TrimSpace(value), 128)
}

// DateTimeConverter converts string values to time.Time.
type DateTimeConverter struct {
	// Format is the datetime format string (default: "2006-01-02 15:04:05")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for DateTimeConverter.
func (c DateTimeConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return time.Time{}, nil
	}
	format := c.Format
	if format == "" {
		format = "2006-01-02 15:04:05"
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(format, strings.TrimSpace(value), loc)
}

// ConverterRegistry manages named converters.
// It is safe for concurrent use; converters may be registered and
// looked up from multiple goroutines.
type ConverterRegistry struct {
	converters *xsync.MapOf[string, Converter]
}

// NewConverterRegistry creates a new converter registry with built-in
// converters: int, float, bool, complex, datetime.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: xsync.NewMapOf[string, Converter](),
	}
	r.Register("int", IntConverter{})
	r.Register("float", FloatConverter{})
	r.Register("bool", BoolConverter{})
	r.Register("complex", ComplexConverter{})
	r.Register("datetime", DateTimeConverter{})
	return r
}

// Register adds a converter to the registry, replacing any existing
// converter with the same name.
func (r *ConverterRegistry) Register(name string, conv Converter) {
	r.converters.Store(name, conv)
}

// Get retrieves a converter by name.
func (r *ConverterRegistry) Get(name string) (Converter, bool) {
	return r.converters.Load(name)
}

// Names returns the registered converter names in no particular order.
func (r *ConverterRegistry) Names() []string {
	names := make([]string, 0, r.converters.Size())
	r.converters.Range(func(name string, _ Converter) bool {
		names = append(names, name)
		return true
	})
	return names
}

// InferType attempts to infer the type of a string value.
// Returns the inferred type name and converted value.
func InferType(value string) (string, interface{}) {
	if value == "" {
		return "string", value
	}

	v := strings.TrimSpace(value)

	// Try bool
	lower := strings.ToLower(v)
	if lower == "true" || lower == "false" {
		return "bool", lower == "true"
	}

	// Try int
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return "int", i
	}

	// Try float
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return "float", f
	}

	// Try datetime (common formats)
	dateFormats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02",
		"01/02/2006",
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, v); err == nil {
			return "datetime", t
		}
	}

	// Default to string
	return "string", value
}

// DefaultNullValues is the list of values treated as null/nil.
var DefaultNullValues = []string{"", "NULL", "null", "nil", "N/A", "n/a", "NA", "na", "-"}

// IsNullValue checks if a value should be treated as null.
func IsNullValue(value string, nullValues []string) bool {
	for _, nv := range nullValues {
		if value == nv {
			return true
		}
	}
	return false
}
