package table

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// fieldSetter is a pre-computed function that sets a struct field value
// from a string. It takes the field value, the string to parse, row
// index, and column index.
type fieldSetter func(field reflect.Value, value string, rowIdx, colIdx int) error

// structInfo holds cached metadata about a struct type for a specific
// header layout. fields[col] is the struct field index for table column
// col, or -1 when the column maps to no field; setters is parallel.
type structInfo struct {
	fields  []int
	setters []fieldSetter
}

// cacheKey uniquely identifies a struct type + header combination.
type cacheKey struct {
	typ        reflect.Type
	headerHash uint64
}

// typeCacheSize bounds the struct-info cache: one entry per struct type
// and header layout pair.
const typeCacheSize = 256

// typeCache is the bounded, concurrency-safe struct-info cache.
// lru.New fails only for a non-positive size.
var typeCache, _ = lru.New[cacheKey, *structInfo](typeCacheSize)

// getStructInfo retrieves or computes struct metadata for the given
// type and headers. Results are cached for performance.
func getStructInfo(structType reflect.Type, headers []string) *structInfo {
	key := cacheKey{
		typ:        structType,
		headerHash: hashHeaders(headers),
	}

	if cached, ok := typeCache.Get(key); ok {
		return cached
	}

	info := computeStructInfo(structType, headers)
	typeCache.Add(key, info)

	return info
}

// hashHeaders produces a stable 64-bit digest of the header layout.
// A NUL separates the names so ["ab","c"] and ["a","bc"] hash apart.
func hashHeaders(headers []string) uint64 {
	d := xxhash.New()
	for _, h := range headers {
		_, _ = d.WriteString(h)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// computeStructInfo builds the field map and setters for a struct type.
func computeStructInfo(structType reflect.Type, headers []string) *structInfo {
	// Map lowercased column names to struct field indices.
	nameToField := make(map[string]int)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		// Skip unexported fields
		if field.PkgPath != "" {
			continue
		}

		// Get column name from tag or field name
		name := field.Name
		tag := field.Tag.Get("table")
		if tag == "-" {
			continue
		}
		if tag != "" {
			// Handle "name,omitempty" format
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" {
				name = tag
			}
		}

		// Store with lowercase for case-insensitive matching
		nameToField[strings.ToLower(name)] = i
	}

	info := &structInfo{
		fields:  make([]int, len(headers)),
		setters: make([]fieldSetter, len(headers)),
	}
	for col, header := range headers {
		info.fields[col] = -1
		if fieldIdx, ok := nameToField[strings.ToLower(header)]; ok {
			info.fields[col] = fieldIdx
			info.setters[col] = newSetter(structType.Field(fieldIdx).Type)
		}
	}

	return info
}

// newSetter returns a pre-computed setter function for the given field
// type. This avoids a switch on every field assignment.
func newSetter(fieldType reflect.Type) fieldSetter {
	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			field.SetString(value)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("table: cannot parse %q as int at row %d, column %d: %v", value, rowIdx+1, colIdx, err)
			}
			if field.OverflowInt(i) {
				return fmt.Errorf("table: value %d overflows %s at row %d, column %d", i, field.Type(), rowIdx+1, colIdx)
			}
			field.SetInt(i)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetUint(0)
				return nil
			}
			u, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("table: cannot parse %q as uint at row %d, column %d: %v", value, rowIdx+1, colIdx, err)
			}
			if field.OverflowUint(u) {
				return fmt.Errorf("table: value %d overflows %s at row %d, column %d", u, field.Type(), rowIdx+1, colIdx)
			}
			field.SetUint(u)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("table: cannot parse %q as float at row %d, column %d: %v", value, rowIdx+1, colIdx, err)
			}
			if field.OverflowFloat(f) {
				return fmt.Errorf("table: value %v overflows %s at row %d, column %d", f, field.Type(), rowIdx+1, colIdx)
			}
			field.SetFloat(f)
			return nil
		}

	case reflect.Complex64, reflect.Complex128:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetComplex(0)
				return nil
			}
			c, err := strconv.ParseComplex(value, 128)
			if err != nil {
				return fmt.Errorf("table: cannot parse %q as complex at row %d, column %d: %v", value, rowIdx+1, colIdx, err)
			}
			if field.OverflowComplex(c) {
				return fmt.Errorf("table: value %v overflows %s at row %d, column %d", c, field.Type(), rowIdx+1, colIdx)
			}
			field.SetComplex(c)
			return nil
		}

	case reflect.Bool:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			if value == "" {
				field.SetBool(false)
				return nil
			}
			b, err := parseBool(value)
			if err != nil {
				return fmt.Errorf("table: cannot parse %q as bool at row %d, column %d: %v", value, rowIdx+1, colIdx, err)
			}
			field.SetBool(b)
			return nil
		}

	default:
		return func(field reflect.Value, value string, rowIdx, colIdx int) error {
			return fmt.Errorf("table: unsupported field type %s at row %d, column %d", field.Type(), rowIdx+1, colIdx)
		}
	}
}

// parseBool parses a boolean value from a string.
// Accepts: true/false, 1/0, t/f (case-insensitive).
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "t":
		return true, nil
	case "false", "0", "f":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %q", s)
	}
}
