// Package table provides unmarshaling of table data into Go values.
package table

import (
	"errors"
	"reflect"
)

// Unmarshal reads delimited data with the default reader options and
// unmarshals it into a slice of structs or [][]string.
//
// For [][]string, the first element is the header row and the remaining
// elements are the data rows:
//
//	var records [][]string
//	err := table.Unmarshal(data, &records)
//
// For a slice of structs, columns are matched to fields by `table` tag
// or, without a tag, by case-insensitive field name:
//
//	type Person struct {
//	    Name string `table:"name"`
//	    Age  int    `table:"age"`
//	}
//
//	var people []Person
//	err := table.Unmarshal(data, &people)
//
// Supported field types:
//   - string
//   - int, int8, int16, int32, int64
//   - uint, uint8, uint16, uint32, uint64
//   - float32, float64
//   - complex64, complex128
//   - bool (accepts: true/false, 1/0, t/f, case-insensitive)
//
// Use `table:"-"` to skip a field.
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalWithOptions(data, DefaultReaderOptions(), v)
}

// UnmarshalWithOptions is Unmarshal with a custom reader configuration.
//
// Example:
//
//	opts := table.DefaultReaderOptions()
//	opts.Delimiter = ';'
//	err := table.UnmarshalWithOptions(data, opts, &people)
func UnmarshalWithOptions(data []byte, opts ReaderOptions, v interface{}) error {
	elem, elemType, err := unmarshalTarget(v)
	if err != nil {
		return err
	}

	r, err := NewReader(opts)
	if err != nil {
		return err
	}
	tbl, err := r.ReadBytes(data)
	if err != nil {
		return err
	}
	return unmarshalTable(tbl, elem, elemType)
}

// unmarshalTarget validates v as a non-nil pointer to a slice and
// returns the slice value and its element type.
func unmarshalTarget(v interface{}) (reflect.Value, reflect.Type, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return reflect.Value{}, nil, errors.New("table: Unmarshal(nil)")
	}
	if rv.Kind() != reflect.Ptr {
		return reflect.Value{}, nil, errors.New("table: Unmarshal(non-pointer " + rv.Type().String() + ")")
	}
	if rv.IsNil() {
		return reflect.Value{}, nil, errors.New("table: Unmarshal(nil " + rv.Type().String() + ")")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Slice {
		return reflect.Value{}, nil, errors.New("table: Unmarshal expects pointer to slice, got " + elem.Type().String())
	}
	return elem, elem.Type().Elem(), nil
}

// unmarshalTable fills the target slice from a materialized table.
func unmarshalTable(tbl *Table, elem reflect.Value, elemType reflect.Type) error {
	if tbl.NumCols() == 0 {
		elem.Set(reflect.MakeSlice(elem.Type(), 0, 0))
		return nil
	}

	// Fast path: [][]string gets the header row plus all data rows.
	if elemType.Kind() == reflect.Slice && elemType.Elem().Kind() == reflect.String {
		records := make([][]string, 0, tbl.NumRows()+1)
		records = append(records, tbl.Headers())
		records = append(records, tbl.Records()...)
		elem.Set(reflect.ValueOf(records))
		return nil
	}

	if elemType.Kind() != reflect.Struct {
		return errors.New("table: Unmarshal expects [][]string or slice of structs, got slice of " + elemType.String())
	}

	info := getStructInfo(elemType, tbl.headers)
	result := reflect.MakeSlice(elem.Type(), 0, tbl.NumRows())

	numRows := tbl.NumRows()
	for row := 0; row < numRows; row++ {
		structVal := reflect.New(elemType).Elem()

		for col := range tbl.columns {
			fieldIdx := info.fields[col]
			if fieldIdx < 0 {
				continue
			}
			field := structVal.Field(fieldIdx)
			if err := info.setters[col](field, tbl.columns[col][row], row, col); err != nil {
				return err
			}
		}

		result = reflect.Append(result, structVal)
	}

	elem.Set(result)
	return nil
}
