// Package table provides schema definition and validation for table
// data.
package table

import (
	"fmt"
	"strings"
)

// ColumnType represents the expected type of a column.
type ColumnType string

const (
	ColumnTypeString   ColumnType = "string"
	ColumnTypeInt      ColumnType = "int"
	ColumnTypeFloat    ColumnType = "float"
	ColumnTypeBool     ColumnType = "bool"
	ColumnTypeComplex  ColumnType = "complex"
	ColumnTypeDateTime ColumnType = "datetime"
	ColumnTypeAny      ColumnType = "any"
)

// ColumnDefinition defines the schema for a single column.
type ColumnDefinition struct {
	// Name is the column header name.
	Name string
	// Type is the expected data type.
	Type ColumnType
	// Required indicates if the column must have a value in every row.
	Required bool
	// Default is the default value substituted for empty fields before
	// validation.
	Default string
	// AllowedValues restricts values to a specific set.
	AllowedValues []string
	// Validator is an optional custom validation function.
	Validator func(value string) error
}

// Schema defines the expected structure of a table.
type Schema struct {
	// Columns defines the expected columns.
	Columns []ColumnDefinition
	// AllowExtraColumns permits table columns not defined in the schema.
	AllowExtraColumns bool
	// AllowMissingColumns permits schema columns missing from the table.
	AllowMissingColumns bool
}

// NewSchema creates a new empty schema.
func NewSchema() *Schema {
	return &Schema{
		Columns:             make([]ColumnDefinition, 0),
		AllowExtraColumns:   false,
		AllowMissingColumns: false,
	}
}

// AddColumn adds a column definition to the schema.
func (s *Schema) AddColumn(col ColumnDefinition) *Schema {
	s.Columns = append(s.Columns, col)
	return s
}

// AddSimpleColumn adds a column with just name and type.
func (s *Schema) AddSimpleColumn(name string, colType ColumnType) *Schema {
	return s.AddColumn(ColumnDefinition{
		Name: name,
		Type: colType,
	})
}

// AddRequiredColumn adds a required column with name and type.
func (s *Schema) AddRequiredColumn(name string, colType ColumnType) *Schema {
	return s.AddColumn(ColumnDefinition{
		Name:     name,
		Type:     colType,
		Required: true,
	})
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	// Row is the data row number (0-indexed, -1 for header errors).
	Row int
	// Column is the column name.
	Column string
	// Value is the invalid value.
	Value string
	// Message describes the validation failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("header validation error for column %q: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("row %d, column %q: %s (value: %q)", e.Row, e.Column, e.Message, e.Value)
}

// ValidationResult contains all validation errors.
type ValidationResult struct {
	// Valid indicates if validation passed.
	Valid bool
	// Errors contains all validation errors.
	Errors []ValidationError
}

// AddError adds an error to the result.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Errors = append(r.Errors, err)
	r.Valid = false
}

// Error returns the first error message or an empty string if valid.
func (r *ValidationResult) Error() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Error()
}

// AllErrors returns all error messages joined by newlines.
func (r *ValidationResult) AllErrors() string {
	if r.Valid || len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateTable validates a table against the schema. Header errors are
// reported with Row -1; value errors carry the 0-indexed data row.
func (s *Schema) ValidateTable(tbl *Table) *ValidationResult {
	result := &ValidationResult{Valid: true}

	columnIndex := make(map[string]int)
	for i, name := range tbl.headers {
		columnIndex[name] = i
	}

	// Validate the header against the schema's column set.
	for _, col := range s.Columns {
		if _, exists := columnIndex[col.Name]; !exists && !s.AllowMissingColumns {
			result.AddError(ValidationError{
				Row:     -1,
				Column:  col.Name,
				Message: "required column not found in header",
			})
		}
	}
	if !s.AllowExtraColumns {
		schemaColumns := make(map[string]bool)
		for _, col := range s.Columns {
			schemaColumns[col.Name] = true
		}
		for _, name := range tbl.headers {
			if !schemaColumns[name] {
				result.AddError(ValidationError{
					Row:     -1,
					Column:  name,
					Message: "unexpected column not in schema",
				})
			}
		}
	}

	// Validate values column by column, matching the table's storage
	// order.
	registry := NewConverterRegistry()
	for _, col := range s.Columns {
		colIdx, exists := columnIndex[col.Name]
		if !exists {
			continue // Already reported as missing
		}

		for row, value := range tbl.columns[colIdx] {
			if value == "" && col.Default != "" {
				value = col.Default
			}

			if col.Required && value == "" {
				result.AddError(ValidationError{
					Row:     row,
					Column:  col.Name,
					Value:   value,
					Message: "required field is empty",
				})
				continue
			}

			// Skip further validation for empty optional fields
			if value == "" {
				continue
			}

			if err := validateType(registry, value, col.Type); err != nil {
				result.AddError(ValidationError{
					Row:     row,
					Column:  col.Name,
					Value:   value,
					Message: err.Error(),
				})
			}

			if len(col.AllowedValues) > 0 {
				found := false
				for _, allowed := range col.AllowedValues {
					if value == allowed {
						found = true
						break
					}
				}
				if !found {
					result.AddError(ValidationError{
						Row:     row,
						Column:  col.Name,
						Value:   value,
						Message: fmt.Sprintf("value not in allowed set: %v", col.AllowedValues),
					})
				}
			}

			if col.Validator != nil {
				if err := col.Validator(value); err != nil {
					result.AddError(ValidationError{
						Row:     row,
						Column:  col.Name,
						Value:   value,
						Message: err.Error(),
					})
				}
			}
		}
	}

	return result
}

// validateType checks if a value matches the expected type.
func validateType(registry *ConverterRegistry, value string, colType ColumnType) error {
	if colType == ColumnTypeAny || colType == ColumnTypeString || colType == "" {
		return nil
	}

	conv, ok := registry.Get(string(colType))
	if !ok {
		return fmt.Errorf("unknown column type %q", colType)
	}
	if _, err := conv.Convert(value); err != nil {
		return fmt.Errorf("invalid %s: %s", colType, value)
	}
	return nil
}
