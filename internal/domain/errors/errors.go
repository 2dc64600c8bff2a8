package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnNotFound is matched by every *ColumnNotFoundError via errors.Is
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError is returned when a field-name column cannot be
// resolved against the shape of a row. It aborts the grouping pass.
type ColumnNotFoundError struct {
	Column   string // column or attribute name that failed to resolve
	RowIndex int    // row number (0-based) where lookup failed (-1 if unknown)
	RowType  string // Go type of the offending row (optional)
}

func (e *ColumnNotFoundError) Error() string {
	parts := []string{fmt.Sprintf("column or attribute %q not found", e.Column)}

	if e.RowType != "" {
		parts = append(parts, fmt.Sprintf("row type %s", e.RowType))
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	return strings.Join(parts, " - ")
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

func NewColumnNotFound(column string, rowIndex int, row interface{}) *ColumnNotFoundError {
	rowType := ""
	if row != nil {
		rowType = fmt.Sprintf("%T", row)
	}
	return &ColumnNotFoundError{
		Column:   column,
		RowIndex: rowIndex,
		RowType:  rowType,
	}
}

// ConfigError reports an invalid grouping or rendering setting
type ConfigError struct {
	Field  string      // setting name, e.g. "merge_type"
	Value  interface{} // offending value (may be nil)
	Reason string      // human-readable explanation
}

func (e *ConfigError) Error() string {
	parts := []string{fmt.Sprintf("invalid config %s", e.Field)}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewConfigError(field string, value interface{}, reason string) *ConfigError {
	return &ConfigError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// FormatError is returned when a cell value cannot be rendered with the
// format type declared for its column
type FormatError struct {
	Type  string
	Value interface{}
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot format %v as %s - %v", e.Value, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot format %v as %s", e.Value, e.Type)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
