package grouping

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/leengari/groupgrid/internal/domain/errors"
)

// Formatter renders a non-nil value according to a column format type
type Formatter interface {
	Format(value interface{}, typ string) (string, error)
}

// FieldGetter is implemented by rows that expose attributes by name
type FieldGetter interface {
	Field(name string) (interface{}, bool)
}

// Extractor resolves column specifications against rows.
// It holds no per-row state; Extract is pure for a given column and row.
type Extractor struct {
	NullDisplay string    // substituted for nil bound-column values
	Formatter   Formatter // optional; values are rendered with %v when nil
}

// Extract returns the value of every column for one row, keyed by column name
func (x Extractor) Extract(columns []Column, row interface{}, rowIndex int) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		v, err := x.Value(col, row, rowIndex)
		if err != nil {
			return nil, err
		}
		values[col.ColumnName()] = v
	}
	return values, nil
}

// Value resolves a single column for one row
func (x Extractor) Value(col Column, row interface{}, rowIndex int) (interface{}, error) {
	switch c := col.(type) {
	case BoundColumn:
		return x.boundValue(c, row, rowIndex)
	case FieldName:
		v, ok := Lookup(row, string(c))
		if !ok {
			return nil, errors.NewColumnNotFound(string(c), rowIndex, row)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported column specification %T", col)
	}
}

func (x Extractor) boundValue(c BoundColumn, row interface{}, rowIndex int) (interface{}, error) {
	var value interface{}
	if c.Value != nil {
		v, err := c.Value(Context{Row: row, RowIndex: rowIndex})
		if err != nil {
			return nil, err
		}
		value = v
	} else if c.Name != "" {
		// a bound column missing from the row renders as null, like an empty cell
		value, _ = Lookup(row, c.Name)
	}

	if isNil(value) {
		return x.NullDisplay, nil
	}
	if x.Formatter == nil {
		return fmt.Sprintf("%v", value), nil
	}
	return x.Formatter.Format(value, c.Type)
}

// Lookup finds a named field on a row. Maps keyed by string, FieldGetter
// implementations and structs (by field name or json tag) are supported.
func Lookup(row interface{}, name string) (interface{}, bool) {
	switch r := row.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		v, ok := r[name]
		return v, ok
	case FieldGetter:
		return r.Field(name)
	}

	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Struct:
		return structField(rv, name)
	}
	return nil, false
}

func structField(rv reflect.Value, name string) (interface{}, bool) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if f.Name == name || (tag != "" && tag != "-" && tag == name) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
