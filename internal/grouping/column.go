package grouping

// Column is a grouping or trigger column specification.
// It is either a BoundColumn or a FieldName; no other implementations exist.
type Column interface {
	ColumnName() string
	isColumn()
}

// ValueFunc computes a display value for a bound column from a row
type ValueFunc func(ctx Context) (interface{}, error)

// BoundColumn is a column that is also displayed by the grid.
// Its value is what the grid would show: the Value func result, or the
// named field, formatted with Type. Nil results become the null display.
type BoundColumn struct {
	Name  string
	Value ValueFunc // optional
	Type  string    // format type, e.g. "text", "number"
}

func (c BoundColumn) ColumnName() string { return c.Name }
func (BoundColumn) isColumn()            {}

// FieldName is a raw attribute of the row that is not displayed as a column.
type FieldName string

func (f FieldName) ColumnName() string { return string(f) }
func (FieldName) isColumn()            {}

// Names returns the column names in order
func Names(columns []Column) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.ColumnName()
	}
	return names
}

// union merges merge and trigger columns by name, keeping the order of
// merge columns first and appending trigger-only members.
func union(merge, trigger []Column) []Column {
	seen := make(map[string]bool, len(merge)+len(trigger))
	out := make([]Column, 0, len(merge)+len(trigger))
	for _, list := range [][]Column{merge, trigger} {
		for _, c := range list {
			name := c.ColumnName()
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, c)
		}
	}
	return out
}
