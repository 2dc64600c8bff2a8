package data

import (
	"encoding/json"
	"fmt"
)

// Row represents a single record of a dataset
// Key = column name, Value = cell value
type Row map[string]interface{}

// Field implements attribute-style access for the grouping extractor
func (r Row) Field(name string) (interface{}, bool) {
	v, ok := r[name]
	return v, ok
}

// FromJSON creates a Row from a JSON object.
// Integral numbers decode to int64, all others to float64.
func FromJSON(raw json.RawMessage) (Row, error) {
	var m map[string]interface{}
	if err := decodeNumbers(raw, &m); err != nil {
		return nil, err
	}
	return normalize(m), nil
}

// RowsFromJSON decodes a JSON array of objects into rows
func RowsFromJSON(raw []byte) ([]Row, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	rows := make([]Row, len(items))
	for i, item := range items {
		row, err := FromJSON(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// Values returns rows as the opaque sequence consumed by the grouping pass
func Values(rows []Row) []interface{} {
	out := make([]interface{}, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
