package data

import (
	"bytes"
	"encoding/json"
)

func decodeNumbers(raw []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// normalize turns json.Number into int64 when the literal is integral,
// float64 otherwise
func normalize(m map[string]interface{}) Row {
	row := make(Row, len(m))
	for k, v := range m {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				row[k] = i
				continue
			}
			if f, err := n.Float64(); err == nil {
				row[k] = f
				continue
			}
			row[k] = n.String()
			continue
		}
		row[k] = v
	}
	return row
}
