package render

import (
	"encoding/json"
	"io"
)

// JSON writes the plan itself, spans and cell kinds included
type JSON struct {
	Indent string
}

func (j JSON) Render(w io.Writer, p *Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	return enc.Encode(p)
}
