package render

import (
	"fmt"
	"io"
	"sort"
)

// Renderer writes a plan to w
type Renderer interface {
	Render(w io.Writer, p *Plan) error
}

var renderers = map[string]Renderer{
	"text": Text{},
	"box":  Box{},
	"json": JSON{Indent: "  "},
}

// For returns the renderer registered under name
func For(name string) (Renderer, error) {
	if name == "" {
		name = "text"
	}
	r, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q, expected one of %v", name, Formats())
	}
	return r, nil
}

// Formats lists the registered renderer names
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for n := range renderers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
