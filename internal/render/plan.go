package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/grouping"
)

// RowKind distinguishes data rows from summary rows
type RowKind string

const (
	RowData  RowKind = "data"
	RowExtra RowKind = "extra"
)

// Cell is one rendered data cell
type Cell struct {
	Column string `json:"column"`
	Text   string `json:"text"`
	Kind   string `json:"kind"`
	Span   int    `json:"span,omitempty"`
}

// Row is a data row or a summary row spanning all columns
type Row struct {
	Kind    RowKind         `json:"kind"`
	Index   int             `json:"index"`
	Cells   []Cell          `json:"cells,omitempty"`
	Content string          `json:"content,omitempty"`
	Totals  grouping.Totals `json:"totals,omitempty"`
}

// Plan is the fully resolved grid, in output order
type Plan struct {
	Columns []string `json:"columns"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Grid is the input to Build
type Grid struct {
	Columns     []config.Column
	Rows        []interface{}
	View        *grouping.View
	Formatter   grouping.Formatter
	NullDisplay string
}

// Build walks rows in order and asks the view what to emit for every row
// and cell. Summary rows are placed before or after their anchor row.
func Build(g Grid) (*Plan, error) {
	plan := &Plan{
		Columns: make([]string, len(g.Columns)),
		Headers: make([]string, len(g.Columns)),
		Rows:    make([]Row, 0, len(g.Rows)),
	}
	for i, c := range g.Columns {
		plan.Columns[i] = c.Name
		plan.Headers[i] = c.Title()
	}

	for r, row := range g.Rows {
		if g.View != nil && g.View.ExtraRowBefore(r) {
			extra, err := extraRow(g.View, r)
			if err != nil {
				return nil, err
			}
			plan.Rows = append(plan.Rows, extra)
		}

		cells := make([]Cell, len(g.Columns))
		for i, col := range g.Columns {
			cell, err := g.cell(r, row, col)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", r, col.Name, err)
			}
			cells[i] = cell
		}
		plan.Rows = append(plan.Rows, Row{Kind: RowData, Index: r, Cells: cells})

		if g.View != nil && g.View.ExtraRowAfter(r) {
			extra, err := extraRow(g.View, r)
			if err != nil {
				return nil, err
			}
			plan.Rows = append(plan.Rows, extra)
		}
	}
	return plan, nil
}

func (g Grid) cell(r int, row interface{}, col config.Column) (Cell, error) {
	kind, span := grouping.CellPlain, 1
	if g.View != nil {
		kind, span = g.View.Cell(r, col.Name)
	}

	cell := Cell{Column: col.Name, Kind: kind.String()}
	switch kind {
	case grouping.CellSuppressed, grouping.CellBlank:
		return cell, nil
	case grouping.CellSpan:
		cell.Span = span
	}

	text, err := g.text(row, col)
	if err != nil {
		return Cell{}, err
	}
	cell.Text = text
	return cell, nil
}

func (g Grid) text(row interface{}, col config.Column) (string, error) {
	v, _ := grouping.Lookup(row, col.Name)
	if v == nil {
		return g.NullDisplay, nil
	}
	if g.Formatter == nil {
		return fmt.Sprintf("%v", v), nil
	}
	return g.Formatter.Format(v, col.Type)
}

func extraRow(v *grouping.View, r int) (Row, error) {
	content, err := v.ExtraRowContent(r)
	if err != nil {
		return Row{}, fmt.Errorf("extra row at %d: %w", r, err)
	}
	return Row{Kind: RowExtra, Index: r, Content: content, Totals: v.TotalsFor(r)}, nil
}

// TotalsText renders totals as "key: value" pairs in key order
func TotalsText(t grouping.Totals) string {
	if len(t) == 0 {
		return ""
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, t[k])
	}
	return strings.Join(parts, ", ")
}

// summary is the single line shown for an extra row
func summary(row Row) string {
	totals := TotalsText(row.Totals)
	switch {
	case totals == "":
		return row.Content
	case row.Content == "":
		return totals
	}
	return row.Content + " (" + totals + ")"
}
