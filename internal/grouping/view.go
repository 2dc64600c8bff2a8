package grouping

import (
	"fmt"
	"strings"
)

// CellKind tells a renderer what to emit for a cell
type CellKind int

const (
	// CellPlain renders the cell normally; the column is not merged
	CellPlain CellKind = iota
	// CellSpan renders the cell spanning Span rows
	CellSpan
	// CellSuppressed renders nothing; an earlier row already spans this cell
	CellSuppressed
	// CellFirst renders the content of the first row of a run, without a span
	CellFirst
	// CellBlank renders an empty cell inside a first-row run
	CellBlank
)

func (k CellKind) String() string {
	switch k {
	case CellPlain:
		return "plain"
	case CellSpan:
		return "span"
	case CellSuppressed:
		return "suppressed"
	case CellFirst:
		return "first"
	case CellBlank:
		return "blank"
	}
	return fmt.Sprintf("CellKind(%d)", int(k))
}

// View is the read-only query surface a renderer uses while iterating rows
// in order. It is built once per pass and never modified.
type View struct {
	changes   *ChangeMap
	rows      []interface{}
	mergeType MergeType
	position  Position
	merge     map[string]bool
	triggers  map[string]bool
	extraRow  ExtraRowFunc
	separator string
}

func newView(g *Grouper, changes *ChangeMap, rows []interface{}) *View {
	return &View{
		changes:   changes,
		rows:      rows,
		mergeType: g.cfg.MergeType,
		position:  g.cfg.ExtraRowPosition,
		merge:     g.merge,
		triggers:  g.triggers,
		extraRow:  g.cfg.ExtraRow,
		separator: g.cfg.ExtraRowSeparator,
	}
}

// ChangeMap returns the grouping result behind the view
func (v *View) ChangeMap() *ChangeMap { return v.changes }

// MergeType returns the configured merge mode
func (v *View) MergeType() MergeType { return v.mergeType }

// Position returns the configured extra-row placement
func (v *View) Position() Position { return v.position }

// Len returns the number of data rows
func (v *View) Len() int { return len(v.rows) }

// ExtraRowBefore reports whether a summary row precedes row r
func (v *View) ExtraRowBefore(r int) bool {
	return v.position == PositionBefore && len(v.ExtraRowColumns(r)) > 0
}

// ExtraRowAfter reports whether a summary row follows row r
func (v *View) ExtraRowAfter(r int) bool {
	return v.position == PositionAfter && len(v.ExtraRowColumns(r)) > 0
}

// ExtraRowColumns lists the trigger columns anchored at r, in closing order
func (v *View) ExtraRowColumns(r int) []string {
	e, ok := v.changes.Entry(r)
	if !ok {
		return nil
	}
	var cols []string
	for _, name := range e.order {
		if v.triggers[name] {
			cols = append(cols, name)
		}
	}
	return cols
}

// MergeSpan returns the vertical span for a grouping column at row r.
// ok is false when the cell lies inside a run spanned from an earlier row.
func (v *View) MergeSpan(r int, col string) (span int, ok bool) {
	e, found := v.changes.Entry(r)
	if !found {
		return 0, false
	}
	rs, found := e.Columns[col]
	if !found {
		return 0, false
	}
	return rs.Count, true
}

// FirstRowContent reports whether a first-row-mode cell shows its content at r
func (v *View) FirstRowContent(r int, col string) bool {
	e, found := v.changes.Entry(r)
	if !found {
		return false
	}
	_, found = e.Columns[col]
	return found
}

// TotalsFor returns the totals attached at r, or an empty accumulator
func (v *View) TotalsFor(r int) Totals {
	e, ok := v.changes.Entry(r)
	if !ok || e.Totals == nil {
		return Totals{}
	}
	return e.Totals
}

// Cell combines the merge mode with the change map for one cell.
// span is only meaningful for CellSpan.
func (v *View) Cell(r int, col string) (kind CellKind, span int) {
	if !v.merge[col] {
		return CellPlain, 1
	}
	switch v.mergeType {
	case MergeFirstRow:
		if v.FirstRowContent(r, col) {
			return CellFirst, 1
		}
		return CellBlank, 0
	default:
		if n, ok := v.MergeSpan(r, col); ok {
			return CellSpan, n
		}
		return CellSuppressed, 0
	}
}

// ExtraRowContent renders the summary row anchored at r.
// Without an ExtraRowFunc the trigger values are joined with the separator.
func (v *View) ExtraRowContent(r int) (string, error) {
	e, ok := v.changes.Entry(r)
	if !ok {
		return "", nil
	}
	cols := v.ExtraRowColumns(r)

	if v.extraRow != nil {
		values := make(map[string]RunState, len(e.Columns))
		for name, rs := range e.Columns {
			values[name] = rs
		}
		var row interface{}
		if r >= 0 && r < len(v.rows) {
			row = v.rows[r]
		}
		return v.extraRow(Context{Row: row, RowIndex: r, Values: values, Totals: v.TotalsFor(r)})
	}

	parts := make([]string, len(cols))
	for i, name := range cols {
		parts[i] = fmt.Sprintf("%v", e.Columns[name].Value)
	}
	return strings.Join(parts, v.separator), nil
}
