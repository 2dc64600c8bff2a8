package grouping

import (
	"github.com/leengari/groupgrid/internal/domain/errors"
)

// MergeType selects how runs of equal values are displayed
type MergeType string

const (
	// MergeSimple merges each column independently with a vertical span
	MergeSimple MergeType = "simple"
	// MergeNested closes every later column whenever an earlier one changes
	MergeNested MergeType = "nested"
	// MergeFirstRow shows the value in the first row of a run and blanks the rest
	MergeFirstRow MergeType = "firstrow"
)

// Position places extra rows relative to their group
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// DefaultSeparator joins trigger values in generated extra-row content
const DefaultSeparator = " :: "

// ExtraRowFunc renders the content of a summary row
type ExtraRowFunc func(ctx Context) (string, error)

// Config describes one grouping setup
type Config struct {
	MergeColumns     []Column  // ordered grouping columns
	ExtraRowColumns  []Column  // trigger columns; may overlap MergeColumns
	MergeType        MergeType // defaults to MergeSimple
	ExtraRowPosition Position  // defaults to PositionBefore

	Totals            Reducer      // optional
	ExtraRow          ExtraRowFunc // optional; values are joined with ExtraRowSeparator otherwise
	ExtraRowSeparator string       // defaults to DefaultSeparator

	Extractor Extractor
}

// Grouper runs grouping passes for a fixed configuration.
// It keeps no state between passes and may be shared between goroutines.
type Grouper struct {
	cfg      Config
	tracked  []Column
	trigger  []bool // parallel to tracked
	triggers map[string]bool
	merge    map[string]bool
}

// New validates cfg and prepares a Grouper
func New(cfg Config) (*Grouper, error) {
	if cfg.MergeType == "" {
		cfg.MergeType = MergeSimple
	}
	if cfg.ExtraRowPosition == "" {
		cfg.ExtraRowPosition = PositionBefore
	}
	if cfg.ExtraRowSeparator == "" {
		cfg.ExtraRowSeparator = DefaultSeparator
	}

	switch cfg.MergeType {
	case MergeSimple, MergeNested, MergeFirstRow:
	default:
		return nil, errors.NewConfigError("merge_type", string(cfg.MergeType), "expected simple, nested or firstrow")
	}
	switch cfg.ExtraRowPosition {
	case PositionBefore, PositionAfter:
	default:
		return nil, errors.NewConfigError("extra_row_position", string(cfg.ExtraRowPosition), "expected before or after")
	}

	for _, c := range cfg.MergeColumns {
		if c == nil || c.ColumnName() == "" {
			return nil, errors.NewConfigError("merge_columns", nil, "column name is empty")
		}
	}
	for _, c := range cfg.ExtraRowColumns {
		if c == nil || c.ColumnName() == "" {
			return nil, errors.NewConfigError("extra_row_columns", nil, "column name is empty")
		}
	}

	g := &Grouper{
		cfg:      cfg,
		tracked:  union(cfg.MergeColumns, cfg.ExtraRowColumns),
		triggers: make(map[string]bool, len(cfg.ExtraRowColumns)),
		merge:    make(map[string]bool, len(cfg.MergeColumns)),
	}
	for _, c := range cfg.MergeColumns {
		g.merge[c.ColumnName()] = true
	}
	for _, c := range cfg.ExtraRowColumns {
		g.triggers[c.ColumnName()] = true
	}
	g.trigger = make([]bool, len(g.tracked))
	for k, c := range g.tracked {
		g.trigger[k] = g.triggers[c.ColumnName()]
	}
	return g, nil
}

// Tracked returns the merge columns followed by trigger-only columns
func (g *Grouper) Tracked() []Column {
	out := make([]Column, len(g.tracked))
	copy(out, g.tracked)
	return out
}

// Group runs Detect and wraps the result for rendering
func (g *Grouper) Group(rows []interface{}) (*View, error) {
	changes, err := g.Detect(rows)
	if err != nil {
		return nil, err
	}
	return newView(g, changes, rows), nil
}

// Detect scans rows once and records, for every tracked column, where each
// run of equal values starts and how long it is. A run is recorded when it
// closes, at its first row (PositionBefore) or its last row (PositionAfter).
//
// A change in any trigger column closes the runs of all tracked columns at
// that row. Under MergeNested a closing column closes every later one too.
// Totals folded since the previous attachment go to the first entry at an
// anchor that has none yet, and the accumulator is reset.
//
// On error no ChangeMap is returned.
func (g *Grouper) Detect(rows []interface{}) (*ChangeMap, error) {
	changes := newChangeMap()
	n := len(rows)
	if n == 0 || len(g.tracked) == 0 {
		return changes, nil
	}

	first, err := g.values(rows[0], 0)
	if err != nil {
		return nil, err
	}
	live := make([]RunState, len(g.tracked))
	for k, v := range first {
		live[k] = RunState{Value: v, Count: 1, Index: 0}
	}

	acc := newAccumulator(g.cfg.Totals)
	if err := acc.fold(rows[0], 0); err != nil {
		return nil, err
	}

	changed := make([]bool, len(g.tracked))
	for i := 1; i < n; i++ {
		current, err := g.values(rows[i], i)
		if err != nil {
			return nil, err
		}

		forceAll := false
		for k, v := range current {
			changed[k] = !Equal(v, live[k].Value)
			if changed[k] && g.trigger[k] {
				forceAll = true
			}
		}

		cascade := false
		for k, v := range current {
			if changed[k] || forceAll || (cascade && g.cfg.MergeType == MergeNested) {
				cascade = true
				g.close(changes, acc, k, live[k], i-1)
				live[k] = RunState{Value: v, Count: 1, Index: i}
			} else {
				live[k].Count++
			}
		}

		if err := acc.fold(rows[i], i); err != nil {
			return nil, err
		}
	}

	for k := range g.tracked {
		g.close(changes, acc, k, live[k], n-1)
	}
	return changes, nil
}

// close records a finished run. last is the final row of the run.
func (g *Grouper) close(changes *ChangeMap, acc *accumulator, k int, rs RunState, last int) {
	anchor := last
	if g.cfg.ExtraRowPosition == PositionBefore {
		anchor = rs.Index
	}

	entry := changes.at(anchor)
	entry.set(g.tracked[k].ColumnName(), rs)
	if entry.Count == 0 {
		entry.Count = rs.Count
	}

	// totals stay pending until an anchor without totals takes them
	if entry.Totals == nil {
		entry.Totals = acc.take()
	}
}

func (g *Grouper) values(row interface{}, rowIndex int) ([]interface{}, error) {
	out := make([]interface{}, len(g.tracked))
	for k, col := range g.tracked {
		v, err := g.cfg.Extractor.Value(col, row, rowIndex)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
