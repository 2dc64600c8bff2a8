package grouping

// Context is the fixed-shape argument passed to every caller-supplied
// function: value funcs, totals reducers and extra-row formatters.
// Fields that do not apply to a given call are left zero.
type Context struct {
	Row      interface{}
	RowIndex int

	// Values holds the run snapshots of the change entry being rendered.
	// Only set for extra-row formatters.
	Values map[string]RunState

	// Totals is the accumulator. Reducers mutate it in place; extra-row
	// formatters receive the snapshot attached to the entry.
	Totals Totals
}
