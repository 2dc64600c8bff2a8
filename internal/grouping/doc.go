// Package grouping finds runs of equal values in an ordered row sequence.
//
// A Grouper scans the rows once and produces a ChangeMap: for every
// grouping or trigger column, the row where each run starts, its length,
// and the totals folded while it was open. A View answers the per-row,
// per-column questions a renderer asks while emitting the grid: span or
// suppress a merged cell, blank a first-row cell, insert a summary row
// before or after a group.
//
// The ChangeMap is a plain value returned to the caller. Nothing is kept
// on the Grouper between passes.
package grouping
