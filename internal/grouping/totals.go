package grouping

// Totals is the per-group accumulator threaded through a Reducer.
// The grouping pass never reads it; it only snapshots and resets it.
type Totals map[string]interface{}

// Reducer folds one row into ctx.Totals in place
type Reducer func(ctx Context) error

// Fold invokes reduce exactly once for the row and returns the accumulator.
// A nil reducer leaves acc untouched.
func Fold(reduce Reducer, row interface{}, rowIndex int, acc Totals) (Totals, error) {
	if acc == nil {
		acc = Totals{}
	}
	if reduce == nil {
		return acc, nil
	}
	if err := reduce(Context{Row: row, RowIndex: rowIndex, Totals: acc}); err != nil {
		return acc, err
	}
	return acc, nil
}

// accumulator owns the pending totals of the run being scanned
type accumulator struct {
	reduce  Reducer
	pending Totals
}

func newAccumulator(reduce Reducer) *accumulator {
	return &accumulator{reduce: reduce, pending: Totals{}}
}

func (a *accumulator) fold(row interface{}, rowIndex int) error {
	acc, err := Fold(a.reduce, row, rowIndex, a.pending)
	a.pending = acc
	return err
}

// take hands out the pending totals and starts an empty accumulator
func (a *accumulator) take() Totals {
	t := a.pending
	a.pending = Totals{}
	return t
}
