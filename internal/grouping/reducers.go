package grouping

import (
	"fmt"

	"github.com/leengari/groupgrid/internal/domain/errors"
)

// Mean is the running state stored by Avg
type Mean struct {
	Sum float64
	N   int
}

// Value returns the average, or 0 for an empty group
func (m Mean) Value() float64 {
	if m.N == 0 {
		return 0
	}
	return m.Sum / float64(m.N)
}

func (m Mean) String() string {
	return fmt.Sprintf("%g", m.Value())
}

// Reducers runs each reducer in order against the same accumulator
func Reducers(rs ...Reducer) Reducer {
	return func(ctx Context) error {
		for _, r := range rs {
			if r == nil {
				continue
			}
			if err := r(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// Count stores the number of rows folded under key
func Count(key string) Reducer {
	return func(ctx Context) error {
		n, _ := ctx.Totals[key].(int)
		ctx.Totals[key] = n + 1
		return nil
	}
}

// Sum adds the numeric field to the float64 stored under key.
// Nil values are skipped.
func Sum(field, key string) Reducer {
	return func(ctx Context) error {
		f, ok, err := numericField(ctx, field)
		if err != nil || !ok {
			return err
		}
		s, _ := ctx.Totals[key].(float64)
		ctx.Totals[key] = s + f
		return nil
	}
}

// Min keeps the smallest numeric field value under key
func Min(field, key string) Reducer {
	return extreme(field, key, func(cur, next float64) bool { return next < cur })
}

// Max keeps the largest numeric field value under key
func Max(field, key string) Reducer {
	return extreme(field, key, func(cur, next float64) bool { return next > cur })
}

// Avg keeps a Mean under key
func Avg(field, key string) Reducer {
	return func(ctx Context) error {
		f, ok, err := numericField(ctx, field)
		if err != nil || !ok {
			return err
		}
		m, _ := ctx.Totals[key].(Mean)
		m.Sum += f
		m.N++
		ctx.Totals[key] = m
		return nil
	}
}

func extreme(field, key string, better func(cur, next float64) bool) Reducer {
	return func(ctx Context) error {
		f, ok, err := numericField(ctx, field)
		if err != nil || !ok {
			return err
		}
		cur, seen := ctx.Totals[key].(float64)
		if !seen || better(cur, f) {
			ctx.Totals[key] = f
		}
		return nil
	}
}

// numericField reads a number from the row. ok is false for nil values.
func numericField(ctx Context, field string) (float64, bool, error) {
	v, found := Lookup(ctx.Row, field)
	if !found {
		return 0, false, errors.NewColumnNotFound(field, ctx.RowIndex, ctx.Row)
	}
	if isNil(v) {
		return 0, false, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false, fmt.Errorf("field %q at row %d: %v is not numeric", field, ctx.RowIndex, v)
	}
	return f, true, nil
}
