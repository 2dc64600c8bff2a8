package grouping

import (
	"math"
	"reflect"
	"time"
)

// Equal reports whether two consecutive column values belong to the same run.
//
// Numbers of any Go kind compare by numeric value, so a JSON float64(3)
// equals an int64(3). Strings compare exactly: "3" never equals 3.
// Two NaNs are equal. Times compare with time.Time.Equal. Anything else falls back to
// reflect.DeepEqual.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return false
		}
		if ia, aInt := toInt(a); aInt {
			if ib, bInt := toInt(b); bInt {
				return ia == ib
			}
		}
		// NaN from a value func must not split a run on every row
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	}

	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}

	return reflect.DeepEqual(a, b)
}

// toFloat converts any numeric kind to float64
func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toInt returns an exact int64 for signed kinds and for unsigned values that fit
func toInt(v interface{}) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
