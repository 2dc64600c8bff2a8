package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/leengari/groupgrid/internal/domain/errors"
)

// Column format types
const (
	TypeRaw      = "raw"
	TypeText     = "text"
	TypeNText    = "ntext"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeSize     = "size"
	TypeDate     = "date"
	TypeDateTime = "datetime"
	TypeRelative = "relative"
)

// Types lists every supported format type
var Types = []string{TypeRaw, TypeText, TypeNText, TypeNumber, TypeBoolean, TypeSize, TypeDate, TypeDateTime, TypeRelative}

// Valid reports whether typ is a known format type. The empty type means text.
func Valid(typ string) bool {
	if typ == "" {
		return true
	}
	for _, t := range Types {
		if t == typ {
			return true
		}
	}
	return false
}

// Formatter renders cell values by column type
type Formatter struct {
	NumberFormat   string    // go-humanize FormatFloat pattern for fractional numbers
	DateLayout     string    // time layout for TypeDate
	DateTimeLayout string    // time layout for TypeDateTime
	BooleanLabels  [2]string // labels for false and true
	Location       *time.Location
	Now            func() time.Time // reference time for TypeRelative
}

// New returns a Formatter with default layouts
func New() Formatter {
	return Formatter{
		NumberFormat:   "#,###.##",
		DateLayout:     "2006-01-02",
		DateTimeLayout: "2006-01-02 15:04:05",
		BooleanLabels:  [2]string{"No", "Yes"},
		Location:       time.UTC,
		Now:            time.Now,
	}
}

// Format renders a non-nil value as typ
func (f Formatter) Format(value interface{}, typ string) (string, error) {
	switch typ {
	case "", TypeText, TypeRaw:
		return fmt.Sprintf("%v", value), nil
	case TypeNText:
		return strings.Join(strings.Fields(fmt.Sprintf("%v", value)), " "), nil
	case TypeNumber:
		return f.number(value)
	case TypeBoolean:
		return f.boolean(value)
	case TypeSize:
		n, err := toFloat(value)
		if err != nil || n < 0 {
			return "", &errors.FormatError{Type: typ, Value: value, Err: err}
		}
		return humanize.IBytes(uint64(n)), nil
	case TypeDate, TypeDateTime, TypeRelative:
		t, err := f.toTime(value)
		if err != nil {
			return "", &errors.FormatError{Type: typ, Value: value, Err: err}
		}
		switch typ {
		case TypeDate:
			return t.Format(f.DateLayout), nil
		case TypeDateTime:
			return t.Format(f.DateTimeLayout), nil
		}
		return humanize.RelTime(t, f.now(), "ago", "from now"), nil
	}
	return "", &errors.FormatError{Type: typ, Value: value, Err: fmt.Errorf("unknown format type")}
}

func (f Formatter) number(value interface{}) (string, error) {
	switch v := value.(type) {
	case int:
		return humanize.Comma(int64(v)), nil
	case int64:
		return humanize.Comma(v), nil
	case int32:
		return humanize.Comma(int64(v)), nil
	}
	n, err := toFloat(value)
	if err != nil {
		return "", &errors.FormatError{Type: TypeNumber, Value: value, Err: err}
	}
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return humanize.Comma(int64(n)), nil
	}
	return humanize.FormatFloat(f.NumberFormat, n), nil
}

func (f Formatter) boolean(value interface{}) (string, error) {
	var b bool
	switch v := value.(type) {
	case bool:
		b = v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return "", &errors.FormatError{Type: TypeBoolean, Value: value, Err: err}
		}
		b = parsed
	default:
		n, err := toFloat(value)
		if err != nil {
			return "", &errors.FormatError{Type: TypeBoolean, Value: value, Err: err}
		}
		b = n != 0
	}
	if b {
		return f.BooleanLabels[1], nil
	}
	return f.BooleanLabels[0], nil
}

// toTime accepts time.Time, RFC 3339 or layout strings and unix seconds
func (f Formatter) toTime(value interface{}) (time.Time, error) {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case time.Time:
		return v.In(loc), nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, f.DateTimeLayout, f.DateLayout, time.DateOnly} {
			if layout == "" {
				continue
			}
			if t, err := time.ParseInLocation(layout, v, loc); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised time %q", v)
	}
	n, err := toFloat(value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(n), 0).In(loc), nil
}

func (f Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func toFloat(value interface{}) (float64, error) {
	if s, ok := value.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return 0, fmt.Errorf("%T is not numeric", value)
}
