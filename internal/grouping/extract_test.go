package grouping

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leengari/groupgrid/internal/domain/data"
	domainerrors "github.com/leengari/groupgrid/internal/domain/errors"
)

// upperFormatter records the type it was asked for
type upperFormatter struct{}

func (upperFormatter) Format(value interface{}, typ string) (string, error) {
	if typ == "fail" {
		return "", fmt.Errorf("cannot format %v", value)
	}
	return strings.ToUpper(fmt.Sprintf("%v:%s", value, typ)), nil
}

type order struct {
	Region string `json:"region"`
	Amount float64
	secret string
}

type attrRow struct{ attrs map[string]interface{} }

func (a attrRow) Field(name string) (interface{}, bool) {
	v, ok := a.attrs[name]
	return v, ok
}

func TestLookup_RowShapes(t *testing.T) {
	tests := []struct {
		name  string
		row   interface{}
		field string
		want  interface{}
		found bool
	}{
		{"plain map", map[string]interface{}{"region": "N"}, "region", "N", true},
		{"data row", data.Row{"region": "S"}, "region", "S", true},
		{"typed map", map[string]string{"region": "E"}, "region", "E", true},
		{"attribute getter", attrRow{attrs: map[string]interface{}{"region": "W"}}, "region", "W", true},
		{"struct by json tag", order{Region: "N"}, "region", "N", true},
		{"struct by field name", &order{Amount: 2.5}, "Amount", 2.5, true},
		{"unexported field", order{secret: "x"}, "secret", nil, false},
		{"missing key", data.Row{}, "region", nil, false},
		{"nil row", nil, "region", nil, false},
		{"nil pointer", (*order)(nil), "region", nil, false},
		{"scalar row", 42, "region", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Lookup(tt.row, tt.field)
			if found != tt.found {
				t.Fatalf("Expected found=%v, got %v", tt.found, found)
			}
			if found && got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExtractor_FieldName(t *testing.T) {
	x := Extractor{}
	values, err := x.Extract([]Column{FieldName("region"), FieldName("qty")}, data.Row{"region": "N", "qty": int64(2)}, 0)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if values["region"] != "N" || values["qty"] != int64(2) {
		t.Errorf("Unexpected values %v", values)
	}
}

func TestExtractor_FieldNameMissing(t *testing.T) {
	x := Extractor{}
	_, err := x.Extract([]Column{FieldName("region")}, order{}, 7)
	if err != nil {
		t.Fatalf("Expected struct json tag to resolve, got %v", err)
	}

	_, err = x.Extract([]Column{FieldName("city")}, order{}, 7)
	if !errors.Is(err, domainerrors.ErrColumnNotFound) {
		t.Fatalf("Expected ErrColumnNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "at row 7") {
		t.Errorf("Expected row index in message, got %q", err.Error())
	}
}

func TestExtractor_BoundColumn(t *testing.T) {
	x := Extractor{NullDisplay: "n/a", Formatter: upperFormatter{}}

	tests := []struct {
		name string
		col  BoundColumn
		row  interface{}
		want interface{}
	}{
		{"field formatted", BoundColumn{Name: "region", Type: "text"}, data.Row{"region": "n"}, "N:TEXT"},
		{"nil uses null display", BoundColumn{Name: "region", Type: "text"}, data.Row{"region": nil}, "n/a"},
		{"missing uses null display", BoundColumn{Name: "region"}, data.Row{}, "n/a"},
		{"nil pointer uses null display", BoundColumn{Name: "p"}, data.Row{"p": (*int)(nil)}, "n/a"},
		{"value func", BoundColumn{Name: "label", Type: "raw", Value: func(ctx Context) (interface{}, error) {
			return fmt.Sprintf("%v#%d", ctx.Row.(data.Row)["region"], ctx.RowIndex), nil
		}}, data.Row{"region": "s"}, "S#3:RAW"},
		{"value func nil", BoundColumn{Name: "label", Value: func(Context) (interface{}, error) {
			return nil, nil
		}}, data.Row{}, "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.Value(tt.col, tt.row, 3)
			if err != nil {
				t.Fatalf("Value failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExtractor_BoundColumnWithoutFormatter(t *testing.T) {
	got, err := Extractor{}.Value(BoundColumn{Name: "qty"}, data.Row{"qty": int64(5)}, 0)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if got != "5" {
		t.Errorf("Expected \"5\", got %v", got)
	}
}

func TestExtractor_FormatErrorPropagates(t *testing.T) {
	x := Extractor{Formatter: upperFormatter{}}
	if _, err := x.Value(BoundColumn{Name: "qty", Type: "fail"}, data.Row{"qty": 1}, 0); err == nil {
		t.Error("Expected format error, got nil")
	}
}
