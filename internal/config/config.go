package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leengari/groupgrid/internal/domain/errors"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/grouping"
)

// Grid describes how a dataset is grouped and displayed
type Grid struct {
	MergeColumns      []string `yaml:"merge_columns" json:"merge_columns,omitempty"`
	ExtraRowColumns   []string `yaml:"extra_row_columns" json:"extra_row_columns,omitempty"`
	MergeType         string   `yaml:"merge_type" json:"merge_type,omitempty"`
	ExtraRowPosition  string   `yaml:"extra_row_position" json:"extra_row_position,omitempty"`
	ExtraRowSeparator string   `yaml:"extra_row_separator" json:"extra_row_separator,omitempty"`
	NullDisplay       string   `yaml:"null_display" json:"null_display,omitempty"`

	Columns []Column `yaml:"columns" json:"columns,omitempty"`
	Totals  []Total  `yaml:"totals" json:"totals,omitempty"`
}

// Column is a displayed grid column
type Column struct {
	Name   string `yaml:"name" json:"name"`
	Header string `yaml:"header" json:"header,omitempty"`
	Type   string `yaml:"type" json:"type,omitempty"`
}

// Title returns the header, falling back to the column name
func (c Column) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Name
}

// Total is one aggregate shown in summary rows
type Total struct {
	Column string `yaml:"column" json:"column,omitempty"`
	Func   string `yaml:"func" json:"func"`
	As     string `yaml:"as" json:"as,omitempty"`
}

// Key returns the totals key the aggregate is stored under
func (t Total) Key() string {
	if t.As != "" {
		return t.As
	}
	if t.Column == "" {
		return t.Func
	}
	return t.Func + "_" + t.Column
}

// Load reads and validates a YAML grid file
func Load(path string) (*Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates YAML grid settings, applying defaults
func Parse(raw []byte) (*Grid, error) {
	var g Grid
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("failed to parse grid config: %w", err)
	}
	g.ApplyDefaults()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ApplyDefaults fills unset settings
func (g *Grid) ApplyDefaults() {
	if g.MergeType == "" {
		g.MergeType = string(grouping.MergeSimple)
	}
	if g.ExtraRowPosition == "" {
		g.ExtraRowPosition = string(grouping.PositionBefore)
	}
	if g.ExtraRowSeparator == "" {
		g.ExtraRowSeparator = grouping.DefaultSeparator
	}
	g.MergeType = strings.ToLower(g.MergeType)
	g.ExtraRowPosition = strings.ToLower(g.ExtraRowPosition)
}

// Validate checks every setting
func (g *Grid) Validate() error {
	switch grouping.MergeType(g.MergeType) {
	case grouping.MergeSimple, grouping.MergeNested, grouping.MergeFirstRow:
	default:
		return errors.NewConfigError("merge_type", g.MergeType, "expected simple, nested or firstrow")
	}

	switch grouping.Position(g.ExtraRowPosition) {
	case grouping.PositionBefore, grouping.PositionAfter:
	default:
		return errors.NewConfigError("extra_row_position", g.ExtraRowPosition, "expected before or after")
	}

	seen := make(map[string]bool, len(g.Columns))
	for i, c := range g.Columns {
		if c.Name == "" {
			return errors.NewConfigError(fmt.Sprintf("columns[%d].name", i), nil, "column name is required")
		}
		if seen[c.Name] {
			return errors.NewConfigError(fmt.Sprintf("columns[%d].name", i), c.Name, "duplicate column")
		}
		seen[c.Name] = true
		if !format.Valid(c.Type) {
			return errors.NewConfigError(fmt.Sprintf("columns[%d].type", i), c.Type,
				"expected one of "+strings.Join(format.Types, ", "))
		}
	}

	for _, list := range []struct {
		field string
		names []string
	}{
		{"merge_columns", g.MergeColumns},
		{"extra_row_columns", g.ExtraRowColumns},
	} {
		for i, name := range list.names {
			if strings.TrimSpace(name) == "" {
				return errors.NewConfigError(fmt.Sprintf("%s[%d]", list.field, i), nil, "column name is required")
			}
		}
	}

	for i, t := range g.Totals {
		if _, err := reducer(t); err != nil {
			return errors.NewConfigError(fmt.Sprintf("totals[%d]", i), t.Func, err.Error())
		}
	}
	return nil
}

// Grouping resolves the grid settings into a grouping configuration.
// Names that match a displayed column become bound columns and are compared
// by their formatted value; any other name is a raw row attribute.
func (g *Grid) Grouping(formatter grouping.Formatter) grouping.Config {
	return grouping.Config{
		MergeColumns:      g.resolve(g.MergeColumns),
		ExtraRowColumns:   g.resolve(g.ExtraRowColumns),
		MergeType:         grouping.MergeType(g.MergeType),
		ExtraRowPosition:  grouping.Position(g.ExtraRowPosition),
		ExtraRowSeparator: g.ExtraRowSeparator,
		Totals:            g.Reducer(),
		Extractor: grouping.Extractor{
			NullDisplay: g.NullDisplay,
			Formatter:   formatter,
		},
	}
}

// Reducer combines the configured totals, or returns nil when none are set
func (g *Grid) Reducer() grouping.Reducer {
	if len(g.Totals) == 0 {
		return nil
	}
	rs := make([]grouping.Reducer, 0, len(g.Totals))
	for _, t := range g.Totals {
		r, err := reducer(t)
		if err != nil {
			continue
		}
		rs = append(rs, r)
	}
	return grouping.Reducers(rs...)
}

// Column returns the displayed column with the given name
func (g *Grid) Column(name string) (Column, bool) {
	for _, c := range g.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (g *Grid) resolve(names []string) []grouping.Column {
	cols := make([]grouping.Column, 0, len(names))
	for _, name := range names {
		if c, ok := g.Column(name); ok {
			cols = append(cols, grouping.BoundColumn{Name: c.Name, Type: c.Type})
			continue
		}
		cols = append(cols, grouping.FieldName(name))
	}
	return cols
}

func reducer(t Total) (grouping.Reducer, error) {
	fn := strings.ToLower(t.Func)
	if fn != "count" && t.Column == "" {
		return nil, fmt.Errorf("%s requires a column", fn)
	}
	switch fn {
	case "count":
		return grouping.Count(t.Key()), nil
	case "sum":
		return grouping.Sum(t.Column, t.Key()), nil
	case "min":
		return grouping.Min(t.Column, t.Key()), nil
	case "max":
		return grouping.Max(t.Column, t.Key()), nil
	case "avg":
		return grouping.Avg(t.Column, t.Key()), nil
	}
	return nil, fmt.Errorf("unknown aggregate %q, expected count, sum, min, max or avg", t.Func)
}
