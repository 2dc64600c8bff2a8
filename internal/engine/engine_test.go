package engine

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/domain/errors"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/render"
	"github.com/leengari/groupgrid/internal/storage"
)

func salesRows() []data.Row {
	return []data.Row{
		{"region": "N", "city": "Oslo", "amount": int64(1)},
		{"region": "N", "city": "Oslo", "amount": int64(2)},
		{"region": "N", "city": "Bergen", "amount": int64(3)},
		{"region": "S", "city": "Rome", "amount": int64(4)},
	}
}

func salesColumns() []config.Column {
	return []config.Column{
		{Name: "region", Header: "Region"},
		{Name: "city", Header: "City"},
		{Name: "amount", Header: "Amount", Type: format.TypeNumber},
	}
}

func regionGrid() *config.Grid {
	return &config.Grid{
		MergeColumns:    []string{"region"},
		ExtraRowColumns: []string{"region"},
		Totals:          []config.Total{{Column: "amount", Func: "sum"}},
	}
}

func TestRun_Text(t *testing.T) {
	eng := New()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	res, err := eng.Run(Request{Rows: salesRows(), Columns: salesColumns(), Grid: regionGrid(), Format: "text"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := strings.Join([]string{
		"Region  City    Amount",
		"---     ---     ---",
		"== N (sum_amount: 6)",
		"N       Oslo    1",
		"        Oslo    2",
		"        Bergen  3",
		"== S (sum_amount: 4)",
		"S       Rome    4",
	}, "\n") + "\n"
	if res.Output != want {
		t.Errorf("Unexpected output:\n%s\nexpected:\n%s", res.Output, want)
	}

	if res.Changes.Len() != 2 {
		t.Errorf("Expected 2 change entries, got %d", res.Changes.Len())
	}
	if res.PassID == "" {
		t.Error("Expected pass id to be set")
	}

	types := []EventType{EventGroupStart, EventGroupEnd, EventRenderStart, EventRenderEnd}
	if len(observer.Events) != len(types) {
		t.Fatalf("Expected %d events, got %d", len(types), len(observer.Events))
	}
	for i, typ := range types {
		if observer.Events[i].Type != typ {
			t.Errorf("Event %d: expected %s, got %s", i, typ, observer.Events[i].Type)
		}
		if observer.Events[i].PassID != res.PassID {
			t.Errorf("Event %d: expected pass id %s, got %s", i, res.PassID, observer.Events[i].PassID)
		}
	}
}

func TestRun_PassSeqIncreases(t *testing.T) {
	eng := New()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	req := Request{Rows: salesRows(), Columns: salesColumns(), Grid: regionGrid(), Format: "text"}
	if _, err := eng.Run(req); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := eng.Run(req); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(observer.Events) != 8 {
		t.Fatalf("Expected 8 events, got %d", len(observer.Events))
	}
	first, second := observer.Events[0].PassSeq, observer.Events[4].PassSeq
	if first == 0 {
		t.Error("Expected pass seq to be set")
	}
	if second <= first {
		t.Errorf("Expected increasing pass seq, got %d then %d", first, second)
	}
	for i := 1; i < 4; i++ {
		if observer.Events[i].PassSeq != first {
			t.Errorf("Event %d: expected pass seq %d, got %d", i, first, observer.Events[i].PassSeq)
		}
	}
}

func TestRun_WithFormatter(t *testing.T) {
	f := format.New()
	f.BooleanLabels = [2]string{"no", "yes"}
	eng := New(WithFormatter(f))

	rows := []data.Row{{"paid": true}, {"paid": false}}
	cols := []config.Column{{Name: "paid", Header: "Paid", Type: format.TypeBoolean}}
	res, err := eng.Run(Request{Rows: rows, Columns: cols, Format: "text"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "Paid\n---\nyes\nno\n"
	if res.Output != want {
		t.Errorf("Expected %q, got %q", want, res.Output)
	}
}

func TestRun_JSON(t *testing.T) {
	res, err := New().Run(Request{Rows: salesRows(), Columns: salesColumns(), Grid: regionGrid(), Format: "json"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var plan render.Plan
	if err := json.Unmarshal([]byte(res.Output), &plan); err != nil {
		t.Fatalf("Expected JSON output, got error: %v", err)
	}
	if len(plan.Rows) != 6 {
		t.Errorf("Expected 6 rows in plan, got %d", len(plan.Rows))
	}
}

func TestRun_NoGridInfersColumns(t *testing.T) {
	res, err := New().Run(Request{Rows: salesRows()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := strings.Join(res.Plan.Columns, ","); got != "amount,city,region" {
		t.Errorf("Expected inferred columns, got %s", got)
	}
	if res.Changes.Len() != 0 {
		t.Errorf("Expected no change entries without grouping, got %d", res.Changes.Len())
	}
	for _, row := range res.Plan.Rows {
		if row.Kind != render.RowData {
			t.Errorf("Expected only data rows, got %s", row.Kind)
		}
	}
}

func TestRun_ColumnNotFound(t *testing.T) {
	eng := New()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	grid := &config.Grid{MergeColumns: []string{"country"}}
	res, err := eng.Run(Request{Rows: salesRows(), Columns: salesColumns(), Grid: grid})
	if !stderrors.Is(err, errors.ErrColumnNotFound) {
		t.Fatalf("Expected column not found, got %v", err)
	}
	if res != nil {
		t.Error("Expected no result on failure")
	}
	for _, ev := range observer.Events {
		if ev.Type == EventRenderStart {
			t.Error("Expected rendering to be skipped after a grouping failure")
		}
	}
}

func TestRun_InvalidRequest(t *testing.T) {
	eng := New()

	if _, err := eng.Run(Request{Rows: salesRows(), Format: "html"}); err == nil {
		t.Error("Expected error for unknown format")
	}

	var cfgErr *errors.ConfigError
	_, err := eng.Run(Request{Rows: salesRows(), Grid: &config.Grid{MergeType: "diagonal"}})
	if !stderrors.As(err, &cfgErr) {
		t.Fatalf("Expected config error, got %v", err)
	}
	if cfgErr.Field != "merge_type" {
		t.Errorf("Expected merge_type field, got %s", cfgErr.Field)
	}
}

func TestRunTable(t *testing.T) {
	table := &storage.Table{Name: "sales", Columns: salesColumns(), Rows: salesRows()}

	res, err := New().RunTable(table, regionGrid(), "box")
	if err != nil {
		t.Fatalf("RunTable failed: %v", err)
	}
	if !strings.Contains(res.Output, "N (sum_amount: 6)") {
		t.Errorf("Expected summary row in box output, got:\n%s", res.Output)
	}
}

func TestRun_DoesNotMutateGrid(t *testing.T) {
	grid := regionGrid()
	if _, err := New().Run(Request{Rows: salesRows(), Columns: salesColumns(), Grid: grid}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if grid.Columns != nil || grid.MergeType != "" {
		t.Errorf("Expected caller grid untouched, got %+v", grid)
	}
}
