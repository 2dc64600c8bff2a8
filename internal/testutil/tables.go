package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/storage"
	"github.com/leengari/groupgrid/internal/storage/writer"
)

// SalesGridYAML groups the sales table by region with a summary row per region
const SalesGridYAML = `
merge_columns: [region]
extra_row_columns: [region]
merge_type: simple
extra_row_position: before
null_display: "-"
totals:
  - column: amount
    func: sum
  - func: count
    as: rows
`

// CreateSalesTable creates a sales table sorted by region and city
func CreateSalesTable(path string) *storage.Table {
	return &storage.Table{
		Name: "sales",
		Path: path,
		Columns: []config.Column{
			{Name: "region", Header: "Region"},
			{Name: "city", Header: "City"},
			{Name: "amount", Header: "Amount", Type: format.TypeNumber},
		},
		Rows: []data.Row{
			{"region": "N", "city": "Oslo", "amount": int64(1)},
			{"region": "N", "city": "Oslo", "amount": int64(2)},
			{"region": "N", "city": "Bergen", "amount": int64(3)},
			{"region": "S", "city": "Rome", "amount": int64(4)},
		},
	}
}

// CreateTeamsTable creates a table with a missing value in a merged column
func CreateTeamsTable(path string) *storage.Table {
	return &storage.Table{
		Name: "teams",
		Path: path,
		Columns: []config.Column{
			{Name: "team", Header: "Team"},
			{Name: "member", Header: "Member"},
			{Name: "active", Header: "Active", Type: format.TypeBoolean},
		},
		Rows: []data.Row{
			{"team": "core", "member": "ana", "active": true},
			{"team": "core", "member": "ben", "active": false},
			{"team": nil, "member": "cy", "active": true},
			{"team": nil, "member": "dee", "active": true},
		},
	}
}

// WriteTable saves the table to disk and returns its directory
func WriteTable(t *testing.T, table *storage.Table) string {
	t.Helper()
	if err := writer.SaveTable(table); err != nil {
		t.Fatalf("Failed to save table %s: %v", table.Name, err)
	}
	return table.Path
}

// WriteGrid saves grid settings next to the datasets and returns the file path
func WriteGrid(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "grid.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write grid config: %v", err)
	}
	return path
}
