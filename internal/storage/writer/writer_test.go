package writer

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
	"github.com/leengari/groupgrid/internal/storage"
)

func TestSaveTable_ThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sales")
	table := &storage.Table{
		Name:    "sales",
		Path:    dir,
		Columns: []config.Column{{Name: "region", Header: "Region"}, {Name: "amount", Type: "number"}},
		Rows: []data.Row{
			{"region": "N", "amount": int64(3)},
			{"region": "S", "amount": 1.25},
		},
	}

	if err := SaveTable(table); err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "meta.json.tmp")); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away")
	}

	loaded, err := storage.LoadTable(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if loaded.Name != "sales" || len(loaded.Rows) != 2 {
		t.Fatalf("Unexpected table %+v", loaded)
	}
	if loaded.Rows[0]["amount"] != int64(3) {
		t.Errorf("Expected amount 3, got %v", loaded.Rows[0]["amount"])
	}
	if loaded.Columns[1].Type != "number" {
		t.Errorf("Expected column type number, got %q", loaded.Columns[1].Type)
	}
}

func TestSaveTable_Invalid(t *testing.T) {
	if err := SaveTable(nil); err == nil {
		t.Error("Expected error for nil table")
	}
	if err := SaveTable(&storage.Table{Name: "x"}); err == nil {
		t.Error("Expected error for missing path")
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grid.yaml")
	if err := SaveFile(path, []byte("merge_columns: [a]\n")); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "merge_columns: [a]\n" {
		t.Errorf("Unexpected content %q", got)
	}
}
