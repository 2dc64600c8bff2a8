package integration

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/engine"
	"github.com/leengari/groupgrid/internal/storage"
	"github.com/leengari/groupgrid/internal/testutil"
)

// setupTestDataset writes the sales dataset and grid settings to a temp dir
// and loads them back the way the CLI does
func setupTestDataset(t *testing.T) (*storage.Table, *config.Grid) {
	t.Helper()
	dir := t.TempDir()

	tablePath := testutil.WriteTable(t, testutil.CreateSalesTable(filepath.Join(dir, "sales")))
	gridPath := testutil.WriteGrid(t, dir, testutil.SalesGridYAML)

	table, err := storage.LoadTable(tablePath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}
	grid, err := config.Load(gridPath)
	if err != nil {
		t.Fatalf("Failed to load grid: %v", err)
	}
	return table, grid
}

// MockObserver for testing
type MockObserver struct {
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.Events = append(m.Events, event)
}
