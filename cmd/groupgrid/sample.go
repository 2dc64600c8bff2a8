package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/format"
	"github.com/leengari/groupgrid/internal/storage"
	"github.com/leengari/groupgrid/internal/storage/writer"
)

// writeSample seeds dir with a dataset and matching grid settings.
// An existing dataset is left untouched.
func writeSample(dir string) (tablePath, configPath string, err error) {
	tablePath = filepath.Join(dir, "sales")
	configPath = filepath.Join(dir, "grid.yaml")

	if _, err := os.Stat(tablePath); !os.IsNotExist(err) {
		slog.Info("sample already present", "path", tablePath)
		return tablePath, configPath, nil
	}

	slog.Info("Seeding sample dataset...", "path", tablePath)

	table := &storage.Table{
		Name: "sales",
		Path: tablePath,
		Columns: []config.Column{
			{Name: "region", Header: "Region"},
			{Name: "city", Header: "City"},
			{Name: "product", Header: "Product"},
			{Name: "units", Header: "Units", Type: format.TypeNumber},
			{Name: "revenue", Header: "Revenue", Type: format.TypeNumber},
			{Name: "updated", Header: "Updated", Type: format.TypeDate},
		},
		Rows: sampleRows,
	}
	if err := writer.SaveTable(table); err != nil {
		return "", "", err
	}

	grid := config.Grid{
		MergeColumns:     []string{"region", "city"},
		ExtraRowColumns:  []string{"city"},
		MergeType:        "nested",
		ExtraRowPosition: "before",
		NullDisplay:      "-",
		Totals: []config.Total{
			{Func: "count", As: "rows"},
			{Column: "revenue", Func: "sum", As: "revenue"},
		},
	}
	raw, err := yaml.Marshal(grid)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode sample config: %w", err)
	}
	if err := writer.SaveFile(configPath, raw); err != nil {
		return "", "", err
	}
	return tablePath, configPath, nil
}
