package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/leengari/groupgrid/internal/config"
	"github.com/leengari/groupgrid/internal/domain/data"
)

// Table is a materialized dataset ready for a grouping pass
type Table struct {
	Name    string
	Path    string // directory holding meta.json and data.json
	Columns []config.Column
	Rows    []data.Row
}

// LoadTable reads a dataset directory (meta.json + data.json)
func LoadTable(path string, logger *slog.Logger) (*Table, error) {
	metaPath := filepath.Join(path, "meta.json")
	dataPath := filepath.Join(path, "data.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read table meta: %w", err)
	}

	var meta TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse table meta: %w", err)
	}

	columns := make([]config.Column, 0, len(meta.Columns))
	for _, c := range meta.Columns {
		columns = append(columns, c.toColumn())
	}

	rows := []data.Row{}
	if _, err := os.Stat(dataPath); err == nil {
		rows, err = LoadRows(dataPath)
		if err != nil {
			return nil, err
		}
	}

	if len(columns) == 0 {
		columns = InferColumns(rows)
	}

	table := &Table{
		Name:    meta.Name,
		Path:    path,
		Columns: columns,
		Rows:    rows,
	}
	logger.Info("table loaded",
		slog.String("table", table.Name),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(columns)),
	)

	return table, nil
}

// LoadRows reads a JSON array of row objects
func LoadRows(path string) ([]data.Row, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	rows, err := data.RowsFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rows in %s: %w", path, err)
	}
	return rows, nil
}

// InferColumns lists the keys of the first row in sorted order
func InferColumns(rows []data.Row) []config.Column {
	if len(rows) == 0 {
		return nil
	}
	names := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		names = append(names, k)
	}
	sort.Strings(names)

	columns := make([]config.Column, len(names))
	for i, n := range names {
		columns[i] = config.Column{Name: n}
	}
	return columns
}
