package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/groupgrid/internal/storage"
)

// SaveTable persists both data.json and meta.json atomically
func SaveTable(t *storage.Table) error {
	if t == nil || t.Path == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}

	if err := os.MkdirAll(t.Path, 0755); err != nil {
		return fmt.Errorf("failed to create table directory %s: %w", t.Path, err)
	}

	meta := storage.NewTableMeta(t)

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table meta for %s: %w", t.Name, err)
	}

	dataBytes, err := json.MarshalIndent(t.Rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows for %s: %w", t.Name, err)
	}

	files := []struct {
		path string
		data []byte
		name string
	}{
		{filepath.Join(t.Path, "meta.json"), metaBytes, "meta.json"},
		{filepath.Join(t.Path, "data.json"), dataBytes, "data.json"},
	}

	for _, f := range files {
		if err := writeAtomic(f.path, f.data); err != nil {
			return fmt.Errorf("failed to write %s for table %s: %w", f.name, t.Name, err)
		}
	}

	slog.Debug("table saved", "table", t.Name, "rows", len(t.Rows), "path", t.Path)
	return nil
}

// SaveFile writes any file atomically with the temp + rename dance
func SaveFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
