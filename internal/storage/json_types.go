package storage

import "github.com/leengari/groupgrid/internal/config"

// TableMeta is the content of a dataset's meta.json
type TableMeta struct {
	Name     string       `json:"name"`
	Columns  []ColumnMeta `json:"columns"`
	RowCount int64        `json:"row_count,omitempty"`
}

// ColumnMeta describes one displayed column
type ColumnMeta struct {
	Name   string `json:"name"`
	Header string `json:"header,omitempty"`
	Type   string `json:"type,omitempty"`
}

func (c ColumnMeta) toColumn() config.Column {
	return config.Column{Name: c.Name, Header: c.Header, Type: c.Type}
}

func fromColumn(c config.Column) ColumnMeta {
	return ColumnMeta{Name: c.Name, Header: c.Header, Type: c.Type}
}

// NewTableMeta builds the meta.json content for a table
func NewTableMeta(t *Table) TableMeta {
	meta := TableMeta{
		Name:     t.Name,
		RowCount: int64(len(t.Rows)),
		Columns:  make([]ColumnMeta, len(t.Columns)),
	}
	for i, c := range t.Columns {
		meta.Columns[i] = fromColumn(c)
	}
	return meta
}
