package grouping

import (
	"encoding/json"
	"sort"
	"strconv"
)

// RunState describes a run of consecutive rows sharing one column value.
// Index is the first row of the run and Count its length.
type RunState struct {
	Value interface{} `json:"value"`
	Count int         `json:"count"`
	Index int         `json:"index"`
}

// ChangeEntry collects the runs anchored at a single row
type ChangeEntry struct {
	Columns map[string]RunState `json:"columns"`
	Count   int                 `json:"count"`            // count of the first run anchored here
	Totals  Totals              `json:"totals,omitempty"` // nil until a closure attaches totals

	order []string
}

// Column returns the run snapshot for name, if a run is anchored here
func (e *ChangeEntry) Column(name string) (RunState, bool) {
	rs, ok := e.Columns[name]
	return rs, ok
}

// ColumnNames lists anchored columns in the order their runs closed
func (e *ChangeEntry) ColumnNames() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

func (e *ChangeEntry) set(name string, rs RunState) {
	if _, exists := e.Columns[name]; !exists {
		e.order = append(e.order, name)
	}
	e.Columns[name] = rs
}

// ChangeMap is the sparse, row-ordered result of a grouping pass.
// Only rows that anchor a closed run have an entry.
type ChangeMap struct {
	entries map[int]*ChangeEntry
}

func newChangeMap() *ChangeMap {
	return &ChangeMap{entries: make(map[int]*ChangeEntry)}
}

// Len returns the number of anchor rows
func (m *ChangeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entry returns the change entry anchored at row r
func (m *ChangeMap) Entry(r int) (*ChangeEntry, bool) {
	if m == nil {
		return nil, false
	}
	e, ok := m.entries[r]
	return e, ok
}

// Indexes returns anchor rows in ascending order
func (m *ChangeMap) Indexes() []int {
	if m == nil {
		return nil
	}
	idx := make([]int, 0, len(m.entries))
	for r := range m.entries {
		idx = append(idx, r)
	}
	sort.Ints(idx)
	return idx
}

// Entries returns a copy of the map keyed by anchor row
func (m *ChangeMap) Entries() map[int]ChangeEntry {
	out := make(map[int]ChangeEntry, m.Len())
	if m == nil {
		return out
	}
	for r, e := range m.entries {
		out[r] = *e
	}
	return out
}

// MarshalJSON encodes the map as an object keyed by row index, in row order
func (m *ChangeMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, r := range m.Indexes() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '"')
		buf = strconv.AppendInt(buf, int64(r), 10)
		buf = append(buf, '"', ':')
		b, err := json.Marshal(m.entries[r])
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return append(buf, '}'), nil
}

// at returns the entry anchored at r, creating it when missing
func (m *ChangeMap) at(r int) *ChangeEntry {
	e, ok := m.entries[r]
	if !ok {
		e = &ChangeEntry{Columns: make(map[string]RunState)}
		m.entries[r] = e
	}
	return e
}
