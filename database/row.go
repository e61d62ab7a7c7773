package database

import "github.com/kbukum/sqlstream/stream"

// Row is the structured record a query cursor hands to stream steps. It is
// backed by the cursor's scan buffer and is only valid until the cursor
// advances: step functions that keep field data past the current element
// must extract the values they need (or call Snapshot).
type Row struct {
	columns []string
	index   map[string]int
	values  []any
}

var _ stream.Row = (*Row)(nil)

func newRow(columns []string) *Row {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Row{
		columns: columns,
		index:   index,
		values:  make([]any, len(columns)),
	}
}

// Value returns the field at ordinal i (zero-based), or nil when i is out of
// range.
func (r *Row) Value(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// Named returns the field with the given column name.
func (r *Row) Named(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Columns returns the column names in result order.
func (r *Row) Columns() []string {
	return r.columns
}

// Snapshot copies the current field values into a fresh map, safe to retain
// after the cursor advances.
func (r *Row) Snapshot() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}
