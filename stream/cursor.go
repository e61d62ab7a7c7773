package stream

import "github.com/kbukum/sqlstream/errors"

// Row is a structured record produced by a cursor, exposing positional and
// named field lookup. A Row is only valid until the cursor advances; cursors
// may reuse the backing buffer between rows, so functions that keep data past
// the current element must copy the fields they need.
type Row interface {
	// Value returns the field at ordinal i (zero-based).
	Value(i int) any
	// Named returns the field with the given column name.
	Named(name string) (any, bool)
	// Columns returns the column names in result order.
	Columns() []string
}

// Cursor is a forward-movable handle over an external sequence of elements.
// Database-backed cursors yield Row values from Current; in-memory cursors
// may yield arbitrary values.
type Cursor interface {
	// Next advances the cursor. It returns false when the sequence is
	// exhausted, or an error if advancing failed.
	Next() (bool, error)
	// Current returns the element produced by the last successful Next.
	Current() any
	// AtStart reports whether no element has been consumed yet.
	AtStart() bool
	// Rewindable reports whether the cursor supports Rewind.
	Rewindable() bool
	// Rewind repositions the cursor before the first element. It is only
	// called when AtStart is false.
	Rewind() error
}

// SliceCursor is a rewindable Cursor over an in-memory slice.
type SliceCursor struct {
	items []any
	pos   int
}

// NewSliceCursor creates a cursor over the given values.
func NewSliceCursor(items ...any) *SliceCursor {
	return &SliceCursor{items: items}
}

func (c *SliceCursor) Next() (bool, error) {
	if c.pos >= len(c.items) {
		return false, nil
	}
	c.pos++
	return true, nil
}

func (c *SliceCursor) Current() any {
	return c.items[c.pos-1]
}

func (c *SliceCursor) AtStart() bool { return c.pos == 0 }

func (c *SliceCursor) Rewindable() bool { return true }

func (c *SliceCursor) Rewind() error {
	c.pos = 0
	return nil
}

// ensureAtStart rewinds the cursor if a previous realization moved it.
func ensureAtStart(c Cursor) error {
	if c.AtStart() {
		return nil
	}
	if !c.Rewindable() {
		return errors.RewindUnsupported()
	}
	return c.Rewind()
}
