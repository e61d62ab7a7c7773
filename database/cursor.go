package database

import (
	"database/sql"

	apperrors "github.com/kbukum/sqlstream/errors"
	"github.com/kbukum/sqlstream/stream"
)

// rowsCursor adapts *sql.Rows to the stream.Cursor interface. Each advance
// rescans into a single reused Row, so the previous row's buffer is
// overwritten; only values a step extracted survive the advance.
//
// database/sql result sets are forward-only, so the cursor is not
// rewindable: a stream over it can be realized at most once across all of
// its branches.
type rowsCursor struct {
	rows   *sql.Rows
	row    *Row
	ptrs   []any
	pos    int
	closed bool
}

var _ stream.Cursor = (*rowsCursor)(nil)

func newRowsCursor(rows *sql.Rows) (*rowsCursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	row := newRow(columns)
	ptrs := make([]any, len(columns))
	for i := range ptrs {
		ptrs[i] = &row.values[i]
	}
	return &rowsCursor{rows: rows, row: row, ptrs: ptrs}, nil
}

func (c *rowsCursor) Next() (bool, error) {
	if c.closed {
		return false, apperrors.CursorClosed()
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := c.rows.Scan(c.ptrs...); err != nil {
		return false, err
	}
	c.pos++
	return true, nil
}

func (c *rowsCursor) Current() any { return c.row }

func (c *rowsCursor) AtStart() bool { return c.pos == 0 }

func (c *rowsCursor) Rewindable() bool { return false }

func (c *rowsCursor) Rewind() error {
	return apperrors.RewindUnsupported()
}

// markClosed flags the cursor so late realizations report CURSOR_CLOSED
// instead of silently yielding nothing.
func (c *rowsCursor) markClosed() { c.closed = true }
