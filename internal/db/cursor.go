package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// FetchMode selects the shape of a fetched Row.
type FetchMode int

const (
	// FetchAssoc keys values by column name.
	FetchAssoc FetchMode = iota
	// FetchNum keys values by column position: "0", "1", ...
	FetchNum
	// FetchBoth keys every value by name and by position.
	FetchBoth
)

// Row is one fetched record. Text and blob values are returned as string.
type Row map[string]any

// Cursor is the result of one query or statement execution. It is safe for
// concurrent use. A cursor from an exec-style statement has no rows and
// reports the affected row count.
type Cursor struct {
	mu      sync.Mutex
	rows    *sql.Rows
	columns []string
	count   int64
	done    bool
}

func newRowsCursor(rows *sql.Rows) (*Cursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: getting columns: %w", ErrQuery, err)
	}
	return &Cursor{rows: rows, columns: columns}, nil
}

func newResultCursor(res sql.Result) *Cursor {
	c := &Cursor{done: true}
	if n, err := res.RowsAffected(); err == nil {
		c.count = n
	}
	return c
}

// Columns returns the column names of the result set.
func (c *Cursor) Columns() []string {
	return append([]string(nil), c.columns...)
}

// Row returns the next row keyed by column name. ErrEndOfResults marks the
// end of the result set.
func (c *Cursor) Row() (Row, error) {
	return c.Fetch(FetchAssoc)
}

// Fetch returns the next row in the requested shape.
func (c *Cursor) Fetch(mode FetchMode) (Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, err := c.next()
	if err != nil {
		return nil, err
	}
	return c.shape(values, mode), nil
}

// Rows returns all remaining rows keyed by column name.
func (c *Cursor) Rows() ([]Row, error) {
	return c.FetchAll(FetchAssoc)
}

// FetchAll returns all remaining rows in the requested shape. An exhausted
// cursor yields an empty slice.
func (c *Cursor) FetchAll(mode FetchMode) ([]Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := []Row{}
	for {
		values, err := c.next()
		if errors.Is(err, ErrEndOfResults) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, c.shape(values, mode))
	}
}

// FieldValue returns the named field of the next row. A field missing from
// the result set fails with ErrFieldNotFound without consuming a row.
func (c *Cursor) FieldValue(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.columnIndex(name)
	if err != nil {
		return nil, err
	}
	values, err := c.next()
	if err != nil {
		return nil, err
	}
	return values[idx], nil
}

// FieldValues returns the named field of every remaining row.
func (c *Cursor) FieldValues(name string) ([]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := []any{}
	for {
		values, err := c.next()
		if errors.Is(err, ErrEndOfResults) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, values[idx])
	}
}

// RowCount returns the number of affected rows for exec-style statements,
// and the number of rows fetched so far otherwise.
func (c *Cursor) RowCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Close releases the result set. Closing twice is harmless.
func (c *Cursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done = true
	if c.rows == nil {
		return nil
	}
	return c.rows.Close()
}

func (c *Cursor) columnIndex(name string) (int, error) {
	for i, col := range c.columns {
		if col == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// next must be called with c.mu held.
func (c *Cursor) next() ([]any, error) {
	if c.done || c.rows == nil {
		return nil, ErrEndOfResults
	}
	if !c.rows.Next() {
		c.done = true
		err := c.rows.Err()
		c.rows.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: iterating rows: %w", ErrQuery, err)
		}
		return nil, ErrEndOfResults
	}

	values := make([]any, len(c.columns))
	valuePtrs := make([]any, len(c.columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := c.rows.Scan(valuePtrs...); err != nil {
		return nil, fmt.Errorf("%w: scanning row: %w", ErrQuery, err)
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = string(b)
		}
	}
	c.count++
	return values, nil
}

func (c *Cursor) shape(values []any, mode FetchMode) Row {
	row := make(Row, len(values))
	for i, v := range values {
		if mode == FetchAssoc || mode == FetchBoth {
			row[c.columns[i]] = v
		}
		if mode == FetchNum || mode == FetchBoth {
			row[strconv.Itoa(i)] = v
		}
	}
	return row
}
