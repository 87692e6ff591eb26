package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eduardofuncao/dbconnect/internal/params"
)

// Stmt is a compiled statement. It can be executed any number of times and
// is not affected by later calls on the Conn that prepared it.
type Stmt struct {
	conn     *Conn
	stmt     *sql.Stmt
	query    string
	compiled params.Compiled
	rows     bool
}

// SQL returns the statement text as given to Prepare.
func (s *Stmt) SQL() string { return s.query }

// Execute binds args and runs the statement. args are positional values,
// sql.NamedArg values, or a single map[string]any for :name placeholders.
// The cursor belongs to the caller, who should Close it if it is not read
// to the end.
func (s *Stmt) Execute(ctx context.Context, args ...any) (*Cursor, error) {
	cur, res, err := s.run(ctx, args)
	if err != nil {
		return nil, err
	}
	if res != nil {
		s.conn.mu.Lock()
		s.conn.last = res
		s.conn.mu.Unlock()
	}
	return cur, nil
}

// Close releases the compiled statement.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}

// run does not touch the Conn state. res is nil for row-returning statements.
func (s *Stmt) run(ctx context.Context, args []any) (*Cursor, sql.Result, error) {
	bound, err := s.compiled.Bind(args)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	s.conn.logger.DebugContext(ctx, "db: execute", "sql", s.query, "args", len(bound))

	if s.rows {
		rows, err := s.stmt.QueryContext(ctx, bound...)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}
		cur, err := newRowsCursor(rows)
		return cur, nil, err
	}

	res, err := s.stmt.ExecContext(ctx, bound...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return newResultCursor(res), res, nil
}
