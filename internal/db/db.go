package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eduardofuncao/dbconnect/internal/config"
	"github.com/eduardofuncao/dbconnect/internal/params"
)

// Options tune how a connection is opened.
type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// InitStatements run once right after connecting, e.g. "SET NAMES utf8".
	InitStatements []string
}

// Conn owns one database handle and the "current" result set used by the
// Row, Rows, FieldValue, FieldValues and RowCount shortcuts. Query and
// Execute replace (and close) the current result set, so callers sharing a
// Conn across goroutines must serialize those calls or use Cursor and
// standalone statements, which are independent. The lock guarding the
// current result set is never held while the database is queried.
type Conn struct {
	db     *sql.DB
	driver string
	logger *slog.Logger

	mu      sync.Mutex
	cursor  *Cursor
	pending *Stmt
	last    sql.Result
}

// Open connects to dsn, a PDO-style data source name as built by
// config.BuildDSN.
func Open(ctx context.Context, dsn, username, password string, opts Options) (*Conn, error) {
	d, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := d.open(username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", ErrConnection, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping db: %w", ErrConnection, err)
	}
	for _, stmt := range opts.InitStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: init statement %q: %w", ErrConnection, stmt, err)
		}
	}

	logger.DebugContext(ctx, "db: connected", "driver", d.Driver, "host", d.Host, "schema", d.Schema)
	return &Conn{db: db, driver: d.Driver, logger: logger}, nil
}

// New builds the DSN for p and opens it.
func New(ctx context.Context, p config.Params, opts Options) (*Conn, error) {
	dsn, err := config.BuildDSN(p)
	if err != nil {
		return nil, err
	}
	return Open(ctx, dsn, p.Username, p.Password, opts)
}

// AvailableDrivers lists the database/sql drivers linked into the binary.
func AvailableDrivers() []string {
	return sql.Drivers()
}

// Driver returns "mysql" or "sqlite".
func (c *Conn) Driver() string { return c.driver }

func (c *Conn) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// Close releases the current result set and the database handle. Closing
// the shared instance lets the next Instance call connect again.
func (c *Conn) Close() error {
	c.mu.Lock()
	c.closeCursor()
	c.closePending()
	c.mu.Unlock()

	releaseInstance(c)
	return c.db.Close()
}

// Query runs sql without parameter binding. The result becomes the current
// result set and is returned as well.
func (c *Conn) Query(ctx context.Context, sql string) (*Cursor, error) {
	c.mu.Lock()
	c.closeCursor()
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "db: query", "sql", sql)
	rows, err := c.db.QueryContext(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	cur, err := newRowsCursor(rows)
	if err != nil {
		return nil, err
	}
	c.setCursor(cur, nil)
	return cur, nil
}

// Cursor runs sql with args and returns an independent result set that
// leaves the current one untouched. The caller must Close it if it is not
// read to the end.
func (c *Conn) Cursor(ctx context.Context, sql string, args ...any) (*Cursor, error) {
	compiled := c.compile(sql)
	bound, err := compiled.Bind(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	c.logger.DebugContext(ctx, "db: query", "sql", sql, "args", len(bound))
	rows, err := c.db.QueryContext(ctx, compiled.SQL, bound...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return newRowsCursor(rows)
}

// Prepare compiles sql. Unless standalone is set, the statement also
// becomes the pending statement used by Execute when it is given none, and
// the previous pending statement is closed.
func (c *Conn) Prepare(ctx context.Context, sql string, standalone bool) (*Stmt, error) {
	compiled := c.compile(sql)
	stmt, err := c.db.PrepareContext(ctx, compiled.SQL)
	if err != nil {
		return nil, fmt.Errorf("%w: prepare: %w", ErrStatement, err)
	}

	s := &Stmt{
		conn:     c,
		stmt:     stmt,
		query:    sql,
		compiled: compiled,
		rows:     params.ReturnsRows(sql),
	}
	if !standalone {
		c.mu.Lock()
		c.closePending()
		c.pending = s
		c.mu.Unlock()
	}
	return s, nil
}

// Execute runs stmt, or the pending statement when stmt is nil, and makes
// its result the current result set.
func (c *Conn) Execute(ctx context.Context, stmt *Stmt, args ...any) (*Cursor, error) {
	c.mu.Lock()
	if stmt == nil {
		stmt = c.pending
	}
	if stmt == nil {
		c.mu.Unlock()
		return nil, ErrNoStatement
	}
	c.closeCursor()
	c.mu.Unlock()

	cur, res, err := stmt.run(ctx, args)
	if err != nil {
		return nil, err
	}
	c.setCursor(cur, res)
	return cur, nil
}

// Exec runs a statement that returns no rows and reports the number of
// affected rows. The current result set is left alone.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	compiled := c.compile(sql)
	bound, err := compiled.Bind(args)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	c.logger.DebugContext(ctx, "db: exec", "sql", sql, "args", len(bound))
	res, err := c.db.ExecContext(ctx, compiled.SQL, bound...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	c.mu.Lock()
	c.last = res
	c.mu.Unlock()

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %w", ErrQuery, err)
	}
	return n, nil
}

// Row returns the next row of the current result set keyed by column name.
func (c *Conn) Row() (Row, error) {
	return c.Fetch(FetchAssoc)
}

// Fetch returns the next row of the current result set in the given shape.
func (c *Conn) Fetch(mode FetchMode) (Row, error) {
	cur, err := c.current()
	if err != nil {
		return nil, err
	}
	return cur.Fetch(mode)
}

// Rows returns the remaining rows of the current result set.
func (c *Conn) Rows() ([]Row, error) {
	return c.FetchAll(FetchAssoc)
}

func (c *Conn) FetchAll(mode FetchMode) ([]Row, error) {
	cur, err := c.current()
	if err != nil {
		return nil, err
	}
	return cur.FetchAll(mode)
}

func (c *Conn) FieldValue(name string) (any, error) {
	cur, err := c.current()
	if err != nil {
		return nil, err
	}
	return cur.FieldValue(name)
}

func (c *Conn) FieldValues(name string) ([]any, error) {
	cur, err := c.current()
	if err != nil {
		return nil, err
	}
	return cur.FieldValues(name)
}

// RowCount reports the row count of the current result set. The boolean is
// false when there is none.
func (c *Conn) RowCount() (int64, bool) {
	cur, err := c.current()
	if err != nil {
		return 0, false
	}
	return cur.RowCount(), true
}

// LastInsertID returns the id generated by the most recent insert run
// through Exec or an exec-style statement.
func (c *Conn) LastInsertID() (int64, error) {
	c.mu.Lock()
	res := c.last
	c.mu.Unlock()

	if res == nil {
		return 0, ErrNoResult
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %w", ErrQuery, err)
	}
	return id, nil
}

func (c *Conn) current() (*Cursor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == nil {
		return nil, ErrNoCursor
	}
	return c.cursor, nil
}

// compile rewrites :name placeholders with the quoting rules of the driver.
func (c *Conn) compile(query string) params.Compiled {
	return params.CompileFor(query, c.driver == config.DriverMySQL)
}

// setCursor makes cur the current result set. A result set installed by a
// concurrent call in the meantime is closed.
func (c *Conn) setCursor(cur *Cursor, res sql.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCursor()
	c.cursor = cur
	if res != nil {
		c.last = res
	}
}

// closePending must be called with c.mu held.
func (c *Conn) closePending() {
	if c.pending == nil {
		return
	}
	if err := c.pending.Close(); err != nil {
		c.logger.Warn("db: close pending statement", "error", err)
	}
	c.pending = nil
}

// closeCursor must be called with c.mu held.
func (c *Conn) closeCursor() {
	if c.cursor == nil {
		return
	}
	if err := c.cursor.Close(); err != nil {
		c.logger.Warn("db: close result set", "error", err)
	}
	c.cursor = nil
}
