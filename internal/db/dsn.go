package db

import (
	"database/sql"
	"fmt"
	"net"
	"strings"
	"sync/atomic"

	"github.com/eduardofuncao/dbconnect/internal/config"
)

// busyTimeoutMs bounds how long sqlite waits on a locked database.
const busyTimeoutMs = "5000"

// DSN is a parsed PDO-style data source name, as produced by
// config.BuildDSN.
type DSN struct {
	Driver  string
	Host    string
	Port    uint16
	Socket  string
	Schema  string
	Charset string
}

// ParseDSN parses
//
//	mysql:host=<host>[:<port>][;port=<port>][;dbname=<schema>][;charset=<cs>][;unix_socket=<path>]
//	sqlite:<path>
func ParseDSN(dsn string) (DSN, error) {
	driver, rest, ok := strings.Cut(dsn, ":")
	if !ok || driver == "" {
		return DSN{}, fmt.Errorf("%w: malformed dsn %q", config.ErrConfig, dsn)
	}

	switch driver {
	case config.DriverMySQL:
		return parseMySQLDSN(rest)
	case config.DriverSQLite:
		if rest == "" {
			return DSN{}, fmt.Errorf("%w: sqlite dsn without a database path", config.ErrConfig)
		}
		return DSN{Driver: config.DriverSQLite, Schema: rest}, nil
	default:
		return DSN{}, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
	}
}

func parseMySQLDSN(rest string) (DSN, error) {
	d := DSN{Driver: config.DriverMySQL}

	for _, pair := range strings.Split(rest, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return DSN{}, fmt.Errorf("%w: malformed dsn attribute %q", config.ErrConfig, pair)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "host":
			host, port, err := splitHost(value)
			if err != nil {
				return DSN{}, err
			}
			d.Host = host
			if port != 0 {
				d.Port = port
			}
		case "port":
			port, err := config.ParsePort(value)
			if err != nil {
				return DSN{}, err
			}
			d.Port = port
		case "dbname":
			d.Schema = value
		case "charset":
			d.Charset = value
		case "unix_socket":
			d.Socket = value
		}
	}

	if d.Host == "" && d.Socket == "" {
		return DSN{}, fmt.Errorf("%w: database host not set", config.ErrConfig)
	}
	return d, nil
}

// splitHost accepts host, host:port, [ipv6] and [ipv6]:port. An unbracketed
// IPv6 address is taken as a host without port.
func splitHost(s string) (string, uint16, error) {
	if h, p, err := net.SplitHostPort(s); err == nil {
		port, err := config.ParsePort(p)
		return h, port, err
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"), 0, nil
}

// open returns a handle for the native driver behind d.
func (d DSN) open(username, password string) (*sql.DB, error) {
	switch d.Driver {
	case config.DriverMySQL:
		connector, err := mysqlConnector(d, username, password)
		if err != nil {
			return nil, err
		}
		return sql.OpenDB(connector), nil
	case config.DriverSQLite:
		return sql.Open(sqliteDriverName, sqliteDataSource(memoryDataSource(d.Schema)))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, d.Driver)
	}
}

var memorySeq atomic.Uint64

// memoryDataSource names in-memory databases and puts them in shared cache
// mode, so every pooled connection of one handle sees the same data and
// handles never see each other's. The pool keeps idle connections open,
// which keeps the database alive until the handle is closed.
func memoryDataSource(path string) string {
	switch {
	case path == ":memory:":
		return fmt.Sprintf("file:dbconnect-memory-%d?mode=memory&cache=shared", memorySeq.Add(1))
	case strings.Contains(path, "mode=memory") && !strings.Contains(path, "cache=shared"):
		return path + "&cache=shared"
	}
	return path
}
