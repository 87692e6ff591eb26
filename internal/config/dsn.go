package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// BuildDSN assembles the PDO-style data source name for p.
//
//	mysql:host=<host>[:<port>];dbname=<schema>
//	sqlite:<schema>
//
// For sqlite the schema is the path of the database file.
func BuildDSN(p Params) (string, error) {
	if p.Driver == "" {
		return "", fmt.Errorf("%w: database driver not set", ErrConfig)
	}
	if p.Schema == "" {
		return "", fmt.Errorf("%w: database name not set", ErrConfig)
	}

	switch p.Driver {
	case DriverMySQL:
		if p.Host == "" {
			return "", fmt.Errorf("%w: database host not set", ErrConfig)
		}
		var b strings.Builder
		b.WriteString("mysql:host=")
		if p.Port != 0 {
			// JoinHostPort brackets IPv6 literals.
			b.WriteString(net.JoinHostPort(strings.Trim(p.Host, "[]"), strconv.Itoa(int(p.Port))))
		} else {
			b.WriteString(p.Host)
		}
		b.WriteString(";dbname=")
		b.WriteString(p.Schema)
		return b.String(), nil
	case DriverSQLite:
		return "sqlite:" + p.Schema, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, p.Driver)
	}
}
