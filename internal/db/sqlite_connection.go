//go:build cgo

package db

import (
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriverName = "sqlite3"

// sqliteDataSource waits on locked databases instead of failing with
// SQLITE_BUSY right away.
func sqliteDataSource(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=" + busyTimeoutMs
}
