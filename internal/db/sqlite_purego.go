//go:build !cgo

package db

import (
	"strings"

	_ "modernc.org/sqlite"
)

// Without cgo the pure Go driver takes over; it registers as "sqlite".
const sqliteDriverName = "sqlite"

func sqliteDataSource(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(" + busyTimeoutMs + ")"
}
