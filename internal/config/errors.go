package config

import "errors"

var (
	// ErrConfig reports a missing or malformed connection parameter.
	ErrConfig = errors.New("database configuration")

	// ErrUnsupportedDriver is returned for any driver other than mysql and sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
