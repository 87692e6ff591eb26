package db

import (
	"errors"
	"fmt"
)

var (
	ErrConnection = errors.New("database connection")
	ErrQuery      = errors.New("query execution")
	ErrStatement  = errors.New("prepared statement")

	// ErrNoStatement is returned by Conn.Execute when no statement was
	// supplied and none is pending.
	ErrNoStatement = fmt.Errorf("%w not found", ErrStatement)

	ErrNoCursor      = errors.New("no active result set")
	ErrEndOfResults  = errors.New("end of result set")
	ErrFieldNotFound = errors.New("field is not present in the current result set")
	ErrNoResult      = errors.New("no statement result")
)
