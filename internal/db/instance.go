package db

import (
	"context"
	"sync"

	"github.com/eduardofuncao/dbconnect/internal/config"
)

var (
	instanceMu sync.Mutex
	instance   *Conn
)

// Instance returns the process-wide connection, opening it on first use.
// Parameters come from the DB_* environment variables first and from store
// second (store may be nil). A failed first call leaves no instance behind,
// so it can be retried.
func Instance(ctx context.Context, store *config.Store, opts Options) (*Conn, error) {
	instanceMu.Lock()
	defer instanceMu.Unlock()

	if instance != nil {
		return instance, nil
	}

	p, err := config.Resolve(config.Params{}, nil, store)
	if err != nil {
		return nil, err
	}
	c, err := New(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	instance = c
	return instance, nil
}

func releaseInstance(c *Conn) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == c {
		instance = nil
	}
}
