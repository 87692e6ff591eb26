package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnvironment reads the DB_* variables from environ. A nil environ
// means the process environment.
func FromEnvironment(environ map[string]string) (Params, error) {
	var p Params
	if err := env.ParseWithOptions(&p, env.Options{Environment: environ}); err != nil {
		return Params{}, fmt.Errorf("%w: parse env: %v", ErrConfig, err)
	}
	return p, nil
}

// Resolve layers the connection parameters: a non-zero field of explicit
// wins, then the environment, then the stored value. store may be nil.
// The result is not validated; BuildDSN does that.
func Resolve(explicit Params, environ map[string]string, store *Store) (Params, error) {
	fromEnv, err := FromEnvironment(environ)
	if err != nil {
		return Params{}, err
	}
	p := explicit.merge(fromEnv)
	if store != nil {
		p = p.merge(store.Params())
	}
	return p, nil
}
