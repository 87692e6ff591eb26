package config

import (
	"fmt"
	"sync"
)

// Store holds the database parameters of a process. The zero value is an
// empty store; Initiate fills it.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore returns a store initiated from values.
func NewStore(values map[string]string) (*Store, error) {
	s := &Store{}
	if err := s.Initiate(values); err != nil {
		return nil, err
	}
	return s, nil
}

// Initiate replaces the whole stored parameter set. db_driver, db_hostname
// and db_schema are required; db_port, db_username and db_password default
// to empty. On error the previous set is kept.
func (s *Store) Initiate(values map[string]string) error {
	driver := values[KeyDriver]
	if driver == "" {
		return fmt.Errorf("%w: database driver need to be set", ErrConfig)
	}
	if values[KeyHostname] == "" {
		return fmt.Errorf("%w: database host need to be set", ErrConfig)
	}
	if values[KeySchema] == "" {
		return fmt.Errorf("%w: database name need to be set", ErrConfig)
	}
	if _, err := ParsePort(values[KeyPort]); err != nil {
		return err
	}

	next := map[string]string{
		KeyDriver:   driver,
		KeyHostname: values[KeyHostname],
		KeySchema:   values[KeySchema],
		KeyPort:     values[KeyPort],
		KeyUsername: values[KeyUsername],
		KeyPassword: values[KeyPassword],
	}

	s.mu.Lock()
	s.values = next
	s.mu.Unlock()
	return nil
}

// Get returns the stored value for name. The boolean is false if name was
// never set.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Params returns a snapshot of the stored set.
func (s *Store) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.values == nil {
		return Params{}
	}
	// Initiate validated the port already.
	p, _ := ParamsFromMap(s.values)
	return p
}

// BuildDSN assembles a DSN where every zero field of override falls back to
// the stored value.
func (s *Store) BuildDSN(override Params) (string, error) {
	return BuildDSN(override.merge(s.Params()))
}
