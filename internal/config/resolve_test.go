package config

import (
	"errors"
	"testing"
)

func TestResolvePrecedence(t *testing.T) {
	store, err := NewStore(map[string]string{
		KeyDriver:   "mysql",
		KeyHostname: "stored-host",
		KeyPort:     "3306",
		KeySchema:   "stored_schema",
		KeyUsername: "stored_user",
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	environ := map[string]string{
		"DB_HOSTNAME": "env-host",
		"DB_PORT":     "3307",
		"DB_USERNAME": "env_user",
	}
	explicit := Params{Username: "flag_user"}

	got, err := Resolve(explicit, environ, store)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := Params{
		Driver:   "mysql",
		Host:     "env-host",
		Port:     3307,
		Schema:   "stored_schema",
		Username: "flag_user",
	}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveWithoutStore(t *testing.T) {
	got, err := Resolve(Params{}, map[string]string{
		"DB_DRIVER": "sqlite",
		"DB_SCHEMA": "/tmp/x.db",
	}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	dsn, err := BuildDSN(got)
	if err != nil {
		t.Fatalf("BuildDSN() error = %v", err)
	}
	if dsn != "sqlite:/tmp/x.db" {
		t.Errorf("dsn = %q, want sqlite:/tmp/x.db", dsn)
	}
}

func TestResolveProcessEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SCHEMA", "/tmp/from-env.db")

	got, err := Resolve(Params{}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Driver != "sqlite" || got.Schema != "/tmp/from-env.db" {
		t.Errorf("Resolve() = %+v", got)
	}
}

func TestFromEnvironmentInvalidPort(t *testing.T) {
	_, err := FromEnvironment(map[string]string{"DB_PORT": "abc"})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("FromEnvironment() error = %v, want ErrConfig", err)
	}
}
