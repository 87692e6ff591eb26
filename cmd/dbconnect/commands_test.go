package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eduardofuncao/dbconnect/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDSNCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "mysql with port",
			args: []string{"--driver", "mysql", "--host", "db", "--port", "3307", "--schema", "app"},
			want: "mysql:host=db:3307;dbname=app",
		},
		{
			name: "sqlite",
			args: []string{"--driver", "sqlite", "--schema", "/tmp/app.db"},
			want: "sqlite:/tmp/app.db",
		},
		{
			name:    "unsupported driver",
			args:    []string{"--driver", "postgres", "--host", "db", "--schema", "app"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"dsn", "--config", cfg}, tt.args...)
			got, err := run(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dsn error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && strings.TrimSpace(got) != tt.want {
				t.Errorf("dsn = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitExecQuery(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "app.db")

	if _, err := run(t, "init", "--config", cfg, "--driver", "sqlite", "--schema", dbPath); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(cfg); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	f, err := config.LoadFile(cfg)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if f.Database.Driver != config.DriverSQLite || f.Database.Schema != dbPath {
		t.Errorf("saved database = %+v", f.Database)
	}

	if _, err := run(t, "exec", "--config", cfg, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("exec create error = %v", err)
	}
	out, err := run(t, "exec", "--config", cfg, "INSERT INTO users (name) VALUES (:name)", "name=Alice")
	if err != nil {
		t.Fatalf("exec insert error = %v", err)
	}
	if !strings.Contains(out, "1 rows affected") || !strings.Contains(out, "last insert id: 1") {
		t.Errorf("exec output = %q", out)
	}

	out, err = run(t, "query", "--config", cfg, "SELECT id, name FROM users WHERE name = ?", "Alice")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	for _, want := range []string{"Alice", "1x2 in"} {
		if !strings.Contains(out, want) {
			t.Errorf("query output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "query", "--config", cfg, "SELECT id FROM users WHERE id = 42")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	if !strings.Contains(out, "No results found") {
		t.Errorf("query output = %q, want no results", out)
	}
}

func TestDriversCommand(t *testing.T) {
	out, err := run(t, "drivers", "--config", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("drivers error = %v", err)
	}
	for _, want := range []string{"mysql", "sqlite"} {
		if !strings.Contains(out, want) {
			t.Errorf("drivers output = %q, missing %q", out, want)
		}
	}
}
