package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// File is the on-disk configuration of the dbconnect CLI.
type File struct {
	Database Params `yaml:"database"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultPath is $HOME/.config/dbconnect/config.yaml.
func DefaultPath() string {
	return filepath.Join(os.ExpandEnv("$HOME/.config/dbconnect"), "config.yaml")
}

// LoadFile reads the configuration at path. A missing file is an empty
// configuration.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	return &f, nil
}

// Save writes f to path, creating the directory if needed.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// sqliteHost stands in for the host of a sqlite section, which has none.
const sqliteHost = "localhost"

// Store initiates a Store from the database section. An empty section gives
// an empty store so the environment alone can still configure a connection.
func (f *File) Store() (*Store, error) {
	if f.Database == (Params{}) {
		return &Store{}, nil
	}
	values := f.Database.Map()
	if f.Database.Driver == DriverSQLite && f.Database.Host == "" {
		values[KeyHostname] = sqliteHost
	}
	return NewStore(values)
}
