package config

import (
	"fmt"
	"strconv"
)

// Recognized keys of the database parameter mapping.
const (
	KeyDriver   = "db_driver"
	KeyHostname = "db_hostname"
	KeyPort     = "db_port"
	KeySchema   = "db_schema"
	KeyUsername = "db_username"
	KeyPassword = "db_password"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Params is one complete set of connection parameters. A zero field means
// the value was not supplied.
type Params struct {
	Driver   string `yaml:"db_driver" env:"DB_DRIVER"`
	Host     string `yaml:"db_hostname" env:"DB_HOSTNAME"`
	Port     uint16 `yaml:"db_port" env:"DB_PORT"`
	Schema   string `yaml:"db_schema" env:"DB_SCHEMA"`
	Username string `yaml:"db_username" env:"DB_USERNAME"`
	Password string `yaml:"db_password" env:"DB_PASSWORD"`
}

// ParamsFromMap converts a db_* mapping into Params. Only the port is
// validated here.
func ParamsFromMap(values map[string]string) (Params, error) {
	p := Params{
		Driver:   values[KeyDriver],
		Host:     values[KeyHostname],
		Schema:   values[KeySchema],
		Username: values[KeyUsername],
		Password: values[KeyPassword],
	}
	port, err := ParsePort(values[KeyPort])
	if err != nil {
		return Params{}, err
	}
	p.Port = port
	return p, nil
}

// Map returns the db_* mapping for p. The port is omitted when absent.
func (p Params) Map() map[string]string {
	m := map[string]string{
		KeyDriver:   p.Driver,
		KeyHostname: p.Host,
		KeySchema:   p.Schema,
		KeyUsername: p.Username,
		KeyPassword: p.Password,
	}
	if p.Port != 0 {
		m[KeyPort] = strconv.Itoa(int(p.Port))
	}
	return m
}

// merge fills every zero field of p from fallback.
func (p Params) merge(fallback Params) Params {
	if p.Driver == "" {
		p.Driver = fallback.Driver
	}
	if p.Host == "" {
		p.Host = fallback.Host
	}
	if p.Port == 0 {
		p.Port = fallback.Port
	}
	if p.Schema == "" {
		p.Schema = fallback.Schema
	}
	if p.Username == "" {
		p.Username = fallback.Username
	}
	if p.Password == "" {
		p.Password = fallback.Password
	}
	return p
}

// ParsePort parses a port number in 1..65535. An empty string is an absent
// port and yields 0.
func ParsePort(s string) (uint16, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrConfig, KeyPort, s)
	}
	return uint16(n), nil
}
