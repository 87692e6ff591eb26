package db

import (
	"database/sql/driver"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

const defaultMySQLPort = 3306

func mysqlConfig(d DSN, username, password string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = username
	cfg.Passwd = password
	cfg.DBName = d.Schema

	if d.Socket != "" {
		cfg.Net = "unix"
		cfg.Addr = d.Socket
	} else {
		port := int(d.Port)
		if port == 0 {
			port = defaultMySQLPort
		}
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(port))
	}

	if d.Charset != "" {
		cfg.Params = map[string]string{"charset": d.Charset}
	}
	return cfg
}

func mysqlConnector(d DSN, username, password string) (driver.Connector, error) {
	return mysql.NewConnector(mysqlConfig(d, username, password))
}
