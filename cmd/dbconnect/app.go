package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eduardofuncao/dbconnect/internal/config"
	"github.com/eduardofuncao/dbconnect/internal/db"
	"github.com/eduardofuncao/dbconnect/internal/logger"
)

type App struct {
	cfgPath        string
	logLevel       string
	flags          config.Params
	initStatements []string

	file *config.File
	log  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &App{}

	root := &cobra.Command{
		Use:   "dbconnect",
		Short: "Run SQL against a mysql or sqlite database",
		Long: `dbconnect opens a single mysql or sqlite connection and runs SQL against it.

Connection parameters are resolved from command line flags first, then the
DB_DRIVER, DB_HOSTNAME, DB_PORT, DB_SCHEMA, DB_USERNAME and DB_PASSWORD
environment variables, then the configuration file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $HOME/.config/dbconnect/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.flags.Driver, "driver", "", "database driver: mysql or sqlite")
	pf.StringVar(&a.flags.Host, "host", "", "database host")
	pf.Uint16Var(&a.flags.Port, "port", 0, "database port")
	pf.StringVar(&a.flags.Schema, "schema", "", "database name, or file path for sqlite")
	pf.StringVar(&a.flags.Username, "username", "", "database user")
	pf.StringVar(&a.flags.Password, "password", "", "database password")
	pf.StringSliceVar(&a.initStatements, "init-statement", nil, "statement to run right after connecting, e.g. \"SET NAMES utf8\"")

	root.AddCommand(
		a.newDSNCmd(),
		a.newQueryCmd(),
		a.newExecCmd(),
		a.newDriversCmd(),
		a.newInitCmd(),
	)
	return root
}

func (a *App) load(cmd *cobra.Command, args []string) error {
	if a.cfgPath == "" {
		a.cfgPath = config.DefaultPath()
	}
	f, err := config.LoadFile(a.cfgPath)
	if err != nil {
		return err
	}
	a.file = f

	level := a.logLevel
	if level == "" {
		level = f.LogLevel
	}
	a.log = logger.New(level, cmd.ErrOrStderr())
	return nil
}

// params resolves flags > environment > config file.
func (a *App) params() (config.Params, error) {
	store, err := a.file.Store()
	if err != nil {
		return config.Params{}, err
	}
	return config.Resolve(a.flags, nil, store)
}

func (a *App) connect(ctx context.Context) (*db.Conn, error) {
	p, err := a.params()
	if err != nil {
		return nil, err
	}
	return db.New(ctx, p, db.Options{Logger: a.log, InitStatements: a.initStatements})
}
