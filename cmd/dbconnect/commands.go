package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduardofuncao/dbconnect/internal/config"
	"github.com/eduardofuncao/dbconnect/internal/db"
	"github.com/eduardofuncao/dbconnect/internal/params"
	"github.com/eduardofuncao/dbconnect/internal/spinner"
	"github.com/eduardofuncao/dbconnect/internal/styles"
	"github.com/eduardofuncao/dbconnect/internal/table"
)

func (a *App) newDSNCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dsn",
		Short: "Print the data source name built from the resolved parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.params()
			if err != nil {
				return err
			}
			dsn, err := config.BuildDSN(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dsn)
			return nil
		},
	}
}

func (a *App) newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a statement that returns rows and print them as a table",
		Long: `Run a statement that returns rows. Extra arguments are bound to the
statement: name=value binds :name placeholders, anything else binds ?
placeholders in order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			start := time.Now()
			stop := spinner.Start(cmd.ErrOrStderr())
			defer stop()
			var cur *db.Cursor
			if len(args) == 1 {
				cur, err = conn.Query(ctx, args[0])
			} else {
				if _, err = conn.Prepare(ctx, args[0], false); err != nil {
					return err
				}
				cur, err = conn.Execute(ctx, nil, params.ParseArgs(args[1:])...)
			}
			if err != nil {
				return err
			}

			rows, err := cur.Rows()
			stop()
			if err != nil {
				return err
			}
			return table.Render(cmd.OutOrStdout(), cur.Columns(), rows, time.Since(start))
		},
	}
}

func (a *App) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run a statement that returns no rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			stop := spinner.Start(cmd.ErrOrStderr())
			n, err := conn.Exec(ctx, args[0], params.ParseArgs(args[1:])...)
			stop()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Success.Render("✓"), fmt.Sprintf("%d rows affected", n))

			id, err := conn.LastInsertID()
			switch {
			case err == nil && id > 0:
				fmt.Fprintln(out, styles.Faint.Render(fmt.Sprintf("last insert id: %d", id)))
			case err != nil && !errors.Is(err, db.ErrNoResult):
				a.log.Debug("last insert id unavailable", "error", err)
			}
			return nil
		},
	}
}

func (a *App) newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the database drivers compiled into this binary",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range db.AvailableDrivers() {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
		},
	}
}

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Check the connection flags and save them to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Resolve(a.flags, nil, nil)
			if err != nil {
				return err
			}
			conn, err := db.New(cmd.Context(), p, db.Options{Logger: a.log, InitStatements: a.initStatements})
			if err != nil {
				return err
			}
			conn.Close()

			a.file.Database = p
			if a.logLevel != "" {
				a.file.LogLevel = a.logLevel
			}
			if err := a.file.Save(a.cfgPath); err != nil {
				return fmt.Errorf("could not save configuration file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render("✓ Connection saved:"), styles.Title.Render(p.Driver+"/"+p.Schema))
			return nil
		},
	}
}
