package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/storage/database"
)

var (
	// mockable
	openDBFunc  = func(ctx context.Context, conf *core.Config) (*sqlx.DB, error) { return database.Open(ctx, conf) }
	migrateFunc = database.Migrate
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errHelp
			}
			db, err := openDBFunc(cmd.Context(), cli.conf)
			if err != nil {
				return errors.Wrap(err, "opening database")
			}
			if db != nil {
				defer db.Close()
			}
			return migrateFunc(db, args[0], args[1:]...)
		},
	}
}
