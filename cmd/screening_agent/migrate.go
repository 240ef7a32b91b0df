package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/db"
)

var migrateCommand = &cobra.Command{
	Use:   "migrate",
	Short: "Create the evaluation tables in PostgreSQL",
	RunE:  runMigrateCmd,
}

var migratePrint bool

func init() {
	migrateCommand.Flags().BoolVar(&migratePrint, "print", false, "Print the schema instead of applying it")
	rootCmd.AddCommand(migrateCommand)
}

func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	if migratePrint {
		_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
		return err
	}

	cfg, logger, err := newLoggedConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.DatabaseURL == "" {
		return errors.New("database_url is not set: use DATABASE_URL or the config file")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	logger.Info("schema is up to date")
	return nil
}
