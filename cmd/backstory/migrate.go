package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/googleinterns/backstory/internal/config"
	"github.com/googleinterns/backstory/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the backstory database schema",
	Long: `Apply any pending schema migrations to the backstory database. Safe
to run repeatedly; already-applied migrations are skipped.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	count, err := store.CountBackstories(ctx)
	if err != nil {
		return fmt.Errorf("count backstories: %w", err)
	}

	slog.Info("schema up to date", "path", cfg.DatabasePath, "backstories", count)
	return nil
}
