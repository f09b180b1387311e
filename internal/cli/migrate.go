package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/timedash/internal/adapters/turso"
	"github.com/emiliopalmerini/timedash/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  timedash migrate      # Run all pending migrations
  timedash migrate 0    # Roll back all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := turso.NewDB(cfg.Database.URL, cfg.Database.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migrate.EnsureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, _, err := migrate.CurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	logger.Info("current schema", "version", current)

	if len(args) == 0 {
		n, err := migrate.Up(ctx, db, logger)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", n)
		return nil
	}

	target, err := strconv.Atoi(args[0])
	if err != nil || target < 0 {
		return fmt.Errorf("invalid version %q", args[0])
	}
	if target < current {
		err = migrate.DownTo(ctx, db, logger, target)
	} else {
		_, err = migrate.UpTo(ctx, db, logger, target)
	}
	if err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}
