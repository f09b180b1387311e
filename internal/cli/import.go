package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/timedash/internal/adapters/turso"
	"github.com/emiliopalmerini/timedash/internal/source"
)

var importCmd = &cobra.Command{
	Use:   "import <data.json>",
	Short: "Store a dataset in the Turso database",
	Long: `Read an activity JSON document and replace the dataset stored in the
database configured by TIMEDASH_DATABASE_URL. Run the dashboard with
TIMEDASH_SOURCE=turso to serve it.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cfg.Database.URL == "" {
		return fmt.Errorf("TIMEDASH_DATABASE_URL is required")
	}

	ds, err := source.NewFile(args[0]).Fetch(ctx)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := turso.NewActivityRepository(db).ReplaceAll(ctx, ds); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}

	logger.Info("dataset imported", "file", args[0], "records", len(ds))
	return nil
}
