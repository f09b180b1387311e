package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/timedash/internal/domain"
	"github.com/emiliopalmerini/timedash/internal/tui"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the dashboard once and exit",
	Long: `Load the dataset, render one timeframe and print it.

Examples:
  timedash render                      # Weekly view
  timedash render --timeframe monthly  # Monthly view`,
	RunE: runRender,
}

var renderTimeframe string

func init() {
	renderCmd.Flags().StringVarP(&renderTimeframe, "timeframe", "t", domain.DefaultTimeframe.String(), "daily, weekly or monthly")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := NewAppContext(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(context.Background()) }()

	if err := app.Dashboard.SelectTimeframe(ctx, renderTimeframe); err != nil {
		logger.Warn("timeframe ignored", "timeframe", renderTimeframe)
	}
	loadErr := app.Dashboard.Load(ctx)
	if loadErr != nil {
		logger.Warn("dataset unavailable, showing placeholders", "source", app.Source.Name(), "err", loadErr)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderView(app.Dashboard.Snapshot(), tui.DefaultStyles(), loadErr))
	return err
}
