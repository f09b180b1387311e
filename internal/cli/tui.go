package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/timedash/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the dashboard in the terminal",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := NewAppContext(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(context.Background()) }()

	program := tea.NewProgram(tui.New(ctx, app.Dashboard, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
