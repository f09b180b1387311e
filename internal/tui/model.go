package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/timedash/internal/dashboard"
	"github.com/emiliopalmerini/timedash/internal/domain"
)

type loadedMsg struct {
	err error
}

var keyTimeframes = map[string]domain.Timeframe{
	"d": domain.Daily,
	"w": domain.Weekly,
	"m": domain.Monthly,
}

// Model is the terminal dashboard. Keys act as the timeframe selectors.
type Model struct {
	ctx       context.Context
	dashboard *dashboard.Renderer
	logger    *log.Logger
	styles    Styles
	loadErr   error
}

// New creates a model. Init starts the dataset load in the background.
func New(ctx context.Context, d *dashboard.Renderer, logger *log.Logger) *Model {
	return &Model{
		ctx:       ctx,
		dashboard: d,
		logger:    logger,
		styles:    DefaultStyles(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.dashboard.Load(m.ctx)}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.logger.Warn("dataset unavailable", "err", msg.err)
		}
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		if tf, ok := keyTimeframes[key]; ok {
			_ = m.dashboard.SelectTimeframe(m.ctx, tf.String())
		}
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	return RenderView(m.dashboard.Snapshot(), m.styles, m.loadErr) + "\n\n" + renderHelp(m.styles) + "\n"
}
