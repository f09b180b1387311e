package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/timedash/internal/dashboard"
)

const cardsPerRow = 3

// KeyBinding is one entry of the help bar.
type KeyBinding struct {
	Key  string
	Desc string
}

var bindings = []KeyBinding{
	{"d", "daily"},
	{"w", "weekly"},
	{"m", "monthly"},
	{"q", "quit"},
}

// RenderView draws a snapshot: selectors on top, cards in a grid below.
// A non-nil loadErr replaces the waiting hint with an unavailable notice.
func RenderView(view dashboard.Snapshot, styles Styles, loadErr error) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Time tracking"))
	b.WriteString("\n")
	b.WriteString(renderSelectors(view.Selectors, styles))
	b.WriteString("\n\n")
	b.WriteString(renderCards(view.Cards, styles))
	switch {
	case loadErr != nil:
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("data unavailable: " + loadErr.Error()))
	case !view.Loaded:
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("waiting for data..."))
	}
	return b.String()
}

func renderSelectors(selectors []dashboard.Selector, styles Styles) string {
	parts := make([]string, 0, len(selectors))
	for _, s := range selectors {
		style := styles.Selector
		if s.Active {
			style = styles.ActiveSelector
		}
		parts = append(parts, style.Render(s.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderCards(cards []dashboard.Card, styles Styles) string {
	var rows []string
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		row := make([]string, 0, cardsPerRow)
		for _, c := range cards[start:end] {
			body := lipgloss.JoinVertical(lipgloss.Left,
				styles.CardTitle.Render(c.Title),
				styles.Current.Render(c.Current),
				styles.Previous.Render(c.Previous),
			)
			row = append(row, styles.cardFor(c.ID).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderHelp(styles Styles) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, styles.HelpKey.Render(kb.Key)+styles.Muted.Render(":"+kb.Desc))
	}
	return strings.Join(parts, " ")
}
