package tui

import "github.com/charmbracelet/lipgloss"

// Palette for the activity cards, one accent per card identifier.
var (
	Purple   = lipgloss.Color("#5747EA")
	Navy     = lipgloss.Color("#1C204B")
	White    = lipgloss.Color("#FFFFFF")
	PaleBlue = lipgloss.Color("#BBC0FF")
	DimGray  = lipgloss.Color("#6B7280")

	cardAccents = map[string]lipgloss.Color{
		"work":      lipgloss.Color("#FF8B64"),
		"play":      lipgloss.Color("#55C2E6"),
		"study":     lipgloss.Color("#FF5E7D"),
		"exercise":  lipgloss.Color("#4BCF82"),
		"social":    lipgloss.Color("#7335D2"),
		"self-care": lipgloss.Color("#F1C75B"),
	}
)

// Styles holds the styles shared by the terminal views.
type Styles struct {
	Title          lipgloss.Style
	Muted          lipgloss.Style
	Selector       lipgloss.Style
	ActiveSelector lipgloss.Style
	Card           lipgloss.Style
	CardTitle      lipgloss.Style
	Current        lipgloss.Style
	Previous       lipgloss.Style
	HelpKey        lipgloss.Style
}

// DefaultStyles returns the dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Purple).
			Padding(0, 1).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(DimGray),
		Selector: lipgloss.NewStyle().
			Foreground(PaleBlue).
			Padding(0, 1),
		ActiveSelector: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Underline(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(24),
		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),
		Current: lipgloss.NewStyle().
			Bold(true).
			Foreground(White),
		Previous: lipgloss.NewStyle().
			Foreground(PaleBlue),
		HelpKey: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),
	}
}

func (s Styles) cardFor(id string) lipgloss.Style {
	if c, ok := cardAccents[id]; ok {
		return s.Card.BorderForeground(c)
	}
	return s.Card.BorderForeground(Navy)
}
