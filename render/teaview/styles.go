package teaview

import "github.com/charmbracelet/lipgloss"

var (
	Foreground = lipgloss.Color("#f2f2f2")
	Settled    = lipgloss.Color("#8BC34A") // Lime green
	Muted      = lipgloss.Color("#5c6b82")
	Border     = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by Model
type Styles struct {
	Text     lipgloss.Style
	Complete lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the dark palette
func DefaultStyles() Styles {
	frame := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	return Styles{
		Text:     frame.Foreground(Foreground),
		Complete: frame.Foreground(Settled),
		Help:     lipgloss.NewStyle().Foreground(Muted),
	}
}
