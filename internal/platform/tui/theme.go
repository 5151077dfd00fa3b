package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the level menu and run history screens.
// The board itself is colored through colorStyles.
type Theme struct {
	// Menu styles
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	ItemNormal     lipgloss.Style
	ItemActive     lipgloss.Style
	ItemDone       lipgloss.Style // level completed at least once
	Description    lipgloss.Style
	Help           lipgloss.Style
	Border         lipgloss.Style
	Empty          lipgloss.Style
	OutcomeWon     lipgloss.Style
	OutcomeLost    lipgloss.Style
	OutcomeDropped lipgloss.Style

	// Table styles
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:          lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Description:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Help:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		OutcomeWon:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		OutcomeLost:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		OutcomeDropped: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
	}
}

var theme = DefaultTheme()
