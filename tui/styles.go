// ABOUTME: Defines lipgloss style constants for the TUI layout panels, status colors, and log formatting.
// ABOUTME: Status colors are resolved from the dashboard theme tokens so both frontends match.
package tui

import (
	"github.com/aeriform/dronewatch/theme"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Selection marker in the fleet panel
	SelectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// Log event colors
	LogTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogEventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	LogWarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Detail panel labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// AlertStyle flags emergencies and grounded weather.
	AlertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// statusStyles maps each display variant to a lipgloss style using the hex
// value of its dashboard color token.
var statusStyles = buildStatusStyles()

func buildStatusStyles() map[theme.StatusVariant]lipgloss.Style {
	table := theme.Dashboard()
	styles := make(map[theme.StatusVariant]lipgloss.Style, len(theme.Variants()))
	for _, v := range theme.Variants() {
		hex, ok := table.ResolveToken(v.ColorToken())
		if !ok {
			styles[v] = ValueStyle
			continue
		}
		styles[v] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return styles
}

// StyleForStatus returns the lipgloss style for a wire status name. Statuses
// without their own variant (emergency) borrow the danger styling.
func StyleForStatus(status string) lipgloss.Style {
	v, _ := theme.VariantFor(status)
	if s, ok := statusStyles[v]; ok {
		return s
	}
	return ValueStyle
}
