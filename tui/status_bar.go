// ABOUTME: Implements a single-line status bar for the bottom of the TUI showing fleet analytics.
// ABOUTME: Displays drone counts, average battery, active deliveries, and weather safety.
package tui

import (
	"fmt"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays the fleet rollup in a single line.
type StatusBarModel struct {
	analytics   fleet.Analytics
	weatherSafe bool
	startTime   time.Time
	width       int
}

// NewStatusBarModel creates an empty status bar.
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{weatherSafe: true}
}

// Start records the monitor start time.
func (m *StatusBarModel) Start() {
	m.startTime = time.Now()
}

// SetAnalytics updates the fleet rollup.
func (m *StatusBarModel) SetAnalytics(a fleet.Analytics, weatherSafe bool) {
	m.analytics = a
	m.weatherSafe = weatherSafe
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// Elapsed returns the time since Start() was called, or zero if not started.
func (m StatusBarModel) Elapsed() time.Duration {
	if m.startTime.IsZero() {
		return 0
	}
	return time.Since(m.startTime)
}

// formatElapsed formats a duration as a human-readable string.
// Durations under a minute show as seconds (e.g. "12s").
// Durations of a minute or more show as minutes and seconds (e.g. "2m30s").
func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) - minutes*60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	weather := "weather ok"
	if !m.weatherSafe {
		weather = "WEATHER HOLD"
	}

	content := fmt.Sprintf("Fleet: %d drones | %d active | %d deliveries | battery %.0f%% | %s | up %s",
		m.analytics.TotalDrones, m.analytics.ActiveDrones, m.analytics.ActiveDeliveries,
		m.analytics.AverageBattery, weather, formatElapsed(m.Elapsed()))

	style := StatusBarStyle.Width(m.width)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
