// ABOUTME: Implements a scrollable fleet event log using the bubbles viewport component.
// ABOUTME: Displays status transitions and weather alerts with color-coded formatting.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LogEntry is one line of the fleet event log.
type LogEntry struct {
	Time time.Time
	Text string
	Warn bool
}

// EventLogModel is a scrollable list of fleet events.
type EventLogModel struct {
	entries  []LogEntry
	max      int
	viewport viewport.Model
	focused  bool
	width    int
	height   int
}

// NewEventLogModel creates a new event log with a maximum number of entries.
// If maxEntries is <= 0, it defaults to 200.
func NewEventLogModel(maxEntries int) EventLogModel {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	vp := viewport.New(80, 10)
	return EventLogModel{
		entries:  make([]LogEntry, 0, maxEntries),
		max:      maxEntries,
		viewport: vp,
	}
}

// Append adds an entry, evicting the oldest when at capacity.
func (m *EventLogModel) Append(entry LogEntry) {
	if len(m.entries) >= m.max {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, entry)
	m.syncViewport()
}

// Len returns the number of entries in the log.
func (m EventLogModel) Len() int {
	return len(m.entries)
}

// SetFocused sets whether this panel accepts keyboard input.
func (m *EventLogModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m EventLogModel) IsFocused() bool {
	return m.focused
}

// SetSize sets the available dimensions and refits the viewport.
func (m *EventLogModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	// Room for the border and title line.
	innerWidth := w - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	innerHeight := h - 3
	if innerHeight < 1 {
		innerHeight = 1
	}
	m.viewport.Width = innerWidth
	m.viewport.Height = innerHeight
	m.syncViewport()
}

// Update routes key messages to the viewport when focused.
func (m EventLogModel) Update(msg tea.Msg) (EventLogModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *EventLogModel) syncViewport() {
	var lines []string
	for _, e := range m.entries {
		ts := LogTimestampStyle.Render(e.Time.Format("15:04:05"))
		style := LogEventStyle
		if e.Warn {
			style = LogWarnStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s", ts, style.Render(e.Text)))
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// View renders the event log panel.
func (m EventLogModel) View() string {
	title := TitleStyle.Render("EVENTS")
	if m.focused {
		title += LogTimestampStyle.Render(" (scroll: up/down)")
	}

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(title + "\n" + m.viewport.View())
}
