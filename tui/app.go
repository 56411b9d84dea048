// ABOUTME: Top-level Bubble Tea AppModel that orchestrates the fleet monitor's sub-panels.
// ABOUTME: Implements tea.Model (Init, Update, View) and routes snapshots to fleet list, detail, log, and status bar.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusFleet FocusTarget = iota
	FocusLog
)

// snapshotInterval is how often the monitor advances the simulation.
const snapshotInterval = time.Second

// spinnerInterval is how often in-flight spinners animate.
const spinnerInterval = 100 * time.Millisecond

// AppModel is the top-level Bubble Tea model that composes the monitor panels
// and routes messages between them.
type AppModel struct {
	fleetPanel FleetPanelModel
	detail     DetailPanelModel
	log        EventLogModel
	statusBar  StatusBarModel

	manager  *fleet.Manager
	statuses map[string]fleet.Status // last seen status per drone, for transition events

	focus  FocusTarget
	width  int
	height int
}

// NewAppModel creates an AppModel monitoring the given fleet manager.
func NewAppModel(manager *fleet.Manager) AppModel {
	bar := NewStatusBarModel()
	bar.Start()
	return AppModel{
		fleetPanel: NewFleetPanelModel(),
		detail:     NewDetailPanelModel(),
		log:        NewEventLogModel(200),
		statusBar:  bar,
		manager:    manager,
		statuses:   make(map[string]fleet.Status),
		focus:      FocusFleet,
	}
}

// Init implements tea.Model. Starts the snapshot and spinner tick loops.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		SnapshotCmd(m.manager, snapshotInterval),
		TickCmd(spinnerInterval),
	)
}

// Update implements tea.Model. Routes incoming messages to the appropriate
// sub-panel and returns the updated model with any follow-up commands.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SnapshotMsg:
		return m.handleSnapshot(msg)

	case TickMsg:
		m.fleetPanel.AdvanceSpinner()
		return m, TickCmd(spinnerInterval)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleSnapshot refreshes every panel from the snapshot and logs status
// transitions since the previous one.
func (m AppModel) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	snap := msg.Snapshot

	for _, d := range snap.Drones {
		prev, seen := m.statuses[d.ID]
		if seen && prev != d.Status {
			m.log.Append(LogEntry{
				Time: msg.Time,
				Text: fmt.Sprintf("%s %s -> %s", shortID(d.ID), prev, d.Status),
				Warn: d.Status == fleet.StatusEmergency,
			})
		}
		m.statuses[d.ID] = d.Status
	}
	if !snap.WeatherSafe {
		m.log.Append(LogEntry{Time: msg.Time, Text: "weather below flight minimums at base", Warn: true})
	}

	m.fleetPanel.SetDrones(snap.Drones)
	m.detail.SetDrone(m.fleetPanel.Selected())
	m.statusBar.SetAnalytics(snap.Analytics, snap.WeatherSafe)

	return m, SnapshotCmd(m.manager, snapshotInterval)
}

// handleKeyMsg processes keyboard input.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.focus = m.nextFocus()
		m.log.SetFocused(m.focus == FocusLog)
		return m, nil
	case "up", "k":
		if m.focus == FocusFleet {
			m.fleetPanel.MoveCursor(-1)
			m.detail.SetDrone(m.fleetPanel.Selected())
			return m, nil
		}
	case "down", "j":
		if m.focus == FocusFleet {
			m.fleetPanel.MoveCursor(1)
			m.detail.SetDrone(m.fleetPanel.Selected())
			return m, nil
		}
	case "r":
		// Recall the selected drone to base.
		if d := m.fleetPanel.Selected(); d != nil {
			if _, err := m.manager.CommandReturn(d.ID); err == nil {
				m.log.Append(LogEntry{
					Time: time.Now().UTC(),
					Text: fmt.Sprintf("%s recalled to base", shortID(d.ID)),
				})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// nextFocus cycles the focus target between the fleet list and the log.
func (m AppModel) nextFocus() FocusTarget {
	if m.focus == FocusFleet {
		return FocusLog
	}
	return FocusFleet
}

// View implements tea.Model. Renders the full monitor layout.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Minimum terminal size guard to prevent layout overflow
	if m.width < 40 || m.height < 10 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x10.", m.width, m.height)
	}

	statusBarHeight := 1
	topHeight := (m.height - statusBarHeight) * 55 / 100
	if topHeight < 3 {
		topHeight = 3
	}
	bottomHeight := m.height - statusBarHeight - topHeight
	if bottomHeight < 3 {
		bottomHeight = 3
	}

	fleetWidth := m.width * 55 / 100
	if fleetWidth < 10 {
		fleetWidth = 10
	}
	detailWidth := m.width - fleetWidth
	if detailWidth < 10 {
		detailWidth = 10
	}

	m.fleetPanel.SetSize(fleetWidth, topHeight)
	m.detail.SetSize(detailWidth, topHeight)
	m.log.SetSize(m.width, bottomHeight)
	m.statusBar.SetWidth(m.width)

	topView := lipgloss.JoinHorizontal(lipgloss.Top, m.fleetPanel.View(), m.detail.View())

	var b strings.Builder
	b.WriteString(topView)
	b.WriteString("\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// Run starts the monitor in the alternate screen and blocks until exit.
func Run(manager *fleet.Manager) error {
	p := tea.NewProgram(NewAppModel(manager), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
