// ABOUTME: Bubble Tea message types and commands used in the monitor's message loop.
// ABOUTME: The tick command advances the simulation and delivers a fresh fleet snapshot.
package tui

import (
	"time"

	"github.com/aeriform/dronewatch/fleet"
	tea "github.com/charmbracelet/bubbletea"
)

// SnapshotMsg carries a fresh fleet snapshot into the message loop.
type SnapshotMsg struct {
	Snapshot fleet.Snapshot
	Time     time.Time
}

// TickMsg is sent periodically to advance spinners between snapshots.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that emits a TickMsg after the given interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// SnapshotCmd advances the simulation one step and captures a snapshot.
func SnapshotCmd(m *fleet.Manager, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		m.Weather().Update()
		m.Tick(t.UTC())
		return SnapshotMsg{Snapshot: m.Snapshot(), Time: t.UTC()}
	})
}

// SpinnerFrames contains the Braille-dot animation frames for indicating
// drones in flight.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusIcon returns a bracket-style marker for a drone status.
func StatusIcon(status fleet.Status) string {
	switch status {
	case fleet.StatusIdle:
		return "[ ]"
	case fleet.StatusInTransit, fleet.StatusDelivering:
		return "[>]"
	case fleet.StatusReturning:
		return "[<]"
	case fleet.StatusCharging:
		return "[+]"
	case fleet.StatusMaintenance:
		return "[#]"
	case fleet.StatusEmergency:
		return "[!]"
	default:
		return "[?]"
	}
}
