// ABOUTME: Bubble Tea sub-model listing every drone with status icon, battery, and spinner.
// ABOUTME: Maintains a stable sort order and a cursor for keyboard selection.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aeriform/dronewatch/fleet"
)

// FleetPanelModel lists the fleet with one line per drone.
type FleetPanelModel struct {
	drones  []*fleet.Drone
	cursor  int
	spinner int
	width   int
	height  int
}

// NewFleetPanelModel creates an empty fleet panel.
func NewFleetPanelModel() FleetPanelModel {
	return FleetPanelModel{}
}

// SetDrones replaces the panel's contents, keeping a stable ID order so rows
// don't jump between refreshes.
func (m *FleetPanelModel) SetDrones(drones []*fleet.Drone) {
	sorted := make([]*fleet.Drone, len(drones))
	copy(sorted, drones)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	m.drones = sorted
	if m.cursor >= len(sorted) {
		m.cursor = len(sorted) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the drone under the cursor, or nil for an empty fleet.
func (m FleetPanelModel) Selected() *fleet.Drone {
	if len(m.drones) == 0 {
		return nil
	}
	return m.drones[m.cursor]
}

// Len returns the number of listed drones.
func (m FleetPanelModel) Len() int {
	return len(m.drones)
}

// MoveCursor moves the selection by delta, clamped to the list.
func (m *FleetPanelModel) MoveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.drones) && len(m.drones) > 0 {
		m.cursor = len(m.drones) - 1
	}
}

// AdvanceSpinner steps the in-flight animation one frame.
func (m *FleetPanelModel) AdvanceSpinner() {
	m.spinner = (m.spinner + 1) % len(SpinnerFrames)
}

// SetSize sets the available dimensions.
func (m *FleetPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// View renders the fleet list.
func (m FleetPanelModel) View() string {
	var lines []string
	lines = append(lines, TitleStyle.Render("FLEET"))

	if len(m.drones) == 0 {
		lines = append(lines, ValueStyle.Render("No drones registered"))
	}
	for i, d := range m.drones {
		icon := StatusIcon(d.Status)
		if d.Status == fleet.StatusInTransit || d.Status == fleet.StatusDelivering {
			icon = "[" + SpinnerFrames[m.spinner] + "]"
		}

		name := fmt.Sprintf("%s %s", d.Spec.Model, shortID(d.ID))
		if i == m.cursor {
			name = SelectedStyle.Render(name)
		}
		status := StyleForStatus(string(d.Status)).Render(string(d.Status))
		line := fmt.Sprintf("%s %s %s %3.0f%%", icon, name, status, d.BatteryPct)
		if d.Status == fleet.StatusEmergency {
			line += " " + AlertStyle.Render(d.EmergencyReason)
		}
		lines = append(lines, line)
	}

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// shortID abbreviates a drone UUID for single-line display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
