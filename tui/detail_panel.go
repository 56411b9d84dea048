// ABOUTME: Bubble Tea sub-model showing the selected drone's full state.
// ABOUTME: Renders position, battery, component health, and the active delivery.
package tui

import (
	"fmt"
	"strings"

	"github.com/aeriform/dronewatch/fleet"
)

// DetailPanelModel displays detailed information about the selected drone.
type DetailPanelModel struct {
	drone  *fleet.Drone
	width  int
	height int
}

// NewDetailPanelModel creates a new DetailPanelModel with no selection.
func NewDetailPanelModel() DetailPanelModel {
	return DetailPanelModel{}
}

// SetDrone updates the panel with the selected drone, or nil to clear it.
func (m *DetailPanelModel) SetDrone(d *fleet.Drone) {
	m.drone = d
}

// SetSize sets the available dimensions.
func (m *DetailPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// View renders the detail panel as a string.
func (m DetailPanelModel) View() string {
	title := TitleStyle.Render("DRONE DETAIL")

	var content string
	if m.drone == nil {
		content = title + "\n\n" + ValueStyle.Render("No drone selected")
	} else {
		d := m.drone
		var lines []string
		lines = append(lines, title)
		lines = append(lines, row("Model:", d.Spec.Model))
		lines = append(lines, row("ID:", shortID(d.ID)))
		lines = append(lines, LabelStyle.Render("Status:")+StyleForStatus(string(d.Status)).Render(string(d.Status)))
		lines = append(lines, row("Position:", fmt.Sprintf("%.4f, %.4f", d.Position.Lat, d.Position.Lon)))
		lines = append(lines, row("Altitude:", fmt.Sprintf("%.0fm", d.AltitudeM)))
		lines = append(lines, row("Battery:", fmt.Sprintf("%.1f%%", d.BatteryPct)))
		lines = append(lines, row("Health:", fmt.Sprintf("%.1f", d.MaintenanceScore)))
		lines = append(lines, row("Hours:", fmt.Sprintf("%.1fh", d.FlightHours)))

		if del := d.Delivery(); del != nil {
			lines = append(lines, row("Delivery:", fmt.Sprintf("%s (%.1fkg)", shortID(del.ID.String()), del.PayloadKg)))
		}
		if d.EmergencyReason != "" {
			lines = append(lines, LabelStyle.Render("Alert:")+AlertStyle.Render(d.EmergencyReason))
		}
		content = strings.Join(lines, "\n")
	}

	style := BorderStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(content)
}

// row renders a label-value pair using the standard label and value styles.
func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
