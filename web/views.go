// ABOUTME: JSON view types for the fleet API.
// ABOUTME: Decouples wire format from the fleet domain types.
package web

import (
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/theme"
)

// droneView is the wire representation of a drone.
type droneView struct {
	ID               string             `json:"id"`
	Model            string             `json:"model"`
	Status           string             `json:"status"`
	StatusClass      string             `json:"status_class"`
	Position         fleet.Position     `json:"position"`
	AltitudeM        float64            `json:"altitude"`
	BatteryPct       float64            `json:"battery_level"`
	MaintenanceScore float64            `json:"maintenance_score"`
	ComponentHealth  map[string]float64 `json:"component_health"`
	FlightHours      float64            `json:"flight_hours"`
	EmergencyReason  string             `json:"emergency_reason,omitempty"`
	LastMaintenance  time.Time          `json:"last_maintenance"`
	LastUpdated      time.Time          `json:"last_updated"`
	Delivery         *fleet.Delivery    `json:"current_delivery,omitempty"`
}

func newDroneView(d *fleet.Drone) droneView {
	variant, _ := theme.VariantFor(string(d.Status))
	return droneView{
		ID:               d.ID,
		Model:            d.Spec.Model,
		Status:           string(d.Status),
		StatusClass:      variant.ClassName(),
		Position:         d.Position,
		AltitudeM:        d.AltitudeM,
		BatteryPct:       d.BatteryPct,
		MaintenanceScore: d.MaintenanceScore,
		ComponentHealth:  d.ComponentHealth,
		FlightHours:      d.FlightHours,
		EmergencyReason:  d.EmergencyReason,
		LastMaintenance:  d.LastMaintenance,
		LastUpdated:      d.LastUpdated,
		Delivery:         d.Delivery(),
	}
}

// weatherView is the wire representation of conditions at a point.
type weatherView struct {
	Position fleet.Conditions `json:"conditions"`
	Safe     bool             `json:"safe_for_flight"`
	Warnings []string         `json:"warnings,omitempty"`
}
