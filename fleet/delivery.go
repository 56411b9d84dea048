// ABOUTME: Delivery and maintenance work-order records carried by drones and persisted in the store.
// ABOUTME: IDs are ULIDs so records sort chronologically in listings and in sqlite.
package fleet

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a ULID using crypto/rand entropy. All record IDs share
// this entropy source.
func NewULID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// Delivery is a payload run from an origin to a destination.
type Delivery struct {
	ID          ulid.ULID      `json:"id"`
	DroneID     string         `json:"drone_id"`
	Status      DeliveryStatus `json:"status"`
	Origin      Position       `json:"origin"`
	Destination Position       `json:"destination"`
	PayloadKg   float64        `json:"payload_weight"`
	Priority    string         `json:"priority"`
	Notes       string         `json:"notes,omitempty"`
	StartedAt   time.Time      `json:"start_time"`
	CompletedAt *time.Time     `json:"completion_time,omitempty"`
	EstimatedS  int            `json:"estimated_delivery_time,omitempty"`
}

// NewDelivery creates a pending delivery to the given destination.
func NewDelivery(origin, destination Position, payloadKg float64) *Delivery {
	return &Delivery{
		ID:          NewULID(),
		Status:      DeliveryPending,
		Origin:      origin,
		Destination: destination,
		PayloadKg:   payloadKg,
		Priority:    "normal",
		StartedAt:   time.Now().UTC(),
	}
}

// MaintenanceOrder is a scheduled or completed maintenance work order.
type MaintenanceOrder struct {
	ID           ulid.ULID       `json:"id"`
	DroneID      string          `json:"drone_id"`
	Type         MaintenanceType `json:"maintenance_type"`
	Description  string          `json:"description,omitempty"`
	ScheduledFor time.Time       `json:"scheduled_date"`
	Completed    bool            `json:"completed"`
	CompletedAt  *time.Time      `json:"completion_date,omitempty"`
	Notes        string          `json:"completion_notes,omitempty"`
	Technician   string          `json:"technician,omitempty"`
	Cost         float64         `json:"cost,omitempty"`
}

// NewMaintenanceOrder schedules maintenance for a drone.
func NewMaintenanceOrder(droneID string, typ MaintenanceType, description string, scheduledFor time.Time) *MaintenanceOrder {
	return &MaintenanceOrder{
		ID:           NewULID(),
		DroneID:      droneID,
		Type:         typ,
		Description:  description,
		ScheduledFor: scheduledFor,
	}
}
