// ABOUTME: Operational status enums for drones, deliveries, and maintenance work.
// ABOUTME: String-backed so values round-trip through JSON and the sqlite store unchanged.
package fleet

import "fmt"

// Status is a drone's operational state.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusInTransit   Status = "in_transit"
	StatusDelivering  Status = "delivering"
	StatusReturning   Status = "returning"
	StatusCharging    Status = "charging"
	StatusMaintenance Status = "maintenance"
	StatusEmergency   Status = "emergency"
)

// Statuses returns all drone statuses in declaration order.
func Statuses() []Status {
	return []Status{
		StatusIdle, StatusInTransit, StatusDelivering, StatusReturning,
		StatusCharging, StatusMaintenance, StatusEmergency,
	}
}

// Valid reports whether s is one of the defined drone statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusInTransit, StatusDelivering, StatusReturning,
		StatusCharging, StatusMaintenance, StatusEmergency:
		return true
	}
	return false
}

// ParseStatus converts a wire string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown drone status %q", s)
	}
	return st, nil
}

// Active reports whether the drone is doing useful work (not parked for
// charging or maintenance and not in an emergency).
func (s Status) Active() bool {
	switch s {
	case StatusCharging, StatusMaintenance, StatusEmergency:
		return false
	}
	return true
}

// DeliveryStatus is the lifecycle state of a delivery.
type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "pending"
	DeliveryInProgress DeliveryStatus = "in_progress"
	DeliveryCompleted  DeliveryStatus = "completed"
	DeliveryCancelled  DeliveryStatus = "cancelled"
)

// Valid reports whether d is one of the defined delivery statuses.
func (d DeliveryStatus) Valid() bool {
	switch d {
	case DeliveryPending, DeliveryInProgress, DeliveryCompleted, DeliveryCancelled:
		return true
	}
	return false
}

// MaintenanceType classifies maintenance work orders.
type MaintenanceType string

const (
	MaintenanceRoutine    MaintenanceType = "routine"
	MaintenanceRepair     MaintenanceType = "repair"
	MaintenanceEmergency  MaintenanceType = "emergency"
	MaintenanceInspection MaintenanceType = "inspection"
)

// Valid reports whether m is one of the defined maintenance types.
func (m MaintenanceType) Valid() bool {
	switch m {
	case MaintenanceRoutine, MaintenanceRepair, MaintenanceEmergency, MaintenanceInspection:
		return true
	}
	return false
}
