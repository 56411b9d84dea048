// ABOUTME: The Drone model: position, battery, component health, and flight state transitions.
// ABOUTME: Movement enforces altitude, weather, and reserve-power limits; violations trip emergency protocols.
package fleet

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Movement refusal errors. Weather and battery refusals also flip the drone
// into emergency status as a side effect.
var (
	ErrUnsafeAltitude      = errors.New("altitude outside airframe envelope")
	ErrUnsafeWeather       = errors.New("weather conditions unsafe for flight")
	ErrInsufficientBattery = errors.New("insufficient battery above emergency reserve")
)

// ComponentNames lists the monitored airframe components in a fixed order.
var ComponentNames = []string{"motors", "battery", "propellers", "controllers", "sensors"}

// telemetryCap bounds the in-memory telemetry ring per drone.
const telemetryCap = 1000

// maintenanceThreshold is the maintenance score below which a drone returns
// to the shop instead of going back on station.
const maintenanceThreshold = 70.0

// Telemetry is one recorded observation of a drone's state.
type Telemetry struct {
	Timestamp        time.Time `json:"timestamp"`
	Position         Position  `json:"position"`
	AltitudeM        float64   `json:"altitude"`
	BatteryPct       float64   `json:"battery_level"`
	Status           Status    `json:"status"`
	MaintenanceScore float64   `json:"maintenance_score"`
}

// Drone models a single airframe. Drones are not safe for concurrent use;
// the Manager serializes access.
type Drone struct {
	ID               string
	Spec             Specification
	Position         Position
	AltitudeM        float64
	HeadingDeg       float64
	SpeedMps         float64
	BatteryPct       float64
	MaintenanceScore float64
	ComponentHealth  map[string]float64
	Status           Status
	EmergencyReason  string
	FlightHours      float64
	LastMaintenance  time.Time
	LastUpdated      time.Time

	delivery  *Delivery
	telemetry []Telemetry
}

// NewDrone creates an idle, fully charged drone at the given position.
func NewDrone(pos Position, spec Specification) *Drone {
	now := time.Now().UTC()
	health := make(map[string]float64, len(ComponentNames))
	for _, name := range ComponentNames {
		health[name] = 100.0
	}
	return &Drone{
		ID:               uuid.NewString(),
		Spec:             spec,
		Position:         pos,
		AltitudeM:        100.0,
		BatteryPct:       100.0,
		MaintenanceScore: 100.0,
		ComponentHealth:  health,
		Status:           StatusIdle,
		LastMaintenance:  now,
		LastUpdated:      now,
	}
}

// Delivery returns the drone's current delivery, or nil.
func (d *Drone) Delivery() *Delivery {
	return d.delivery
}

// clone deep-copies the drone so the copy can be read outside the manager's
// lock while the original keeps mutating under it.
func (d *Drone) clone() *Drone {
	c := *d
	c.ComponentHealth = make(map[string]float64, len(d.ComponentHealth))
	for name, health := range d.ComponentHealth {
		c.ComponentHealth[name] = health
	}
	if d.delivery != nil {
		dl := *d.delivery
		c.delivery = &dl
	}
	c.telemetry = make([]Telemetry, len(d.telemetry))
	copy(c.telemetry, d.telemetry)
	return &c
}

// Telemetry returns a copy of the recorded telemetry, oldest first.
func (d *Drone) Telemetry() []Telemetry {
	out := make([]Telemetry, len(d.telemetry))
	copy(out, d.telemetry)
	return out
}

// MoveTo advances the drone to a new position and altitude, draining the
// battery by the power model. Unsafe weather or a battery that would dip
// below the emergency reserve aborts the move and trips the matching
// emergency protocol; an out-of-envelope altitude aborts without one.
func (d *Drone) MoveTo(pos Position, altitude float64, weather *Conditions) error {
	if !d.Spec.SafeAltitude(altitude) {
		return fmt.Errorf("%w: %.0fm", ErrUnsafeAltitude, altitude)
	}
	if weather != nil && !d.Spec.SafeWeather(*weather) {
		d.declareEmergency(fmt.Sprintf("unsafe weather: wind=%.1fm/s precip=%.1fmm/h",
			weather.WindSpeedMps, weather.PrecipitationMmH))
		return ErrUnsafeWeather
	}

	distance := d.Position.DistanceKm(pos)
	needed := d.powerForLeg(distance, altitude, weather)
	if d.BatteryPct-needed < d.Spec.EmergencyReservePct {
		d.declareEmergency(fmt.Sprintf("low battery: %.1f%%", d.BatteryPct))
		return ErrInsufficientBattery
	}

	now := time.Now().UTC()
	flightTime := now.Sub(d.LastUpdated).Hours()

	d.Position = pos
	d.AltitudeM = altitude
	d.BatteryPct -= needed
	d.LastUpdated = now
	d.FlightHours += flightTime

	d.wear(distance, flightTime)
	d.recordTelemetry(now)
	return nil
}

// powerForLeg is the battery percentage consumed by one leg: base draw per
// kilometer scaled up by altitude, headwind, and payload factors.
func (d *Drone) powerForLeg(distanceKm, altitude float64, weather *Conditions) float64 {
	power := distanceKm * d.Spec.PowerPerKm
	power *= 1 + (altitude/1000)*0.1
	if weather != nil {
		power *= 1 + (weather.WindSpeedMps/d.Spec.MaxWindSpeedMps)*0.2
	}
	if d.delivery != nil {
		power *= 1 + (d.delivery.PayloadKg/d.Spec.MaxPayloadKg)*0.3
	}
	return power
}

// wear degrades component health with distance and flight time and refreshes
// the aggregate maintenance score.
func (d *Drone) wear(distanceKm, flightHours float64) {
	factor := distanceKm*0.01 + flightHours*0.1
	var sum float64
	for _, name := range ComponentNames {
		h := d.ComponentHealth[name] - factor
		if h < 0 {
			h = 0
		}
		d.ComponentHealth[name] = h
		sum += h
	}
	d.MaintenanceScore = sum / float64(len(ComponentNames))
}

func (d *Drone) recordTelemetry(now time.Time) {
	d.telemetry = append(d.telemetry, Telemetry{
		Timestamp:        now,
		Position:         d.Position,
		AltitudeM:        d.AltitudeM,
		BatteryPct:       d.BatteryPct,
		Status:           d.Status,
		MaintenanceScore: d.MaintenanceScore,
	})
	if len(d.telemetry) > telemetryCap {
		d.telemetry = d.telemetry[len(d.telemetry)-telemetryCap:]
	}
}

func (d *Drone) declareEmergency(reason string) {
	d.Status = StatusEmergency
	d.EmergencyReason = reason
}

// StartDelivery attaches a delivery and puts the drone in transit. The drone
// must be idle and the payload within the airframe limit.
func (d *Drone) StartDelivery(delivery *Delivery) error {
	if d.Status != StatusIdle {
		return fmt.Errorf("drone %s is %s, not idle", d.ID, d.Status)
	}
	if delivery.PayloadKg > d.Spec.MaxPayloadKg {
		return fmt.Errorf("payload %.1fkg exceeds limit %.1fkg", delivery.PayloadKg, d.Spec.MaxPayloadKg)
	}
	delivery.DroneID = d.ID
	delivery.Status = DeliveryInProgress
	d.delivery = delivery
	d.Status = StatusInTransit
	return nil
}

// CompleteDelivery marks the current delivery done and turns the drone home.
func (d *Drone) CompleteDelivery(now time.Time) {
	if d.delivery != nil {
		d.delivery.Status = DeliveryCompleted
		d.delivery.CompletedAt = &now
		d.delivery = nil
	}
	d.Status = StatusReturning
}

// CancelDelivery drops the current delivery, if any, and turns the drone home.
func (d *Drone) CancelDelivery() {
	if d.delivery != nil {
		d.delivery.Status = DeliveryCancelled
		d.delivery = nil
	}
	d.Status = StatusReturning
}

// Charge adds charge for the given number of minutes on the pad. A full
// battery returns the drone to idle; low maintenance routes it to the shop.
func (d *Drone) Charge(minutes float64) {
	if d.Spec.ChargingMinutes > 0 {
		d.BatteryPct += minutes * (100.0 / d.Spec.ChargingMinutes)
	}
	if d.BatteryPct >= 100 {
		d.BatteryPct = 100
		if d.MaintenanceScore < maintenanceThreshold {
			d.Status = StatusMaintenance
		} else {
			d.Status = StatusIdle
		}
	}
}

// ArriveAtBase parks the drone: charging if the battery is down, maintenance
// if the airframe needs it, idle otherwise.
func (d *Drone) ArriveAtBase(base Position) {
	d.Position = base
	d.EmergencyReason = ""
	switch {
	case d.BatteryPct < 100:
		d.Status = StatusCharging
	case d.MaintenanceScore < maintenanceThreshold:
		d.Status = StatusMaintenance
	default:
		d.Status = StatusIdle
	}
}

// CompleteMaintenance restores component health and returns the drone to idle.
func (d *Drone) CompleteMaintenance(now time.Time) {
	for _, name := range ComponentNames {
		d.ComponentHealth[name] = 100.0
	}
	d.MaintenanceScore = 100.0
	d.LastMaintenance = now
	if d.Status == StatusMaintenance {
		d.Status = StatusIdle
	}
}
