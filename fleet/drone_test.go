// ABOUTME: Tests for drone movement, the power model, emergency protocols, and ground handling.
// ABOUTME: Covers battery drain, component wear, telemetry recording, and status transitions.
package fleet_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aeriform/dronewatch/fleet"
)

func testDrone() *fleet.Drone {
	return fleet.NewDrone(fleet.Position{Lat: 37.77, Lon: -122.42}, fleet.DefaultSpecification())
}

func TestNewDroneDefaults(t *testing.T) {
	d := testDrone()

	if d.ID == "" {
		t.Error("drone has no ID")
	}
	if d.Status != fleet.StatusIdle {
		t.Errorf("status = %s, want idle", d.Status)
	}
	if d.BatteryPct != 100 {
		t.Errorf("battery = %.1f, want 100", d.BatteryPct)
	}
	for _, name := range fleet.ComponentNames {
		if d.ComponentHealth[name] != 100 {
			t.Errorf("component %s health = %.1f, want 100", name, d.ComponentHealth[name])
		}
	}
}

func TestMoveToDrainsBatteryAndRecordsTelemetry(t *testing.T) {
	d := testDrone()
	dest := fleet.Position{Lat: 37.78, Lon: -122.42} // ~1.1km north

	if err := d.MoveTo(dest, 120, nil); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if d.Position != dest {
		t.Errorf("position = %+v, want %+v", d.Position, dest)
	}
	if d.BatteryPct >= 100 {
		t.Errorf("battery = %.2f, want below 100 after a move", d.BatteryPct)
	}
	if d.MaintenanceScore >= 100 {
		t.Errorf("maintenance score = %.3f, want below 100 after wear", d.MaintenanceScore)
	}
	tel := d.Telemetry()
	if len(tel) != 1 {
		t.Fatalf("telemetry entries = %d, want 1", len(tel))
	}
	if tel[0].Position != dest {
		t.Errorf("telemetry position = %+v, want %+v", tel[0].Position, dest)
	}
}

func TestMoveToRejectsUnsafeAltitude(t *testing.T) {
	d := testDrone()

	for _, altitude := range []float64{10, 500} {
		err := d.MoveTo(fleet.Position{Lat: 37.78, Lon: -122.42}, altitude, nil)
		if !errors.Is(err, fleet.ErrUnsafeAltitude) {
			t.Errorf("MoveTo(altitude=%.0f) = %v, want ErrUnsafeAltitude", altitude, err)
		}
	}
	// Altitude refusals are not emergencies.
	if d.Status != fleet.StatusIdle {
		t.Errorf("status = %s, want idle after altitude refusal", d.Status)
	}
}

func TestMoveToUnsafeWeatherTripsEmergency(t *testing.T) {
	d := testDrone()
	gale := &fleet.Conditions{WindSpeedMps: 25, VisibilityKm: 10}

	err := d.MoveTo(fleet.Position{Lat: 37.78, Lon: -122.42}, 120, gale)
	if !errors.Is(err, fleet.ErrUnsafeWeather) {
		t.Fatalf("MoveTo = %v, want ErrUnsafeWeather", err)
	}
	if d.Status != fleet.StatusEmergency {
		t.Errorf("status = %s, want emergency", d.Status)
	}
	if d.EmergencyReason == "" {
		t.Error("emergency reason not set")
	}
}

func TestMoveToRefusesDipBelowReserve(t *testing.T) {
	d := testDrone()
	d.BatteryPct = 21 // reserve is 20

	// ~11km is far more than 1% of battery at the default rate.
	err := d.MoveTo(fleet.Position{Lat: 37.87, Lon: -122.42}, 120, nil)
	if !errors.Is(err, fleet.ErrInsufficientBattery) {
		t.Fatalf("MoveTo = %v, want ErrInsufficientBattery", err)
	}
	if d.Status != fleet.StatusEmergency {
		t.Errorf("status = %s, want emergency", d.Status)
	}
}

func TestHeadwindAndPayloadIncreaseDraw(t *testing.T) {
	dest := fleet.Position{Lat: 37.78, Lon: -122.42}

	calm := testDrone()
	if err := calm.MoveTo(dest, 120, nil); err != nil {
		t.Fatalf("calm MoveTo: %v", err)
	}

	windy := testDrone()
	breeze := &fleet.Conditions{WindSpeedMps: 12, VisibilityKm: 10}
	if err := windy.MoveTo(dest, 120, breeze); err != nil {
		t.Fatalf("windy MoveTo: %v", err)
	}

	if windy.BatteryPct >= calm.BatteryPct {
		t.Errorf("headwind draw %.3f not greater than calm draw %.3f",
			100-windy.BatteryPct, 100-calm.BatteryPct)
	}
}

func TestStartDelivery(t *testing.T) {
	d := testDrone()
	delivery := fleet.NewDelivery(d.Position, fleet.Position{Lat: 37.79, Lon: -122.41}, 1.5)

	if err := d.StartDelivery(delivery); err != nil {
		t.Fatalf("StartDelivery: %v", err)
	}
	if d.Status != fleet.StatusInTransit {
		t.Errorf("status = %s, want in_transit", d.Status)
	}
	if delivery.Status != fleet.DeliveryInProgress {
		t.Errorf("delivery status = %s, want in_progress", delivery.Status)
	}
	if delivery.DroneID != d.ID {
		t.Errorf("delivery drone = %q, want %q", delivery.DroneID, d.ID)
	}

	// A busy drone refuses a second delivery.
	if err := d.StartDelivery(fleet.NewDelivery(d.Position, d.Position, 1)); err == nil {
		t.Error("expected error starting delivery on busy drone")
	}
}

func TestStartDeliveryRejectsOverweightPayload(t *testing.T) {
	d := testDrone()
	delivery := fleet.NewDelivery(d.Position, fleet.Position{Lat: 37.79, Lon: -122.41}, 10)
	if err := d.StartDelivery(delivery); err == nil {
		t.Error("expected error for payload above airframe limit")
	}
}

func TestCompleteDeliveryTurnsHome(t *testing.T) {
	d := testDrone()
	delivery := fleet.NewDelivery(d.Position, fleet.Position{Lat: 37.79, Lon: -122.41}, 1)
	if err := d.StartDelivery(delivery); err != nil {
		t.Fatalf("StartDelivery: %v", err)
	}

	now := time.Now().UTC()
	d.CompleteDelivery(now)

	if d.Status != fleet.StatusReturning {
		t.Errorf("status = %s, want returning", d.Status)
	}
	if delivery.Status != fleet.DeliveryCompleted {
		t.Errorf("delivery status = %s, want completed", delivery.Status)
	}
	if delivery.CompletedAt == nil || !delivery.CompletedAt.Equal(now) {
		t.Errorf("completion time = %v, want %v", delivery.CompletedAt, now)
	}
	if d.Delivery() != nil {
		t.Error("drone still holds a delivery after completion")
	}
}

func TestChargeToFullReturnsToIdle(t *testing.T) {
	d := testDrone()
	d.BatteryPct = 40
	d.Status = fleet.StatusCharging

	d.Charge(5) // 20 minute full charge: 5 minutes adds 25%
	if d.Status != fleet.StatusCharging {
		t.Errorf("status = %s, want still charging at %.0f%%", d.Status, d.BatteryPct)
	}

	d.Charge(20)
	if d.BatteryPct != 100 {
		t.Errorf("battery = %.1f, want capped at 100", d.BatteryPct)
	}
	if d.Status != fleet.StatusIdle {
		t.Errorf("status = %s, want idle after full charge", d.Status)
	}
}

func TestArriveAtBaseRouting(t *testing.T) {
	base := fleet.Position{Lat: 37.77, Lon: -122.42}

	tests := []struct {
		name    string
		battery float64
		health  float64
		want    fleet.Status
	}{
		{"drained goes to charging", 60, 100, fleet.StatusCharging},
		{"worn goes to maintenance", 100, 50, fleet.StatusMaintenance},
		{"healthy goes idle", 100, 100, fleet.StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDrone()
			d.BatteryPct = tt.battery
			d.MaintenanceScore = tt.health
			d.Status = fleet.StatusReturning
			d.ArriveAtBase(base)
			if d.Status != tt.want {
				t.Errorf("status = %s, want %s", d.Status, tt.want)
			}
			if d.Position != base {
				t.Errorf("position = %+v, want base", d.Position)
			}
		})
	}
}

func TestCompleteMaintenanceRestoresHealth(t *testing.T) {
	d := testDrone()
	d.Status = fleet.StatusMaintenance
	for _, name := range fleet.ComponentNames {
		d.ComponentHealth[name] = 40
	}
	d.MaintenanceScore = 40

	d.CompleteMaintenance(time.Now().UTC())

	if d.MaintenanceScore != 100 {
		t.Errorf("maintenance score = %.1f, want 100", d.MaintenanceScore)
	}
	if d.Status != fleet.StatusIdle {
		t.Errorf("status = %s, want idle", d.Status)
	}
}

func TestHaversineDistance(t *testing.T) {
	sf := fleet.Position{Lat: 37.7749, Lon: -122.4194}
	oak := fleet.Position{Lat: 37.8044, Lon: -122.2712}

	got := sf.DistanceKm(oak)
	if got < 12 || got > 14 {
		t.Errorf("SF-Oakland distance = %.2fkm, want ~13km", got)
	}
	if d := sf.DistanceKm(sf); d != 0 {
		t.Errorf("zero distance = %f, want 0", d)
	}
}
