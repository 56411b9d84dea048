// ABOUTME: Tests for the fleet list panel: ordering, cursor movement, and rendering.
// ABOUTME: Exercises the model directly without running a Bubble Tea program.
package tui

import (
	"strings"
	"testing"

	"github.com/aeriform/dronewatch/fleet"
)

func testDrones(n int) []*fleet.Drone {
	base := fleet.Position{Lat: 37.77, Lon: -122.42}
	out := make([]*fleet.Drone, n)
	for i := range out {
		out[i] = fleet.NewDrone(base, fleet.DefaultSpecification())
	}
	return out
}

func TestSetDronesSortsByID(t *testing.T) {
	m := NewFleetPanelModel()
	m.SetDrones(testDrones(3))

	for i := 1; i < m.Len(); i++ {
		if m.drones[i-1].ID > m.drones[i].ID {
			t.Fatalf("drones not sorted at index %d", i)
		}
	}
}

func TestCursorClamping(t *testing.T) {
	m := NewFleetPanelModel()
	m.SetDrones(testDrones(2))

	m.MoveCursor(-5)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving past top, want 0", m.cursor)
	}
	m.MoveCursor(10)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after moving past bottom, want 1", m.cursor)
	}

	// Shrinking the fleet pulls the cursor back in range.
	m.SetDrones(testDrones(1))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.cursor)
	}
	if m.Selected() == nil {
		t.Error("Selected returned nil for non-empty fleet")
	}
}

func TestSelectedEmptyFleet(t *testing.T) {
	m := NewFleetPanelModel()
	if m.Selected() != nil {
		t.Error("Selected should be nil for empty fleet")
	}
	m.MoveCursor(1) // must not panic
}

func TestFleetPanelView(t *testing.T) {
	m := NewFleetPanelModel()
	drones := testDrones(2)
	drones[0].Status = fleet.StatusEmergency
	drones[0].EmergencyReason = "low battery: 12.0%"
	m.SetDrones(drones)
	m.SetSize(80, 10)

	view := m.View()
	if !strings.Contains(view, "FLEET") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "AV-X1") {
		t.Error("view missing drone model")
	}
	if !strings.Contains(view, "low battery") {
		t.Error("view missing emergency reason")
	}
}

func TestFleetPanelViewEmpty(t *testing.T) {
	m := NewFleetPanelModel()
	if !strings.Contains(m.View(), "No drones registered") {
		t.Error("empty view missing placeholder")
	}
}

func TestStatusIcons(t *testing.T) {
	for _, st := range fleet.Statuses() {
		if StatusIcon(st) == "[?]" {
			t.Errorf("status %s has no icon", st)
		}
	}
	if StatusIcon(fleet.Status("bogus")) != "[?]" {
		t.Error("unknown status should render [?]")
	}
}
