// ABOUTME: The fleet Manager: drone registry, delivery assignment scoring, and the simulation tick.
// ABOUTME: Serializes all mutation behind one mutex; accessors hand out detached drone copies.
package fleet

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// availableScore is the minimum maintenance score for delivery assignment.
const availableScore = 80.0

// legSeconds is the nominal time a drone spends between consecutive route
// waypoints during the simulation tick.
const legSeconds = 120.0

// ErrNoDroneAvailable is returned when no drone can take a delivery.
var ErrNoDroneAvailable = errors.New("no drone available for delivery")

// ErrDroneNotFound is returned for lookups of unknown drone IDs.
var ErrDroneNotFound = errors.New("drone not found")

// activeRun tracks one in-flight delivery.
type activeRun struct {
	delivery *Delivery
	route    []Point
	started  time.Time
	index    int
}

// Manager owns every drone in the fleet and advances the simulation.
type Manager struct {
	mu      sync.Mutex
	drones  map[string]*Drone
	base    Position
	weather *WeatherSimulator
	planner *Planner
	runs    map[string]*activeRun // keyed by drone ID
}

// NewManager creates a fleet manager based at the given position. The
// weather region defaults to a 0.1 degree box around base when bounds are zero.
func NewManager(base Position, bounds Bounds, planner *Planner, seed int64) *Manager {
	if bounds == (Bounds{}) {
		bounds = Bounds{
			Min: Position{Lat: base.Lat - 0.1, Lon: base.Lon - 0.1},
			Max: Position{Lat: base.Lat + 0.1, Lon: base.Lon + 0.1},
		}
	}
	if planner == nil {
		planner = NewPlanner(nil)
	}
	return &Manager{
		drones:  make(map[string]*Drone),
		base:    base,
		weather: NewWeatherSimulator(bounds, seed),
		planner: planner,
		runs:    make(map[string]*activeRun),
	}
}

// Base returns the fleet's home position.
func (m *Manager) Base() Position {
	return m.base
}

// Weather returns the fleet's weather simulator.
func (m *Manager) Weather() *WeatherSimulator {
	return m.weather
}

// AddDrone registers a drone and returns its ID.
func (m *Manager) AddDrone(d *Drone) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drones[d.ID] = d
	return d.ID
}

// RemoveDrone unregisters a drone. An active delivery is cancelled and
// returned so the caller can persist its final state.
func (m *Manager) RemoveDrone(id string) (*Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDroneNotFound, id)
	}
	dropped := d.delivery
	d.CancelDelivery()
	delete(m.runs, id)
	delete(m.drones, id)
	return copyDelivery(dropped), nil
}

// Drone returns a copy of the drone with the given ID. Copies are safe to
// read while the simulation keeps ticking.
func (m *Manager) Drone(id string) (*Drone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDroneNotFound, id)
	}
	return d.clone(), nil
}

// Drones returns copies of all drones in the fleet, in no particular order.
func (m *Manager) Drones() []*Drone {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Drone, 0, len(m.drones))
	for _, d := range m.drones {
		out = append(out, d.clone())
	}
	return out
}

// Available returns copies of the drones eligible for delivery assignment:
// idle with a maintenance score at or above the availability threshold.
func (m *Manager) Available() []*Drone {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.availableLocked()
	out := make([]*Drone, 0, len(live))
	for _, d := range live {
		out = append(out, d.clone())
	}
	return out
}

// copyDelivery returns a detached copy of a delivery, or nil for nil.
func copyDelivery(d *Delivery) *Delivery {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

func (m *Manager) availableLocked() []*Drone {
	var out []*Drone
	for _, d := range m.drones {
		if d.Status == StatusIdle && d.MaintenanceScore >= availableScore {
			out = append(out, d)
		}
	}
	return out
}

// AssignDelivery routes the delivery to the best-scoring available drone
// and starts it. The delivery's drone ID and status are updated in place.
func (m *Manager) AssignDelivery(delivery *Delivery) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.availableLocked()
	if len(candidates) == 0 {
		return "", ErrNoDroneAvailable
	}

	weatherAt := func(p Position) (Conditions, bool) { return m.weather.Conditions(p) }

	var best *Drone
	var bestRoute []Point
	bestScore := -1.0
	for _, d := range candidates {
		route := m.planner.Route(d.Position, delivery.Destination, weatherAt)
		if route == nil {
			continue
		}
		score := m.scoreRoute(d, route, delivery.PayloadKg)
		if score > bestScore {
			bestScore = score
			best = d
			bestRoute = route
		}
	}
	if best == nil {
		return "", ErrNoDroneAvailable
	}

	delivery.Origin = best.Position
	if err := best.StartDelivery(delivery); err != nil {
		return "", fmt.Errorf("start delivery: %w", err)
	}
	delivery.EstimatedS = int(float64(len(bestRoute)) * legSeconds)
	m.runs[best.ID] = &activeRun{
		delivery: delivery,
		route:    bestRoute,
		started:  time.Now().UTC(),
	}
	log.Printf("component=fleet action=assign drone=%s delivery=%s legs=%d score=%.1f",
		best.ID, delivery.ID, len(bestRoute), bestScore)
	return best.ID, nil
}

// CommandReturn orders a drone back to base. An active delivery is cancelled
// and returned so the caller can persist its final state.
func (m *Manager) CommandReturn(id string) (*Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDroneNotFound, id)
	}
	dropped := d.delivery
	d.CancelDelivery()
	delete(m.runs, id)
	log.Printf("component=fleet action=recall drone=%s", id)
	return copyDelivery(dropped), nil
}

// CompleteMaintenance clears a drone's wear and returns it to service.
func (m *Manager) CompleteMaintenance(id string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drones[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDroneNotFound, id)
	}
	d.CompleteMaintenance(now)
	return nil
}

// scoreRoute ranks a candidate drone for a delivery: airframe health,
// remaining battery margin, weather along the route, and route length.
func (m *Manager) scoreRoute(d *Drone, route []Point, payloadKg float64) float64 {
	var estimated float64
	for i := 1; i < len(route); i++ {
		leg := route[i-1].Position.DistanceKm(route[i].Position)
		estimated += d.powerForLeg(leg, route[i].AltitudeM, route[i].Weather)
	}
	// Payload draw on top of the empty-airframe estimate.
	estimated *= 1 + (payloadKg/d.Spec.MaxPayloadKg)*0.3

	batteryScore := 100 * (1 - estimated/d.BatteryPct)

	var weatherScore float64
	var sampled int
	for _, pt := range route {
		if pt.Weather == nil {
			continue
		}
		sampled++
		if safe, _ := pt.Weather.SafeForFlight(); safe {
			weatherScore += 100
		}
	}
	if sampled > 0 {
		weatherScore /= float64(sampled)
	} else {
		weatherScore = 100
	}

	lengthScore := 100 / (1 + RouteLengthKm(route)/10)

	return 0.3*d.MaintenanceScore + 0.3*batteryScore + 0.3*weatherScore + 0.1*lengthScore
}

// Tick advances the simulation one step at the given wall-clock time:
// in-transit drones walk their routes, finished drones head home, homebound
// drones land, and parked drones charge. It returns the deliveries that
// reached a terminal state (completed or cancelled) during the tick so the
// caller can persist them.
func (m *Manager) Tick(now time.Time) []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()

	var finished []Delivery
	for id, d := range m.drones {
		switch d.Status {
		case StatusInTransit, StatusDelivering:
			run, ok := m.runs[id]
			if !ok {
				d.Status = StatusReturning
				continue
			}
			if done, terminal := m.advanceRun(d, run, now); terminal {
				finished = append(finished, done)
			}

		case StatusReturning:
			m.returnHome(d, now)

		case StatusCharging:
			d.Charge(now.Sub(d.LastUpdated).Minutes())
			d.LastUpdated = now

		case StatusEmergency:
			// An emergency drone limps home; the battery reserve rule is
			// suspended for the return leg.
			m.returnHome(d, now)
		}
	}
	return finished
}

// advanceRun moves a drone to the waypoint its elapsed time has earned.
// When the run ends, the delivery is returned in its terminal state.
func (m *Manager) advanceRun(d *Drone, run *activeRun, now time.Time) (Delivery, bool) {
	elapsed := now.Sub(run.started).Seconds()
	index := int(elapsed / legSeconds)
	if index <= run.index {
		return Delivery{}, false
	}
	if index >= len(run.route) {
		d.CompleteDelivery(now)
		log.Printf("component=fleet action=delivered drone=%s delivery=%s", d.ID, run.delivery.ID)
		delete(m.runs, d.ID)
		return *run.delivery, true
	}

	run.index = index
	pt := run.route[index]
	if index == len(run.route)-1 {
		d.Status = StatusDelivering
	}

	var weather *Conditions
	if c, ok := m.weather.Conditions(pt.Position); ok {
		weather = &c
	}
	if err := d.MoveTo(pt.Position, pt.AltitudeM, weather); err != nil {
		log.Printf("component=fleet action=abort drone=%s delivery=%s err=%v", d.ID, run.delivery.ID, err)
		d.CancelDelivery()
		delete(m.runs, d.ID)
		return *run.delivery, true
	}
	return Delivery{}, false
}

// returnHome steps a drone toward base, landing it when close enough.
func (m *Manager) returnHome(d *Drone, now time.Time) {
	const landingRadiusKm = 0.2
	if d.Position.DistanceKm(m.base) <= landingRadiusKm {
		d.ArriveAtBase(m.base)
		d.LastUpdated = now
		return
	}

	// One leg's worth of progress along the straight line home.
	stepKm := d.Spec.MaxSpeedMps * legSeconds / 1000
	total := d.Position.DistanceKm(m.base)
	frac := stepKm / total
	if frac > 1 {
		frac = 1
	}
	next := Position{
		Lat: d.Position.Lat + (m.base.Lat-d.Position.Lat)*frac,
		Lon: d.Position.Lon + (m.base.Lon-d.Position.Lon)*frac,
	}
	d.Position = next
	d.LastUpdated = now
	if d.Position.DistanceKm(m.base) <= landingRadiusKm {
		d.ArriveAtBase(m.base)
	}
}

// Analytics summarizes the fleet for the dashboard's stat cards.
type Analytics struct {
	TotalDrones      int     `json:"total_drones"`
	ActiveDrones     int     `json:"active_drones"`
	AvailableDrones  int     `json:"available_drones"`
	ActiveDeliveries int     `json:"active_deliveries"`
	AverageBattery   float64 `json:"average_battery_level"`
	AverageHealth    float64 `json:"average_maintenance_score"`
	Utilization      float64 `json:"fleet_utilization"`
}

// Snapshot captures everything the dashboard needs in one lock acquisition.
// The drones are copies, detached from the live simulation.
type Snapshot struct {
	Drones      []*Drone
	Analytics   Analytics
	BaseWeather Conditions
	WeatherSafe bool
}

// Snapshot returns a consistent view of the fleet.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{Drones: make([]*Drone, 0, len(m.drones))}
	var batterySum, healthSum float64
	busy := 0
	for _, d := range m.drones {
		snap.Drones = append(snap.Drones, d.clone())
		batterySum += d.BatteryPct
		healthSum += d.MaintenanceScore
		if d.Status != StatusIdle {
			busy++
		}
	}

	snap.Analytics = Analytics{
		TotalDrones:      len(m.drones),
		ActiveDrones:     busy,
		AvailableDrones:  len(m.availableLocked()),
		ActiveDeliveries: len(m.runs),
	}
	if n := len(m.drones); n > 0 {
		snap.Analytics.AverageBattery = batterySum / float64(n)
		snap.Analytics.AverageHealth = healthSum / float64(n)
		snap.Analytics.Utilization = float64(busy) / float64(n)
	}

	if c, ok := m.weather.Conditions(m.base); ok {
		snap.BaseWeather = c
		snap.WeatherSafe, _ = c.SafeForFlight()
	}
	return snap
}
