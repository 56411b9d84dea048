// ABOUTME: Weather conditions, flight safety checks, and the grid-based weather simulator.
// ABOUTME: Conditions at arbitrary positions are inverse-distance interpolated from grid cells.
package fleet

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Flight safety ceilings. Conditions beyond any of these ground the fleet
// regardless of individual airframe limits.
const (
	maxSafeWindMps      = 15.0
	minSafeVisibilityKm = 3.0
	maxSafePrecipMmH    = 5.0
)

// Conditions describes the weather at a point.
type Conditions struct {
	TemperatureC     float64 `json:"temperature"`
	WindSpeedMps     float64 `json:"wind_speed"`
	WindDirectionDeg float64 `json:"wind_direction"`
	PrecipitationMmH float64 `json:"precipitation"`
	VisibilityKm     float64 `json:"visibility"`
}

// SafeForFlight reports whether the conditions permit flight, with a
// human-readable warning per violated limit.
func (c Conditions) SafeForFlight() (bool, []string) {
	var warnings []string
	if c.WindSpeedMps > maxSafeWindMps {
		warnings = append(warnings, "wind speed too high")
	}
	if c.VisibilityKm < minSafeVisibilityKm {
		warnings = append(warnings, "visibility too low")
	}
	if c.PrecipitationMmH > maxSafePrecipMmH {
		warnings = append(warnings, "precipitation too high")
	}
	return len(warnings) == 0, warnings
}

// Bounds is a rectangular region: south-west and north-east corners.
type Bounds struct {
	Min Position `yaml:"min"`
	Max Position `yaml:"max"`
}

// Contains reports whether p lies within the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.Lat >= b.Min.Lat && p.Lat <= b.Max.Lat &&
		p.Lon >= b.Min.Lon && p.Lon <= b.Max.Lon
}

// weatherGridSize is the cell edge in degrees, roughly one kilometer.
const weatherGridSize = 0.01

type cellKey struct {
	lat, lon int
}

// WeatherSimulator maintains a grid of weather cells over a region and
// evolves them with a bounded random walk. Safe for concurrent use.
type WeatherSimulator struct {
	mu     sync.RWMutex
	bounds Bounds
	cells  map[cellKey]Conditions
	rng    *rand.Rand
}

// NewWeatherSimulator seeds a weather grid covering bounds. The seed fixes
// the generated conditions so simulations can be replayed.
func NewWeatherSimulator(bounds Bounds, seed int64) *WeatherSimulator {
	s := &WeatherSimulator{
		bounds: bounds,
		cells:  make(map[cellKey]Conditions),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for lat := int(bounds.Min.Lat / weatherGridSize); lat <= int(bounds.Max.Lat/weatherGridSize); lat++ {
		for lon := int(bounds.Min.Lon / weatherGridSize); lon <= int(bounds.Max.Lon/weatherGridSize); lon++ {
			s.cells[cellKey{lat, lon}] = s.generate()
		}
	}
	return s
}

// generate produces plausible fair-weather conditions.
func (s *WeatherSimulator) generate() Conditions {
	return Conditions{
		TemperatureC:     15 + s.rng.Float64()*10,
		WindSpeedMps:     s.rng.Float64() * 10,
		WindDirectionDeg: s.rng.Float64() * 360,
		PrecipitationMmH: s.rng.Float64() * 2,
		VisibilityKm:     8 + s.rng.Float64()*7,
	}
}

// Update advances every cell one step of the random walk.
func (s *WeatherSimulator) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, c := range s.cells {
		s.cells[key] = Conditions{
			TemperatureC:     math.Max(0, c.TemperatureC+s.rng.Float64()-0.5),
			WindSpeedMps:     math.Max(0, c.WindSpeedMps+s.rng.Float64()*2-1),
			WindDirectionDeg: math.Mod(c.WindDirectionDeg+s.rng.Float64()*20-10+360, 360),
			PrecipitationMmH: math.Max(0, c.PrecipitationMmH+s.rng.Float64()*0.4-0.2),
			VisibilityKm:     math.Max(2, c.VisibilityKm+s.rng.Float64()-0.5),
		}
	}
}

// Conditions returns the interpolated conditions at a position, or false if
// the position is outside the simulated region.
func (s *WeatherSimulator) Conditions(p Position) (Conditions, bool) {
	if !s.bounds.Contains(p) {
		return Conditions{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type neighbor struct {
		cond Conditions
		dist float64
	}
	var near []neighbor
	for key, c := range s.cells {
		cell := Position{Lat: float64(key.lat) * weatherGridSize, Lon: float64(key.lon) * weatherGridSize}
		if d := p.FlatDistance(cell); d < 0.1 {
			near = append(near, neighbor{cond: c, dist: d})
		}
	}
	if len(near) == 0 {
		return Conditions{}, false
	}
	sort.Slice(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	if len(near) > 4 {
		near = near[:4]
	}

	// Inverse-distance weighting over the nearest cells.
	var total float64
	weights := make([]float64, len(near))
	for i, n := range near {
		weights[i] = 1 / (n.dist + 1e-4)
		total += weights[i]
	}

	var out Conditions
	for i, n := range near {
		w := weights[i] / total
		out.TemperatureC += n.cond.TemperatureC * w
		out.WindSpeedMps += n.cond.WindSpeedMps * w
		out.WindDirectionDeg += n.cond.WindDirectionDeg * w
		out.PrecipitationMmH += n.cond.PrecipitationMmH * w
		out.VisibilityKm += n.cond.VisibilityKm * w
	}
	out.WindDirectionDeg = math.Mod(out.WindDirectionDeg, 360)
	return out, true
}

// Bounds returns the simulated region.
func (s *WeatherSimulator) Bounds() Bounds {
	return s.bounds
}
