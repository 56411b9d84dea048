// ABOUTME: Fleet definition file parsing: base position, airframe overrides, no-fly zones.
// ABOUTME: The YAML file is optional; DefaultFleet covers the no-config case.
package server

import (
	"fmt"
	"os"

	"github.com/aeriform/dronewatch/fleet"
	"gopkg.in/yaml.v3"
)

// FleetFile describes a fleet deployment: where it is based, how many
// drones it flies, and the airspace constraints it operates under.
type FleetFile struct {
	Base       fleet.Position       `yaml:"base"`
	FleetSize  int                  `yaml:"fleet_size"`
	Seed       int64                `yaml:"seed"`
	Spec       *fleet.Specification `yaml:"spec"`
	Bounds     *fleet.Bounds        `yaml:"bounds"`
	NoFlyZones [][]fleet.Position   `yaml:"no_fly_zones"`
}

// DefaultFleet returns a fleet definition for when no config file is given:
// the given number of default airframes based in San Francisco.
func DefaultFleet(size int) *FleetFile {
	return &FleetFile{
		Base:      fleet.Position{Lat: 37.7749, Lon: -122.4194},
		FleetSize: size,
	}
}

// LoadFleetFile reads and validates a fleet definition from a YAML file.
func LoadFleetFile(path string) (*FleetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fleet config: %w", err)
	}
	var f FleetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fleet config %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("fleet config %s: %w", path, err)
	}
	if f.FleetSize == 0 {
		f.FleetSize = 5
	}
	return &f, nil
}

func (f *FleetFile) validate() error {
	if f.Base.Lat < -90 || f.Base.Lat > 90 {
		return fmt.Errorf("base latitude %v out of range", f.Base.Lat)
	}
	if f.Base.Lon < -180 || f.Base.Lon > 180 {
		return fmt.Errorf("base longitude %v out of range", f.Base.Lon)
	}
	if f.FleetSize < 0 {
		return fmt.Errorf("fleet_size %d must not be negative", f.FleetSize)
	}
	if f.Bounds != nil && !f.Bounds.Contains(f.Base) {
		return fmt.Errorf("base position outside operating bounds")
	}
	for i, zone := range f.NoFlyZones {
		if len(zone) < 3 {
			return fmt.Errorf("no_fly_zones[%d] has %d vertices, need at least 3", i, len(zone))
		}
	}
	return nil
}

// Specification returns the airframe spec for this fleet, falling back to
// the default when the file did not override it.
func (f *FleetFile) Specification() fleet.Specification {
	if f.Spec != nil {
		return *f.Spec
	}
	return fleet.DefaultSpecification()
}

// Manager builds a fleet manager from the definition, populated with
// FleetSize drones parked at base.
func (f *FleetFile) Manager() *fleet.Manager {
	var bounds fleet.Bounds
	if f.Bounds != nil {
		bounds = *f.Bounds
	}

	planner := fleet.NewPlanner(f.NoFlyZones)
	m := fleet.NewManager(f.Base, bounds, planner, f.Seed)
	spec := f.Specification()
	for i := 0; i < f.FleetSize; i++ {
		m.AddDrone(fleet.NewDrone(f.Base, spec))
	}
	return m
}
