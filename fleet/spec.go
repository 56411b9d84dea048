// ABOUTME: Airframe specification: performance limits and the battery/power model for a drone.
// ABOUTME: The default specification mirrors the reference quadcopter used to seed new fleets.
package fleet

// Specification holds the fixed performance limits of an airframe.
type Specification struct {
	Model               string  `json:"model" yaml:"model"`
	MaxSpeedMps         float64 `json:"max_speed" yaml:"max_speed"`
	MaxPayloadKg        float64 `json:"max_payload" yaml:"max_payload"`
	ChargingMinutes     float64 `json:"charging_time" yaml:"charging_time"`
	MaxAltitudeM        float64 `json:"max_altitude" yaml:"max_altitude"`
	MinAltitudeM        float64 `json:"min_altitude" yaml:"min_altitude"`
	MaxWindSpeedMps     float64 `json:"max_wind_speed" yaml:"max_wind_speed"`
	MaxPrecipitationMmH float64 `json:"max_precipitation" yaml:"max_precipitation"`
	BatteryCapacityWh   float64 `json:"battery_capacity" yaml:"battery_capacity"`
	PowerPerKm          float64 `json:"power_consumption_rate" yaml:"power_consumption_rate"`
	EmergencyReservePct float64 `json:"emergency_reserve" yaml:"emergency_reserve"`
}

// DefaultSpecification returns the reference airframe used when a fleet
// config does not override the drone spec.
func DefaultSpecification() Specification {
	return Specification{
		Model:               "AV-X1",
		MaxSpeedMps:         20.0,
		MaxPayloadKg:        2.5,
		ChargingMinutes:     20.0,
		MaxAltitudeM:        400.0,
		MinAltitudeM:        50.0,
		MaxWindSpeedMps:     15.0,
		MaxPrecipitationMmH: 5.0,
		BatteryCapacityWh:   500.0,
		PowerPerKm:          2.5,
		EmergencyReservePct: 20.0,
	}
}

// SafeAltitude reports whether altitude is within the airframe's envelope.
func (s Specification) SafeAltitude(altitude float64) bool {
	return altitude >= s.MinAltitudeM && altitude <= s.MaxAltitudeM
}

// SafeWeather reports whether the airframe may fly in the given conditions.
func (s Specification) SafeWeather(c Conditions) bool {
	return c.WindSpeedMps <= s.MaxWindSpeedMps && c.PrecipitationMmH <= s.MaxPrecipitationMmH
}
