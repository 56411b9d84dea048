// ABOUTME: Geographic position type and great-circle distance math shared across the fleet packages.
// ABOUTME: Distances are in kilometers; positions are WGS84 latitude/longitude pairs.
package fleet

import "math"

// Position is a latitude/longitude pair in decimal degrees.
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance to other in kilometers.
func (p Position) DistanceKm(other Position) float64 {
	dlat := radians(other.Lat - p.Lat)
	dlon := radians(other.Lon - p.Lon)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(p.Lat))*math.Cos(radians(other.Lat))*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// FlatDistance returns the planar degree-space distance to other. Used for
// coarse grid neighborhood checks where haversine precision is unnecessary.
func (p Position) FlatDistance(other Position) float64 {
	dlat := other.Lat - p.Lat
	dlon := other.Lon - p.Lon
	return math.Sqrt(dlat*dlat + dlon*dlon)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
