// ABOUTME: Route planning: A* grid search around no-fly zones, altitude profiles, weather adjustment.
// ABOUTME: Produces waypoint lists the Manager walks drones along during deliveries.
package fleet

import (
	"container/heap"
	"math"
)

// routeGridSize is the planning grid edge in degrees, roughly 100 meters.
const routeGridSize = 0.001

// Point is one waypoint of a planned route.
type Point struct {
	Position  Position    `json:"position"`
	AltitudeM float64     `json:"altitude"`
	Weather   *Conditions `json:"weather,omitempty"`
}

// Planner computes delivery routes on a coarse grid, steering around no-fly
// polygons and adjusting cruise altitude for weather.
type Planner struct {
	NoFlyZones   [][]Position
	MinAltitudeM float64
	MaxAltitudeM float64
	SafetyMargin float64 // meters
}

// NewPlanner returns a planner with the default altitude envelope.
func NewPlanner(noFlyZones [][]Position) *Planner {
	return &Planner{
		NoFlyZones:   noFlyZones,
		MinAltitudeM: 100.0,
		MaxAltitudeM: 400.0,
		SafetyMargin: 50.0,
	}
}

// Route plans a route from start to end. Weather lookup is optional; when
// present each waypoint gets conditions attached and its altitude adjusted.
// Returns nil when no path exists.
func (p *Planner) Route(start, end Position, weatherAt func(Position) (Conditions, bool)) []Point {
	path := p.search(start, end)
	if path == nil {
		return nil
	}

	points := make([]Point, 0, len(path))
	for _, pos := range path {
		points = append(points, Point{Position: pos, AltitudeM: p.optimalAltitude(pos)})
	}

	if weatherAt != nil {
		for i := range points {
			if c, ok := weatherAt(points[i].Position); ok {
				cond := c
				points[i].Weather = &cond
				points[i].AltitudeM = p.weatherAltitude(points[i].AltitudeM, c)
			}
		}
	}

	return p.smooth(points)
}

type gridNode struct {
	lat, lon int
}

func toGrid(p Position) gridNode {
	return gridNode{
		lat: int(math.Round(p.Lat / routeGridSize)),
		lon: int(math.Round(p.Lon / routeGridSize)),
	}
}

func (n gridNode) position() Position {
	return Position{Lat: float64(n.lat) * routeGridSize, Lon: float64(n.lon) * routeGridSize}
}

// nodeQueue is a min-heap over f-scores for the A* open set.
type nodeQueue struct {
	nodes  []gridNode
	fScore map[gridNode]float64
}

func (q *nodeQueue) Len() int { return len(q.nodes) }
func (q *nodeQueue) Less(i, j int) bool {
	return q.fScore[q.nodes[i]] < q.fScore[q.nodes[j]]
}
func (q *nodeQueue) Swap(i, j int) { q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i] }
func (q *nodeQueue) Push(x any)    { q.nodes = append(q.nodes, x.(gridNode)) }
func (q *nodeQueue) Pop() any {
	n := q.nodes[len(q.nodes)-1]
	q.nodes = q.nodes[:len(q.nodes)-1]
	return n
}

// search runs A* on the planning grid. The search is bounded so an
// unreachable destination cannot spin forever.
func (p *Planner) search(start, end Position) []Position {
	startNode, endNode := toGrid(start), toGrid(end)
	endPos := endNode.position()

	// Generous budget relative to the direct path length.
	direct := math.Abs(float64(endNode.lat-startNode.lat)) + math.Abs(float64(endNode.lon-startNode.lon))
	budget := int(direct*20) + 1000

	open := &nodeQueue{fScore: map[gridNode]float64{}}
	heap.Init(open)
	cameFrom := map[gridNode]gridNode{}
	gScore := map[gridNode]float64{startNode: 0}
	closed := map[gridNode]bool{}

	open.fScore[startNode] = start.DistanceKm(endPos)
	heap.Push(open, startNode)

	for open.Len() > 0 && budget > 0 {
		budget--
		current := heap.Pop(open).(gridNode)
		if closed[current] {
			continue
		}
		closed[current] = true

		if current == endNode {
			return p.reconstruct(cameFrom, current, start, end)
		}

		currentPos := current.position()
		for dlat := -1; dlat <= 1; dlat++ {
			for dlon := -1; dlon <= 1; dlon++ {
				if dlat == 0 && dlon == 0 {
					continue
				}
				next := gridNode{lat: current.lat + dlat, lon: current.lon + dlon}
				if closed[next] {
					continue
				}
				nextPos := next.position()
				if p.inNoFlyZone(nextPos) {
					continue
				}
				tentative := gScore[current] + currentPos.DistanceKm(nextPos)
				if g, ok := gScore[next]; !ok || tentative < g {
					cameFrom[next] = current
					gScore[next] = tentative
					open.fScore[next] = tentative + nextPos.DistanceKm(endPos)
					heap.Push(open, next)
				}
			}
		}
	}
	return nil
}

func (p *Planner) reconstruct(cameFrom map[gridNode]gridNode, current gridNode, start, end Position) []Position {
	var rev []gridNode
	for {
		rev = append(rev, current)
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}

	path := make([]Position, 0, len(rev)+1)
	path = append(path, start)
	for i := len(rev) - 2; i >= 1; i-- {
		path = append(path, rev[i].position())
	}
	path = append(path, end)
	return path
}

// inNoFlyZone reports whether a point falls inside any no-fly polygon,
// using the even-odd ray casting rule.
func (p *Planner) inNoFlyZone(pos Position) bool {
	for _, zone := range p.NoFlyZones {
		if pointInPolygon(pos, zone) {
			return true
		}
	}
	return false
}

func pointInPolygon(pos Position, polygon []Position) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Lon > pos.Lon) != (pj.Lon > pos.Lon) {
			intersect := (pos.Lon-pi.Lon)*(pj.Lat-pi.Lat)/(pj.Lon-pi.Lon) + pi.Lat
			if pos.Lat < intersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// optimalAltitude starts at the floor and climbs near no-fly zones so a
// drifting drone clears them vertically as well.
func (p *Planner) optimalAltitude(pos Position) float64 {
	altitude := p.MinAltitudeM
	for _, zone := range p.NoFlyZones {
		minDist := math.Inf(1)
		for _, v := range zone {
			if d := pos.DistanceKm(v); d < minDist {
				minDist = d
			}
		}
		if minDist < 1.0 {
			altitude = math.Min(p.MaxAltitudeM, altitude+(1.0-minDist)*p.SafetyMargin)
		}
	}
	return altitude
}

// weatherAltitude raises the cruise altitude under wind, poor visibility,
// or precipitation, clamped to the envelope.
func (p *Planner) weatherAltitude(altitude float64, c Conditions) float64 {
	if c.WindSpeedMps > 10 {
		altitude += math.Min(50, c.WindSpeedMps*2)
	}
	if c.VisibilityKm < 5 {
		altitude += (5 - c.VisibilityKm) * 20
	}
	if c.PrecipitationMmH > 0 {
		altitude += math.Min(30, c.PrecipitationMmH*5)
	}
	return math.Max(p.MinAltitudeM, math.Min(p.MaxAltitudeM, altitude))
}

// smooth drops intermediate waypoints that neither hug a no-fly zone nor
// force a steep altitude change.
func (p *Planner) smooth(points []Point) []Point {
	if len(points) <= 2 {
		return points
	}
	smoothed := []Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev := smoothed[len(smoothed)-1]
		next := points[i+1]
		if p.inNoFlyZone(points[i].Position) {
			smoothed = append(smoothed, points[i])
			continue
		}
		if math.Abs(prev.AltitudeM-next.AltitudeM) > p.SafetyMargin {
			smoothed = append(smoothed, points[i])
		}
	}
	return append(smoothed, points[len(points)-1])
}

// RouteLengthKm sums the leg distances of a route.
func RouteLengthKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Position.DistanceKm(points[i].Position)
	}
	return total
}
