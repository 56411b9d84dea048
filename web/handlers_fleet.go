// ABOUTME: HTTP handlers for fleet-wide views: status, weather, analytics,
// ABOUTME: airframe health rollups, and delivery metrics.
package web

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/aeriform/dronewatch/fleet"
)

// handleFleetStatus serves GET /api/fleet/status: every drone plus the
// analytics rollup in one consistent snapshot.
func (s *Server) handleFleetStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.manager.Snapshot()
	views := make([]droneView, 0, len(snap.Drones))
	for _, d := range snap.Drones {
		views = append(views, newDroneView(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"drones":       views,
		"analytics":    snap.Analytics,
		"base":         s.manager.Base(),
		"weather":      snap.BaseWeather,
		"weather_safe": snap.WeatherSafe,
	})
}

// handleFleetWeather serves GET /api/fleet/weather?lat=&lon=. Without
// coordinates it reports conditions at the fleet base.
func (s *Server) handleFleetWeather(w http.ResponseWriter, r *http.Request) {
	pos := s.manager.Base()
	latStr, lonStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon must both be numbers"})
			return
		}
		pos = fleet.Position{Lat: lat, Lon: lon}
	}

	conditions, ok := s.manager.Weather().Conditions(pos)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "position outside the weather region"})
		return
	}
	safe, warnings := conditions.SafeForFlight()
	writeJSON(w, http.StatusOK, weatherView{
		Position: conditions,
		Safe:     safe,
		Warnings: warnings,
	})
}

// handleFleetAnalytics serves GET /api/fleet/analytics.
func (s *Server) handleFleetAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Snapshot().Analytics)
}

// handleFleetHealth serves GET /api/fleet/health: per-drone airframe health
// with the drones most in need of attention first.
func (s *Server) handleFleetHealth(w http.ResponseWriter, r *http.Request) {
	type healthView struct {
		ID               string             `json:"id"`
		MaintenanceScore float64            `json:"maintenance_score"`
		ComponentHealth  map[string]float64 `json:"component_health"`
		NeedsMaintenance bool               `json:"needs_maintenance"`
		LastMaintenance  time.Time          `json:"last_maintenance"`
	}

	drones := s.manager.Drones()
	views := make([]healthView, 0, len(drones))
	for _, d := range drones {
		views = append(views, healthView{
			ID:               d.ID,
			MaintenanceScore: d.MaintenanceScore,
			ComponentHealth:  d.ComponentHealth,
			NeedsMaintenance: d.MaintenanceScore < 70,
			LastMaintenance:  d.LastMaintenance,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].MaintenanceScore < views[j].MaintenanceScore
	})
	writeJSON(w, http.StatusOK, views)
}

// handleFleetMetrics serves GET /api/fleet/metrics: delivery throughput from
// the store joined with the live fleet rollup.
func (s *Server) handleFleetMetrics(w http.ResponseWriter, r *http.Request) {
	completed, err := s.store.ListDeliveries(string(fleet.DeliveryCompleted))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to query deliveries"})
		return
	}
	cancelled, err := s.store.ListDeliveries(string(fleet.DeliveryCancelled))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to query deliveries"})
		return
	}

	snap := s.manager.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"completed_deliveries": len(completed),
		"cancelled_deliveries": len(cancelled),
		"active_deliveries":    snap.Analytics.ActiveDeliveries,
		"fleet_utilization":    snap.Analytics.Utilization,
		"uptime":               time.Since(s.started).Round(time.Second).String(),
	})
}
