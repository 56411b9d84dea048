// ABOUTME: The server-rendered monitoring dashboard page.
// ABOUTME: Builds the page model from a fleet snapshot plus recent deliveries.
package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/store"
)

// dashboardData is the page model for the dashboard template.
type dashboardData struct {
	Title       string
	GeneratedAt time.Time
	Drones      []droneView
	Analytics   fleet.Analytics
	Weather     fleet.Conditions
	WeatherSafe bool
	Deliveries  []store.DeliveryRow
	LoadError   string
}

// handleDashboard serves GET /.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.manager.Snapshot()

	data := dashboardData{
		Title:       "DroneWatch",
		GeneratedAt: time.Now().UTC(),
		Analytics:   snap.Analytics,
		Weather:     snap.BaseWeather,
		WeatherSafe: snap.WeatherSafe,
	}
	for _, d := range snap.Drones {
		data.Drones = append(data.Drones, newDroneView(d))
	}

	deliveries, err := s.store.ListDeliveries("")
	if err != nil {
		data.LoadError = "delivery history unavailable"
		log.Printf("component=web action=dashboard err=%v", err)
	} else {
		if len(deliveries) > 10 {
			deliveries = deliveries[:10]
		}
		data.Deliveries = deliveries
	}

	if err := s.templates.Render(w, "dashboard.html", data); err != nil {
		http.Error(w, fmt.Sprintf("render dashboard: %v", err), http.StatusInternalServerError)
	}
}
