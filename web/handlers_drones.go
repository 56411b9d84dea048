// ABOUTME: HTTP handlers for the drone API: registry CRUD, telemetry history,
// ABOUTME: maintenance work orders, and the emergency recall command.
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/store"
	"github.com/go-chi/chi/v5"
)

// handleDroneList serves GET /api/drones.
func (s *Server) handleDroneList(w http.ResponseWriter, r *http.Request) {
	drones := s.manager.Drones()
	views := make([]droneView, 0, len(drones))
	for _, d := range drones {
		views = append(views, newDroneView(d))
	}
	writeJSON(w, http.StatusOK, views)
}

type droneCreateRequest struct {
	Position *fleet.Position      `json:"position,omitempty"`
	Spec     *fleet.Specification `json:"spec,omitempty"`
}

// handleDroneCreate serves POST /api/drones. Position defaults to the fleet
// base and the airframe spec to the default.
func (s *Server) handleDroneCreate(w http.ResponseWriter, r *http.Request) {
	var req droneCreateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	pos := s.manager.Base()
	if req.Position != nil {
		pos = *req.Position
	}
	spec := fleet.DefaultSpecification()
	if req.Spec != nil {
		spec = *req.Spec
	}

	d := fleet.NewDrone(pos, spec)
	s.manager.AddDrone(d)
	if err := s.store.UpsertDrone(d); err != nil {
		log.Printf("component=web action=persist-drone drone=%s err=%v", d.ID, err)
	}
	writeJSON(w, http.StatusCreated, newDroneView(d))
}

// handleDroneGet serves GET /api/drones/{droneID}.
func (s *Server) handleDroneGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.manager.Drone(chi.URLParam(r, "droneID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}
	writeJSON(w, http.StatusOK, newDroneView(d))
}

// handleDroneDelete serves DELETE /api/drones/{droneID}.
func (s *Server) handleDroneDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	cancelled, err := s.manager.RemoveDrone(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}
	s.persistCancelled(cancelled)
	if err := s.store.DeleteDrone(id); err != nil {
		log.Printf("component=web action=delete-drone drone=%s err=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// persistCancelled writes through a delivery cancelled as a side effect of a
// drone command, if there was one.
func (s *Server) persistCancelled(cancelled *fleet.Delivery) {
	if cancelled == nil {
		return
	}
	if err := s.store.UpdateDelivery(cancelled); err != nil {
		log.Printf("component=web action=persist-delivery delivery=%s err=%v", cancelled.ID, err)
	}
}

// handleDroneTelemetry serves GET /api/drones/{droneID}/telemetry?limit=N,
// newest sample first. Live in-memory telemetry is preferred; the store
// backfills after restarts.
func (s *Server) handleDroneTelemetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	d, err := s.manager.Drone(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	history := d.Telemetry()
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	// The live ring is oldest first; flip it to match the store's order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	if len(history) == 0 {
		if stored, err := s.store.ListTelemetry(id, limit); err == nil {
			history = stored
		}
	}
	writeJSON(w, http.StatusOK, history)
}

type maintenanceRequest struct {
	Type        string `json:"maintenance_type"`
	Description string `json:"description"`
	Scheduled   string `json:"scheduled_date,omitempty"`
}

// handleMaintenanceSchedule serves POST /api/drones/{droneID}/maintenance.
func (s *Server) handleMaintenanceSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	if _, err := s.manager.Drone(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}

	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	typ := fleet.MaintenanceType(req.Type)
	if !typ.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown maintenance type " + strconv.Quote(req.Type)})
		return
	}

	scheduled := time.Now().UTC()
	if req.Scheduled != "" {
		parsed, err := time.Parse(time.RFC3339, req.Scheduled)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scheduled_date must be RFC 3339"})
			return
		}
		scheduled = parsed
	}

	order := fleet.NewMaintenanceOrder(id, typ, req.Description, scheduled)
	if err := s.store.CreateMaintenanceOrder(order); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record maintenance order"})
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// handleMaintenanceList serves GET /api/drones/{droneID}/maintenance.
func (s *Server) handleMaintenanceList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	if _, err := s.manager.Drone(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}
	orders, err := s.store.ListMaintenanceOrders(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list maintenance orders"})
		return
	}
	if orders == nil {
		orders = []store.MaintenanceRow{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// handleMaintenanceComplete serves POST /api/drones/{droneID}/maintenance/complete.
// Component health is restored and the drone returns to service.
func (s *Server) handleMaintenanceComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	if err := s.manager.CompleteMaintenance(id, time.Now().UTC()); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
		return
	}
	d, err := s.manager.Drone(id)
	if err == nil {
		if err := s.store.UpsertDrone(d); err != nil {
			log.Printf("component=web action=persist-drone drone=%s err=%v", id, err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "maintenance completed"})
}

// handleEmergencyReturn serves POST /api/drones/{droneID}/emergency-return,
// recalling the drone to base and cancelling its delivery.
func (s *Server) handleEmergencyReturn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "droneID")
	cancelled, err := s.manager.CommandReturn(id)
	if err != nil {
		if errors.Is(err, fleet.ErrDroneNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "drone not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.persistCancelled(cancelled)
	writeJSON(w, http.StatusOK, map[string]string{"status": "returning to base"})
}
