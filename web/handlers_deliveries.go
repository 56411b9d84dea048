// ABOUTME: HTTP handlers for the delivery API: creation with automatic drone
// ABOUTME: assignment, lookup, listing, and cancellation.
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/store"
	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
)

type deliveryCreateRequest struct {
	Origin      *fleet.Position `json:"origin,omitempty"`
	Destination fleet.Position  `json:"destination"`
	PayloadKg   float64         `json:"payload_weight"`
	Priority    string          `json:"priority,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// handleDeliveryCreate serves POST /api/deliveries. The fleet manager picks
// the best available drone; 503 when none can take the run.
func (s *Server) handleDeliveryCreate(w http.ResponseWriter, r *http.Request) {
	var req deliveryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.PayloadKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload_weight must be positive"})
		return
	}
	if req.Destination == (fleet.Position{}) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "destination is required"})
		return
	}

	origin := s.manager.Base()
	if req.Origin != nil {
		origin = *req.Origin
	}
	delivery := fleet.NewDelivery(origin, req.Destination, req.PayloadKg)
	if req.Priority != "" {
		delivery.Priority = req.Priority
	}
	delivery.Notes = req.Notes

	droneID, err := s.manager.AssignDelivery(delivery)
	if err != nil {
		if errors.Is(err, fleet.ErrNoDroneAvailable) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no drone available"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.store.CreateDelivery(delivery); err != nil {
		log.Printf("component=web action=persist-delivery delivery=%s err=%v", delivery.ID, err)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"delivery": delivery,
		"drone_id": droneID,
	})
}

// handleDeliveryList serves GET /api/deliveries?status=.
func (s *Server) handleDeliveryList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !fleet.DeliveryStatus(status).Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown delivery status"})
		return
	}
	deliveries, err := s.store.ListDeliveries(status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list deliveries"})
		return
	}
	if deliveries == nil {
		deliveries = []store.DeliveryRow{}
	}
	writeJSON(w, http.StatusOK, deliveries)
}

// handleDeliveryGet serves GET /api/deliveries/{deliveryID}.
func (s *Server) handleDeliveryGet(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(chi.URLParam(r, "deliveryID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delivery ID"})
		return
	}
	row, err := s.store.GetDelivery(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load delivery"})
		return
	}
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "delivery not found"})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// handleDeliveryCancel serves POST /api/deliveries/{deliveryID}/cancel.
// An in-flight delivery recalls its drone; the store row is marked cancelled.
func (s *Server) handleDeliveryCancel(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(chi.URLParam(r, "deliveryID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delivery ID"})
		return
	}
	row, err := s.store.GetDelivery(id)
	if err != nil || row == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "delivery not found"})
		return
	}
	if row.Status == string(fleet.DeliveryCompleted) || row.Status == string(fleet.DeliveryCancelled) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "delivery already " + row.Status})
		return
	}

	// Recall the assigned drone; it may have finished on its own since the
	// row was written, in which case the recall is a no-op.
	if row.DroneID != "" {
		if _, err := s.manager.CommandReturn(row.DroneID); err != nil && !errors.Is(err, fleet.ErrDroneNotFound) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	delivery := &fleet.Delivery{
		ID:      id,
		DroneID: row.DroneID,
		Status:  fleet.DeliveryCancelled,
		Notes:   row.Notes,
	}
	delivery.Priority = row.Priority
	if err := s.store.UpdateDelivery(delivery); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update delivery"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
