// ABOUTME: HTTP tests for the fleet API and dashboard using httptest.
// ABOUTME: Each test runs against an in-memory fleet with a temp-dir store.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/store"
	"github.com/aeriform/dronewatch/theme"
)

func newTestServer(t *testing.T, token string, droneCount int) (*Server, *fleet.Manager) {
	t.Helper()

	base := fleet.Position{Lat: 37.7749, Lon: -122.4194}
	m := fleet.NewManager(base, fleet.Bounds{}, nil, 7)
	for i := 0; i < droneCount; i++ {
		m.AddDrone(fleet.NewDrone(base, fleet.DefaultSpecification()))
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "fleet.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	s, err := NewServer(ServerConfig{
		AuthToken: token,
		Manager:   m,
		Store:     st,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, m
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, "", 0)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestStylesheetServed(t *testing.T) {
	s, _ := newTestServer(t, "", 0)
	rec := doJSON(t, s, http.MethodGet, "/static/dashboard.css", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /static/dashboard.css = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
	css := rec.Body.String()
	for _, want := range []string{":root", ".drone-list", ".stat-cards", "@media (max-width: 768px)", "@keyframes spin"} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}
}

func TestDashboardPage(t *testing.T) {
	s, _ := newTestServer(t, "", 2)
	rec := doJSON(t, s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{`class="main-content"`, `class="drone-list"`, `class="stat-cards"`, "idle-status"} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAuthProtectsAPIOnly(t *testing.T) {
	s, _ := newTestServer(t, "hunter2", 1)

	rec := doJSON(t, s, http.MethodGet, "/api/drones/", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated API call = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/drones/", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	authed := httptest.NewRecorder()
	s.ServeHTTP(authed, req)
	if authed.Code != http.StatusOK {
		t.Errorf("authenticated API call = %d, want 200", authed.Code)
	}

	for _, path := range []string{"/", "/health", "/static/dashboard.css"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s without auth = %d, want 200", path, rec.Code)
		}
	}
}

func TestDroneLifecycle(t *testing.T) {
	s, _ := newTestServer(t, "", 0)

	rec := doJSON(t, s, http.MethodPost, "/api/drones/", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/drones = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created droneView
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "idle" || created.StatusClass != "idle-status" {
		t.Errorf("new drone status=%q class=%q, want idle/idle-status", created.Status, created.StatusClass)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/drones/"+created.ID+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET drone = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/drones/"+created.ID+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE drone = %d, want 200", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/drones/"+created.ID+"/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET removed drone = %d, want 404", rec.Code)
	}
}

func TestDeliveryAssignAndCancel(t *testing.T) {
	s, m := newTestServer(t, "", 2)

	rec := doJSON(t, s, http.MethodPost, "/api/deliveries/", map[string]any{
		"destination":    map[string]float64{"lat": 37.790, "lon": -122.410},
		"payload_weight": 1.2,
		"notes":          "leave at **front desk**",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/deliveries = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created struct {
		Delivery fleet.Delivery `json:"delivery"`
		DroneID  string         `json:"drone_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.DroneID == "" {
		t.Fatal("no drone assigned")
	}
	d, err := m.Drone(created.DroneID)
	if err != nil {
		t.Fatalf("assigned drone missing: %v", err)
	}
	if d.Status != fleet.StatusInTransit {
		t.Errorf("assigned drone status = %v, want in_transit", d.Status)
	}

	id := created.Delivery.ID.String()
	rec = doJSON(t, s, http.MethodGet, "/api/deliveries/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET delivery = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/deliveries/%s/cancel", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel delivery = %d, want 200: %s", rec.Code, rec.Body)
	}
	d, err = m.Drone(created.DroneID)
	if err != nil {
		t.Fatalf("assigned drone missing after cancel: %v", err)
	}
	if d.Status != fleet.StatusReturning {
		t.Errorf("drone status after cancel = %v, want returning", d.Status)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/deliveries/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET cancelled delivery = %d, want 200", rec.Code)
	}
	var row store.DeliveryRow
	if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode delivery: %v", err)
	}
	if row.Status != string(fleet.DeliveryCancelled) {
		t.Errorf("stored delivery status = %q, want cancelled", row.Status)
	}

	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/deliveries/%s/cancel", id), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second cancel = %d, want 409", rec.Code)
	}
}

func TestDeliveryValidation(t *testing.T) {
	s, _ := newTestServer(t, "", 1)

	rec := doJSON(t, s, http.MethodPost, "/api/deliveries/", map[string]any{
		"destination": map[string]float64{"lat": 37.79, "lon": -122.41},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing payload = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/deliveries/", map[string]any{
		"payload_weight": 1.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing destination = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/deliveries/?status=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status filter = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/deliveries/not-a-ulid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad delivery ID = %d, want 400", rec.Code)
	}
}

func TestDeliveryNoDroneAvailable(t *testing.T) {
	s, _ := newTestServer(t, "", 0)

	rec := doJSON(t, s, http.MethodPost, "/api/deliveries/", map[string]any{
		"destination":    map[string]float64{"lat": 37.79, "lon": -122.41},
		"payload_weight": 1.0,
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("empty fleet = %d, want 503", rec.Code)
	}
}

func TestFleetEndpoints(t *testing.T) {
	s, _ := newTestServer(t, "", 3)

	rec := doJSON(t, s, http.MethodGet, "/api/fleet/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/fleet/status = %d, want 200", rec.Code)
	}
	var status struct {
		Drones    []droneView     `json:"drones"`
		Analytics fleet.Analytics `json:"analytics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(status.Drones) != 3 || status.Analytics.TotalDrones != 3 {
		t.Errorf("status has %d drones, analytics %d, want 3", len(status.Drones), status.Analytics.TotalDrones)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/analytics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/fleet/analytics = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/weather", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/fleet/weather = %d, want 200", rec.Code)
	}
	var weather weatherView
	if err := json.Unmarshal(rec.Body.Bytes(), &weather); err != nil {
		t.Fatalf("decode weather: %v", err)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/weather?lat=abc&lon=1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad weather coords = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/weather?lat=50.0&lon=50.0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("weather outside region = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/fleet/health = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/fleet/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/fleet/metrics = %d, want 200", rec.Code)
	}
}

func TestMaintenanceEndpoints(t *testing.T) {
	s, m := newTestServer(t, "", 0)
	drone := fleet.NewDrone(fleet.Position{Lat: 37.7749, Lon: -122.4194}, fleet.DefaultSpecification())
	m.AddDrone(drone)

	rec := doJSON(t, s, http.MethodPost, "/api/drones/"+drone.ID+"/maintenance", map[string]string{
		"maintenance_type": "routine",
		"description":      "rotor swap",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("schedule maintenance = %d, want 201: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/drones/"+drone.ID+"/maintenance", map[string]string{
		"maintenance_type": "refit",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown maintenance type = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/drones/"+drone.ID+"/maintenance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list maintenance = %d, want 200", rec.Code)
	}
	var orders []store.MaintenanceRow
	if err := json.Unmarshal(rec.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("listed %d orders, want 1", len(orders))
	}

	drone.ComponentHealth["motors"] = 10
	drone.MaintenanceScore = 40
	rec = doJSON(t, s, http.MethodPost, "/api/drones/"+drone.ID+"/maintenance/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete maintenance = %d, want 200", rec.Code)
	}
	if drone.MaintenanceScore != 100 {
		t.Errorf("maintenance score = %v after completion, want 100", drone.MaintenanceScore)
	}
}

func TestEmergencyReturn(t *testing.T) {
	s, m := newTestServer(t, "", 1)
	droneID := m.Drones()[0].ID

	rec := doJSON(t, s, http.MethodPost, "/api/drones/"+droneID+"/emergency-return", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("emergency return = %d, want 200", rec.Code)
	}
	drone, err := m.Drone(droneID)
	if err != nil {
		t.Fatalf("drone missing after recall: %v", err)
	}
	if drone.Status != fleet.StatusReturning {
		t.Errorf("drone status = %v, want returning", drone.Status)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/drones/nope/emergency-return", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown drone = %d, want 404", rec.Code)
	}
}

func TestEmergencyReturnPersistsDeliveryCancellation(t *testing.T) {
	s, m := newTestServer(t, "", 1)

	rec := doJSON(t, s, http.MethodPost, "/api/deliveries/", map[string]any{
		"destination":    map[string]float64{"lat": 37.790, "lon": -122.410},
		"payload_weight": 0.8,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/deliveries = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created struct {
		Delivery fleet.Delivery `json:"delivery"`
		DroneID  string         `json:"drone_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/drones/"+created.DroneID+"/emergency-return", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("emergency return = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/deliveries/"+created.Delivery.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET delivery = %d, want 200", rec.Code)
	}
	var row store.DeliveryRow
	if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode delivery: %v", err)
	}
	if row.Status != string(fleet.DeliveryCancelled) {
		t.Errorf("stored delivery status = %q, want cancelled", row.Status)
	}
	if _, err := m.Drone(created.DroneID); err != nil {
		t.Fatalf("drone missing after recall: %v", err)
	}
}

func TestNewServerRejectsInvalidTheme(t *testing.T) {
	base := fleet.Position{Lat: 37.7749, Lon: -122.4194}
	m := fleet.NewManager(base, fleet.Bounds{}, nil, 7)
	st, err := store.Open(filepath.Join(t.TempDir(), "fleet.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	bad := theme.Dashboard()
	bad.Rules = append(bad.Rules, theme.Rule{
		Selector: ".broken",
		Decls:    []theme.Decl{{Property: "color", Value: theme.Var("no-such-token")}},
	})
	if _, err := NewServer(ServerConfig{Manager: m, Store: st, Theme: bad}); err == nil {
		t.Fatal("NewServer accepted a style table with an unresolvable token reference")
	}
}

func TestTelemetryNewestFirst(t *testing.T) {
	s, m := newTestServer(t, "", 0)
	drone := fleet.NewDrone(fleet.Position{Lat: 37.7749, Lon: -122.4194}, fleet.DefaultSpecification())
	m.AddDrone(drone)

	// Each leg drains the battery, so sample order is observable through it.
	for i := 0; i < 3; i++ {
		pos := fleet.Position{Lat: 37.7749 + float64(i+1)*0.01, Lon: -122.4194}
		if err := drone.MoveTo(pos, 100, nil); err != nil {
			t.Fatalf("MoveTo leg %d: %v", i, err)
		}
	}

	rec := doJSON(t, s, http.MethodGet, "/api/drones/"+drone.ID+"/telemetry?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET telemetry = %d, want 200", rec.Code)
	}
	var history []fleet.Telemetry
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode telemetry: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d samples, want 2", len(history))
	}
	if history[0].BatteryPct >= history[1].BatteryPct {
		t.Errorf("samples not newest first: battery %v then %v", history[0].BatteryPct, history[1].BatteryPct)
	}
}
