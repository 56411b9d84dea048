// ABOUTME: The dronewatch HTTP server: fleet API and the monitoring dashboard
// ABOUTME: behind a single chi router.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/store"
	"github.com/aeriform/dronewatch/theme"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the fleet monitoring HTTP server. It serves the JSON API under
// /api and the dashboard at /.
type Server struct {
	manager   *fleet.Manager
	store     *store.Store
	templates *TemplateEngine
	theme     *theme.Table
	router    chi.Router
	addr      string
	started   time.Time

	cssOnce sync.Once
	css     string
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr      string // listen address (default: "127.0.0.1:7710")
	AuthToken string // bearer token for /api routes; empty disables auth
	Manager   *fleet.Manager
	Store     *store.Store
	Theme     *theme.Table // style table to serve (default: theme.Dashboard())
}

// NewServer creates a new Server with the given configuration. It parses the
// embedded dashboard templates, validates the style table, and sets up
// routing. A table that fails validation refuses startup.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7710"
	}
	if cfg.Manager == nil {
		return nil, fmt.Errorf("Manager must not be nil")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("Store must not be nil")
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.Dashboard()
	}
	if err := cfg.Theme.Validate(); err != nil {
		return nil, fmt.Errorf("validating style table: %w", err)
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		manager:   cfg.Manager,
		store:     cfg.Store,
		templates: tmpl,
		theme:     cfg.Theme,
		addr:      cfg.Addr,
		started:   time.Now().UTC(),
	}
	s.router = s.buildRouter(cfg.AuthToken)
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured address with
// timeouts to prevent resource exhaustion from slow clients.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter(authToken string) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(AuthMiddleware(authToken))

	r.Get("/", s.handleDashboard)
	r.Get("/health", s.handleHealth)
	r.Get("/static/dashboard.css", s.handleStylesheet)

	r.Route("/api", func(r chi.Router) {
		r.Route("/drones", func(r chi.Router) {
			r.Get("/", s.handleDroneList)
			r.Post("/", s.handleDroneCreate)

			r.Route("/{droneID}", func(r chi.Router) {
				r.Get("/", s.handleDroneGet)
				r.Delete("/", s.handleDroneDelete)
				r.Get("/telemetry", s.handleDroneTelemetry)
				r.Get("/maintenance", s.handleMaintenanceList)
				r.Post("/maintenance", s.handleMaintenanceSchedule)
				r.Post("/maintenance/complete", s.handleMaintenanceComplete)
				r.Post("/emergency-return", s.handleEmergencyReturn)
			})
		})

		r.Route("/fleet", func(r chi.Router) {
			r.Get("/status", s.handleFleetStatus)
			r.Get("/weather", s.handleFleetWeather)
			r.Get("/analytics", s.handleFleetAnalytics)
			r.Get("/health", s.handleFleetHealth)
			r.Get("/metrics", s.handleFleetMetrics)
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", s.handleDeliveryList)
			r.Post("/", s.handleDeliveryCreate)
			r.Get("/{deliveryID}", s.handleDeliveryGet)
			r.Post("/{deliveryID}/cancel", s.handleDeliveryCancel)
		})
	})

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
