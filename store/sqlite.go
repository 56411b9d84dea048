// ABOUTME: SQLite-backed store for drones, deliveries, maintenance orders, and telemetry history.
// ABOUTME: Provides upsert, list, and prune operations; the live fleet state stays in memory.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// DroneRow is a drone row for list query results.
type DroneRow struct {
	ID               string
	Model            string
	Status           string
	Lat              float64
	Lon              float64
	AltitudeM        float64
	BatteryPct       float64
	MaintenanceScore float64
	FlightHours      float64
	ComponentHealth  map[string]float64
	LastMaintenance  string
	UpdatedAt        string
}

// DeliveryRow is a delivery row for list query results.
type DeliveryRow struct {
	ID          string
	DroneID     string
	Status      string
	OriginLat   float64
	OriginLon   float64
	DestLat     float64
	DestLon     float64
	PayloadKg   float64
	Priority    string
	Notes       string
	StartedAt   string
	CompletedAt *string
}

// MaintenanceRow is a maintenance order row for list query results.
type MaintenanceRow struct {
	ID           string
	DroneID      string
	Type         string
	Description  string
	ScheduledFor string
	Completed    bool
	CompletedAt  *string
	Notes        string
	Technician   string
	Cost         float64
}

// Store is the SQLite persistence layer. The in-memory fleet manager is the
// source of truth for live state; the store keeps history and survives
// restarts.
type Store struct {
	db *sql.DB
}

// Open opens or creates the fleet database at the given path and ensures
// the schema is up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS drones (
			drone_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			status TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			altitude REAL NOT NULL,
			battery REAL NOT NULL,
			maintenance_score REAL NOT NULL,
			flight_hours REAL NOT NULL,
			component_health TEXT NOT NULL,
			last_maintenance TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS deliveries (
			delivery_id TEXT PRIMARY KEY,
			drone_id TEXT NOT NULL,
			status TEXT NOT NULL,
			origin_lat REAL NOT NULL,
			origin_lon REAL NOT NULL,
			dest_lat REAL NOT NULL,
			dest_lon REAL NOT NULL,
			payload_kg REAL NOT NULL,
			priority TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			completed_at TEXT
		);

		CREATE TABLE IF NOT EXISTS maintenance_orders (
			order_id TEXT PRIMARY KEY,
			drone_id TEXT NOT NULL,
			order_type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			scheduled_for TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			notes TEXT NOT NULL DEFAULT '',
			technician TEXT NOT NULL DEFAULT '',
			cost REAL NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS telemetry (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			drone_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			altitude REAL NOT NULL,
			battery REAL NOT NULL,
			status TEXT NOT NULL,
			maintenance_score REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_telemetry_drone ON telemetry(drone_id, recorded_at);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertDrone writes the drone's current state.
func (s *Store) UpsertDrone(d *fleet.Drone) error {
	health, err := json.Marshal(d.ComponentHealth)
	if err != nil {
		return fmt.Errorf("marshal component health: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO drones (drone_id, model, status, lat, lon, altitude, battery,
			maintenance_score, flight_hours, component_health, last_maintenance, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(drone_id) DO UPDATE SET
			status = excluded.status,
			lat = excluded.lat,
			lon = excluded.lon,
			altitude = excluded.altitude,
			battery = excluded.battery,
			maintenance_score = excluded.maintenance_score,
			flight_hours = excluded.flight_hours,
			component_health = excluded.component_health,
			last_maintenance = excluded.last_maintenance,
			updated_at = excluded.updated_at`,
		d.ID, d.Spec.Model, string(d.Status), d.Position.Lat, d.Position.Lon,
		d.AltitudeM, d.BatteryPct, d.MaintenanceScore, d.FlightHours,
		string(health), d.LastMaintenance.Format(timeFormat), d.LastUpdated.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("upsert drone: %w", err)
	}
	return nil
}

// DeleteDrone removes a drone row and its telemetry history.
func (s *Store) DeleteDrone(id string) error {
	if _, err := s.db.Exec("DELETE FROM telemetry WHERE drone_id = ?", id); err != nil {
		return fmt.Errorf("delete telemetry: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM drones WHERE drone_id = ?", id); err != nil {
		return fmt.Errorf("delete drone: %w", err)
	}
	return nil
}

// ListDrones returns all drone rows ordered by ID.
func (s *Store) ListDrones() ([]DroneRow, error) {
	rows, err := s.db.Query(
		`SELECT drone_id, model, status, lat, lon, altitude, battery,
			maintenance_score, flight_hours, component_health, last_maintenance, updated_at
		 FROM drones ORDER BY drone_id`)
	if err != nil {
		return nil, fmt.Errorf("query drones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var drones []DroneRow
	for rows.Next() {
		var d DroneRow
		var health string
		if err := rows.Scan(&d.ID, &d.Model, &d.Status, &d.Lat, &d.Lon, &d.AltitudeM,
			&d.BatteryPct, &d.MaintenanceScore, &d.FlightHours, &health,
			&d.LastMaintenance, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan drone row: %w", err)
		}
		if err := json.Unmarshal([]byte(health), &d.ComponentHealth); err != nil {
			return nil, fmt.Errorf("unmarshal component health: %w", err)
		}
		drones = append(drones, d)
	}
	return drones, rows.Err()
}

// CreateDelivery inserts a delivery record.
func (s *Store) CreateDelivery(d *fleet.Delivery) error {
	var completed *string
	if d.CompletedAt != nil {
		ts := d.CompletedAt.Format(timeFormat)
		completed = &ts
	}
	_, err := s.db.Exec(
		`INSERT INTO deliveries (delivery_id, drone_id, status, origin_lat, origin_lon,
			dest_lat, dest_lon, payload_kg, priority, notes, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), d.DroneID, string(d.Status), d.Origin.Lat, d.Origin.Lon,
		d.Destination.Lat, d.Destination.Lon, d.PayloadKg, d.Priority, d.Notes,
		d.StartedAt.Format(timeFormat), completed,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// UpdateDelivery rewrites a delivery's mutable fields.
func (s *Store) UpdateDelivery(d *fleet.Delivery) error {
	var completed *string
	if d.CompletedAt != nil {
		ts := d.CompletedAt.Format(timeFormat)
		completed = &ts
	}
	res, err := s.db.Exec(
		`UPDATE deliveries SET drone_id = ?, status = ?, priority = ?, notes = ?, completed_at = ?
		 WHERE delivery_id = ?`,
		d.DroneID, string(d.Status), d.Priority, d.Notes, completed, d.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update delivery rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delivery %s not found", d.ID)
	}
	return nil
}

// GetDelivery returns one delivery row by ID.
func (s *Store) GetDelivery(id ulid.ULID) (*DeliveryRow, error) {
	row := s.db.QueryRow(
		`SELECT delivery_id, drone_id, status, origin_lat, origin_lon, dest_lat, dest_lon,
			payload_kg, priority, notes, started_at, completed_at
		 FROM deliveries WHERE delivery_id = ?`, id.String())

	var d DeliveryRow
	err := row.Scan(&d.ID, &d.DroneID, &d.Status, &d.OriginLat, &d.OriginLon,
		&d.DestLat, &d.DestLon, &d.PayloadKg, &d.Priority, &d.Notes, &d.StartedAt, &d.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan delivery row: %w", err)
	}
	return &d, nil
}

// ListDeliveries returns deliveries newest first, optionally filtered by status.
func (s *Store) ListDeliveries(status string) ([]DeliveryRow, error) {
	query := `SELECT delivery_id, drone_id, status, origin_lat, origin_lon, dest_lat, dest_lon,
			payload_kg, priority, notes, started_at, completed_at
		 FROM deliveries`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY delivery_id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var deliveries []DeliveryRow
	for rows.Next() {
		var d DeliveryRow
		if err := rows.Scan(&d.ID, &d.DroneID, &d.Status, &d.OriginLat, &d.OriginLon,
			&d.DestLat, &d.DestLon, &d.PayloadKg, &d.Priority, &d.Notes,
			&d.StartedAt, &d.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// CreateMaintenanceOrder inserts a maintenance work order.
func (s *Store) CreateMaintenanceOrder(o *fleet.MaintenanceOrder) error {
	var completed *string
	if o.CompletedAt != nil {
		ts := o.CompletedAt.Format(timeFormat)
		completed = &ts
	}
	_, err := s.db.Exec(
		`INSERT INTO maintenance_orders (order_id, drone_id, order_type, description,
			scheduled_for, completed, completed_at, notes, technician, cost)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID.String(), o.DroneID, string(o.Type), o.Description,
		o.ScheduledFor.Format(timeFormat), o.Completed, completed, o.Notes, o.Technician, o.Cost,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance order: %w", err)
	}
	return nil
}

// ListMaintenanceOrders returns a drone's maintenance orders newest first.
func (s *Store) ListMaintenanceOrders(droneID string) ([]MaintenanceRow, error) {
	rows, err := s.db.Query(
		`SELECT order_id, drone_id, order_type, description, scheduled_for,
			completed, completed_at, notes, technician, cost
		 FROM maintenance_orders WHERE drone_id = ? ORDER BY order_id DESC`, droneID)
	if err != nil {
		return nil, fmt.Errorf("query maintenance orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orders []MaintenanceRow
	for rows.Next() {
		var o MaintenanceRow
		if err := rows.Scan(&o.ID, &o.DroneID, &o.Type, &o.Description, &o.ScheduledFor,
			&o.Completed, &o.CompletedAt, &o.Notes, &o.Technician, &o.Cost); err != nil {
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// RecordTelemetry appends one telemetry observation for a drone.
func (s *Store) RecordTelemetry(droneID string, t fleet.Telemetry) error {
	_, err := s.db.Exec(
		`INSERT INTO telemetry (drone_id, recorded_at, lat, lon, altitude, battery, status, maintenance_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		droneID, t.Timestamp.Format(timeFormat), t.Position.Lat, t.Position.Lon,
		t.AltitudeM, t.BatteryPct, string(t.Status), t.MaintenanceScore,
	)
	if err != nil {
		return fmt.Errorf("insert telemetry: %w", err)
	}
	return nil
}

// ListTelemetry returns up to limit recent observations for a drone, newest first.
func (s *Store) ListTelemetry(droneID string, limit int) ([]fleet.Telemetry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT recorded_at, lat, lon, altitude, battery, status, maintenance_score
		 FROM telemetry WHERE drone_id = ? ORDER BY id DESC LIMIT ?`, droneID, limit)
	if err != nil {
		return nil, fmt.Errorf("query telemetry: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []fleet.Telemetry
	for rows.Next() {
		var t fleet.Telemetry
		var ts, status string
		if err := rows.Scan(&ts, &t.Position.Lat, &t.Position.Lon, &t.AltitudeM,
			&t.BatteryPct, &status, &t.MaintenanceScore); err != nil {
			return nil, fmt.Errorf("scan telemetry row: %w", err)
		}
		t.Status = fleet.Status(status)
		if parsed, err := time.Parse(timeFormat, ts); err == nil {
			t.Timestamp = parsed
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// PruneTelemetry deletes observations older than cutoff, returning the
// number removed.
func (s *Store) PruneTelemetry(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM telemetry WHERE recorded_at < ?", cutoff.Format(timeFormat))
	if err != nil {
		return 0, fmt.Errorf("prune telemetry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune telemetry rows: %w", err)
	}
	return n, nil
}
