// ABOUTME: Server configuration loaded from DRONEWATCH_* environment variables.
// ABOUTME: Enforces security constraint: remote access requires auth token.
package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ConfigError represents configuration validation errors.
var (
	ErrRemoteWithoutToken = errors.New(
		"DRONEWATCH_ALLOW_REMOTE is true but DRONEWATCH_AUTH_TOKEN is not set; refusing to start without authentication",
	)
	ErrNonLoopbackBind = errors.New(
		"DRONEWATCH_BIND is a non-loopback address but DRONEWATCH_ALLOW_REMOTE is not true; set DRONEWATCH_ALLOW_REMOTE=true and DRONEWATCH_AUTH_TOKEN to allow remote access",
	)
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	Home         string        // Data directory (DRONEWATCH_HOME, default: ~/.dronewatch)
	Bind         string        // Socket address (DRONEWATCH_BIND, default: 127.0.0.1:7710)
	AllowRemote  bool          // Allow non-loopback connections (DRONEWATCH_ALLOW_REMOTE, default: false)
	AuthToken    string        // Bearer token for API auth (DRONEWATCH_AUTH_TOKEN, optional)
	FleetConfig  string        // Path to fleet YAML config (DRONEWATCH_FLEET_CONFIG, optional)
	TickInterval time.Duration // Simulation tick interval (DRONEWATCH_TICK_SECONDS, default: 5s)
	FleetSize    int           // Drones created when no fleet config is given (DRONEWATCH_FLEET_SIZE, default: 5)
}

// DatabasePath returns the path of the fleet database inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Home, "fleet.db")
}

// ConfigFromEnv loads configuration from DRONEWATCH_* environment variables with sensible defaults.
func ConfigFromEnv() (*Config, error) {
	home := envOrDefault("DRONEWATCH_HOME", "")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "/tmp"
		}
		home = filepath.Join(homeDir, ".dronewatch")
	}

	bind := envOrDefault("DRONEWATCH_BIND", "127.0.0.1:7710")

	allowRemote := false
	if v := os.Getenv("DRONEWATCH_ALLOW_REMOTE"); v == "true" || v == "1" || v == "yes" {
		allowRemote = true
	}

	authToken := os.Getenv("DRONEWATCH_AUTH_TOKEN")
	fleetConfig := os.Getenv("DRONEWATCH_FLEET_CONFIG")

	tick := 5 * time.Second
	if v := os.Getenv("DRONEWATCH_TICK_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("DRONEWATCH_TICK_SECONDS=%q: must be a positive integer", v)
		}
		tick = time.Duration(secs) * time.Second
	}

	fleetSize := 5
	if v := os.Getenv("DRONEWATCH_FLEET_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DRONEWATCH_FLEET_SIZE=%q: must be a positive integer", v)
		}
		fleetSize = n
	}

	// Security: remote access requires auth token
	if allowRemote && authToken == "" {
		return nil, ErrRemoteWithoutToken
	}

	// Security: refuse non-loopback binds unless explicitly opting into remote access.
	// Checks both IP literals and hostnames; only 127.0.0.0/8, ::1, and "localhost"
	// are considered safe.
	if !allowRemote {
		if host, _, err := net.SplitHostPort(bind); err == nil && host != "" {
			ip := net.ParseIP(host)
			switch {
			case ip != nil && ip.IsLoopback():
				// Safe: 127.x.x.x or ::1
			case ip != nil:
				// Non-loopback IP literal (e.g. 0.0.0.0, 192.168.x.x)
				return nil, fmt.Errorf("%w: DRONEWATCH_BIND=%s", ErrNonLoopbackBind, bind)
			case host == "localhost":
				// Safe: conventional loopback hostname
			default:
				// Non-localhost hostname (e.g. myhost, example.com)
				return nil, fmt.Errorf("%w: DRONEWATCH_BIND=%s", ErrNonLoopbackBind, bind)
			}
		}
	}

	return &Config{
		Home:         home,
		Bind:         bind,
		AllowRemote:  allowRemote,
		AuthToken:    authToken,
		FleetConfig:  fleetConfig,
		TickInterval: tick,
		FleetSize:    fleetSize,
	}, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
