// ABOUTME: CLI entrypoint for the dronewatch fleet monitor with serve, tui, and validate modes.
// ABOUTME: Wires together the fleet simulation, SQLite store, HTTP server, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aeriform/dronewatch/fleet"
	"github.com/aeriform/dronewatch/server"
	"github.com/aeriform/dronewatch/store"
	"github.com/aeriform/dronewatch/theme"
	"github.com/aeriform/dronewatch/tui"
	"github.com/aeriform/dronewatch/web"
)

var version = "dev"

// config holds all CLI configuration parsed from flags.
type config struct {
	serveMode    bool
	tuiMode      bool
	validateOnly bool
	bind         string
	fleetConfig  string
	dataDir      string
	showVersion  bool
}

func main() {
	loadDotEnv(".env")

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("dronewatch %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() config {
	var cfg config

	fs := flag.NewFlagSet("dronewatch", flag.ContinueOnError)
	fs.BoolVar(&cfg.serveMode, "serve", false, "Start the fleet API and web dashboard")
	fs.BoolVar(&cfg.tuiMode, "tui", false, "Run the interactive terminal monitor")
	fs.BoolVar(&cfg.validateOnly, "validate", false, "Validate configuration without starting anything")
	fs.StringVar(&cfg.bind, "bind", "", "Listen address (default: 127.0.0.1:7710)")
	fs.StringVar(&cfg.fleetConfig, "fleet-config", "", "Fleet YAML configuration file")
	fs.StringVar(&cfg.dataDir, "data-dir", "", "Data directory for persistent state (default: $XDG_DATA_HOME/dronewatch)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(os.Stderr, version)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	switch {
	case cfg.validateOnly:
		return runValidate(cfg)
	case cfg.serveMode:
		return runServe(cfg)
	case cfg.tuiMode:
		return runTUI(cfg)
	default:
		printHelp(os.Stderr, version)
		return 0
	}
}

// buildConfig merges environment configuration with flag overrides.
func buildConfig(cfg config) (*server.Config, error) {
	srvCfg, err := server.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.bind != "" {
		srvCfg.Bind = cfg.bind
	}
	if cfg.fleetConfig != "" {
		srvCfg.FleetConfig = cfg.fleetConfig
	}
	// The -data-dir flag wins over DRONEWATCH_HOME; with neither set, the
	// XDG data directory is used.
	if cfg.dataDir != "" || os.Getenv("DRONEWATCH_HOME") == "" {
		dir, err := resolveDataDir(cfg.dataDir)
		if err != nil {
			return nil, err
		}
		srvCfg.Home = dir
	}
	return srvCfg, nil
}

// buildFleet loads the fleet definition from the configured YAML file, or
// falls back to the default fleet when no file is given.
func buildFleet(srvCfg *server.Config) (*server.FleetFile, error) {
	if srvCfg.FleetConfig != "" {
		return server.LoadFleetFile(srvCfg.FleetConfig)
	}
	return server.DefaultFleet(srvCfg.FleetSize), nil
}

// runServe starts the simulation loop, persistence, and HTTP server.
func runServe(cfg config) int {
	srvCfg, err := buildConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ff, err := buildFleet(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	manager := ff.Manager()

	if err := os.MkdirAll(srvCfg.Home, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: create data dir: %v\n", err)
		return 1
	}
	st, err := store.Open(srvCfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open store: %v\n", err)
		return 1
	}
	defer func() { _ = st.Close() }()

	webServer, err := web.NewServer(web.ServerConfig{
		Addr:      srvCfg.Bind,
		AuthToken: srvCfg.AuthToken,
		Manager:   manager,
		Store:     st,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	go simulationLoop(ctx, manager, st, srvCfg.TickInterval)

	httpServer := &http.Server{
		Addr:              srvCfg.Bind,
		Handler:           webServer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("component=cli action=serve bind=%s fleet=%d tick=%s", srvCfg.Bind, ff.FleetSize, srvCfg.TickInterval)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// simulationLoop advances the fleet on every tick and persists drone state,
// telemetry, and finished deliveries. Telemetry older than a day is pruned
// hourly.
func simulationLoop(ctx context.Context, manager *fleet.Manager, st *store.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastPrune := time.Now().UTC()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			now := t.UTC()
			tickOnce(manager, st, now)

			if now.Sub(lastPrune) >= time.Hour {
				lastPrune = now
				if n, err := st.PruneTelemetry(now.Add(-24 * time.Hour)); err != nil {
					log.Printf("component=cli action=prune-telemetry error=%v", err)
				} else if n > 0 {
					log.Printf("component=cli action=prune-telemetry pruned=%d", n)
				}
			}
		}
	}
}

// tickOnce runs one simulation step and writes the results through: drone
// rows, the latest telemetry sample, and any delivery that reached a
// terminal state this step.
func tickOnce(manager *fleet.Manager, st *store.Store, now time.Time) {
	manager.Weather().Update()
	finished := manager.Tick(now)

	for i := range finished {
		if err := st.UpdateDelivery(&finished[i]); err != nil {
			log.Printf("component=cli action=persist-delivery delivery=%s error=%v", finished[i].ID, err)
		}
	}

	for _, d := range manager.Drones() {
		if err := st.UpsertDrone(d); err != nil {
			log.Printf("component=cli action=persist-drone drone=%s error=%v", d.ID, err)
			continue
		}
		if samples := d.Telemetry(); len(samples) > 0 {
			if err := st.RecordTelemetry(d.ID, samples[len(samples)-1]); err != nil {
				log.Printf("component=cli action=persist-telemetry drone=%s error=%v", d.ID, err)
			}
		}
	}
}

// runTUI builds the fleet and runs the terminal monitor.
func runTUI(cfg config) int {
	// The monitor derives its status colors from the style table.
	if err := theme.Dashboard().Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: theme: %v\n", err)
		return 1
	}

	srvCfg, err := buildConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ff, err := buildFleet(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := tui.Run(ff.Manager()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runValidate checks the dashboard theme and, when given, the fleet
// configuration file, without starting anything.
func runValidate(cfg config) int {
	if err := theme.Dashboard().Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
		return 1
	}
	fmt.Println("theme: ok")

	path := cfg.fleetConfig
	if path == "" {
		path = os.Getenv("DRONEWATCH_FLEET_CONFIG")
	}
	if path == "" {
		fmt.Println("fleet config: none given, defaults apply")
		return 0
	}

	ff, err := server.LoadFleetFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fleet config: %v\n", err)
		return 1
	}
	fmt.Printf("fleet config: ok (%d drones, base %.4f,%.4f)\n", ff.FleetSize, ff.Base.Lat, ff.Base.Lon)
	return 0
}
