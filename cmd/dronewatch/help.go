// ABOUTME: Help display for the dronewatch CLI with grouped flags and environment status.
// ABOUTME: Provides printHelp for usage output and envStatus for configuration detection.
package main

import (
	"fmt"
	"io"
	"os"
)

const droneASCII = `
      __/\__              __/\__
      ==/\==              ==/\==
   ______|___________________|______
  (________ DRONEWATCH _____________)
      ==/\==              ==/\==
        \/                  \/
`

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples, and environment status.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, droneASCII)
	fmt.Fprintf(w, "dronewatch %s - drone fleet monitoring dashboard\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dronewatch -serve                   Start the fleet API and web dashboard")
	fmt.Fprintln(w, "  dronewatch -tui                     Run the interactive terminal monitor")
	fmt.Fprintln(w, "  dronewatch -validate                Validate theme and fleet configuration")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -serve                Start HTTP server mode")
	fmt.Fprintln(w, "  -bind <addr>          Listen address (default: 127.0.0.1:7710)")
	fmt.Fprintln(w, "  -fleet-config <file>  Fleet YAML configuration file")
	fmt.Fprintln(w, "  -data-dir <dir>       Persistent state directory (default: XDG data dir)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -tui                  Run the terminal fleet monitor")
	fmt.Fprintln(w, "  -validate             Validate configuration without starting anything")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  dronewatch -serve")
	fmt.Fprintln(w, "  dronewatch -serve -bind 127.0.0.1:8080 -fleet-config fleet.yaml")
	fmt.Fprintln(w, "  dronewatch -tui -fleet-config fleet.yaml")
	fmt.Fprintln(w, "  dronewatch -validate -fleet-config fleet.yaml")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  DRONEWATCH_BIND            %s\n", envStatus("DRONEWATCH_BIND"))
	fmt.Fprintf(w, "  DRONEWATCH_AUTH_TOKEN      %s\n", envStatus("DRONEWATCH_AUTH_TOKEN"))
	fmt.Fprintf(w, "  DRONEWATCH_FLEET_CONFIG    %s\n", envStatus("DRONEWATCH_FLEET_CONFIG"))
	fmt.Fprintf(w, "  DRONEWATCH_TICK_SECONDS    %s\n", envStatus("DRONEWATCH_TICK_SECONDS"))
	fmt.Fprintf(w, "  DRONEWATCH_FLEET_SIZE      %s\n", envStatus("DRONEWATCH_FLEET_SIZE"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Binding outside loopback requires DRONEWATCH_AUTH_TOKEN and")
	fmt.Fprintln(w, "  DRONEWATCH_ALLOW_REMOTE=true.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
