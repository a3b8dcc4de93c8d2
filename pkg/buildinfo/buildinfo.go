// Package buildinfo exposes the version stamped into replay binaries at
// build time, consumed by the `replay version` command and the sidecar's
// /version endpoint.
package buildinfo

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// Stamped via ldflags, e.g.
// -X github.com/replaykit/replay/pkg/buildinfo.Version=v0.2.0
// -X github.com/replaykit/replay/pkg/buildinfo.Commit=4c1f9ae
// -X github.com/replaykit/replay/pkg/buildinfo.BuildTime=2026-08-31T09:00:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info identifies one replay binary. ServiceName distinguishes the CLI from
// the sidecar, which share a version.
type Info struct {
	ServiceName string `json:"service_name"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildTime   string `json:"build_time"`
	GoVersion   string `json:"go_version"`
}

// Get returns the build info under the given service name.
func Get(serviceName string) Info {
	return Info{
		ServiceName: serviceName,
		Version:     Version,
		Commit:      Commit,
		BuildTime:   BuildTime,
		GoVersion:   runtime.Version(),
	}
}

// String renders a one-liner like "v0.2.0 (4c1f9ae, 2026-08-31T09:00:00Z)".
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}

// Handler serves the build info as JSON.
func Handler(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Get(serviceName))
	}
}
