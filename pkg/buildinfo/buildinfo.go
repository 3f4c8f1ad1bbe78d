// Package buildinfo carries version information injected at link time:
//
//	go build -ldflags "-X github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/spanners
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON form served by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info { return Info{Version: Version, Commit: Commit, Date: Date} }

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
