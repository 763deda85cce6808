// Package buildinfo reports which boxroute build is running.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/boxroute/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/boxroute/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/boxroute/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/boxroute
//
// A binary built with go install leaves them unset. [Current] then falls back
// to the module version and VCS stamps the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	defaultDate    = "unknown"
)

var (
	// Version is the release tag, e.g. "v0.3.0".
	Version = defaultVersion

	// Commit is the git revision the binary was built from.
	Commit = defaultCommit

	// Date is the build time in RFC 3339 form.
	Date = defaultDate
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build description. The layout service returns it
// from its health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Current returns the ldflags values, filling any left at their defaults
// from the build information embedded in the binary.
func Current() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == defaultVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == defaultCommit {
				info.Commit = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.Date == defaultDate {
				info.Date = s.Value
			}
		}
	}
	return info
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", i.Version, i.Commit, i.Date, i.Go)
}

// Template returns the version template for cobra.
func Template() string {
	return "{{.Name}} " + Current().String() + "\n"
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
