// Package buildinfo reports the version of the pigeon binary.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/pigeon/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/pigeon/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/pigeon/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with `go install` carry no ldflags; for those the module
// version and VCS stamp embedded by the Go toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// graphvizModule is reported next to the pigeon version.
const graphvizModule = "github.com/goccy/go-graphviz"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fill(info)
	}
}

// fill replaces unset variables with values from the embedded build info.
func fill(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// Graphviz returns the go-graphviz module version linked into the binary,
// or "unknown".
func Graphviz() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return depVersion(info, graphvizModule)
}

func depVersion(info *debug.BuildInfo, path string) string {
	for _, d := range info.Deps {
		if d.Path == path {
			return d.Version
		}
	}
	return "unknown"
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\ngraphviz: %s\n", Version, Commit, Date, Graphviz())
}
