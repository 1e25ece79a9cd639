// Package buildinfo provides build-time version information.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/niosHD/symbolator/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/niosHD/symbolator/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/niosHD/symbolator/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with `go install module@version` carry no ldflags; for
// those the module version and VCS stamp recorded by the toolchain are used.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

var fill sync.Once

// resolve fills unset variables from the embedded build info.
func resolve() {
	fill.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && Commit == "none":
				Commit = s.Value
			case s.Key == "vcs.time" && Date == "unknown":
				Date = s.Value
			}
		}
	})
}

// Get returns the resolved version, commit and date.
func Get() (version, commit, date string) {
	resolve()
	return Version, Commit, Date
}

// String returns the formatted build information.
func String() string {
	v, c, d := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", v, c, d)
}

// Template returns the version template string for cobra.
func Template() string {
	v, c, d := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}
