// Package version holds build metadata injected at link time.
package version

// Version is reported by --version. Set it with
// go build -ldflags "-X git.home.luguber.info/inful/layoutrender/internal/version.Version=v0.1.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
