// Package version carries build metadata injected at link time via
// -ldflags "-X github.com/banshee-data/corner.report/internal/version.Version=...".
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description suitable for startup logs.
func String() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, GitSHA, BuildTime)
}
