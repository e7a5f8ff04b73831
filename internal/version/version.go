// Package version holds build metadata injected with -ldflags.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
