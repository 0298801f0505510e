package config

// Build metadata set at link time, for example:
//
//	go build -ldflags "-X activitycast/internal/config.version=1.2.3 \
//	    -X activitycast/internal/config.commit=$(git rev-parse --short HEAD) \
//	    -X activitycast/internal/config.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/api
//
// Local builds keep the defaults.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// NewBuildInfo returns the linker-injected build metadata.
func NewBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}
}

// String renders the build metadata for version output.
func (b BuildInfo) String() string {
	return b.Version + " (" + b.Commit + ", built " + b.BuildTime + ")"
}
