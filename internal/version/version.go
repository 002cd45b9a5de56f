package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/printerm/printerm/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/printerm/printerm/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/printerm/printerm/internal/version.Date={{.Date}}
)
