package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/raykroeker/vimfiles/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/raykroeker/vimfiles/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/raykroeker/vimfiles/internal/version.Date={{.Date}}
)

// String renders the multi-line version report.
func String(name string) string {
	return name + " version " + Version + "\n  commit: " + Commit + "\n  built:  " + Date + "\n"
}
