package build

import "fmt"

// Set at link time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Describe is the one-line banner of the version command.
func Describe() string {
	return fmt.Sprintf("element-locator %s (built %s)", FullVersion(), BuildTime)
}
