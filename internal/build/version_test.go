package build_test

import (
	"testing"

	"github.com/rohmanhakim/element-locator/internal/build"
)

func setBuildInfo(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	prevVersion, prevCommit, prevTime := build.Version, build.Commit, build.BuildTime
	t.Cleanup(func() {
		build.Version, build.Commit, build.BuildTime = prevVersion, prevCommit, prevTime
	})
	build.Version, build.Commit, build.BuildTime = version, commit, buildTime
}

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{name: "defaults", version: "dev", commit: "none", want: "dev+none"},
		{name: "release", version: "0.3.0", commit: "9f2c1e7", want: "0.3.0+9f2c1e7"},
		{name: "no commit", version: "0.3.0", commit: "", want: "0.3.0+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuildInfo(t, tt.version, tt.commit, "unknown")

			if got := build.FullVersion(); got != tt.want {
				t.Errorf("FullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	setBuildInfo(t, "0.3.0", "9f2c1e7", "2026-03-01T10:00:00Z")

	want := "element-locator 0.3.0+9f2c1e7 (built 2026-03-01T10:00:00Z)"
	if got := build.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
