package version

import "testing"

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should be resolved from build info")
	}
}

func TestGetWithLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"
	BuildTime = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want abc1234", info.GitCommit)
	}
	if info.BuildDate.IsZero() {
		t.Error("BuildDate should be parsed from BuildTime")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
