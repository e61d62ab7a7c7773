// Package version exposes the library's build version information.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/sqlstream/version.Version=1.0.0"
//
// When ldflags are absent, the git details are recovered from the binary's
// embedded VCS metadata where available.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the semantic version, "dev" for unreleased builds.
	Version = "dev"
	// GitCommit is the short commit hash the build was made from.
	GitCommit = ""
	// BuildTime is the RFC 3339 build timestamp.
	BuildTime = ""
)

// Info is a resolved snapshot of the build metadata.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	Dirty     bool      `json:"dirty"`
}

// Get resolves the build metadata, preferring ldflags values over the
// binary's embedded VCS settings.
func Get() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					commit := setting.Value
					if len(commit) > 7 {
						commit = commit[:7]
					}
					info.GitCommit = commit
				}
			case "vcs.modified":
				info.Dirty = setting.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}

	return info
}

// String returns a short human-readable version string.
func (i *Info) String() string {
	switch {
	case i.GitCommit == "":
		return i.Version
	case i.Dirty:
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	default:
		return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
	}
}
