// Package version contains dk build metadata.
// Values are set with -ldflags at release time; `go install` builds fall
// back to the VCS stamp the toolchain embeds.
package version

import "runtime/debug"

// Version information for dk
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const unknown = "unknown"

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns version with build metadata
func GetFullVersion() string {
	date, commit := BuildDate, GitCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		date, commit = fromBuildSettings(info.Settings, date, commit)
	}
	return Version + " (build: " + date + ", commit: " + commit + ")"
}

// fromBuildSettings fills unknown date and commit values from vcs.* settings.
func fromBuildSettings(settings []debug.BuildSetting, date, commit string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.time":
			if date == unknown && s.Value != "" {
				date = s.Value
			}
		case "vcs.revision":
			if commit == unknown && s.Value != "" {
				commit = shortRevision(s.Value)
			}
		}
	}
	return date, commit
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
