package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveVersion(t *testing.T) {
	t.Helper()
	v, d, c := Version, BuildDate, GitCommit
	t.Cleanup(func() {
		Version, BuildDate, GitCommit = v, d, c
	})
}

func TestGetVersion(t *testing.T) {
	saveVersion(t)

	for _, v := range []string{"dev", "1.0.0", "v2.1.3", "1.0.0-beta.1"} {
		Version = v
		assert.Equal(t, v, GetVersion())
	}
}

func TestGetFullVersion_Ldflags(t *testing.T) {
	saveVersion(t)

	Version = "1.0.0"
	BuildDate = "2024-01-15T10:30:00Z"
	GitCommit = "abc123def"

	// Explicit values are never replaced by the embedded VCS stamp
	assert.Equal(t, "1.0.0 (build: 2024-01-15T10:30:00Z, commit: abc123def)", GetFullVersion())
}

func TestFromBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "abc123def456789012345678901234567890abcd"},
		{Key: "vcs.time", Value: "2026-10-01T08:00:00Z"},
	}

	tests := []struct {
		name       string
		date       string
		commit     string
		wantDate   string
		wantCommit string
	}{
		{
			name:       "unknown values are filled",
			date:       unknown,
			commit:     unknown,
			wantDate:   "2026-10-01T08:00:00Z",
			wantCommit: "abc123def456",
		},
		{
			name:       "explicit values are kept",
			date:       "2024-06-20",
			commit:     "deadbeef",
			wantDate:   "2024-06-20",
			wantCommit: "deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, commit := fromBuildSettings(settings, tt.date, tt.commit)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantCommit, commit)
		})
	}
}

func TestFromBuildSettings_NoVCS(t *testing.T) {
	date, commit := fromBuildSettings(nil, unknown, unknown)
	assert.Equal(t, unknown, date)
	assert.Equal(t, unknown, commit)
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "1234567", shortRevision("1234567"))
	assert.Equal(t, "abc123def456", shortRevision("abc123def4567890"))
}
