package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	oldV, oldC, oldD, oldNo := Version, GitCommit, BuildDate, color.NoColor
	Version, GitCommit, BuildDate, color.NoColor = v, commit, date, true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate, color.NoColor = oldV, oldC, oldD, oldNo
	})
}

func TestInfo(t *testing.T) {
	cases := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "obc 0.1.0-dev"},
		{"1.2.3", "1234567890abcdef", "", "obc 1.2.3 (commit 1234567890ab)"},
		{"1.2.3+build.7", "abc", "2024-01-15", "obc 1.2.3+build.7 (commit abc, built 2024-01-15)"},
		{"snapshot", "", "", "obc snapshot"},
	}
	for _, tc := range cases {
		withVersion(t, tc.version, tc.commit, tc.date)
		if got := Info(); got != tc.want {
			t.Errorf("Info() = %q, want %q", got, tc.want)
		}
	}
}
