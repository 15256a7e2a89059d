package version

import "testing"

func TestString(t *testing.T) {
	old := [3]string{Version, CommitSHA, BuildDate}
	t.Cleanup(func() { Version, CommitSHA, BuildDate = old[0], old[1], old[2] })

	Version, CommitSHA, BuildDate = "v1.2.0", "abc123", "2026-10-01"

	if got, want := String(), "v1.2.0 (commit abc123, built 2026-10-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
