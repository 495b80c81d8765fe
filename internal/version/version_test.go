package version

import (
	"regexp"
	"testing"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestPlainMatchesVersion(t *testing.T) {
	stripped := ansiSeq.ReplaceAllString(Version, "")
	if stripped != Plain() {
		t.Fatalf("Plain() = %q, stripped Version = %q", Plain(), stripped)
	}
}
