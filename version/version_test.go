package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestLdflagsTakePrecedence(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "0123456789abcdef", "2026-01-01"
	if got := GetFullVersion(); got != "v1.2.3 (0123456, built 2026-01-01)" {
		t.Errorf("GetFullVersion() = %q", got)
	}
	info := GetInfo()
	if info.Package != "archive-preview" || info.Commit != "0123456789abcdef" {
		t.Errorf("GetInfo() = %+v", info)
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, "arpv")
	out := buf.String()
	for _, want := range []string{"arpv version ", "Package: archive-preview", "Commit: ", "Build Date: "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUnstampedFallsBack(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "", "", ""
	if GetVersion() == "" || GetCommit() == "" || GetBuildDate() == "" {
		t.Errorf("empty stamps leaked through: %+v", GetInfo())
	}
	Commit = "abc"
	if got := GetFullVersion(); got != GetVersion() {
		t.Errorf("short commit should be omitted, got %q", got)
	}
}
