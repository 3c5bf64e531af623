package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Release builds stamp these through -ldflags "-X". Left at their zero
// markers, the values embedded by the Go toolchain are reported instead.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Package is the module name reported by Info.
const Package = "archive-preview"

// Info is the build identity printed by the version command.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// stamped returns v unless it is empty or still the unset marker.
func stamped(v, unset string) (string, bool) {
	if v == "" || v == unset {
		return "", false
	}
	return v, true
}

// vcsSetting looks up one of the vcs.* keys recorded in the binary.
func vcsSetting(key string) (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}

// GetVersion reports the release tag. `go install module@version` builds
// carry the module version; local builds report "development".
func GetVersion() string {
	if v, ok := stamped(Version, "dev"); ok {
		return v
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "development"
}

// GetCommit reports the source revision.
func GetCommit() string {
	if c, ok := stamped(Commit, "unknown"); ok {
		return c
	}
	if c, ok := vcsSetting("vcs.revision"); ok {
		return c
	}
	return "unknown"
}

// GetBuildDate reports when the binary was stamped, or the commit time.
func GetBuildDate() string {
	if d, ok := stamped(Date, "unknown"); ok {
		return d
	}
	if d, ok := vcsSetting("vcs.time"); ok {
		return d
	}
	return "unknown"
}

func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: Package,
	}
}

// GetFullVersion is the one-line form used by --version, e.g.
// "v1.2.3 (0123456, built 2026-01-01)".
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	short := info.Commit[:7]
	if info.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", info.Version, short)
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
}

// Fprint writes the multi-line report of the version command.
func Fprint(w io.Writer, appName string) {
	info := GetInfo()
	fmt.Fprintf(w, "%s version %s\n", appName, GetFullVersion())
	fmt.Fprintf(w, "Package: %s\n", info.Package)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
}
