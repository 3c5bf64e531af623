// Package version reports build metadata for arpv.
//
// Values come from -ldflags when set:
//
//	-X github.com/dendrascience/archive-preview/version.Version=v1.0.0
//	-X github.com/dendrascience/archive-preview/version.Commit=abc123
//	-X github.com/dendrascience/archive-preview/version.Date=2026-01-01T00:00:00Z
//
// Otherwise they fall back to the module and VCS information embedded by the
// Go toolchain, and finally to development defaults.
package version
