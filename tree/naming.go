package tree

import (
	"fmt"
	"strings"
)

// Names is the synthesized identity of one archive entry.
type Names struct {
	Origin string // display name, the last path segment
	Key    string // registry key; the staging file name for files
	Parent string // registry key of the containing directory

	// ParentPath is the entry path with its last segment removed. It is
	// empty for entries at the top of the archive.
	ParentPath string
}

// Naming derives Names for the entries of one archive. Implementations are
// format specific and must not be unified: the key layout is what the
// staging directory and the preview UI address files by.
type Naming interface {
	Separator() string
	RootName() string
	Names(fullPath string, isDir bool) Names
}

// OriginName strips one trailing separator from fullPath and returns what
// follows the last remaining separator, or the whole string if there is none.
func OriginName(fullPath, sep string) string {
	s := strings.TrimSuffix(fullPath, sep)
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

// ParentKey strips one trailing separator from fullPath and removes the last
// segment. If nothing remains the result is rootFallback, otherwise it is the
// OriginName of what remains.
func ParentKey(fullPath, sep, rootFallback string) string {
	if pp := parentPath(fullPath, sep); pp != "" {
		return OriginName(pp, sep)
	}
	return rootFallback
}

func parentPath(fullPath, sep string) string {
	s := strings.TrimSuffix(fullPath, sep)
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i]
	}
	return ""
}

// segmentCount counts sep-delimited segments, ignoring trailing empty ones.
// Leading and interior empty segments count.
func segmentCount(fullPath, sep string) int {
	if fullPath == "" {
		return 1
	}
	parts := strings.Split(fullPath, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return len(parts)
}

func fileKey(archive, origin string) string {
	return archive + "_" + origin
}

// ZipNaming names zip entries. Directory keys are prefixed with their depth
// so that equally named directories on different levels stay distinct.
type ZipNaming struct {
	Archive string // base name of the archive file
}

func (ZipNaming) Separator() string  { return "/" }
func (z ZipNaming) RootName() string { return z.Archive }

// Names returns {depth}_{origin} for directories and {archive}_{origin} for
// files. The parent key carries depth-1.
func (z ZipNaming) Names(fullPath string, isDir bool) Names {
	const sep = "/"
	depth := segmentCount(fullPath, sep)
	origin := OriginName(fullPath, sep)
	n := Names{
		Origin:     origin,
		Key:        fileKey(z.Archive, origin),
		ParentPath: parentPath(fullPath, sep),
		Parent:     fmt.Sprintf("%d_%s", depth-1, ParentKey(fullPath, sep, z.Archive)),
	}
	if isDir {
		n.Key = fmt.Sprintf("%d_%s", depth, origin)
	}
	return n
}

// RarNaming names rar entries. Directory keys are the bare directory name.
type RarNaming struct {
	Archive string // base name of the archive file
}

func (RarNaming) Separator() string  { return `\` }
func (r RarNaming) RootName() string { return r.Archive }

func (r RarNaming) Names(fullPath string, isDir bool) Names {
	const sep = `\`
	origin := OriginName(fullPath, sep)
	n := Names{
		Origin:     origin,
		Key:        fileKey(r.Archive, origin),
		ParentPath: parentPath(fullPath, sep),
		Parent:     ParentKey(fullPath, sep, r.Archive),
	}
	if isDir {
		n.Key = origin
	}
	return n
}
