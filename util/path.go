package util

import "strings"

// BaseName returns the final segment of path. Both '/' and '\' are treated as
// separators so that archive paths staged from any platform resolve the same
// way. Trailing separators are ignored.
func BaseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
