package tree

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// SortByPathLength orders entries by ascending length of their full path,
// keeping the original relative order of equal lengths. Shorter paths tend to
// be shallower, which lets most directories be registered before their
// children; the Builder does not rely on it.
func SortByPathLength[E any](entries []E, path func(E) string) {
	slices.SortStableFunc(entries, func(a, b E) int {
		return cmp.Compare(utf8.RuneCountInString(path(a)), utf8.RuneCountInString(path(b)))
	})
}
