// Package memory holds map-backed repositories. Each repository guards its
// maps with one RWMutex: reads share it, and Save / DeleteByID hold the write
// lock across the uniqueness checks and every index update they perform.
package memory

import (
	"slices"
	"strings"
)

// collect returns the values accepted by keep (all values when keep is nil),
// ordered by id so results are stable between calls.
func collect[K comparable, V any](m map[K]V, id func(V) string, keep func(V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b V) int { return strings.Compare(id(a), id(b)) })
	return out
}

func count[K comparable, V any](m map[K]V, keep func(V) bool) int {
	n := 0
	for _, v := range m {
		if keep(v) {
			n++
		}
	}
	return n
}
