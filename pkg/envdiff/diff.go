package envdiff

import (
	"maps"
	"slices"

	"github.com/envwrangler/envwrangler/pkg/envset"
)

// Diff returns every key of the union of [a] and [b] whose values differ,
// sorted by key. If there is no difference it returns nil.
func Diff(a, b envset.Set) []Difference {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	var diffs []Difference
	for _, key := range collectAllKeys(a, b) {
		left, right := a.Lookup(key), b.Lookup(key)
		if left.Equal(right) {
			continue
		}
		diffs = append(diffs, Difference{Key: key, Left: left, Right: right})
	}
	return diffs
}

func collectAllKeys(a, b envset.Set) []string {
	keySet := make(map[string]struct{}, max(len(a), len(b)))
	for k := range a {
		keySet[k] = struct{}{}
	}
	for k := range b {
		keySet[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keySet))
}
