package envdiff

import "github.com/envwrangler/envwrangler/pkg/envset"

// Apply mutates [dst] so that, after the call, it holds the right-hand side of
// every difference in [diffs].
//
//	left := envset.Set{"A": "1", "B": "2"}
//	right := envset.Set{"A": "1", "C": "3"}
//	envdiff.Apply(left, envdiff.Diff(left, right)) // left is now {"A":"1","C":"3"}
func Apply(dst envset.Set, diffs []Difference) {
	if dst == nil {
		return
	}
	for _, d := range diffs {
		value, ok := d.Right.Get()
		if !ok { // removal
			delete(dst, d.Key)
			continue
		}
		dst[d.Key] = value
	}
}
