// Package envdiff computes the keys whose values differ between two
// [envset.Set]s.
//
// A key that exists on one side only is always a difference. Values are
// compared as raw strings; no normalisation happens beyond what the parser
// already did.
package envdiff

import "github.com/envwrangler/envwrangler/pkg/envset"

// ChangeType classifies a difference from the left set's point of view.
type ChangeType int

const (
	Unchanged ChangeType = iota
	Added                // only in the right set
	Removed              // only in the left set
	Modified             // in both, with different values
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unchanged"
	}
}

// Difference is a key whose resolved values disagree.
type Difference struct {
	Key   string
	Left  envset.Value
	Right envset.Value
}

// Change derives the kind of change from which sides are present.
func (d Difference) Change() ChangeType {
	switch {
	case d.Left.IsPresent() && d.Right.IsPresent():
		if d.Left.Equal(d.Right) {
			return Unchanged
		}
		return Modified
	case d.Right.IsPresent():
		return Added
	case d.Left.IsPresent():
		return Removed
	default:
		return Unchanged
	}
}

// Swap returns the difference seen from the other side.
func (d Difference) Swap() Difference {
	return Difference{Key: d.Key, Left: d.Right, Right: d.Left}
}
