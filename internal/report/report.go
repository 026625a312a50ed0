// Package report renders the result of comparing two environment sets, either
// as the human readable text report or as a structured document.
package report

import "github.com/envwrangler/envwrangler/pkg/envdiff"

const (
	DefaultLeftLabel  = "env1"
	DefaultRightLabel = "env2"
)

// Report is a finished comparison between two labelled sources.
type Report struct {
	LeftLabel   string
	RightLabel  string
	Differences []envdiff.Difference
}

// New returns a report, falling back to the default labels for empty ones.
func New(leftLabel, rightLabel string, diffs []envdiff.Difference) Report {
	if leftLabel == "" {
		leftLabel = DefaultLeftLabel
	}
	if rightLabel == "" {
		rightLabel = DefaultRightLabel
	}
	return Report{
		LeftLabel:   leftLabel,
		RightLabel:  rightLabel,
		Differences: diffs,
	}
}

func (r Report) Identical() bool {
	return len(r.Differences) == 0
}

// Only returns a copy of r holding just the differences of the given kinds.
// Without kinds the report is returned as is.
func (r Report) Only(kinds ...envdiff.ChangeType) Report {
	if len(kinds) == 0 {
		return r
	}
	out := r
	out.Differences = nil
	for _, d := range r.Differences {
		for _, k := range kinds {
			if d.Change() == k {
				out.Differences = append(out.Differences, d)
				break
			}
		}
	}
	return out
}

// Count returns the number of differences per change kind.
func (r Report) Count() map[envdiff.ChangeType]int {
	counts := make(map[envdiff.ChangeType]int, 3)
	for _, d := range r.Differences {
		counts[d.Change()]++
	}
	return counts
}
