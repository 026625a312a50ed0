package filter

import (
	"strings"

	"github.com/envwrangler/envwrangler/pkg/envdiff"
)

// Env is the environment a filter expression is evaluated against, once per
// difference.
type Env struct {
	Key          string
	Left         string
	Right        string
	LeftMissing  bool
	RightMissing bool
	Change       string
}

func newEnv(d envdiff.Difference) Env {
	left, leftOK := d.Left.Get()
	right, rightOK := d.Right.Get()
	return Env{
		Key:          d.Key,
		Left:         left,
		Right:        right,
		LeftMissing:  !leftOK,
		RightMissing: !rightOK,
		Change:       d.Change().String(),
	}
}

func (e Env) All() bool {
	return true
}

func (e Env) None() bool {
	return false
}

// Keys matches if the key is one of vals. No values matches everything.
func (e Env) Keys(vals ...string) bool {
	if len(vals) == 0 {
		return true
	}
	for _, val := range vals {
		if val == e.Key {
			return true
		}
	}
	return false
}

func (e Env) Prefix(prefixes ...string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(e.Key, p) {
			return true
		}
	}
	return false
}

func (e Env) Suffix(suffixes ...string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(e.Key, s) {
			return true
		}
	}
	return false
}

// Contains matches if the key contains any of the given substrings.
func (e Env) Contains(parts ...string) bool {
	if len(parts) == 0 {
		return true
	}
	for _, p := range parts {
		if strings.Contains(e.Key, p) {
			return true
		}
	}
	return false
}

func (e Env) Added() bool {
	return e.Change == envdiff.Added.String()
}

func (e Env) Removed() bool {
	return e.Change == envdiff.Removed.String()
}

func (e Env) Modified() bool {
	return e.Change == envdiff.Modified.String()
}
