// Package envset reads dotenv-style files into a key/value set.
//
// The format is deliberately small: one KEY=VALUE per line, surrounding
// whitespace is dropped, lines starting with # are comments and only the first
// '=' separates key from value. Quoting, escaping, multi-line values and
// interpolation are not supported.
package envset

import (
	"maps"
	"slices"
)

// MissingText is what an absent [Value] renders as.
const MissingText = "<MISSING>"

// Set is the parsed content of one source.
type Set map[string]string

// Lookup resolves key in s.
func (s Set) Lookup(key string) Value {
	v, ok := s[key]
	if !ok {
		return Absent()
	}
	return Present(v)
}

// Keys returns the keys of s in ascending order.
func (s Set) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a shallow copy of s. A nil set clones to an empty one.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Value is a resolved lookup: either a present string or absent.
// The zero value is absent.
type Value struct {
	str     string
	present bool
}

func Present(v string) Value {
	return Value{str: v, present: true}
}

func Absent() Value {
	return Value{}
}

func (v Value) IsPresent() bool {
	return v.present
}

// Get returns the raw value and whether it is present.
func (v Value) Get() (string, bool) {
	return v.str, v.present
}

// Equal reports whether v and o are both absent or both present with the same
// string. A present "<MISSING>" is not equal to an absent value.
func (v Value) Equal(o Value) bool {
	return v.present == o.present && v.str == o.str
}

// String renders the value for display.
func (v Value) String() string {
	if !v.present {
		return MissingText
	}
	return v.str
}
