package authority

import (
	"sort"
	"strings"
)

// Authority is a canonical permission or role string granted to a principal.
type Authority string

// String implements fmt.Stringer.
func (a Authority) String() string {
	return string(a)
}

// Set is an unordered collection of authorities without duplicates.
type Set map[Authority]struct{}

// NewSet returns a set holding the given values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[Authority(v)] = struct{}{}
	}

	return s
}

// Add inserts a into the set.
func (s Set) Add(a Authority) {
	s[a] = struct{}{}
}

// Contains reports whether the set holds the given authority.
func (s Set) Contains(a string) bool {
	_, ok := s[Authority(a)]
	return ok
}

// Len returns the number of authorities in the set.
func (s Set) Len() int {
	return len(s)
}

// Strings returns the authorities in lexical order.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, string(a))
	}

	sort.Strings(out)

	return out
}

// String joins the sorted authorities with a comma.
func (s Set) String() string {
	return strings.Join(s.Strings(), ",")
}
