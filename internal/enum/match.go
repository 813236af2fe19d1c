package enum

import "github.com/roach88/caseset/internal/ir"

// matches reports whether target designates case c.
//
// Matching tries, in order: identity with another case, equality with the
// case name, then strict equality with the backing value. Strings are
// compared against both the name and a string backing value; integers
// never match a name. Targets that are neither cases nor IR values are
// converted with ir.FromGo first; unconvertible targets match nothing.
func matches[C comparable](set Set[C], c C, target any) bool {
	switch t := target.(type) {
	case C:
		return t == c
	case string:
		return matchesValue(set, c, ir.IRString(t))
	case ir.IRValue:
		return matchesValue(set, c, t)
	}

	v, err := ir.FromGo(target)
	if err != nil {
		return false
	}
	return matchesValue(set, c, v)
}

func matchesValue[C comparable](set Set[C], c C, target ir.IRValue) bool {
	if name, ok := target.(ir.IRString); ok && string(name) == set.CaseName(c) {
		return true
	}
	if v, ok := set.BackingValue(c); ok {
		return ir.Equal(v, target)
	}
	return false
}
