package enum

import (
	"github.com/rjNemo/underscore"

	"github.com/roach88/caseset/internal/ir"
)

// Registry is the lookup engine over one Set. Every operation scans the
// full case sequence in declaration order; nothing is indexed or cached,
// so a Registry is safe for concurrent use when the Set is.
type Registry[C comparable] struct {
	set Set[C]
}

// New returns a Registry over set.
func New[C comparable](set Set[C]) *Registry[C] {
	return &Registry[C]{set: set}
}

// Set returns the underlying declaring collaborator.
func (r *Registry[C]) Set() Set[C] { return r.set }

// Name returns the enum name.
func (r *Registry[C]) Name() string { return r.set.SetName() }

// Cases returns every case in declaration order.
func (r *Registry[C]) Cases() []C { return r.set.Cases() }

// IsBacked reports whether cases carry backing values.
func (r *Registry[C]) IsBacked() bool { return r.set.Backed() }

// IsPure reports whether the enum is unbacked.
func (r *Registry[C]) IsPure() bool { return !r.set.Backed() }

// Count returns the number of cases.
func (r *Registry[C]) Count() int { return len(r.set.Cases()) }

// Collect wraps the full case sequence in a Collection.
func (r *Registry[C]) Collect() Collection[C] {
	return Collection[C]{set: r.set, cases: r.set.Cases()}
}

// Names returns all case names in declaration order.
func (r *Registry[C]) Names() []string { return r.Collect().Names() }

// Values returns all backing values; empty for unbacked enums.
func (r *Registry[C]) Values() []ir.IRValue { return r.Collect().Values() }

// Keys resolves key for every case.
func (r *Registry[C]) Keys(key Key[C]) ([]ir.IRValue, error) { return r.Collect().Keys(key) }

// CasesBy groups all cases by the resolved key.
func (r *Registry[C]) CasesBy(key Key[C]) (Mapping[Result[C]], error) {
	return r.Collect().CasesBy(key)
}

// CasesByName keys all cases by name.
func (r *Registry[C]) CasesByName() Mapping[Result[C]] { return r.Collect().CasesByName() }

// CasesByValue keys all cases by backing value; empty for unbacked enums.
func (r *Registry[C]) CasesByValue() Mapping[Result[C]] { return r.Collect().CasesByValue() }

// ByName returns the case called name, or a NOT_FOUND error.
func (r *Registry[C]) ByName(name string) (C, error) {
	if c, ok := r.TryByName(name); ok {
		return c, nil
	}
	var zero C
	return zero, newNameNotFound(r.set.SetName(), ir.IRString(name))
}

// TryByName returns the case called name. ok is false when none exists.
func (r *Registry[C]) TryByName(name string) (c C, ok bool) {
	c, err := underscore.Find(r.set.Cases(), func(x C) bool {
		return r.set.CaseName(x) == name
	})
	return c, err == nil
}

// ByValue returns the case whose backing value equals v. It fails with
// UNSUPPORTED_OPERATION on unbacked enums and NOT_FOUND when nothing matches.
func (r *Registry[C]) ByValue(v ir.IRValue) (C, error) {
	c, ok, err := r.TryByValue(v)
	if err != nil {
		return c, err
	}
	if !ok {
		return c, newValueNotFound(r.set.SetName(), v)
	}
	return c, nil
}

// TryByValue is ByValue with absence reported through ok. Calling it on
// an unbacked enum is still an error.
func (r *Registry[C]) TryByValue(v ir.IRValue) (c C, ok bool, err error) {
	if !r.set.Backed() {
		return c, false, newNotBacked(r.set.SetName())
	}
	for _, x := range r.set.Cases() {
		if bv, _ := r.set.BackingValue(x); ir.Equal(bv, v) {
			return x, true, nil
		}
	}
	return c, false, nil
}

// From hydrates a case from its native representation: the backing value
// on backed enums, the name otherwise.
func (r *Registry[C]) From(v ir.IRValue) (C, error) {
	c, ok, err := r.TryFrom(v)
	if err != nil {
		return c, err
	}
	if ok {
		return c, nil
	}
	if r.set.Backed() {
		return c, newValueNotFound(r.set.SetName(), v)
	}
	return c, newNameNotFound(r.set.SetName(), v)
}

// TryFrom is From with absence reported through ok. On unbacked enums a
// non-string argument simply matches nothing.
func (r *Registry[C]) TryFrom(v ir.IRValue) (c C, ok bool, err error) {
	if r.set.Backed() {
		return r.TryByValue(v)
	}
	name, isString := v.(ir.IRString)
	if !isString {
		return c, false, nil
	}
	c, ok = r.TryByName(string(name))
	return c, ok, nil
}

// ByKey returns every case whose key resolves to target. An empty match
// fails with INVALID_KEY; resolution errors are returned unchanged.
func (r *Registry[C]) ByKey(key Key[C], target ir.IRValue) (Result[C], error) {
	res, err := r.TryByKey(key, target)
	if err != nil {
		return res, err
	}
	if res.IsNone() {
		return res, newInvalidKey(r.set.SetName(), key.String(), target)
	}
	return res, nil
}

// TryByKey is ByKey with an empty match reported as a None result.
func (r *Registry[C]) TryByKey(key Key[C], target ir.IRValue) (Result[C], error) {
	matched, err := matchKey(r.set, r.set.Cases(), key, target)
	if err != nil {
		return newResult[C](r.set, nil), err
	}
	return newResult(r.set, matched), nil
}

// Get resolves key for a single case.
func (r *Registry[C]) Get(c C, key Key[C]) (ir.IRValue, error) {
	return Resolve(r.set, c, key)
}

// Is reports whether target designates c. Targets may be a case, a name,
// or a backing value; matching is by identity, then name, then value, and
// a string never equals an integer.
func (r *Registry[C]) Is(c C, target any) bool {
	return matches(r.set, c, target)
}

// IsNot is the negation of Is.
func (r *Registry[C]) IsNot(c C, target any) bool {
	return !r.Is(c, target)
}

// In reports whether any of targets designates c.
func (r *Registry[C]) In(c C, targets ...any) bool {
	return underscore.Any(targets, func(t any) bool { return r.Is(c, t) })
}

// NotIn is the negation of In.
func (r *Registry[C]) NotIn(c C, targets ...any) bool {
	return !r.In(c, targets...)
}
