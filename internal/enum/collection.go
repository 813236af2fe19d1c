package enum

import (
	"slices"

	"github.com/rjNemo/underscore"

	"github.com/roach88/caseset/internal/ir"
)

// Collection is an ordered, immutable group of cases. Duplicates are kept.
// The zero Collection is empty and belongs to no enum.
type Collection[C comparable] struct {
	set   Set[C]
	cases []C
}

// NewCollection wraps cases, copying the slice.
func NewCollection[C comparable](set Set[C], cases []C) Collection[C] {
	return Collection[C]{set: set, cases: append([]C(nil), cases...)}
}

func (c Collection[C]) with(cases []C) Collection[C] {
	return Collection[C]{set: c.set, cases: cases}
}

func (c Collection[C]) empty() Collection[C] {
	return Collection[C]{set: c.set, cases: []C{}}
}

// Cases returns a copy of the underlying cases.
func (c Collection[C]) Cases() []C { return append([]C(nil), c.cases...) }

// Count returns the number of cases.
func (c Collection[C]) Count() int { return len(c.cases) }

// IsEmpty reports whether the collection has no cases.
func (c Collection[C]) IsEmpty() bool { return len(c.cases) == 0 }

// First returns the first case.
func (c Collection[C]) First() (first C, ok bool) {
	if len(c.cases) == 0 {
		return first, false
	}
	return c.cases[0], true
}

// Equal reports whether both collections hold the same cases in the same order.
func (c Collection[C]) Equal(other Collection[C]) bool {
	return slices.Equal(c.cases, other.cases)
}

// Filter keeps the cases satisfying pred, in order.
func (c Collection[C]) Filter(pred func(C) bool) Collection[C] {
	return c.with(underscore.Filter(c.cases, pred))
}

// FilterBy keeps the cases whose key resolves to target. Resolution
// errors abort the filter.
func (c Collection[C]) FilterBy(key Key[C], target ir.IRValue) (Collection[C], error) {
	matched, err := matchKey(c.set, c.cases, key, target)
	if err != nil {
		return c.empty(), err
	}
	return c.with(matched), nil
}

// Only keeps the cases whose name is listed. Unknown names are ignored.
func (c Collection[C]) Only(names ...string) Collection[C] {
	return c.Filter(func(cs C) bool {
		return underscore.Contains(names, c.set.CaseName(cs))
	})
}

// Except drops the cases whose name is listed. Unknown names are ignored.
func (c Collection[C]) Except(names ...string) Collection[C] {
	return c.Filter(func(cs C) bool {
		return !underscore.Contains(names, c.set.CaseName(cs))
	})
}

// OnlyValues keeps the cases whose backing value is listed.
// On an unbacked enum the result is always empty.
func (c Collection[C]) OnlyValues(values ...ir.IRValue) Collection[C] {
	if !c.backed() {
		return c.empty()
	}
	return c.Filter(func(cs C) bool {
		v, _ := c.set.BackingValue(cs)
		return containsValue(values, v)
	})
}

// ExceptValues drops the cases whose backing value is listed.
// On an unbacked enum the result is always empty.
func (c Collection[C]) ExceptValues(values ...ir.IRValue) Collection[C] {
	if !c.backed() {
		return c.empty()
	}
	return c.Filter(func(cs C) bool {
		v, _ := c.set.BackingValue(cs)
		return !containsValue(values, v)
	})
}

// Sort orders cases by name, ascending.
func (c Collection[C]) Sort() Collection[C] {
	sorted, _ := c.sortBy(NameKey[C](), false)
	return sorted
}

// SortDesc orders cases by name, descending.
func (c Collection[C]) SortDesc() Collection[C] {
	sorted, _ := c.sortBy(NameKey[C](), true)
	return sorted
}

// SortByValue orders cases by backing value, ascending.
// On an unbacked enum the result is empty.
func (c Collection[C]) SortByValue() Collection[C] {
	if !c.backed() {
		return c.empty()
	}
	sorted, _ := c.sortBy(ValueKey[C](), false)
	return sorted
}

// SortDescByValue orders cases by backing value, descending.
// On an unbacked enum the result is empty.
func (c Collection[C]) SortDescByValue() Collection[C] {
	if !c.backed() {
		return c.empty()
	}
	sorted, _ := c.sortBy(ValueKey[C](), true)
	return sorted
}

// SortBy orders cases by the resolved key, ascending. The sort is stable.
func (c Collection[C]) SortBy(key Key[C]) (Collection[C], error) {
	return c.sortBy(key, false)
}

// SortDescBy orders cases by the resolved key, descending. The sort is
// stable: equal keys keep their original relative order.
func (c Collection[C]) SortDescBy(key Key[C]) (Collection[C], error) {
	return c.sortBy(key, true)
}

type keyed[C comparable] struct {
	c C
	v ir.IRValue
}

func (c Collection[C]) sortBy(key Key[C], desc bool) (Collection[C], error) {
	values, err := resolveAll(c.set, c.cases, key)
	if err != nil {
		return c.empty(), err
	}

	pairs := make([]keyed[C], len(c.cases))
	for i, cs := range c.cases {
		pairs[i] = keyed[C]{c: cs, v: values[i]}
	}
	slices.SortStableFunc(pairs, func(a, b keyed[C]) int {
		if desc {
			return ir.Compare(b.v, a.v)
		}
		return ir.Compare(a.v, b.v)
	})

	return c.with(underscore.Map(pairs, func(p keyed[C]) C { return p.c })), nil
}

// Names returns the case names in order.
func (c Collection[C]) Names() []string {
	if c.set == nil {
		return []string{}
	}
	return underscore.Map(c.cases, func(cs C) string { return c.set.CaseName(cs) })
}

// Values returns the backing values in order; empty on unbacked enums.
func (c Collection[C]) Values() []ir.IRValue {
	if !c.backed() {
		return []ir.IRValue{}
	}
	values, _ := resolveAll(c.set, c.cases, ValueKey[C]())
	return values
}

// Keys resolves key for every case, in order.
func (c Collection[C]) Keys(key Key[C]) ([]ir.IRValue, error) {
	return resolveAll(c.set, c.cases, key)
}

// Pluck resolves value for every case, in order. The zero Key plucks the
// backing value, or the name on unbacked enums.
func (c Collection[C]) Pluck(value Key[C]) ([]ir.IRValue, error) {
	return resolveAll(c.set, c.cases, value)
}

// PluckMap maps each case's resolved key to its resolved value. When two
// cases share a key the later one wins, at the position of the first.
func (c Collection[C]) PluckMap(value, key Key[C]) (Mapping[ir.IRValue], error) {
	var m Mapping[ir.IRValue]
	for _, cs := range c.cases {
		k, err := Resolve(c.set, cs, key)
		if err != nil {
			return Mapping[ir.IRValue]{}, err
		}
		v, err := Resolve(c.set, cs, value)
		if err != nil {
			return Mapping[ir.IRValue]{}, err
		}
		m.set(k, v)
	}
	return m, nil
}

// CasesBy groups cases by resolved key. Each entry is a Result: One for a
// unique key, Many when several cases share it.
func (c Collection[C]) CasesBy(key Key[C]) (Mapping[Result[C]], error) {
	var groups Mapping[[]C]
	for _, cs := range c.cases {
		k, err := Resolve(c.set, cs, key)
		if err != nil {
			return Mapping[Result[C]]{}, err
		}
		existing, _ := groups.Get(k)
		groups.set(k, append(existing, cs))
	}

	var out Mapping[Result[C]]
	for k, cases := range groups.All() {
		out.set(k, newResult(c.set, cases))
	}
	return out, nil
}

// CasesByName keys every case by its name.
func (c Collection[C]) CasesByName() Mapping[Result[C]] {
	m, _ := c.CasesBy(NameKey[C]())
	return m
}

// CasesByValue keys every case by its backing value; empty on unbacked enums.
func (c Collection[C]) CasesByValue() Mapping[Result[C]] {
	if !c.backed() {
		return Mapping[Result[C]]{}
	}
	m, _ := c.CasesBy(ValueKey[C]())
	return m
}

// Has reports whether any case matches target. A target may be a case, a
// name, or a backing value; see Registry.Is for the matching rules.
func (c Collection[C]) Has(target any) bool {
	return underscore.Any(c.cases, func(cs C) bool {
		return matches(c.set, cs, target)
	})
}

// DoesntHave is the negation of Has.
func (c Collection[C]) DoesntHave(target any) bool {
	return !c.Has(target)
}

func (c Collection[C]) backed() bool {
	return c.set != nil && c.set.Backed()
}

func containsValue(values []ir.IRValue, v ir.IRValue) bool {
	return underscore.Any(values, func(x ir.IRValue) bool { return ir.Equal(x, v) })
}

// matchKey returns the cases whose key resolves to target, in order.
func matchKey[C comparable](set Set[C], cases []C, key Key[C], target ir.IRValue) ([]C, error) {
	var matched []C
	for _, cs := range cases {
		v, err := Resolve(set, cs, key)
		if err != nil {
			return nil, err
		}
		if ir.Equal(v, target) {
			matched = append(matched, cs)
		}
	}
	return matched, nil
}
