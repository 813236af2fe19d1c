package enum

import (
	"fmt"

	"github.com/roach88/caseset/internal/ir"
)

// Reserved key names. They are resolved by the engine itself and never
// reach Set.Attribute.
const (
	KeyName  = "name"
	KeyValue = "value"
)

// Set is the capability a declaring collaborator provides.
//
// Cases must return the full, fixed set in declaration order on every call.
// Case names are unique. When Backed is true every case has a backing value
// and backing values are unique.
type Set[C comparable] interface {
	// SetName identifies the enum in error messages.
	SetName() string

	// Cases enumerates every case in declaration order.
	Cases() []C

	// CaseName returns the declared name of c.
	CaseName(c C) string

	// Backed reports whether cases carry backing values.
	Backed() bool

	// BackingValue returns the backing value of c. ok is false for unbacked sets.
	BackingValue(c C) (v ir.IRValue, ok bool)

	// Attribute reads a declared attribute. Unrecognized names must return
	// an error wrapping ErrUnknownAttribute.
	Attribute(c C, name string) (ir.IRValue, error)
}

// Declaration is a Set assembled from functions, for Go-native enums:
//
//	type Suit int
//	const (Hearts Suit = iota; Spades)
//
//	suits := enum.Declare("Suit", Suit.String, Hearts, Spades).
//		WithAttribute("color", func(s Suit) ir.IRValue { ... })
type Declaration[C comparable] struct {
	name   string
	cases  []C
	names  func(C) string
	values func(C) ir.IRValue
	attrs  map[string]func(C) ir.IRValue
}

// Declare starts a declaration. Cases are kept in the given order.
func Declare[C comparable](name string, names func(C) string, cases ...C) *Declaration[C] {
	return &Declaration[C]{
		name:  name,
		cases: append([]C(nil), cases...),
		names: names,
		attrs: make(map[string]func(C) ir.IRValue),
	}
}

// WithValues marks the set as backed, reading backing values from fn.
func (d *Declaration[C]) WithValues(fn func(C) ir.IRValue) *Declaration[C] {
	d.values = fn
	return d
}

// WithAttribute registers a computed attribute. The function is called on
// every access and must be free of side effects.
func (d *Declaration[C]) WithAttribute(name string, fn func(C) ir.IRValue) *Declaration[C] {
	d.attrs[name] = fn
	return d
}

// SetName implements Set.
func (d *Declaration[C]) SetName() string { return d.name }

// Cases implements Set.
func (d *Declaration[C]) Cases() []C { return append([]C(nil), d.cases...) }

// CaseName implements Set.
func (d *Declaration[C]) CaseName(c C) string { return d.names(c) }

// Backed implements Set.
func (d *Declaration[C]) Backed() bool { return d.values != nil }

// BackingValue implements Set.
func (d *Declaration[C]) BackingValue(c C) (ir.IRValue, bool) {
	if d.values == nil {
		return nil, false
	}
	return d.values(c), true
}

// Attribute implements Set.
func (d *Declaration[C]) Attribute(c C, name string) (ir.IRValue, error) {
	fn, ok := d.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	return fn(c), nil
}
