package enum

import (
	"fmt"

	"github.com/roach88/caseset/internal/ir"
)

// Key describes how to derive a value from a case: either an attribute
// name or a function. The zero Key is the default key, which resolves to
// the backing value on backed sets and to the name otherwise.
type Key[C comparable] struct {
	attr string
	fn   func(C) (ir.IRValue, error)
}

// Attr returns a key reading the named attribute. "name" and "value" are
// reserved for the case name and backing value.
func Attr[C comparable](name string) Key[C] {
	return Key[C]{attr: name}
}

// Func returns a computed key. Errors from fn propagate unchanged.
func Func[C comparable](fn func(C) (ir.IRValue, error)) Key[C] {
	return Key[C]{fn: fn}
}

// ValueFunc returns a computed key that cannot fail.
func ValueFunc[C comparable](fn func(C) ir.IRValue) Key[C] {
	return Key[C]{fn: func(c C) (ir.IRValue, error) { return fn(c), nil }}
}

// NameKey returns the key resolving to the case name.
func NameKey[C comparable]() Key[C] { return Attr[C](KeyName) }

// ValueKey returns the key resolving to the backing value.
func ValueKey[C comparable]() Key[C] { return Attr[C](KeyValue) }

// IsZero reports whether k is the default key.
func (k Key[C]) IsZero() bool { return k.attr == "" && k.fn == nil }

// Computed reports whether k is a function key.
func (k Key[C]) Computed() bool { return k.fn != nil }

// Name returns the attribute name, or "" for function and default keys.
func (k Key[C]) Name() string { return k.attr }

// String describes the key for error messages.
func (k Key[C]) String() string {
	switch {
	case k.fn != nil:
		return "given callable key"
	case k.attr == "":
		return "default key"
	default:
		return fmt.Sprintf("key %q", k.attr)
	}
}
