package enum

import (
	"errors"

	"github.com/roach88/caseset/internal/ir"
)

// Resolve derives the value of key for case c.
//
// The name key yields the case name and the value key the backing value
// (UNSUPPORTED_OPERATION on unbacked sets). Any other attribute is read
// from the Set; names it does not recognize fail with UNKNOWN_KEY. Function
// keys are invoked directly and their errors are returned as-is. Nothing is
// cached: every call re-reads the collaborator.
func Resolve[C comparable](set Set[C], c C, key Key[C]) (ir.IRValue, error) {
	if key.fn != nil {
		return orNull(key.fn(c))
	}

	switch key.attr {
	case "":
		if set.Backed() {
			return resolveValue(set, c)
		}
		return ir.IRString(set.CaseName(c)), nil
	case KeyName:
		return ir.IRString(set.CaseName(c)), nil
	case KeyValue:
		return resolveValue(set, c)
	}

	v, err := set.Attribute(c, key.attr)
	if err != nil {
		if errors.Is(err, ErrUnknownAttribute) {
			return nil, newUnknownKey(set.SetName(), key.attr, err)
		}
		return nil, err
	}
	return orNull(v, nil)
}

func resolveValue[C comparable](set Set[C], c C) (ir.IRValue, error) {
	v, ok := set.BackingValue(c)
	if !ok {
		return nil, newNotBacked(set.SetName())
	}
	return orNull(v, nil)
}

// orNull maps a nil IRValue to IRNull so callers never see nil on success.
func orNull(v ir.IRValue, err error) (ir.IRValue, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return ir.IRNull{}, nil
	}
	return v, nil
}

// resolveAll resolves key for every case, in order. The first error aborts.
func resolveAll[C comparable](set Set[C], cases []C, key Key[C]) ([]ir.IRValue, error) {
	out := make([]ir.IRValue, len(cases))
	for i, c := range cases {
		v, err := Resolve(set, c, key)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
