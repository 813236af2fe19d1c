package enum

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/caseset/internal/ir"
)

// Mode selects how an empty lookup is reported.
type Mode int

const (
	// ModeMust fails when nothing matches.
	ModeMust Mode = iota
	// ModeTry reports an empty result instead.
	ModeTry
)

func (m Mode) String() string {
	if m == ModeTry {
		return "try"
	}
	return "must"
}

// Call is a parsed dynamic invocation name.
type Call struct {
	Mode Mode

	// Key is the attribute identifier, already lower-cased at its first
	// character. Empty for native hydration (bare from/tryFrom).
	Key string
}

// Native reports whether the call hydrates through From/TryFrom rather
// than a key lookup.
func (c Call) Native() bool { return c.Key == "" }

// prefixes are checked in order; "tryFrom" must precede "from".
var prefixes = []struct {
	prefix string
	mode   Mode
}{
	{"tryFrom", ModeTry},
	{"from", ModeMust},
}

// ParseCall decomposes names like "fromColor" or "tryFromIsOdd". The text
// after the prefix must start with an upper-case letter, so "fromage" is
// not a call.
func ParseCall(name string) (Call, bool) {
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p.prefix)
		if !ok {
			continue
		}
		if rest == "" {
			return Call{Mode: p.mode}, true
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !unicode.IsUpper(r) {
			return Call{}, false
		}
		return Call{Mode: p.mode, Key: string(unicode.ToLower(r)) + rest[size:]}, true
	}
	return Call{}, false
}

// Call resolves a dynamic invocation. The first argument is the target;
// without one the target is true, so "fromOdd" selects every odd case.
// Unrecognized names fail with UNSUPPORTED_OPERATION.
func (r *Registry[C]) Call(name string, args ...ir.IRValue) (Result[C], error) {
	call, ok := ParseCall(name)
	if !ok {
		return newResult[C](r.set, nil), newUnsupportedCall(r.set.SetName(), name)
	}

	var target ir.IRValue = ir.IRBool(true)
	if len(args) > 0 {
		target = args[0]
	}

	if call.Native() {
		return r.hydrate(call.Mode, target)
	}
	if call.Mode == ModeTry {
		return r.TryByKey(Attr[C](call.Key), target)
	}
	return r.ByKey(Attr[C](call.Key), target)
}

func (r *Registry[C]) hydrate(mode Mode, v ir.IRValue) (Result[C], error) {
	if mode == ModeTry {
		c, ok, err := r.TryFrom(v)
		if err != nil || !ok {
			return newResult[C](r.set, nil), err
		}
		return newResult(r.set, []C{c}), nil
	}
	c, err := r.From(v)
	if err != nil {
		return newResult[C](r.set, nil), err
	}
	return newResult(r.set, []C{c}), nil
}
