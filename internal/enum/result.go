package enum

// Cardinality classifies how many cases a lookup matched.
type Cardinality int

const (
	None Cardinality = iota
	One
	Many
)

func (c Cardinality) String() string {
	switch c {
	case None:
		return "none"
	case One:
		return "one"
	default:
		return "many"
	}
}

// Result is the outcome of a key lookup: no case, exactly one case, or a
// collection of cases in declaration order.
type Result[C comparable] struct {
	set   Set[C]
	cases []C
}

func newResult[C comparable](set Set[C], cases []C) Result[C] {
	return Result[C]{set: set, cases: cases}
}

// Cardinality reports None, One or Many.
func (r Result[C]) Cardinality() Cardinality {
	switch len(r.cases) {
	case 0:
		return None
	case 1:
		return One
	default:
		return Many
	}
}

// IsNone reports whether nothing matched.
func (r Result[C]) IsNone() bool { return len(r.cases) == 0 }

// Len returns the number of matched cases.
func (r Result[C]) Len() int { return len(r.cases) }

// Case returns the single matched case. ok is false unless the cardinality is One.
func (r Result[C]) Case() (c C, ok bool) {
	if len(r.cases) != 1 {
		return c, false
	}
	return r.cases[0], true
}

// Collection returns the matched cases when the cardinality is Many.
func (r Result[C]) Collection() (Collection[C], bool) {
	if len(r.cases) < 2 {
		return NewCollection(r.set, nil), false
	}
	return NewCollection(r.set, r.cases), true
}

// All returns the matched cases as a collection regardless of cardinality.
func (r Result[C]) All() Collection[C] {
	return NewCollection(r.set, r.cases)
}
