package query

import "github.com/roach88/caseset/internal/ir"

// Pipeline is a parsed query.
type Pipeline struct {
	Source   Source
	Ops      []Op
	Terminal Terminal // nil renders the selected cases
}

// Source selects the initial cases. Sealed to this package.
type Source interface {
	sourceNode()
}

// Op transforms a collection of cases. Sealed to this package.
type Op interface {
	opNode()
}

// Terminal turns the selected cases into a plain value. Sealed to this package.
type Terminal interface {
	terminalNode()
}

// Collect selects every case.
type Collect struct{}

func (Collect) sourceNode() {}

// ByName looks a case up by name.
type ByName struct {
	Name string
	Try  bool
}

func (ByName) sourceNode() {}

// ByValue looks a case up by backing value.
type ByValue struct {
	Value ir.IRValue
	Try   bool
}

func (ByValue) sourceNode() {}

// From hydrates a case natively: by value when backed, by name otherwise.
type From struct {
	Value ir.IRValue
	Try   bool
}

func (From) sourceNode() {}

// ByKey selects every case whose key resolves to Target.
type ByKey struct {
	Key    string
	Target ir.IRValue
	Try    bool
}

func (ByKey) sourceNode() {}

// Dynamic is a from<Key>/tryFrom<Key> invocation resolved at evaluation.
type Dynamic struct {
	Name string
	Args []ir.IRValue
}

func (Dynamic) sourceNode() {}

// Only keeps the named cases.
type Only struct {
	Names  []string
	Except bool
}

func (Only) opNode() {}

// OnlyValues keeps the cases with the listed backing values.
type OnlyValues struct {
	Values []ir.IRValue
	Except bool
}

func (OnlyValues) opNode() {}

// Where keeps cases whose key resolves to Target.
type Where struct {
	Key    string
	Target ir.IRValue
}

func (Where) opNode() {}

// Sort orders by Key; an empty Key sorts by name.
type Sort struct {
	Key  string
	Desc bool
}

func (Sort) opNode() {}

// SortByValue orders by backing value.
type SortByValue struct {
	Desc bool
}

func (SortByValue) opNode() {}

// Count returns the number of cases.
type Count struct{}

func (Count) terminalNode() {}

// Names returns case names.
type Names struct{}

func (Names) terminalNode() {}

// Values returns backing values.
type Values struct{}

func (Values) terminalNode() {}

// Keys resolves Key for every case.
type Keys struct {
	Key string
}

func (Keys) terminalNode() {}

// Pluck resolves Value for every case, or maps Key to Value when Key is
// set. An empty Value plucks the default key.
type Pluck struct {
	Value string
	Key   string
}

func (Pluck) terminalNode() {}

// CasesBy groups cases by Key.
type CasesBy struct {
	Key string
}

func (CasesBy) terminalNode() {}

// Has tests collection membership.
type Has struct {
	Target ir.IRValue
	Negate bool
}

func (Has) terminalNode() {}

// Get resolves Key on a single case.
type Get struct {
	Key string
}

func (Get) terminalNode() {}

// Is tests whether a single case matches any of Targets.
// A lone target is "is"; several are "in".
type Is struct {
	Targets []ir.IRValue
	Negate  bool
}

func (Is) terminalNode() {}
