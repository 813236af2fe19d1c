package ir

// Backing type names accepted in declarations.
const (
	BackingNone   = ""
	BackingInt    = "int"
	BackingString = "string"
)

// ValidBackings defines allowed backing types.
var ValidBackings = map[string]bool{
	BackingNone:   true,
	BackingInt:    true,
	BackingString: true,
}

// EnumSpec represents a compiled enum declaration: a closed, ordered set of cases.
type EnumSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Backing     string     `json:"backing,omitempty"` // "", "int" or "string"
	Cases       []CaseSpec `json:"cases"`
}

// CaseSpec represents one declared case.
type CaseSpec struct {
	Name       string   `json:"name"`
	Value      IRValue  `json:"value,omitempty"`      // nil when the enum is unbacked
	Attributes IRObject `json:"attributes,omitempty"` // declared attributes, excluding name/value
}

// Backed reports whether the enum carries backing values.
func (s *EnumSpec) Backed() bool {
	return s.Backing != BackingNone
}

// CaseNames returns case names in declaration order.
func (s *EnumSpec) CaseNames() []string {
	names := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		names[i] = c.Name
	}
	return names
}

// AttributeNames returns the union of attribute names across cases, sorted.
func (s *EnumSpec) AttributeNames() []string {
	seen := IRObject{}
	for _, c := range s.Cases {
		for k := range c.Attributes {
			seen[k] = IRNull{}
		}
	}
	return seen.SortedKeys()
}
