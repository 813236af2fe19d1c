package catalog

import (
	"fmt"

	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
)

// Case is one declared case of a compiled enum. Handles are created once
// per Set and compared by pointer identity.
type Case struct {
	name  string
	value ir.IRValue
	attrs ir.IRObject
	index int
	enum  string
}

// Name returns the declared case name.
func (c *Case) Name() string { return c.name }

// Value returns the backing value. ok is false on unbacked enums.
func (c *Case) Value() (v ir.IRValue, ok bool) { return c.value, c.value != nil }

// Index returns the declaration position, starting at 0.
func (c *Case) Index() int { return c.index }

// Enum returns the name of the enum declaring c.
func (c *Case) Enum() string { return c.enum }

// Attributes returns a copy of the declared attributes.
func (c *Case) Attributes() ir.IRObject {
	out := make(ir.IRObject, len(c.attrs))
	for k, v := range c.attrs {
		out[k] = v
	}
	return out
}

func (c *Case) String() string { return c.enum + "::" + c.name }

// Set is the declaring collaborator for one compiled enum.
type Set struct {
	spec  ir.EnumSpec
	cases []*Case
	hash  string
}

var _ enum.Set[*Case] = (*Set)(nil)

// NewSet creates case handles for an already validated declaration.
func NewSet(spec ir.EnumSpec) (*Set, error) {
	hash, err := ir.EnumHash(spec)
	if err != nil {
		return nil, fmt.Errorf("hash enum %q: %w", spec.Name, err)
	}

	s := &Set{spec: spec, hash: hash}
	for i, cs := range spec.Cases {
		s.cases = append(s.cases, &Case{
			name:  cs.Name,
			value: cs.Value,
			attrs: cs.Attributes,
			index: i,
			enum:  spec.Name,
		})
	}
	return s, nil
}

// Spec returns the compiled declaration.
func (s *Set) Spec() ir.EnumSpec { return s.spec }

// Hash returns the content hash of the declaration.
func (s *Set) Hash() string { return s.hash }

// SetName implements enum.Set.
func (s *Set) SetName() string { return s.spec.Name }

// Cases implements enum.Set.
func (s *Set) Cases() []*Case { return append([]*Case(nil), s.cases...) }

// CaseName implements enum.Set.
func (s *Set) CaseName(c *Case) string { return c.name }

// Backed implements enum.Set.
func (s *Set) Backed() bool { return s.spec.Backed() }

// BackingValue implements enum.Set.
func (s *Set) BackingValue(c *Case) (ir.IRValue, bool) {
	if !s.Backed() {
		return nil, false
	}
	return c.value, true
}

// Attribute implements enum.Set.
func (s *Set) Attribute(c *Case, name string) (ir.IRValue, error) {
	v, ok := c.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", enum.ErrUnknownAttribute, name)
	}
	return v, nil
}
