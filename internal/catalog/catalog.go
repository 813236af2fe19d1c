// Package catalog turns compiled enum declarations into runtime sets.
//
// A Set is the declaring collaborator for one compiled enum: it hands the
// lookup engine an ordered list of *Case handles and answers attribute
// reads from the declared attribute table. A Catalog holds every set
// loaded from a specs path and builds registries on demand.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/caseset/internal/compiler"
	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
)

// ErrUnknownEnum is returned when a catalog has no enum by the requested name.
var ErrUnknownEnum = errors.New("unknown enum")

// InvalidSpecError reports an enum declaration that failed validation.
type InvalidSpecError struct {
	Enum   string
	Errors []compiler.ValidationError
}

func (e *InvalidSpecError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("enum %q is invalid: %s", e.Enum, e.Errors[0].Error())
	}
	return fmt.Sprintf("enum %q is invalid: %d validation errors, first: %s", e.Enum, len(e.Errors), e.Errors[0].Error())
}

// Catalog is an immutable collection of sets keyed by enum name.
type Catalog struct {
	sets   map[string]*Set
	order  []string
	logger *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for catalog diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New builds a catalog from compiled specs. Every spec is validated; the
// first invalid spec aborts construction. Enum names must be unique.
func New(specs []ir.EnumSpec, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		sets:   make(map[string]*Set, len(specs)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, spec := range specs {
		if _, dup := c.sets[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate enum %q", spec.Name)
		}
		if errs := compiler.Validate(&spec); len(errs) > 0 {
			return nil, &InvalidSpecError{Enum: spec.Name, Errors: errs}
		}

		set, err := NewSet(spec)
		if err != nil {
			return nil, err
		}
		c.sets[spec.Name] = set
		c.order = append(c.order, spec.Name)

		c.logger.Debug("enum registered",
			"enum", spec.Name,
			"cases", len(spec.Cases),
			"backing", spec.Backing,
			"hash", set.Hash(),
		)
	}

	return c, nil
}

// Load compiles every enum under path and builds a catalog from them.
// Compile errors are joined into a single error.
func Load(path string, opts ...Option) (*Catalog, error) {
	result, errs := compiler.LoadSpecs(path, compiler.LoadModeCollectAll)
	if len(errs) > 0 {
		return nil, fmt.Errorf("load %s: %w", path, errors.Join(errs...))
	}
	return New(result.Enums, opts...)
}

// LoadFiles is Load over an explicit list of .cue files.
func LoadFiles(paths []string, opts ...Option) (*Catalog, error) {
	result, errs := compiler.LoadFiles(paths, compiler.LoadModeCollectAll)
	if len(errs) > 0 {
		return nil, fmt.Errorf("load specs: %w", errors.Join(errs...))
	}
	return New(result.Enums, opts...)
}

// Names returns enum names in load order.
func (c *Catalog) Names() []string { return slices.Clone(c.order) }

// Len returns the number of enums.
func (c *Catalog) Len() int { return len(c.order) }

// Get returns the set for name.
func (c *Catalog) Get(name string) (*Set, bool) {
	s, ok := c.sets[name]
	return s, ok
}

// Registry returns a lookup engine over the named enum.
func (c *Catalog) Registry(name string) (*enum.Registry[*Case], error) {
	s, ok := c.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnum, name)
	}
	return enum.New[*Case](s), nil
}
