package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/caseset/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrUnsupportedIRType = "E200" // unsupported IR type for validation

	ErrEnumNameEmpty       = "E201" // enum name is required
	ErrEnumNoCases         = "E202" // at least one case required
	ErrDuplicateCaseName   = "E203" // case names must be unique
	ErrMixedBacking        = "E204" // all cases or none carry a value
	ErrBackingTypeMismatch = "E205" // value kind differs from backing type
	ErrDuplicateValue      = "E206" // backing values must be unique
	ErrReservedAttribute   = "E207" // attribute shadows a reserved key
	ErrFloatForbidden      = "E208" // float values not allowed
	ErrMissingAttribute    = "E209" // attribute declared on some cases only
	ErrInvalidBacking      = "E210" // backing is not "int" or "string"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates compiled IR against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(v any) []ValidationError {
	switch spec := v.(type) {
	case *ir.EnumSpec:
		return validateEnumSpec(spec)
	case ir.EnumSpec:
		return validateEnumSpec(&spec)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

func validateEnumSpec(spec *ir.EnumSpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "enum name is required and must be non-empty",
			Code:    ErrEnumNameEmpty,
		})
	}

	if !ir.ValidBackings[spec.Backing] {
		errs = append(errs, ValidationError{
			Field:   "backing",
			Message: fmt.Sprintf("invalid backing %q, must be \"int\" or \"string\"", spec.Backing),
			Code:    ErrInvalidBacking,
		})
	}

	if len(spec.Cases) == 0 {
		errs = append(errs, ValidationError{
			Field:   "cases",
			Message: "at least one case is required",
			Code:    ErrEnumNoCases,
		})
		return errs
	}

	names := make(map[string]bool)
	values := make(map[string]string)
	attrs := spec.AttributeNames()

	for i, c := range spec.Cases {
		field := fmt.Sprintf("cases[%d]", i)

		if names[c.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate case name: %q", c.Name),
				Code:    ErrDuplicateCaseName,
			})
		}
		names[c.Name] = true

		errs = append(errs, validateCaseValue(spec, c, field, values)...)

		if _, ok := c.Attributes[""]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".attributes",
				Message: "attribute names must be non-empty",
				Code:    ErrReservedAttribute,
			})
		}
		if _, ok := c.Attributes["name"]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".attributes.name",
				Message: fmt.Sprintf("case %q declares reserved attribute \"name\"", c.Name),
				Code:    ErrReservedAttribute,
			})
		}

		for _, attr := range attrs {
			if _, ok := c.Attributes[attr]; !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.attributes.%s", field, attr),
					Message: fmt.Sprintf("case %q is missing attribute %q declared by other cases", c.Name, attr),
					Code:    ErrMissingAttribute,
				})
			}
		}
	}

	return errs
}

// validateCaseValue checks one case's backing value against the enum's
// backing type. values tracks fingerprints already seen, for E206.
func validateCaseValue(spec *ir.EnumSpec, c ir.CaseSpec, field string, values map[string]string) []ValidationError {
	var errs []ValidationError

	if !spec.Backed() {
		if c.Value != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".value",
				Message: fmt.Sprintf("case %q has a value but enum %q is not backed", c.Name, spec.Name),
				Code:    ErrMixedBacking,
			})
		}
		return errs
	}

	if c.Value == nil {
		return append(errs, ValidationError{
			Field:   field + ".value",
			Message: fmt.Sprintf("case %q has no value but enum %q is backed by %s", c.Name, spec.Name, spec.Backing),
			Code:    ErrMixedBacking,
		})
	}

	if kind := ir.KindOf(c.Value); kind.String() != spec.Backing {
		errs = append(errs, ValidationError{
			Field:   field + ".value",
			Message: fmt.Sprintf("case %q has %s value %s, enum is backed by %s", c.Name, kind, ir.Format(c.Value), spec.Backing),
			Code:    ErrBackingTypeMismatch,
		})
	}

	fp := ir.Fingerprint(c.Value)
	if prev, ok := values[fp]; ok {
		errs = append(errs, ValidationError{
			Field:   field + ".value",
			Message: fmt.Sprintf("case %q repeats value %s of case %q", c.Name, ir.Format(c.Value), prev),
			Code:    ErrDuplicateValue,
		})
	} else {
		values[fp] = c.Name
	}

	return errs
}
