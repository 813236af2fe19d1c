package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/caseset/internal/ir"
)

// Compile error fields. The loader maps them to validation codes.
const (
	FieldName    = "name"
	FieldCases   = "cases"
	FieldBacking = "backing"
	FieldValue   = "value"
	FieldFloat   = "float"
	FieldCUE     = "cue"
)

// CompileEnum parses a CUE value into an EnumSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the enum struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`enum: Number: { cases: { one: {}, two: {} } }`)
//	spec, err := CompileEnum(v.LookupPath(cue.ParsePath("enum.Number")))
//
// Case order follows CUE field order. Inside a case, the "value" field is
// the backing value and every other field is an attribute. When "backing"
// is absent it is inferred from the first backing value.
func CompileEnum(v cue.Value) (*ir.EnumSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.EnumSpec{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = norm.NFC.String(labels[len(labels)-1].Unquoted())
	}

	if descVal := v.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Description = desc
	}

	if backingVal := v.LookupPath(cue.ParsePath("backing")); backingVal.Exists() {
		backing, err := backingVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if backing == ir.BackingNone || !ir.ValidBackings[backing] {
			return nil, &CompileError{
				Field:   FieldBacking,
				Message: fmt.Sprintf("backing must be \"int\" or \"string\", got %q", backing),
				Pos:     backingVal.Pos(),
			}
		}
		spec.Backing = backing
	}

	casesVal := v.LookupPath(cue.ParsePath("cases"))
	if !casesVal.Exists() {
		return nil, &CompileError{
			Field:   FieldCases,
			Message: "cases are required",
			Pos:     v.Pos(),
		}
	}

	cases, err := parseCases(casesVal)
	if err != nil {
		return nil, err
	}
	spec.Cases = cases

	if spec.Backing == ir.BackingNone {
		spec.Backing = inferBacking(cases)
	}

	return spec, nil
}

// parseCases extracts cases in declaration order.
func parseCases(v cue.Value) ([]ir.CaseSpec, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var cases []ir.CaseSpec
	for iter.Next() {
		c := ir.CaseSpec{Name: norm.NFC.String(iter.Selector().Unquoted())}

		fields, err := iter.Value().Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}

		for fields.Next() {
			label := fields.Selector().Unquoted()
			val, err := extractValue(fields.Value())
			if err != nil {
				return nil, err
			}

			if label == FieldValue {
				c.Value = val
				continue
			}
			if c.Attributes == nil {
				c.Attributes = ir.IRObject{}
			}
			c.Attributes[label] = val
		}

		cases = append(cases, c)
	}

	return cases, nil
}

// inferBacking derives the backing type from the first declared value.
func inferBacking(cases []ir.CaseSpec) string {
	for _, c := range cases {
		switch c.Value.(type) {
		case ir.IRInt:
			return ir.BackingInt
		case ir.IRString:
			return ir.BackingString
		}
	}
	return ir.BackingNone
}

// extractValue converts a concrete CUE value into an IRValue.
// Floats are forbidden.
func extractValue(v cue.Value) (ir.IRValue, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	switch v.IncompleteKind() {
	case cue.FloatKind, cue.NumberKind:
		return nil, &CompileError{
			Field:   FieldFloat,
			Message: "float values are forbidden - use int instead",
			Pos:     v.Pos(),
		}
	}

	if !v.IsConcrete() {
		return nil, &CompileError{
			Field:   FieldValue,
			Message: fmt.Sprintf("value must be concrete, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}

	switch v.Kind() {
	case cue.NullKind:
		return ir.IRNull{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.IRBool(b), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.IRInt(n), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.IRString(s), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		arr := ir.IRArray{}
		for iter.Next() {
			elem, err := extractValue(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		obj := ir.IRObject{}
		for iter.Next() {
			elem, err := extractValue(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Selector().Unquoted()] = elem
		}
		return obj, nil
	default:
		return nil, &CompileError{
			Field:   FieldValue,
			Message: fmt.Sprintf("unsupported value kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   FieldCUE,
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
