package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/ir"
)

func validLevel() *ir.EnumSpec {
	return &ir.EnumSpec{
		Name:    "Level",
		Backing: ir.BackingInt,
		Cases: []ir.CaseSpec{
			{Name: "low", Value: ir.IRInt(1), Attributes: ir.IRObject{"label": ir.IRString("Low")}},
			{Name: "high", Value: ir.IRInt(3), Attributes: ir.IRObject{"label": ir.IRString("High")}},
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateEnumSpecValid(t *testing.T) {
	assert.Empty(t, Validate(validLevel()))
	assert.Empty(t, Validate(*validLevel()), "value form is accepted too")

	pure := &ir.EnumSpec{
		Name:  "Number",
		Cases: []ir.CaseSpec{{Name: "one"}, {Name: "two"}},
	}
	assert.Empty(t, Validate(pure))
}

func TestValidateEnumSpecErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ir.EnumSpec)
		want   []string
	}{
		{
			name:   "empty name",
			mutate: func(s *ir.EnumSpec) { s.Name = "  " },
			want:   []string{ErrEnumNameEmpty},
		},
		{
			name:   "no cases",
			mutate: func(s *ir.EnumSpec) { s.Cases = nil },
			want:   []string{ErrEnumNoCases},
		},
		{
			name:   "duplicate case name",
			mutate: func(s *ir.EnumSpec) { s.Cases[1].Name = "low" },
			want:   []string{ErrDuplicateCaseName},
		},
		{
			name:   "missing value on backed enum",
			mutate: func(s *ir.EnumSpec) { s.Cases[1].Value = nil },
			want:   []string{ErrMixedBacking},
		},
		{
			name: "value on pure enum",
			mutate: func(s *ir.EnumSpec) {
				s.Backing = ir.BackingNone
				s.Cases[0].Value = nil
			},
			want: []string{ErrMixedBacking},
		},
		{
			name:   "backing type mismatch",
			mutate: func(s *ir.EnumSpec) { s.Cases[1].Value = ir.IRString("3") },
			want:   []string{ErrBackingTypeMismatch},
		},
		{
			name:   "duplicate value",
			mutate: func(s *ir.EnumSpec) { s.Cases[1].Value = ir.IRInt(1) },
			want:   []string{ErrDuplicateValue},
		},
		{
			name: "reserved attribute",
			mutate: func(s *ir.EnumSpec) {
				for i := range s.Cases {
					s.Cases[i].Attributes["name"] = ir.IRString("x")
				}
			},
			want: []string{ErrReservedAttribute, ErrReservedAttribute},
		},
		{
			name:   "attribute on some cases only",
			mutate: func(s *ir.EnumSpec) { s.Cases[0].Attributes["rank"] = ir.IRInt(1) },
			want:   []string{ErrMissingAttribute},
		},
		{
			name:   "invalid backing",
			mutate: func(s *ir.EnumSpec) { s.Backing = "bool" },
			want:   []string{ErrInvalidBacking, ErrBackingTypeMismatch, ErrBackingTypeMismatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validLevel()
			tt.mutate(spec)
			assert.Equal(t, tt.want, codes(Validate(spec)))
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	spec := &ir.EnumSpec{
		Name:    "",
		Backing: ir.BackingString,
		Cases: []ir.CaseSpec{
			{Name: "a", Value: ir.IRString("x")},
			{Name: "a", Value: ir.IRString("x")},
		},
	}

	errs := Validate(spec)
	assert.Equal(t, []string{ErrEnumNameEmpty, ErrDuplicateCaseName, ErrDuplicateValue}, codes(errs))
}

func TestValidateUnsupportedType(t *testing.T) {
	errs := Validate("not an enum")
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnsupportedIRType, errs[0].Code)
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "cases[1].name", Message: "duplicate case name: \"low\"", Code: ErrDuplicateCaseName}
	assert.Equal(t, `[E203] cases[1].name: duplicate case name: "low"`, err.Error())

	err.Line = 7
	assert.Equal(t, `[E203] line 7: cases[1].name: duplicate case name: "low"`, err.Error())
}
