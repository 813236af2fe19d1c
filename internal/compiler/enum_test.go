package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/ir"
	"github.com/roach88/caseset/internal/testutil"
)

func compileFixture(t *testing.T, src, path string) (*ir.EnumSpec, error) {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return CompileEnum(v.LookupPath(cue.ParsePath(path)))
}

func TestCompileEnumPure(t *testing.T) {
	spec, err := compileFixture(t, testutil.NumberCUE, "enum.Number")
	require.NoError(t, err)

	assert.Equal(t, "Number", spec.Name)
	assert.Equal(t, "pure enum used across tests", spec.Description)
	assert.Equal(t, ir.BackingNone, spec.Backing)
	assert.False(t, spec.Backed())
	assert.Equal(t, []string{"one", "two", "three"}, spec.CaseNames())
	assert.Equal(t, []string{"color", "odd", "shape"}, spec.AttributeNames())

	two := spec.Cases[1]
	assert.Nil(t, two.Value)
	assert.Equal(t, ir.IRString("green"), two.Attributes["color"])
	assert.Equal(t, ir.IRBool(false), two.Attributes["odd"])
}

func TestCompileEnumBacked(t *testing.T) {
	spec, err := compileFixture(t, testutil.LevelCUE, "enum.Level")
	require.NoError(t, err)

	assert.Equal(t, ir.BackingInt, spec.Backing)
	assert.Equal(t, ir.IRInt(20), spec.Cases[1].Value)
	_, hasValueAttr := spec.Cases[1].Attributes["value"]
	assert.False(t, hasValueAttr, "value is the backing value, not an attribute")
	assert.Equal(t, ir.IRString("Medium"), spec.Cases[1].Attributes["label"])
}

func TestCompileEnumInfersBacking(t *testing.T) {
	spec, err := compileFixture(t, testutil.StatusCUE, "enum.Status")
	require.NoError(t, err)

	assert.Equal(t, ir.BackingString, spec.Backing)
	assert.Equal(t, ir.IRString("A"), spec.Cases[0].Value)
}

func TestCompileEnumPreservesDeclarationOrder(t *testing.T) {
	spec, err := compileFixture(t, `
		enum: Order: cases: {
			zulu: {}
			alpha: {}
			mike: {}
		}
	`, "enum.Order")
	require.NoError(t, err)
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, spec.CaseNames())
}

func TestCompileEnumStructuredAttributes(t *testing.T) {
	spec, err := compileFixture(t, `
		enum: Shape: cases: {
			square: {sides: 4, tags: ["regular", "quad"], meta: {convex: true, note: null}}
		}
	`, "enum.Shape")
	require.NoError(t, err)

	attrs := spec.Cases[0].Attributes
	assert.Equal(t, ir.IRInt(4), attrs["sides"])
	assert.Equal(t, ir.IRArray{ir.IRString("regular"), ir.IRString("quad")}, attrs["tags"])
	assert.Equal(t, ir.IRObject{"convex": ir.IRBool(true), "note": ir.IRNull{}}, attrs["meta"])
}

func TestCompileEnumRejectsFloat(t *testing.T) {
	_, err := compileFixture(t, `
		enum: Money: cases: {
			dime: {value: 0.1}
		}
	`, "enum.Money")

	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, FieldFloat, compileErr.Field)
	assert.Contains(t, err.Error(), "float")
}

func TestCompileEnumRejectsIncompleteValue(t *testing.T) {
	_, err := compileFixture(t, `
		enum: Open: cases: {
			open: {label: string}
		}
	`, "enum.Open")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "concrete")
}

func TestCompileEnumMissingCases(t *testing.T) {
	_, err := compileFixture(t, `enum: Empty: {description: "nothing"}`, "enum.Empty")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cases")
	assert.Contains(t, err.Error(), "required")
}

func TestCompileEnumInvalidBacking(t *testing.T) {
	_, err := compileFixture(t, `
		enum: Bad: {
			backing: "bool"
			cases: yes: {value: true}
		}
	`, "enum.Bad")

	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, FieldBacking, compileErr.Field)
}

func TestCompileEnumNormalizesNames(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	spec, err := compileFixture(t, "enum: Accent: cases: {\"caf\\u0065\\u0301\": {}}", "enum.Accent")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", spec.Cases[0].Name)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "cases", Message: "cases are required"}
	assert.Equal(t, "cases: cases are required", err.Error())
}
