package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/ir"
)

func TestParseCall(t *testing.T) {
	tests := []struct {
		name string
		want Call
		ok   bool
	}{
		{"fromColor", Call{Mode: ModeMust, Key: "color"}, true},
		{"tryFromColor", Call{Mode: ModeTry, Key: "color"}, true},
		{"fromIsOdd", Call{Mode: ModeMust, Key: "isOdd"}, true},
		{"fromName", Call{Mode: ModeMust, Key: "name"}, true},
		{"tryFromValue", Call{Mode: ModeTry, Key: "value"}, true},
		{"from", Call{Mode: ModeMust}, true},
		{"tryFrom", Call{Mode: ModeTry}, true},
		{"fromage", Call{}, false},
		{"tryfromColor", Call{}, false},
		{"byColor", Call{}, false},
		{"", Call{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCall(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_CallDefaultsToTrue(t *testing.T) {
	res, err := numbers().Call("fromOdd")
	require.NoError(t, err)

	coll, ok := res.Collection()
	require.True(t, ok)
	assert.Equal(t, []string{"one", "three"}, coll.Names())
}

func TestRegistry_CallWithTarget(t *testing.T) {
	r := numbers()

	res, err := r.Call("fromColor", ir.IRString("green"))
	require.NoError(t, err)
	c, ok := res.Case()
	require.True(t, ok)
	assert.Equal(t, two, c)

	res, err = r.Call("tryFromColor", ir.IRString("orange"))
	require.NoError(t, err)
	assert.True(t, res.IsNone())

	_, err = r.Call("fromColor", ir.IRString("orange"))
	assert.True(t, IsInvalidKey(err))

	_, err = r.Call("fromOdd", ir.IRInt(123))
	assert.True(t, IsInvalidKey(err))
}

func TestRegistry_CallMatchesByKey(t *testing.T) {
	r := numbers()

	for _, target := range []ir.IRValue{ir.IRString("red"), ir.IRString("blue"), ir.IRString("none")} {
		direct, directErr := r.TryByKey(Attr[number]("color"), target)
		viaCall, callErr := r.Call("tryFromColor", target)
		assert.Equal(t, directErr, callErr)
		assert.True(t, direct.All().Equal(viaCall.All()))
	}
}

func TestRegistry_CallNative(t *testing.T) {
	res, err := numbers().Call("from", ir.IRString("three"))
	require.NoError(t, err)
	c, _ := res.Case()
	assert.Equal(t, three, c)

	res, err = numbers().Call("tryFrom", ir.IRString("four"))
	require.NoError(t, err)
	assert.True(t, res.IsNone())

	_, err = numbers().Call("from", ir.IRString("four"))
	assert.True(t, IsNotFound(err))

	lres, err := levels().Call("from", ir.IRInt(20))
	require.NoError(t, err)
	l, _ := lres.Case()
	assert.Equal(t, medium, l)
}

func TestRegistry_CallErrors(t *testing.T) {
	r := numbers()

	_, err := r.Call("byColor", ir.IRString("red"))
	assert.True(t, IsUnsupported(err))
	assert.EqualError(t, err, `UNSUPPORTED_OPERATION: "byColor" is not a recognized lookup for enum "Number"`)

	_, err = r.Call("tryFromInvalid")
	assert.True(t, IsUnknownKey(err), "try never hides unknown keys")

	_, err = r.Call("tryFromValue", ir.IRInt(1))
	assert.True(t, IsUnsupported(err))
}

func TestRegistry_EmptyResultsKeepTheirEnum(t *testing.T) {
	testCases := []struct {
		name   string
		call   string
		target ir.IRValue
	}{
		{"try miss", "tryFrom", ir.IRString("four")},
		{"try key miss", "tryFromColor", ir.IRString("orange")},
		{"strict miss", "from", ir.IRString("four")},
		{"unsupported call", "toColor", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := []ir.IRValue{}
			if tc.target != nil {
				args = append(args, tc.target)
			}
			res, _ := numbers().Call(tc.call, args...)

			require.True(t, res.IsNone())
			all := res.All()
			assert.NotPanics(t, func() { all.Names() })
			assert.Equal(t, []string{}, all.Names())

			c, ok := res.Collection()
			assert.False(t, ok)
			assert.Equal(t, []string{}, c.Names())
		})
	}
}
