package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/ir"
)

func TestParse_Sources(t *testing.T) {
	tests := []struct {
		src  string
		want Source
	}{
		{"collect", Collect{}},
		{"byName two", ByName{Name: "two"}},
		{`tryByName "two words"`, ByName{Name: "two words", Try: true}},
		{"byValue 20", ByValue{Value: ir.IRInt(20)}},
		{`byValue "20"`, ByValue{Value: ir.IRString("20")}},
		{"tryByValue A", ByValue{Value: ir.IRString("A"), Try: true}},
		{"from one", From{Value: ir.IRString("one")}},
		{"tryFrom 10", From{Value: ir.IRInt(10), Try: true}},
		{"byKey color green", ByKey{Key: "color", Target: ir.IRString("green")}},
		{"tryByKey odd false", ByKey{Key: "odd", Target: ir.IRBool(false), Try: true}},
		{"fromOdd", Dynamic{Name: "fromOdd", Args: []ir.IRValue{}}},
		{"tryFromColor null", Dynamic{Name: "tryFromColor", Args: []ir.IRValue{ir.IRNull{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Source)
			assert.Empty(t, p.Ops)
			assert.Nil(t, p.Terminal)
		})
	}
}

func TestParse_Pipeline(t *testing.T) {
	p, err := Parse(`collect | except two | where odd true | sortDescBy color | pluck color shape`)
	require.NoError(t, err)

	assert.Equal(t, Collect{}, p.Source)
	assert.Equal(t, []Op{
		Only{Names: []string{"two"}, Except: true},
		Where{Key: "odd", Target: ir.IRBool(true)},
		Sort{Key: "color", Desc: true},
	}, p.Ops)
	assert.Equal(t, Pluck{Value: "color", Key: "shape"}, p.Terminal)
}

func TestParse_Terminals(t *testing.T) {
	tests := []struct {
		src  string
		want Terminal
	}{
		{"collect | count", Count{}},
		{"collect | names", Names{}},
		{"collect | values", Values{}},
		{"collect | keys color", Keys{Key: "color"}},
		{"collect | pluck", Pluck{}},
		{"collect | casesBy odd", CasesBy{Key: "odd"}},
		{"collect | has two", Has{Target: ir.IRString("two")}},
		{"collect | doesntHave 3", Has{Target: ir.IRInt(3), Negate: true}},
		{"byName one | get color", Get{Key: "color"}},
		{"byName one | is one", Is{Targets: []ir.IRValue{ir.IRString("one")}}},
		{"byName one | isNot two", Is{Targets: []ir.IRValue{ir.IRString("two")}, Negate: true}},
		{"byName one | in two three", Is{Targets: []ir.IRValue{ir.IRString("two"), ir.IRString("three")}}},
		{"byName one | notIn two", Is{Targets: []ir.IRValue{ir.IRString("two")}, Negate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Terminal)
		})
	}
}

func TestParse_QuotedStrings(t *testing.T) {
	p, err := Parse(`collect | only "a | b" "say \"hi\"" plain`)
	require.NoError(t, err)
	assert.Equal(t, Only{Names: []string{"a | b", `say "hi"`, "plain"}}, p.Ops[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		src   string
		stage int
		msg   string
	}{
		{"", 0, "empty query"},
		{"   ", 0, "empty query"},
		{"collect |", 2, "empty stage"},
		{"| count", 1, "empty stage"},
		{"lookup two", 1, `unknown source "lookup"`},
		{"byName", 1, "byName takes 1 argument(s), got 0"},
		{"byKey color", 1, "byKey takes 2 argument(s), got 1"},
		{"fromColor red green", 1, "fromColor takes 0 to 1 arguments, got 2"},
		{"collect | frobnicate", 2, `unknown stage "frobnicate"`},
		{"collect | count | sort", 3, `"sort" follows a terminal stage`},
		{"collect | count | names", 3, `"names" follows a terminal stage`},
		{`byName "open`, 1, "unterminated string at offset 7"},
		{`byName "a"b`, 1, "unexpected text after string at offset 10"},
		{`byName a"b"`, 1, "unexpected quote at offset 8"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)

			var qe *Error
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, CodeParse, qe.Code)
			assert.Equal(t, tt.stage, qe.Stage)
			assert.Equal(t, tt.msg, qe.Message)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.NotPanics(t, func() { MustParse("collect") })
}

func TestErrorFormat(t *testing.T) {
	assert.Equal(t, "PARSE_ERROR: stage 2: empty stage", parseErrorf(2, "empty stage").Error())
	assert.Equal(t, "INVALID_QUERY: bad", invalidf(0, "bad").Error())
}
