package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/compiler"
	"github.com/roach88/caseset/internal/config"
	"github.com/roach88/caseset/internal/testutil"
)

// rows splits tabular output into whitespace-separated fields per line.
func rows(out string) [][]string {
	var rs [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rs = append(rs, strings.Fields(line))
	}
	return rs
}

func TestCasesText(t *testing.T) {
	dir := testutil.SpecsDir(t)

	testCases := []struct {
		enum     string
		expected [][]string
	}{
		{
			enum: "Level",
			expected: [][]string{
				{"NAME", "VALUE", "LABEL", "RANK"},
				{"low", "10", `"Low"`, "1"},
				{"medium", "20", `"Medium"`, "2"},
				{"high", "30", `"High"`, "2"},
			},
		},
		{
			enum: "Number",
			expected: [][]string{
				{"NAME", "COLOR", "ODD", "SHAPE"},
				{"one", `"red"`, "true", `"triangle"`},
				{"two", `"green"`, "false", `"square"`},
				{"three", `"blue"`, "true", `"circle"`},
			},
		},
		{
			enum: "Status",
			expected: [][]string{
				{"NAME", "VALUE", "VISIBLE"},
				{"active", `"A"`, "true"},
				{"inactive", `"I"`, "false"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.enum, func(t *testing.T) {
			out, err := execute(NewCasesCommand(&RootOptions{Format: "text"}), dir, tc.enum)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rows(out))
		})
	}
}

func TestCasesJSON(t *testing.T) {
	out, err := execute(NewCasesCommand(&RootOptions{Format: "json"}), testutil.SpecsDir(t), "Status")
	require.NoError(t, err)

	resp, data := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Status", data["enum"])
	assert.Equal(t, "string", data["backing"])
	assert.Len(t, data["hash"], 64)

	cases, ok := data["cases"].([]any)
	require.True(t, ok)
	require.Len(t, cases, 2)
	assert.Equal(t, map[string]any{
		"name":       "active",
		"value":      "A",
		"attributes": map[string]any{"visible": true},
	}, cases[0])
}

func TestCasesDefaultsFromConfig(t *testing.T) {
	opts := &RootOptions{
		Format: "text",
		Config: &config.Config{SpecsDir: testutil.SpecsDir(t), Enum: "Status"},
	}

	out, err := execute(NewCasesCommand(opts))
	require.NoError(t, err)
	assert.Len(t, rows(out), 3)

	out, err = execute(NewCasesCommand(opts), "Level")
	require.NoError(t, err)
	assert.Len(t, rows(out), 4)
}

func TestCasesErrors(t *testing.T) {
	testCases := []struct {
		name string
		args func(t *testing.T) []string
		code string
		msg  string
	}{
		{
			name: "unknown enum",
			args: func(t *testing.T) []string { return []string{testutil.SpecsDir(t), "Colour"} },
			code: compiler.ErrCodeNotFound,
			msg:  `unknown enum "Colour"`,
		},
		{
			name: "invalid declaration",
			args: func(t *testing.T) []string { return []string{invalidSpecsDir(t), "Bad"} },
			code: compiler.ErrDuplicateValue,
			msg:  `enum "Bad" is invalid`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(NewCasesCommand(&RootOptions{Format: "text"}), tc.args(t)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, ExitCode(err))
			assert.Contains(t, out, "Error ["+tc.code+"]")
			assert.Contains(t, out, tc.msg)
		})
	}
}
