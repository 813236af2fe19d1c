package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/config"
	"github.com/roach88/caseset/internal/testutil"
)

const levelPassScenario = `
name: level-lookups
description: hydrates levels by value and name
specs: [level.cue]
enum: Level
steps:
  - query: from 20
    expect: {case: medium}
  - query: tryFrom 25
    expect: null
  - query: byValue 25
    error: NOT_FOUND
assertions:
  - type: trace_count
    error: NOT_FOUND
    count: 1
  - type: cases
    names: [low, medium, high]
`

const numberFailScenario = `
name: number-wrong
description: expects the wrong case
specs: [number.cue]
enum: Number
steps:
  - query: fromColor red
    expect: {case: two}
`

// scenariosDir writes the given scenarios into a fresh directory.
func scenariosDir(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scenarios {
		testutil.WriteFile(t, dir, name, body)
	}
	return dir
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestTestCommandNonExistentSpecsDir(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/specs", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), "specs directory not found")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), testutil.SpecsDir(t), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), testutil.SpecsDir(t), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommandPassing(t *testing.T) {
	specs := testutil.SpecsDir(t)
	scenarios := scenariosDir(t, map[string]string{"level.yaml": levelPassScenario})

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), specs, scenarios)
	require.NoError(t, err)
	assert.Equal(t, "Test Summary: 1 passed, 0 failed, 1 total\n", out)
}

func TestTestCommandFailing(t *testing.T) {
	specs := testutil.SpecsDir(t)
	scenarios := scenariosDir(t, map[string]string{
		"level.yaml":  levelPassScenario,
		"number.yaml": numberFailScenario,
	})

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), specs, scenarios)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))

	assert.Contains(t, out, "✗ number-wrong")
	assert.Contains(t, out, `step 0 (fromColor red): expected {"case":"two"}, got {"case":"one"}`)
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	specs := testutil.SpecsDir(t)
	scenarios := scenariosDir(t, map[string]string{
		"level.yaml":  levelPassScenario,
		"number.yaml": numberFailScenario,
	})

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), specs, scenarios, "--filter", "level-*")
	require.NoError(t, err)
	assert.Equal(t, "Test Summary: 1 passed, 0 failed, 1 total (1 skipped)\n", out)

	_, err = execute(NewTestCommand(&RootOptions{Format: "text"}), specs, scenarios, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestTestCommandJSON(t *testing.T) {
	specs := testutil.SpecsDir(t)
	scenarios := scenariosDir(t, map[string]string{
		"level.yaml":  levelPassScenario,
		"number.yaml": numberFailScenario,
	})

	out, err := execute(NewTestCommand(&RootOptions{Format: "json"}), specs, scenarios)
	require.Error(t, err)

	resp, data := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["passed"])
	assert.Equal(t, float64(1), data["failed"])

	failures, ok := data["failures"].([]any)
	require.True(t, ok)
	require.Len(t, failures, 1)
	assert.Equal(t, "number-wrong", failures[0].(map[string]any)["scenario"])
}

func TestTestCommandSpecsFromConfig(t *testing.T) {
	specs := testutil.SpecsDir(t)
	scenarios := scenariosDir(t, map[string]string{"level.yaml": levelPassScenario})

	opts := &RootOptions{Format: "text"}
	_, err := execute(NewTestCommand(opts), scenarios)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing specs argument")

	opts.Config = &config.Config{SpecsDir: specs}
	out, err := execute(NewTestCommand(opts), scenarios)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed")
}
