package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NumberCUE declares a pure enum with three attributes per case.
const NumberCUE = `
enum: Number: {
	description: "pure enum used across tests"
	cases: {
		one:   {color: "red", odd: true, shape: "triangle"}
		two:   {color: "green", odd: false, shape: "square"}
		three: {color: "blue", odd: true, shape: "circle"}
	}
}
`

// LevelCUE declares an int-backed enum.
const LevelCUE = `
enum: Level: {
	backing: "int"
	cases: {
		low:    {value: 10, label: "Low", rank: 1}
		medium: {value: 20, label: "Medium", rank: 2}
		high:   {value: 30, label: "High", rank: 2}
	}
}
`

// StatusCUE declares a string-backed enum whose backing type is inferred.
const StatusCUE = `
enum: Status: {
	cases: {
		active:   {value: "A", visible: true}
		inactive: {value: "I", visible: false}
	}
}
`

// WriteFile writes content to dir/name and returns the full path.
// Parent directories are created as needed.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// SpecsDir writes the standard fixtures into a fresh temp directory and
// returns its path.
func SpecsDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "number.cue", NumberCUE)
	WriteFile(t, dir, "level.cue", LevelCUE)
	WriteFile(t, dir, "status.cue", StatusCUE)
	return dir
}
