package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is a flat key value structure that sources write into.
type Store map[string]any

// Source applies configuration values to a Store.
// Later sources override earlier ones.
type Source interface {
	Apply(Store) error
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(Store) error

// Apply implements the Source interface.
func (f SourceFunc) Apply(s Store) error { return f(s) }

// Defaults is a Source of fixed values.
type Defaults map[string]any

// Apply implements the Source interface.
func (d Defaults) Apply(s Store) error {
	for k, v := range d {
		s[k] = v
	}
	return nil
}

// Yaml is a Source whose values are a YAML mapping.
type Yaml struct {
	r io.Reader
}

// FromYaml returns a Source reading YAML from r.
func FromYaml(r io.Reader) Yaml {
	return Yaml{r: r}
}

// InvalidYamlError occurs if the underlying reader contains invalid YAML.
type InvalidYamlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

// Apply implements the Source interface.
func (src Yaml) Apply(store Store) error {
	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	if err := yaml.Unmarshal(b, &m); err != nil {
		return InvalidYamlError{cause: err}
	}
	for k, v := range m {
		store[k] = v
	}
	return nil
}

// Env is a Source backed by environment variables sharing a prefix.
// CASESET_SPECS_DIR sets the key specs_dir.
type Env struct {
	prefix  string
	environ func() []string
	keys    []string
}

// FromEnv returns a Source reading prefixed variables from the process
// environment.
func FromEnv(prefix string) Env {
	return Env{prefix: prefix, environ: os.Environ}
}

// FromEnviron is like FromEnv with an explicit environment.
func FromEnviron(prefix string, environ []string) Env {
	return Env{prefix: prefix, environ: func() []string { return environ }}
}

// Only restricts src to the given keys. Other prefixed variables are
// skipped instead of reaching the decoder.
func (src Env) Only(keys ...string) Env {
	src.keys = keys
	return src
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, src.prefix)
		if !ok || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if src.keys != nil && !slices.Contains(src.keys, key) {
			continue
		}
		store[key] = v
	}
	return nil
}
