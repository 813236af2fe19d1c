// Package config reads CLI settings from defaults, an optional YAML file
// and CASESET_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = ".caseset.yaml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "CASESET_"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds settings shared by every command.
type Config struct {
	// SpecsDir is the default specs path when a command omits it.
	SpecsDir string `config:"specs_dir"`

	// Format is the output format, "text" or "json".
	Format string `config:"format"`

	// Verbose enables debug logging.
	Verbose bool `config:"verbose"`

	// Enum is the default enum for cases and query.
	Enum string `config:"enum"`
}

// Default returns the built-in configuration.
func Default() Defaults {
	return Defaults{
		"format":  FormatText,
		"verbose": false,
	}
}

// Keys returns the config tag of every Config field.
func Keys() []string {
	t := reflect.TypeFor[Config]()
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		if k := t.Field(i).Tag.Get("config"); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Read applies srcs in order and decodes the result.
func Read(srcs ...Source) (*Config, error) {
	store := make(Store)
	for _, src := range srcs {
		if err := src.Apply(store); err != nil {
			return nil, err
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(store)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads defaults, then the YAML file at path, then the process
// environment. An empty path reads DefaultFile if it exists. Unknown keys
// in the file are errors; unknown CASESET_* variables are ignored.
func Load(path string) (*Config, error) {
	srcs := []Source{Default()}

	file, err := openConfig(path)
	if err != nil {
		return nil, err
	}
	if file != nil {
		defer file.Close()
		srcs = append(srcs, FromYaml(file))
	}

	srcs = append(srcs, FromEnv(EnvPrefix).Only(Keys()...))
	cfg, err := Read(srcs...)
	if err != nil {
		if file != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}
		return nil, err
	}
	return cfg, nil
}

func openConfig(path string) (*os.File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	return f, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatText, FormatJSON}, c.Format) {
		return fmt.Errorf("invalid format %q: must be %q or %q", c.Format, FormatText, FormatJSON)
	}
	return nil
}
