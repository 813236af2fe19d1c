package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
	"github.com/roach88/caseset/internal/query"
)

// Scenario defines a conformance scenario.
// Scenarios run a sequence of queries against one enum and check each
// outcome, then evaluate assertions over the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists CUE files or directories to compile.
	// Relative paths are resolved against the scenario's base path.
	Specs []string `yaml:"specs"`

	// Enum names the declared enum every step queries.
	Enum string `yaml:"enum"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and set.
	// Supported types: trace_contains, trace_order, trace_count, cases
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one query with an optional expectation.
type Step struct {
	// Query is a pipeline in the query language.
	Query string `yaml:"query"`

	// Expect is the expected output. An explicit null expects a miss;
	// an absent key skips the output check.
	Expect yaml.Node `yaml:"expect,omitempty"`

	// Error is the expected error code (e.g. "NOT_FOUND").
	Error string `yaml:"error,omitempty"`
}

// HasExpect reports whether the step declares an expected output.
func (s *Step) HasExpect() bool {
	return s.Expect.Kind != 0
}

// Expected decodes the expected output into an IRValue.
func (s *Step) Expected() (ir.IRValue, error) {
	var raw any
	if err := s.Expect.Decode(&raw); err != nil {
		return nil, err
	}
	return ir.FromGo(raw)
}

// Assertion validates the trace or the enum under test.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": a step ran the query (optionally failing with Error)
	// - "trace_order": queries ran in the given order
	// - "trace_count": matching steps occurred exactly Count times
	// - "cases": the enum declares exactly Names, in order
	Type string `yaml:"type"`

	// Query is the pipeline text (trace_contains, trace_count).
	Query string `yaml:"query,omitempty"`

	// Error restricts matching to steps failing with this code
	// (trace_contains, trace_count).
	Error string `yaml:"error,omitempty"`

	// Count is the expected number of matches (trace_count).
	Count int `yaml:"count,omitempty"`

	// Queries is the expected order (trace_order).
	Queries []string `yaml:"queries,omitempty"`

	// Names is the expected case list (cases).
	Names []string `yaml:"names,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertCases         = "cases"
)

// errorCodes lists the codes a step may expect.
var errorCodes = []string{
	string(enum.CodeNotFound),
	string(enum.CodeInvalidKey),
	string(enum.CodeUnknownKey),
	string(enum.CodeUnsupported),
	query.CodeParse,
	query.CodeInvalid,
}

// LoadScenario reads and parses a scenario YAML file. Relative spec paths
// are resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving spec paths relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, basePath)
}

// ParseScenario decodes a scenario document. Unknown fields are rejected.
func ParseScenario(data []byte, basePath string) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve spec paths before validation so existence checks see real paths
	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) && basePath != "" {
			scenario.Specs[i] = filepath.Join(basePath, specPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}

	if s.Enum == "" {
		return fmt.Errorf("enum is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec file not found: %s", specPath)
		}
	}

	for i, step := range s.Steps {
		if step.Query == "" {
			return fmt.Errorf("steps[%d]: query is required", i)
		}
		if step.HasExpect() && step.Error != "" {
			return fmt.Errorf("steps[%d]: expect and error are mutually exclusive", i)
		}
		if step.Error != "" && !slices.Contains(errorCodes, step.Error) {
			return fmt.Errorf("steps[%d]: unknown error code %q", i, step.Error)
		}
		if step.HasExpect() {
			if _, err := step.Expected(); err != nil {
				return fmt.Errorf("steps[%d].expect: %w", i, err)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Query == "" {
			return fmt.Errorf("assertions[%d]: query is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Queries) == 0 {
			return fmt.Errorf("assertions[%d]: queries list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Query == "" && a.Error == "" {
			return fmt.Errorf("assertions[%d]: query or error is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertCases:
		if len(a.Names) == 0 {
			return fmt.Errorf("assertions[%d]: names list is required for cases", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
