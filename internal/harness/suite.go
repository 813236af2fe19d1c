package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ScenarioNotFoundError is returned when a scenario path doesn't exist.
type ScenarioNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("scenario path %q does not exist", e.Path)
}

// FindScenarios returns the scenario files under root. A file is returned
// as-is; a directory is walked for .yaml and .yml files, sorted by path.
func FindScenarios(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, &ScenarioNotFoundError{Path: root}
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

// SuiteOptions configures RunSuite.
type SuiteOptions struct {
	// BasePath resolves relative spec paths. Empty means each scenario's
	// own directory.
	BasePath string

	// Filter is a path.Match glob on scenario names. Empty runs all.
	Filter string

	Logger *slog.Logger
}

// SuiteResult summarizes a run over many scenarios.
type SuiteResult struct {
	Total    int               `json:"total"`
	Passed   int               `json:"passed"`
	Failed   int               `json:"failed"`
	Skipped  int               `json:"skipped"` // filtered out
	Failures []ScenarioFailure `json:"failures,omitempty"`
}

// OK reports whether every selected scenario passed.
func (r *SuiteResult) OK() bool { return r.Failed == 0 }

// ScenarioFailure describes one failed scenario.
type ScenarioFailure struct {
	Scenario     string   `json:"scenario,omitempty"`
	ScenarioPath string   `json:"scenario_path"`
	Errors       []string `json:"errors"`
}

// RunSuite loads and runs every scenario file. Load and setup errors
// count as failures of that scenario rather than aborting the suite. An
// error is returned only for an invalid filter.
//
// For each file:
// 1. Load the scenario
// 2. Skip it when its name does not match the filter
// 3. Run it and record the outcome
func RunSuite(files []string, opts SuiteOptions) (*SuiteResult, error) {
	if opts.Filter != "" {
		if _, err := path.Match(opts.Filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", opts.Filter, err)
		}
	}

	var runOpts []Option
	if opts.Logger != nil {
		runOpts = append(runOpts, WithLogger(opts.Logger))
	}

	result := &SuiteResult{}
	for _, file := range files {
		base := opts.BasePath
		if base == "" {
			base = filepath.Dir(file)
		}

		scenario, err := LoadScenarioWithBasePath(file, base)
		if err != nil {
			result.Total++
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				ScenarioPath: file,
				Errors:       []string{fmt.Sprintf("failed to load scenario: %v", err)},
			})
			continue
		}

		if opts.Filter != "" {
			if ok, _ := path.Match(opts.Filter, scenario.Name); !ok {
				result.Skipped++
				continue
			}
		}
		result.Total++

		runResult, err := Run(scenario, runOpts...)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				Scenario:     scenario.Name,
				ScenarioPath: file,
				Errors:       []string{fmt.Sprintf("scenario execution failed: %v", err)},
			})
			continue
		}

		if !runResult.Pass {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				Scenario:     scenario.Name,
				ScenarioPath: file,
				Errors:       runResult.Errors,
			})
			continue
		}

		result.Passed++
	}

	return result, nil
}
