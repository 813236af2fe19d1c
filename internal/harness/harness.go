package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/caseset/internal/catalog"
	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
	"github.com/roach88/caseset/internal/query"
)

// Harness is the scenario execution engine.
// It evaluates each step against a registry built fresh for the scenario.
type Harness struct {
	catalog  *catalog.Catalog
	registry *enum.Registry[*catalog.Case]
	seq      int64
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger for step diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario compiles its own specs, so runs are isolated and the
// trace is reproducible.
//
// Execution flow:
// 1. Compile specs into a catalog
// 2. Build the registry for scenario.Enum
// 3. Evaluate steps, checking each expectation
// 4. Evaluate assertions over the trace
//
// An error is returned only when the scenario cannot be set up; failed
// expectations are reported through Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	cat, err := loadCatalog(scenario.Specs, h.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load specs: %w", err)
	}
	h.catalog = cat

	r, err := cat.Registry(scenario.Enum)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	h.registry = r

	result := NewResult()
	if err := h.executeSteps(scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	set, _ := cat.Get(scenario.Enum)
	actx := &AssertionContext{Set: set}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"enum", scenario.Enum,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)

	return result, nil
}

// executeSteps evaluates every step in order. Query failures are part of
// the trace, not errors of the run.
func (h *Harness) executeSteps(steps []Step, result *Result) error {
	for i, step := range steps {
		h.seq++
		event := TraceEvent{Seq: h.seq, Query: step.Query}

		out, err := query.Run(h.registry, step.Query)
		if err != nil {
			code := query.CodeOf(err)
			if code == "" {
				return fmt.Errorf("step %d: %w", i, err)
			}
			event.Error = code
			event.Message = err.Error()
		} else {
			event.Output = out
		}
		result.AddTrace(event)

		if msg, ok := h.check(i, step, event); !ok {
			result.AddError(msg)
		}

		h.logger.Debug("step completed",
			"step", i,
			"seq", event.Seq,
			"query", step.Query,
			"error", event.Error,
		)
	}
	return nil
}

// check compares a step outcome with its expectation.
func (h *Harness) check(index int, step Step, event TraceEvent) (string, bool) {
	switch {
	case step.Error != "":
		if event.Error == step.Error {
			return "", true
		}
		if event.Failed() {
			return fmt.Sprintf("step %d (%s): expected error %s, got %s", index, step.Query, step.Error, event.Message), false
		}
		return fmt.Sprintf("step %d (%s): expected error %s, got output %s", index, step.Query, step.Error, ir.Format(event.Output)), false

	case step.HasExpect():
		want, err := step.Expected()
		if err != nil {
			return fmt.Sprintf("step %d (%s): invalid expectation: %v", index, step.Query, err), false
		}
		if event.Failed() {
			return fmt.Sprintf("step %d (%s): expected %s, got %s", index, step.Query, ir.Format(want), event.Message), false
		}
		if !ir.Equal(want, event.Output) {
			return fmt.Sprintf("step %d (%s): expected %s, got %s", index, step.Query, ir.Format(want), ir.Format(event.Output)), false
		}
		return "", true

	default:
		if event.Failed() {
			return fmt.Sprintf("step %d (%s): unexpected error: %s", index, step.Query, event.Message), false
		}
		return "", true
	}
}

// loadCatalog compiles scenario specs. A single directory entry is loaded
// as a CUE package; otherwise every entry is compiled as a file.
func loadCatalog(specs []string, logger *slog.Logger) (*catalog.Catalog, error) {
	if len(specs) == 1 {
		if info, err := os.Stat(specs[0]); err == nil && info.IsDir() {
			return catalog.Load(specs[0], catalog.WithLogger(logger))
		}
	}
	return catalog.LoadFiles(specs, catalog.WithLogger(logger))
}
