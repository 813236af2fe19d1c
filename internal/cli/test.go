package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern on scenario names)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test [specs] <scenarios>",
		Short: "Run conformance scenarios",
		Long: `Run conformance scenarios using the harness framework.

Each scenario lists spec files, an enum and query steps with expected
outputs or error codes, followed by trace assertions. Spec paths in a
scenario resolve against specs, which defaults to specs_dir from config.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, bad filter, etc.)

Examples:
  caseset test ./specs ./scenarios
  caseset test ./specs ./scenarios --filter "level-*"
  caseset test ./specs ./scenarios --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveArgs(args,
				[]string{"specs", "scenarios"},
				[]string{rootOpts.specsDefault(), ""})
			if err != nil {
				return err
			}
			return runTests(opts, resolved["specs"], resolved["scenarios"], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, specsDir, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(specsDir); os.IsNotExist(err) {
		return exitf(ExitCommandError, "specs directory not found: %s", specsDir)
	}

	files, err := harness.FindScenarios(scenariosDir)
	if err != nil {
		var nf *harness.ScenarioNotFoundError
		if errors.As(err, &nf) {
			return exitf(ExitCommandError, "scenarios directory not found: %s", scenariosDir)
		}
		return exitf(ExitCommandError, "failed to find scenarios: %w", err)
	}

	result, err := harness.RunSuite(files, harness.SuiteOptions{
		BasePath: specsDir,
		Filter:   opts.Filter,
		Logger:   opts.logger(),
	})
	if err != nil {
		return exitf(ExitCommandError, "running scenarios: %w", err)
	}

	printer := newPrinter(opts.RootOptions, cmd.OutOrStdout())
	if printer.JSON() {
		if err := printer.Success(result); err != nil {
			return err
		}
	} else {
		outputTestText(printer, result)
	}

	if !result.OK() {
		return reported(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText writes failures followed by a summary line.
func outputTestText(printer *Printer, result *harness.SuiteResult) {
	w := printer.Writer

	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return
	}

	for _, f := range result.Failures {
		name := f.Scenario
		if name == "" {
			name = f.ScenarioPath
		}
		fmt.Fprintf(w, "✗ %s\n", name)
		for _, e := range f.Errors {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}
	if len(result.Failures) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	if result.Skipped > 0 {
		fmt.Fprintf(w, " (%d skipped)", result.Skipped)
	}
	fmt.Fprintln(w)
}
