package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Enums  int                        `json:"enums"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [specs]",
		Short: "Validate enum declarations without emitting IR",
		Long: `Validate CUE enum declarations without emitting IR.

Reports every declaration error at once: duplicate names or values,
mixed or mismatched backing, reserved or missing attributes and floats.
specs defaults to specs_dir from config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveArgs(args, []string{"specs"}, []string{rootOpts.specsDefault()})
			if err != nil {
				return err
			}
			return runValidate(rootOpts, resolved["specs"], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	printer := newPrinter(opts, cmd.OutOrStdout())

	count, validationErrors, err := validateSpecs(specsDir, opts.logger())
	if err != nil {
		code, message := parseCompileError(err)
		return outputValidateError(printer, code, message, nil)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(printer, validationErrors)
	}

	return outputValidateSuccess(printer, count)
}

// validateSpecs loads every enum under specsDir and checks each one.
// A non-nil error means the specs could not be loaded at all.
func validateSpecs(specsDir string, logger *slog.Logger) (int, []compiler.ValidationError, error) {
	loadResult, loadErrors := compiler.LoadSpecs(specsDir, compiler.LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return 0, nil, loadErrors[0]
	}

	logger.Debug("specs loaded", "path", specsDir, "files", loadResult.FileCount)

	var allErrors []compiler.ValidationError
	for _, err := range loadErrors {
		allErrors = append(allErrors, toValidationError(err))
	}

	for _, spec := range loadResult.Enums {
		logger.Debug("validating enum", "enum", spec.Name)
		allErrors = append(allErrors, compiler.Validate(spec)...)
	}

	return len(loadResult.Enums), allErrors, nil
}

// toValidationError converts a load or compile error to a validation error.
func toValidationError(err error) compiler.ValidationError {
	var loadErr *compiler.LoadError
	if errors.As(err, &loadErr) {
		verr := compiler.ValidationError{
			Field:   "load",
			Message: loadErr.Message,
			Code:    loadErr.Code,
		}
		if loadErr.Pos.IsValid() {
			verr.Line = loadErr.Pos.Line()
		}
		return verr
	}
	code, message := parseCompileError(err)
	return compiler.ValidationError{Field: "load", Message: message, Code: code}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(printer *Printer, count int) error {
	if printer.JSON() {
		return printer.Success(ValidationResult{Valid: true, Enums: count})
	}

	fmt.Fprintf(printer.Writer, "✓ All specs valid (%d enum(s))\n", count)
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(printer *Printer, code, message string, details any) error {
	_ = printer.Error(code, message, details)
	// Unloadable specs are command-level errors (exit code 2)
	return reported(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(printer *Printer, errs []compiler.ValidationError) error {
	failed := reported(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	if printer.JSON() {
		if err := printer.Respond(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error:  &CLIError{Code: errs[0].Code, Message: errs[0].Message},
		}); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(printer.Writer, "✗ Validation failed")
	fmt.Fprintln(printer.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(printer.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(printer.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return failed
}

// ValidateSpecsDir validates all enums under specsDir.
// This is a helper function for external callers.
func ValidateSpecsDir(specsDir string) ([]compiler.ValidationError, error) {
	_, errs, err := validateSpecs(specsDir, (&RootOptions{}).logger())
	return errs, err
}
