package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/compiler"
	"github.com/roach88/caseset/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledEnum is one compiled declaration with its content hash.
type CompiledEnum struct {
	ir.EnumSpec
	Hash string `json:"hash"`
}

// CompilationResult holds the compiled enums in declaration order.
type CompilationResult struct {
	Enums []CompiledEnum `json:"enums"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [specs]",
		Short: "Compile CUE enum declarations to canonical IR",
		Long: `Compile CUE enum declarations to canonical IR.

The compiler loads every CUE file under the specs path, extracts each
enum block, checks it against the declaration rules and reports the
cases with a content hash. specs defaults to specs_dir from config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveArgs(args, []string{"specs"}, []string{opts.specsDefault()})
			if err != nil {
				return err
			}
			return runCompile(opts, resolved["specs"], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, specsDir string, cmd *cobra.Command) error {
	printer := newPrinter(opts.RootOptions, cmd.OutOrStdout())
	logger := opts.logger()

	loadResult, loadErrors := compiler.LoadSpecs(specsDir, compiler.LoadModeCollectAll)

	// Handle load errors (path not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		code, message := parseCompileError(loadErrors[0])
		return outputCompileError(printer, code, message, nil)
	}

	logger.Debug("specs loaded", "path", specsDir, "files", loadResult.FileCount, "enums", len(loadResult.Enums))

	errs := loadErrors
	result := &CompilationResult{Enums: make([]CompiledEnum, 0, len(loadResult.Enums))}
	for _, spec := range loadResult.Enums {
		logger.Debug("compiling enum", "enum", spec.Name, "cases", len(spec.Cases))

		if verrs := compiler.Validate(spec); len(verrs) > 0 {
			for _, verr := range verrs {
				errs = append(errs, verr)
			}
			continue
		}

		hash, err := ir.EnumHash(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result.Enums = append(result.Enums, CompiledEnum{EnumSpec: spec, Hash: hash})
	}

	if len(errs) > 0 {
		return outputCompileErrors(printer, errs)
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeIRToFile(result, opts.Output); err != nil {
			return outputCompileError(printer, compiler.ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		logger.Debug("wrote canonical IR", "path", opts.Output)
	}

	return outputCompileSuccess(printer, result, opts.Output)
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(printer *Printer, result *CompilationResult, outputFile string) error {
	if printer.JSON() {
		return printer.Success(result)
	}

	w := printer.Writer
	fmt.Fprintf(w, "✓ Compiled %d enum(s)\n\n", len(result.Enums))

	for _, e := range result.Enums {
		kind := "pure"
		if e.Backed() {
			kind = "backed by " + e.Backing
		}
		fmt.Fprintf(w, "  %s: %d case(s), %s\n", e.Name, len(e.Cases), kind)
		if printer.Verbose {
			fmt.Fprintf(w, "    hash: %s\n", e.Hash)
		}
	}
	fmt.Fprintln(w)

	if outputFile != "" {
		fmt.Fprintf(w, "Wrote canonical IR to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(printer *Printer, code, message string, details any) error {
	_ = printer.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return reported(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(printer *Printer, errs []error) error {
	if printer.JSON() {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		if err := printer.Respond(CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}); err != nil {
			return err
		}

		return reported(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(printer.Writer, "✗ Compilation failed")
	fmt.Fprintln(printer.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		var loadErr *compiler.LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(printer.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(printer.Writer, "  %s: %s\n\n", code, message)
	}

	return reported(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return compiler.MapFieldToErrorCode(compileErr.Field), compileErr.Message
	}
	var loadErr *compiler.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var verr compiler.ValidationError
	if errors.As(err, &verr) {
		return verr.Code, fmt.Sprintf("%s: %s", verr.Field, verr.Message)
	}
	return compiler.ErrCodeGeneric, err.Error()
}

// writeIRToFile writes the compilation result to a file as indented JSON.
func writeIRToFile(result *CompilationResult, filename string) error {
	// Indented for readability; canonical JSON is used only for hashing
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling IR: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
