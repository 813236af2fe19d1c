package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/catalog"
	"github.com/roach88/caseset/internal/compiler"
	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
)

// CaseListing is the JSON payload of the cases command.
type CaseListing struct {
	Enum        string        `json:"enum"`
	Description string        `json:"description,omitempty"`
	Backing     string        `json:"backing,omitempty"`
	Hash        string        `json:"hash"`
	Cases       []ir.CaseSpec `json:"cases"`
}

// NewCasesCommand creates the cases command.
func NewCasesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases [specs] [enum]",
		Short: "List the cases of an enum",
		Long: `List the cases of an enum in declaration order with their backing
values and attributes. specs and enum default to specs_dir and enum
from config.

Examples:
  caseset cases ./specs Level
  caseset cases Level --format json`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveArgs(args,
				[]string{"specs", "enum"},
				[]string{rootOpts.specsDefault(), rootOpts.enumDefault()})
			if err != nil {
				return err
			}
			return runCases(rootOpts, resolved["specs"], resolved["enum"], cmd)
		},
	}

	return cmd
}

func runCases(opts *RootOptions, specsDir, enumName string, cmd *cobra.Command) error {
	printer := newPrinter(opts, cmd.OutOrStdout())

	set, _, err := openEnum(opts, specsDir, enumName)
	if err != nil {
		return outputOpenError(printer, err)
	}

	spec := set.Spec()
	if printer.JSON() {
		return printer.Success(CaseListing{
			Enum:        spec.Name,
			Description: spec.Description,
			Backing:     spec.Backing,
			Hash:        set.Hash(),
			Cases:       spec.Cases,
		})
	}

	return writeCaseTable(printer.Writer, spec)
}

// writeCaseTable renders one row per case. The VALUE column is present
// only for backed enums.
func writeCaseTable(w io.Writer, spec ir.EnumSpec) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	attrs := spec.AttributeNames()

	header := []string{"NAME"}
	if spec.Backed() {
		header = append(header, "VALUE")
	}
	for _, a := range attrs {
		header = append(header, strings.ToUpper(a))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, c := range spec.Cases {
		row := []string{c.Name}
		if spec.Backed() {
			row = append(row, ir.Format(c.Value))
		}
		for _, a := range attrs {
			row = append(row, ir.Format(c.Attributes[a]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// openError carries the CLI error code for a failed enum lookup.
type openError struct {
	code string
	err  error
}

func (e *openError) Error() string { return e.err.Error() }

func (e *openError) Unwrap() error { return e.err }

// openEnum loads the catalog under specsDir and returns the named set and
// a registry over it.
func openEnum(opts *RootOptions, specsDir, enumName string) (*catalog.Set, *enum.Registry[*catalog.Case], error) {
	cat, err := catalog.Load(specsDir, catalog.WithLogger(opts.logger()))
	if err != nil {
		code, _ := parseCompileError(err)
		var invalid *catalog.InvalidSpecError
		if errors.As(err, &invalid) {
			code = invalid.Errors[0].Code
		}
		return nil, nil, &openError{code: code, err: err}
	}

	set, ok := cat.Get(enumName)
	if !ok {
		return nil, nil, &openError{
			code: compiler.ErrCodeNotFound,
			err:  fmt.Errorf("%w %q in %s (have %s)", catalog.ErrUnknownEnum, enumName, specsDir, strings.Join(cat.Names(), ", ")),
		}
	}

	r, err := cat.Registry(enumName)
	if err != nil {
		return nil, nil, &openError{code: compiler.ErrCodeGeneric, err: err}
	}
	return set, r, nil
}

// outputOpenError reports a failed openEnum. Unloadable specs are
// command-level errors (exit code 2).
func outputOpenError(printer *Printer, err error) error {
	code := compiler.ErrCodeGeneric
	var oe *openError
	if errors.As(err, &oe) {
		code = oe.code
	}
	_ = printer.Error(code, err.Error(), nil)
	return reported(ExitCommandError, fmt.Sprintf("%s: %s", code, err.Error()))
}
