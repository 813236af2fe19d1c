package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/enum"
	"github.com/roach88/caseset/internal/ir"
	"github.com/roach88/caseset/internal/query"
)

// QueryOutput is the JSON payload of the query command.
type QueryOutput struct {
	Enum     string     `json:"enum"`
	Query    string     `json:"query"`
	Result   ir.IRValue `json:"result"`
	Warnings []string   `json:"warnings,omitempty"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [specs] [enum] <expr>",
		Short: "Evaluate a lookup or collection query against an enum",
		Long: `Evaluate a query pipeline against an enum.

A pipeline is a source followed by optional filter and sort stages and
an optional terminal, separated by "|". specs and enum default to
specs_dir and enum from config.

Exit codes:
  0 - Query succeeded (including misses from try* lookups)
  1 - Lookup failed (NOT_FOUND, INVALID_KEY, UNKNOWN_KEY, UNSUPPORTED_OPERATION)
  2 - Command error (unparsable or malformed query, bad specs path, etc.)

Examples:
  caseset query ./specs Level "from 20"
  caseset query ./specs Number "collect | where odd true | names"
  caseset query ./specs Level "collect | sortByValue desc | pluck label name"
  caseset query Number "fromColor red" --format json`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveArgs(args,
				[]string{"specs", "enum", "expr"},
				[]string{rootOpts.specsDefault(), rootOpts.enumDefault(), ""})
			if err != nil {
				return err
			}
			return runQuery(rootOpts, resolved["specs"], resolved["enum"], resolved["expr"], cmd)
		},
	}

	return cmd
}

func runQuery(opts *RootOptions, specsDir, enumName, expr string, cmd *cobra.Command) error {
	printer := newPrinter(opts, cmd.OutOrStdout())
	printer.TraceID = opts.traceID()
	logger := opts.logger().With("trace_id", printer.TraceID)

	set, r, err := openEnum(opts, specsDir, enumName)
	if err != nil {
		return outputOpenError(printer, err)
	}

	p, err := query.Parse(expr)
	if err != nil {
		return outputQueryError(printer, err)
	}

	check := query.Validate(p, set.Backed())
	for _, w := range check.Warnings {
		logger.Warn("query warning", "enum", enumName, "query", expr, "warning", w)
	}

	out, err := query.Evaluate(r, p)
	if err != nil {
		logger.Debug("query failed", "enum", enumName, "query", expr, "code", query.CodeOf(err))
		return outputQueryError(printer, err)
	}
	logger.Debug("query evaluated", "enum", enumName, "query", expr)

	if printer.JSON() {
		return printer.Success(QueryOutput{
			Enum:     enumName,
			Query:    expr,
			Result:   out,
			Warnings: check.Warnings,
		})
	}
	return printer.Success(out)
}

// outputQueryError reports a failed query. Lookup failures exit with
// ExitFailure; malformed queries are command errors.
func outputQueryError(printer *Printer, err error) error {
	code := query.CodeOf(err)
	if code == "" {
		code = query.CodeInvalid
	}

	var details any
	message := err.Error()
	var ee *enum.Error
	if errors.As(err, &ee) {
		message = ee.Message
		if ee.Target != nil {
			details = map[string]any{"enum": ee.Enum, "target": ee.Target}
		}
	}
	var qe *query.Error
	if errors.As(err, &qe) {
		message = qe.Message
		if qe.Stage > 0 {
			message = fmt.Sprintf("stage %d: %s", qe.Stage, qe.Message)
		}
	}
	_ = printer.Error(code, message, details)

	exit := ExitFailure
	if code == query.CodeParse || code == query.CodeInvalid {
		exit = ExitCommandError
	}
	return reported(exit, fmt.Sprintf("%s: %s", code, message))
}
