package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/caseset/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config holds file and environment defaults; nil when commands are
	// built without the root command.
	Config *config.Config

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// NewTraceID generates trace IDs for query responses. Nil uses UUIDv7.
	NewTraceID func() string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// NewRootCommand creates the root command for the caseset CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "caseset",
		Short: "caseset - declarative enums with lookup and collection queries",
		Long: `Compile CUE enum declarations and query them: hydrate cases by name,
backing value or attribute, and filter, sort and project collections.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configure(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewCasesCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors not already written by a command are printed to stderr. Errors
// raised by cobra itself (unknown flags, wrong arity) exit with
// ExitCommandError.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCommandError
	}
	if !exitErr.Reported {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitErr.Code
}

// configure merges config defaults under explicit flags and installs the
// logger. Flags set on the command line always win.
func (o *RootOptions) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return exitf(ExitCommandError, "loading config: %w", err)
	}
	o.Config = cfg

	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.Format = cfg.Format
	}
	if !flags.Changed("verbose") {
		o.Verbose = cfg.Verbose
	}

	if !isValidFormat(o.Format) {
		return exitf(ExitCommandError, "invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *RootOptions) traceID() string {
	if o.NewTraceID != nil {
		return o.NewTraceID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// specsDefault returns the configured specs path, or "".
func (o *RootOptions) specsDefault() string {
	if o.Config == nil {
		return ""
	}
	return o.Config.SpecsDir
}

// enumDefault returns the configured enum name, or "".
func (o *RootOptions) enumDefault() string {
	if o.Config == nil {
		return ""
	}
	return o.Config.Enum
}

// resolveArgs fills leading positional arguments from config defaults.
// args holds the trailing len(args) of names; missing leading ones take
// the matching default. An empty result means the value is required.
func resolveArgs(args []string, names []string, defaults []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	offset := len(names) - len(args)
	for i, name := range names {
		if i >= offset {
			out[name] = args[i-offset]
			continue
		}
		if defaults[i] == "" {
			return nil, exitf(ExitCommandError, "missing %s argument (no default configured)", name)
		}
		out[name] = defaults[i]
	}
	return out, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
