package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/caseset/internal/ir"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // lookup miss, invalid declarations, failed scenarios
	ExitCommandError = 2 // unusable input: paths, config, query syntax
)

// ExitError carries the process exit code for a failed command.
// Reported means a Printer already wrote the failure, so Execute stays quiet.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// exitf builds an unreported ExitError. format may use %w.
func exitf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func reported(code int, message string) *ExitError {
	return &ExitError{Code: code, Err: errors.New(message), Reported: true}
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}

// CLIResponse is the JSON envelope every command writes in json format.
type CLIResponse struct {
	Status  string    `json:"status"`
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Printer writes command results as JSON envelopes or plain text.
type Printer struct {
	Format  string
	Writer  io.Writer
	Verbose bool
	TraceID string
}

func newPrinter(opts *RootOptions, out io.Writer) *Printer {
	return &Printer{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
}

func (p *Printer) JSON() bool { return p.Format == "json" }

// Respond writes resp as one JSON line, stamping the trace ID.
func (p *Printer) Respond(resp CLIResponse) error {
	resp.TraceID = p.TraceID
	return json.NewEncoder(p.Writer).Encode(resp)
}

// Success writes data. In text format IR values print in their canonical
// form and anything else through fmt.
func (p *Printer) Success(data any) error {
	if p.JSON() {
		return p.Respond(CLIResponse{Status: "ok", Data: data})
	}

	text, ok := data.(string)
	if !ok {
		if v, isIR := data.(ir.IRValue); isIR {
			text = ir.Format(v)
		} else {
			text = fmt.Sprint(data)
		}
	}
	_, err := fmt.Fprintln(p.Writer, text)
	return err
}

// Error writes a failure. Text output shows details only when verbose.
func (p *Printer) Error(code, message string, details any) error {
	if p.JSON() {
		return p.Respond(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	if _, err := fmt.Fprintf(p.Writer, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	if !p.Verbose || details == nil {
		return nil
	}
	raw, err := json.Marshal(details)
	if err != nil {
		raw = []byte(fmt.Sprint(details))
	}
	_, err = fmt.Fprintf(p.Writer, "Details: %s\n", raw)
	return err
}
