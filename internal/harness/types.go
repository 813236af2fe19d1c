package harness

import "github.com/roach88/caseset/internal/ir"

// TraceEvent records the outcome of one step.
// Exactly one of Output and Error is set.
type TraceEvent struct {
	Seq     int64      `json:"seq"`
	Query   string     `json:"query"`
	Output  ir.IRValue `json:"output,omitempty"`
	Error   string     `json:"error,omitempty"` // error code
	Message string     `json:"-"`
}

// Failed reports whether the step ended in an error.
func (e TraceEvent) Failed() bool { return e.Error != "" }

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step outcome to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
