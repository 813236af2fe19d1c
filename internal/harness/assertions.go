package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/caseset/internal/catalog"
	"github.com/roach88/caseset/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			if event.Failed() {
				fmt.Fprintf(&buf, "  [%d] %s -> %s\n", event.Seq, event.Query, event.Error)
			} else {
				fmt.Fprintf(&buf, "  [%d] %s -> %s\n", event.Seq, event.Query, ir.Format(event.Output))
			}
		}
	}

	return buf.String()
}

// matchEvent reports whether event ran query q (any query when empty)
// and failed with code (any outcome when empty).
func matchEvent(event TraceEvent, q, code string) bool {
	if q != "" && event.Query != q {
		return false
	}
	return code == "" || event.Error == code
}

func describe(q, code string) string {
	switch {
	case q == "":
		return fmt.Sprintf("steps failing with %s", code)
	case code == "":
		return fmt.Sprintf("query %q", q)
	default:
		return fmt.Sprintf("query %q failing with %s", q, code)
	}
}

// assertTraceContains checks that some step matches the assertion.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if matchEvent(event, assertion.Query, assertion.Error) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describe(assertion.Query, assertion.Error),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that queries first ran in the specified order.
// Queries don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	// 1-indexed so zero means absent
	positions := make(map[string]int)
	for i, event := range trace {
		if slices.Contains(assertion.Queries, event.Query) && positions[event.Query] == 0 {
			positions[event.Query] = i + 1
		}
	}

	for _, q := range assertion.Queries {
		if positions[q] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all queries present: %v", assertion.Queries),
				Actual:   fmt.Sprintf("missing query: %s", q),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Queries); i++ {
		prev := assertion.Queries[i-1]
		curr := assertion.Queries[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("queries in order: %v", assertion.Queries),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that exactly Count steps match the assertion.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if matchEvent(event, assertion.Query, assertion.Error) {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, describe(assertion.Query, assertion.Error)),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertCases checks the declared case list of the enum under test.
func assertCases(set *catalog.Set, assertion Assertion) error {
	spec := set.Spec()
	actual := spec.CaseNames()
	if !slices.Equal(actual, assertion.Names) {
		return &AssertionError{
			Type:     AssertCases,
			Expected: fmt.Sprintf("cases %v", assertion.Names),
			Actual:   fmt.Sprintf("cases %v", actual),
		}
	}
	return nil
}

// AssertionContext carries what assertions need beyond the trace.
type AssertionContext struct {
	Set *catalog.Set
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides the enum for cases assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertCases:
			if actx == nil || actx.Set == nil {
				err = fmt.Errorf("assertion[%d]: cases requires an enum context", i)
			} else {
				err = assertCases(actx.Set, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
