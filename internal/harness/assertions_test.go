package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/caseset/internal/catalog"
	"github.com/roach88/caseset/internal/ir"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Query: "byName one", Output: ir.IRObject{"case": ir.IRString("one")}},
		{Seq: 2, Query: "byName four", Error: "NOT_FOUND"},
		{Seq: 3, Query: "collect | count", Output: ir.IRInt(3)},
		{Seq: 4, Query: "byName four", Error: "NOT_FOUND"},
	}
}

func TestAssertTraceContains(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"query found", Assertion{Query: "collect | count"}, false},
		{"query with error found", Assertion{Query: "byName four", Error: "NOT_FOUND"}, false},
		{"query missing", Assertion{Query: "collect"}, true},
		{"wrong error", Assertion{Query: "byName four", Error: "INVALID_KEY"}, true},
		{"success is not an error", Assertion{Query: "byName one", Error: "NOT_FOUND"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTraceContains(sampleTrace(), tt.assertion)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ae *AssertionError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, AssertTraceContains, ae.Type)
			assert.Equal(t, "not found in trace", ae.Actual)
		})
	}
}

func TestAssertTraceOrder_Correct(t *testing.T) {
	err := assertTraceOrder(sampleTrace(), Assertion{Queries: []string{"byName one", "collect | count"}})
	assert.NoError(t, err)
}

func TestAssertTraceOrder_FirstOccurrenceCounts(t *testing.T) {
	// byName four first runs at position 2, before collect | count
	err := assertTraceOrder(sampleTrace(), Assertion{Queries: []string{"collect | count", "byName four"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect | count (pos 3) should be before byName four (pos 2)")
}

func TestAssertTraceOrder_MissingQuery(t *testing.T) {
	err := assertTraceOrder(sampleTrace(), Assertion{Queries: []string{"byName one", "names"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing query: names")
}

func TestAssertTraceCount(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"by query", Assertion{Query: "byName four", Count: 2}, false},
		{"by error", Assertion{Error: "NOT_FOUND", Count: 2}, false},
		{"by query and error", Assertion{Query: "byName one", Error: "NOT_FOUND", Count: 0}, false},
		{"too few", Assertion{Query: "byName one", Count: 2}, true},
		{"too many", Assertion{Error: "NOT_FOUND", Count: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTraceCount(sampleTrace(), tt.assertion)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertCases(t *testing.T) {
	set, err := catalog.NewSet(ir.EnumSpec{
		Name: "Number",
		Cases: []ir.CaseSpec{
			{Name: "one", Attributes: ir.IRObject{}},
			{Name: "two", Attributes: ir.IRObject{}},
		},
	})
	require.NoError(t, err)

	assert.NoError(t, assertCases(set, Assertion{Names: []string{"one", "two"}}))

	err = assertCases(set, Assertion{Names: []string{"two", "one"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: cases [two one]")
	assert.Contains(t, err.Error(), "Actual: cases [one two]")
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Trace = sampleTrace()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceContains, Query: "byName one"},
		{Type: AssertTraceCount, Error: "NOT_FOUND", Count: 5},
		{Type: AssertCases, Names: []string{"one"}},
		{Type: "final_state"},
	}, nil)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "Assertion failed: trace_count")
	assert.Equal(t, "assertion[2]: cases requires an enum context", errs[1])
	assert.Equal(t, `assertion[3]: unknown assertion type "final_state"`, errs[2])
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "1 occurrences of query \"byName four\"",
		Actual:   "2 occurrences",
		Trace:    sampleTrace()[:2],
	}

	want := "Assertion failed: trace_count\n" +
		"  Expected: 1 occurrences of query \"byName four\"\n" +
		"  Actual: 2 occurrences\n" +
		"\nFull trace:\n" +
		"  [1] byName one -> {\"case\":\"one\"}\n" +
		"  [2] byName four -> NOT_FOUND\n"
	assert.Equal(t, want, err.Error())
}
