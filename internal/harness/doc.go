// Package harness runs conformance scenarios against compiled enums.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: pure-number
//	description: "hydration over an unbacked set"
//	specs:
//	  - number.cue
//	enum: Number
//	steps:
//	  - query: byName two
//	    expect: {case: two}
//	  - query: tryByName four
//	    expect: null
//	  - query: byKey color orange
//	    error: INVALID_KEY
//	assertions:
//	  - type: trace_count
//	    error: INVALID_KEY
//	    count: 1
//	  - type: cases
//	    names: [one, two, three]
//
// An explicit "expect: null" expects a miss. A step without expect or
// error only requires that the query succeeds.
//
// # Assertion Types
//
//   - trace_contains: some step ran the query (optionally failing with error)
//   - trace_order: queries first ran in the given order
//   - trace_count: exactly count steps match query and/or error
//   - cases: the enum declares exactly the given names, in order
//
// # Deterministic Testing
//
// Every run compiles its specs into a fresh catalog and numbers steps
// from 1, so traces are identical across runs and can be compared with
// golden snapshots in canonical JSON.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/number.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
