// Package harness runs YAML scenarios against the formula engine.
//
// A scenario is a flow of operation calls with expected outcomes and a list
// of assertions over the resulting trace and evaluation log:
//
//	name: horizon_dilation
//	description: "Dilation vanishes at the Schwarzschild radius"
//	constants: sets/codata.cue   # optional, relative to this file
//	run_id: run-horizon          # optional
//	flow:
//	  - invoke: observer.dilation
//	    args: { mass_kg: 1.98847e30, length_m: 2953.25 }
//	    expect:
//	      case: Success
//	      result: { dilation: 0 }
//	      tolerance: 1e-6
//	assertions:
//	  - type: trace_count
//	    operation: observer.dilation
//	    count: 1
//	  - type: stored_count
//	    case: Success
//	    count: 1
//
// # Assertion Types
//
//   - trace_contains: an evaluation of the operation with matching args
//   - trace_order: first evaluations appear in the listed order
//   - trace_count: the operation is evaluated exactly count times
//   - result_range: a dotted result field of every successful outcome lies in [min, max]
//   - stored_count: outcomes recorded in the store, optionally for one case
//
// # Deterministic Testing
//
// Every scenario runs in its own in-memory SQLite store with a
// testutil.DeterministicClock and a fixed run ID, then the run is replayed
// and every result digest must reproduce. Traces are therefore identical
// across runs and can be compared against golden files with RunWithGolden.
package harness
