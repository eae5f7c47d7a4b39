// Package engine evaluates the horizon formula set and records every
// evaluation in an append-only log.
//
// An Engine is bound to one constant set and one run. Each Invoke:
//
//  1. looks up the operation and binds its arguments against typed params
//  2. evaluates the pure formula
//  3. stamps the evaluation and its outcome with seq numbers from a logical clock
//  4. computes content-addressed IDs and the result digest (internal/ir)
//  5. writes both records in one transaction when a store is attached
//
// Argument and domain failures become outcomes with a non-success case, so
// the log holds every call made, not only the successful ones.
//
// Replay re-evaluates a recorded run with the constants stored alongside it
// and compares result digests. Because every formula is a pure function of
// its arguments and constants, and the canonical encoding is bit exact, a
// replay on any machine reproduces every digest.
//
// Ordering uses seq only, never wall time.
package engine
