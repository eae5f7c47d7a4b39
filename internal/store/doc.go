// Package store provides SQLite-backed durable storage for horizon evaluation logs.
//
// The store is an append-only log with:
//   - Runs: one constant set and engine version per run
//   - Evaluations: operation calls with their canonical arguments
//   - Outcomes: the case, result and result digest of each evaluation
//
// # Ordering
//
// All ordering uses the logical seq column, never wall time. Every query that
// returns more than one row ends in ORDER BY seq ASC, id COLLATE BINARY ASC so
// reads are identical across replays.
//
// # Idempotency
//
// Records are content addressed (see internal/ir/hash.go). Writes use
// ON CONFLICT DO NOTHING, and an evaluation has at most one outcome
// (UNIQUE on outcomes.evaluation_id).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
