// Package ir provides the canonical value model and record types for horizon's
// evaluation log.
//
// All other internal packages that persist or hash data import ir; ir imports
// nothing internal.
//
// Key design constraints:
//   - Floats are first class; non-finite values serialize as "+Inf", "-Inf", "NaN"
//   - Content-addressed IDs are SHA-256 over RFC 8785 canonical JSON
//   - All JSON tags use snake_case
//   - Logical clocks (seq) only, never wall-clock timestamps
package ir
