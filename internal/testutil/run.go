package testutil

import (
	"testing"

	"github.com/roach88/horizon/internal/store"
)

// DefaultRunID is the run ID used when a scenario does not declare one.
const DefaultRunID = "test-run-default"

// FixedRunIDGenerator returns the same run ID on every call.
// It satisfies engine.RunIDGenerator.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id. An empty id means
// DefaultRunID.
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// OpenStore opens an in-memory evaluation log closed at test cleanup.
func OpenStore(tb testing.TB) *store.Store {
	tb.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		tb.Fatalf("open in-memory store: %v", err)
	}
	tb.Cleanup(func() { st.Close() })
	return st
}
