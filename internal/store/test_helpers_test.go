package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/horizon/internal/ir"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun writes a run with minimal required fields.
func createTestRun(t *testing.T, s *Store, id string) ir.Run {
	t.Helper()
	run := ir.Run{
		ID:            id,
		ConstantsName: "codata2018",
		ConstantsHash: "test-hash",
		Constants:     ir.IRObject{"c": ir.IRFloat(299792458)},
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
	if err := s.WriteRun(context.Background(), run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	return run
}

func createTestEvaluation(id, runID, operation string, seq int64) ir.Evaluation {
	return ir.Evaluation{
		ID:        id,
		RunID:     runID,
		Operation: operation,
		Args:      ir.IRObject{},
		Seq:       seq,
	}
}

func createTestOutcome(id, evaluationID, outcomeCase string, seq int64) ir.Outcome {
	return ir.Outcome{
		ID:           id,
		EvaluationID: evaluationID,
		Case:         outcomeCase,
		Result:       ir.IRObject{},
		Digest:       "digest-" + id,
		Seq:          seq,
	}
}

func writeEvaluation(t *testing.T, s *Store, ev ir.Evaluation) {
	t.Helper()
	if err := insertEvaluation(context.Background(), s.db, ev); err != nil {
		t.Fatalf("insertEvaluation() failed: %v", err)
	}
}

func writeOutcome(t *testing.T, s *Store, out ir.Outcome) {
	t.Helper()
	if err := insertOutcome(context.Background(), s.db, out); err != nil {
		t.Fatalf("insertOutcome() failed: %v", err)
	}
}

// outcomeFor reads the stored outcome of one evaluation in runID.
func outcomeFor(t *testing.T, s *Store, runID, evaluationID string) (ir.Outcome, bool) {
	t.Helper()
	state, err := s.GetRunState(context.Background(), runID)
	if err != nil {
		t.Fatalf("GetRunState() failed: %v", err)
	}
	return state.OutcomeFor(evaluationID)
}

// verifyPragma checks a pragma's current value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
