package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/horizon/internal/ir"
)

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun(t, s, "run-1")
	require.NoError(t, s.WriteRun(ctx, run))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWriteEvaluationOutcome_StoresCanonicalArgs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	ev := createTestEvaluation("ev-1", "run-1", "observer.dilation", 1)
	ev.Args = ir.IRObject{
		"mass_kg":  ir.IRFloat(1.98847e30),
		"length_m": ir.IRFloat(5906),
	}
	require.NoError(t, s.WriteEvaluationOutcome(ctx, ev, createTestOutcome("out-1", "ev-1", ir.CaseSuccess, 2)))

	var argsJSON string
	require.NoError(t, s.db.QueryRow("SELECT args FROM evaluations WHERE id = ?", "ev-1").Scan(&argsJSON))
	assert.Equal(t, `{"length_m":5906,"mass_kg":1.98847e+30}`, argsJSON)
}

func TestWriteEvaluationOutcome_RequiresRun(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteEvaluationOutcome(context.Background(),
		createTestEvaluation("ev-1", "missing", "observer.dilation", 1),
		createTestOutcome("out-1", "ev-1", ir.CaseSuccess, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write evaluation outcome: evaluation")
}

func TestInsertOutcome_OnePerEvaluation(t *testing.T) {
	s := createTestStore(t)
	createTestRun(t, s, "run-1")
	writeEvaluation(t, s, createTestEvaluation("ev-1", "run-1", "observer.dilation", 1))

	writeOutcome(t, s, createTestOutcome("out-1", "ev-1", ir.CaseSuccess, 2))
	// A second outcome for the same evaluation is ignored.
	writeOutcome(t, s, createTestOutcome("out-2", "ev-1", ir.CaseInvalidArgument, 3))

	out, ok := outcomeFor(t, s, "run-1", "ev-1")
	require.True(t, ok)
	assert.Equal(t, "out-1", out.ID)
	assert.Equal(t, ir.CaseSuccess, out.Case)
}

func TestWriteEvaluationOutcome_NonFiniteResult(t *testing.T) {
	s := createTestStore(t)
	createTestRun(t, s, "run-1")

	out := createTestOutcome("out-1", "ev-1", ir.CaseSuccess, 2)
	out.Result = ir.IRObject{"v_coordinate": ir.IRFloat(posInf())}
	require.NoError(t, s.WriteEvaluationOutcome(context.Background(),
		createTestEvaluation("ev-1", "run-1", "observer.velocity", 1), out))

	got, ok := outcomeFor(t, s, "run-1", "ev-1")
	require.True(t, ok)
	assert.Equal(t, ir.IRString(ir.PosInf), got.Result["v_coordinate"])

	f, ok := got.Result.Float("v_coordinate")
	require.True(t, ok)
	assert.Equal(t, posInf(), f)
}

func TestWriteEvaluationOutcome_Atomic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	ev := createTestEvaluation("ev-1", "run-1", "observer.collapse", 1)
	out := createTestOutcome("out-1", "ev-1", ir.CaseSuccess, 2)
	require.NoError(t, s.WriteEvaluationOutcome(ctx, ev, out))

	n, err := s.CountOutcomes(ctx, "run-1", ir.CaseSuccess)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteEvaluationOutcome_RollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	ev := createTestEvaluation("ev-1", "run-1", "observer.collapse", 1)
	// Outcome references a different evaluation, which violates the foreign key.
	out := createTestOutcome("out-1", "ev-missing", ir.CaseSuccess, 2)
	require.Error(t, s.WriteEvaluationOutcome(ctx, ev, out))

	evs, err := s.ReadRunEvaluations(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, evs)
}
