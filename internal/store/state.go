package store

import (
	"context"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
)

// RunState is the complete recorded state of a run.
type RunState struct {
	Run          ir.Run
	Evaluations  []ir.Evaluation
	Outcomes     []ir.Outcome
	LastSeq      int64
	PendingCount int            // Evaluations without an outcome
	CaseCounts   map[string]int // Outcomes per case
}

// GetRunState reads a run with all its evaluations and outcomes.
// Returns sql.ErrNoRows (wrapped) if the run does not exist.
func (s *Store) GetRunState(ctx context.Context, runID string) (RunState, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return RunState{}, fmt.Errorf("get run state: %w", err)
	}
	state := RunState{Run: run, CaseCounts: map[string]int{}}

	state.Evaluations, err = s.ReadRunEvaluations(ctx, runID)
	if err != nil {
		return state, fmt.Errorf("get run state: %w", err)
	}
	state.Outcomes, err = s.ReadRunOutcomes(ctx, runID)
	if err != nil {
		return state, fmt.Errorf("get run state: %w", err)
	}

	completed := make(map[string]bool, len(state.Outcomes))
	for _, out := range state.Outcomes {
		completed[out.EvaluationID] = true
		state.CaseCounts[out.Case]++
		state.LastSeq = max(state.LastSeq, out.Seq)
	}
	for _, ev := range state.Evaluations {
		state.LastSeq = max(state.LastSeq, ev.Seq)
		if !completed[ev.ID] {
			state.PendingCount++
		}
	}
	return state, nil
}

// OutcomeFor returns the outcome recorded for an evaluation, if any.
func (st RunState) OutcomeFor(evaluationID string) (ir.Outcome, bool) {
	for _, out := range st.Outcomes {
		if out.EvaluationID == evaluationID {
			return out, true
		}
	}
	return ir.Outcome{}, false
}
