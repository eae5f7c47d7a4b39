package engine

import (
	"context"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
	"github.com/roach88/horizon/internal/units"
)

// Mismatch is one recorded evaluation that did not reproduce.
type Mismatch struct {
	Seq          int64  `json:"seq"`
	EvaluationID string `json:"evaluation_id"`
	Operation    string `json:"operation"`
	Reason       string `json:"reason"`
	Want         string `json:"want,omitempty"`
	Got          string `json:"got,omitempty"`
}

// ReplayReport summarizes a replay of one run.
type ReplayReport struct {
	RunID       string     `json:"run_id"`
	Evaluations int        `json:"evaluations"`
	Matched     int        `json:"matched"`
	Pending     int        `json:"pending"`
	Mismatches  []Mismatch `json:"mismatches"`
}

// Deterministic reports whether every recorded outcome was reproduced.
func (r ReplayReport) Deterministic() bool {
	return len(r.Mismatches) == 0
}

// Replay re-evaluates every evaluation of a recorded run with the run's own
// constants and compares result digests bit for bit. Evaluation IDs are
// recomputed as well, so an edited argument or seq is reported.
//
// Replay reads the store and never writes to it.
func Replay(ctx context.Context, st *store.Store, runID string) (ReplayReport, error) {
	state, err := st.GetRunState(ctx, runID)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay %s: %w", runID, err)
	}

	report := ReplayReport{
		RunID:       runID,
		Evaluations: len(state.Evaluations),
		Pending:     state.PendingCount,
		Mismatches:  []Mismatch{},
	}

	pc, err := runConstants(state.Run)
	if err != nil {
		return report, fmt.Errorf("replay %s: %w", runID, err)
	}
	hash, err := ir.ConstantsHash(pc.Fields())
	if err != nil {
		return report, fmt.Errorf("replay %s: %w", runID, err)
	}
	if hash != state.Run.ConstantsHash {
		report.Mismatches = append(report.Mismatches, Mismatch{
			Reason: "constants hash",
			Want:   state.Run.ConstantsHash,
			Got:    hash,
		})
	}

	k := newKit(pc)
	for _, ev := range state.Evaluations {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		mismatch := Mismatch{Seq: ev.Seq, EvaluationID: ev.ID, Operation: ev.Operation}

		id, err := ir.EvaluationID(ev.RunID, ev.Operation, ev.Args, ev.Seq)
		if err != nil {
			return report, fmt.Errorf("replay %s: %w", runID, err)
		}
		if id != ev.ID {
			mismatch.Reason, mismatch.Want, mismatch.Got = "evaluation id", ev.ID, id
			report.Mismatches = append(report.Mismatches, mismatch)
			continue
		}

		out, ok := state.OutcomeFor(ev.ID)
		if !ok {
			continue
		}

		op, ok := Lookup(ev.Operation)
		if !ok {
			mismatch.Reason = "unknown operation"
			report.Mismatches = append(report.Mismatches, mismatch)
			continue
		}

		outcomeCase, result, err := evaluate(k, op, ev.Args)
		if err != nil {
			return report, fmt.Errorf("replay %s: %w", runID, err)
		}
		digest, err := ir.ResultDigest(outcomeCase, result)
		if err != nil {
			return report, fmt.Errorf("replay %s: %w", runID, err)
		}
		if digest != out.Digest {
			mismatch.Reason, mismatch.Want, mismatch.Got = "result digest", out.Digest, digest
			report.Mismatches = append(report.Mismatches, mismatch)
			continue
		}
		report.Matched++
	}
	return report, nil
}

// runConstants decodes the constant table stored with a run.
func runConstants(run ir.Run) (units.PhysicalConstants, error) {
	fields := make(map[string]float64, len(run.Constants))
	for _, key := range run.Constants.SortedKeys() {
		v, ok := run.Constants.Float(key)
		if !ok {
			return units.PhysicalConstants{}, fmt.Errorf("constant %s is not a number", key)
		}
		fields[key] = v
	}
	return units.FromFields(fields)
}
