package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
)

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, constants_name, constants_hash, constants, engine_version, ir_version
		FROM runs
		WHERE id = ?
	`, id)

	var run ir.Run
	var constantsJSON string
	if err := row.Scan(
		&run.ID,
		&run.ConstantsName,
		&run.ConstantsHash,
		&constantsJSON,
		&run.EngineVersion,
		&run.IRVersion,
	); err != nil {
		return ir.Run{}, err
	}

	constants, err := unmarshalObject("constants", constantsJSON)
	if err != nil {
		return ir.Run{}, fmt.Errorf("read run: %w", err)
	}
	run.Constants = constants
	return run, nil
}

// ListRunIDs returns every run ID. UUIDv7 IDs sort in creation order, so
// ordering by id COLLATE BINARY lists runs oldest first.
func (s *Store) ListRunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM runs
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return ids, nil
}

// ReadRunEvaluations returns all evaluations of a run.
// Results ordered by seq ASC, id ASC.
func (s *Store) ReadRunEvaluations(ctx context.Context, runID string) ([]ir.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, operation, args, seq
		FROM evaluations
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read run evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []ir.Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("read run evaluations: %w", err)
		}
		evaluations = append(evaluations, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run evaluations: %w", err)
	}
	return evaluations, nil
}

// ReadRunOutcomes returns all outcomes of a run's evaluations.
// Results ordered by seq ASC, id ASC.
func (s *Store) ReadRunOutcomes(ctx context.Context, runID string) ([]ir.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.evaluation_id, o."case", o.result, o.digest, o.seq
		FROM outcomes o
		JOIN evaluations e ON e.id = o.evaluation_id
		WHERE e.run_id = ?
		ORDER BY o.seq ASC, o.id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read run outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []ir.Outcome{}
	for rows.Next() {
		out, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("read run outcomes: %w", err)
		}
		outcomes = append(outcomes, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run outcomes: %w", err)
	}
	return outcomes, nil
}

// GetLastSeq returns the highest seq recorded in a run, or 0 for an empty
// or unknown run. Used to resume the logical clock when appending to a run.
func (s *Store) GetLastSeq(ctx context.Context, runID string) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM (
			SELECT seq FROM evaluations WHERE run_id = ?
			UNION ALL
			SELECT o.seq FROM outcomes o
			JOIN evaluations e ON e.id = o.evaluation_id
			WHERE e.run_id = ?
		)
	`, runID, runID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq.Int64, nil
}

// CountOutcomes counts a run's outcomes with the given case.
// An empty case counts every outcome.
func (s *Store) CountOutcomes(ctx context.Context, runID, outcomeCase string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM outcomes o
		JOIN evaluations e ON e.id = o.evaluation_id
		WHERE e.run_id = ? AND (? = '' OR o."case" = ?)
	`, runID, outcomeCase, outcomeCase).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count outcomes: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(r rowScanner) (ir.Evaluation, error) {
	var ev ir.Evaluation
	var argsJSON string
	if err := r.Scan(&ev.ID, &ev.RunID, &ev.Operation, &argsJSON, &ev.Seq); err != nil {
		return ir.Evaluation{}, err
	}
	args, err := unmarshalObject("args", argsJSON)
	if err != nil {
		return ir.Evaluation{}, err
	}
	ev.Args = args
	return ev, nil
}

func scanOutcome(r rowScanner) (ir.Outcome, error) {
	var out ir.Outcome
	var resultJSON string
	if err := r.Scan(&out.ID, &out.EvaluationID, &out.Case, &resultJSON, &out.Digest, &out.Seq); err != nil {
		return ir.Outcome{}, err
	}
	result, err := unmarshalObject("result", resultJSON)
	if err != nil {
		return ir.Outcome{}, err
	}
	out.Result = result
	return out, nil
}
