package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
)

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING; reopening a run with the same ID is a no-op.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) error {
	constantsJSON, err := marshalObject("constants", run.Constants)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, constants_name, constants_hash, constants, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.ConstantsName,
		run.ConstantsHash,
		constantsJSON,
		run.EngineVersion,
		run.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertEvaluation inserts an evaluation record. The run referenced by RunID
// must exist. Duplicate IDs are ignored; other constraint violations fail.
func insertEvaluation(ctx context.Context, ex execer, ev ir.Evaluation) error {
	argsJSON, err := marshalObject("args", ev.Args)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, run_id, operation, args, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, ev.ID, ev.RunID, ev.Operation, argsJSON, ev.Seq)
	return err
}

// insertOutcome inserts an outcome record. A second outcome for the same
// evaluation, like a duplicate ID, is ignored.
func insertOutcome(ctx context.Context, ex execer, out ir.Outcome) error {
	resultJSON, err := marshalObject("result", out.Result)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO outcomes
		(id, evaluation_id, "case", result, digest, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, out.ID, out.EvaluationID, out.Case, resultJSON, out.Digest, out.Seq)
	return err
}

// WriteEvaluationOutcome stores an evaluation and its outcome in one
// transaction so a crash never leaves an evaluation without its outcome.
func (s *Store) WriteEvaluationOutcome(ctx context.Context, ev ir.Evaluation, out ir.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write evaluation outcome: begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertEvaluation(ctx, tx, ev); err != nil {
		return fmt.Errorf("write evaluation outcome: evaluation: %w", err)
	}
	if err := insertOutcome(ctx, tx, out); err != nil {
		return fmt.Errorf("write evaluation outcome: outcome: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write evaluation outcome: commit: %w", err)
	}
	return nil
}
