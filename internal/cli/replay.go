package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/engine"
	"github.com/roach88/horizon/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	RunID string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string            `json:"run_id"`
	Evaluations   int               `json:"evaluations"`
	Matched       int               `json:"matched"`
	Pending       int               `json:"pending"`
	Deterministic bool              `json:"deterministic"`
	Mismatches    []engine.Mismatch `json:"mismatches"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded runs and verify determinism",
		Long: `Re-evaluate every recorded evaluation with the constants stored for its
run and compare result digests bit for bit.

Exit codes:
  0 - All runs are deterministic
  1 - Determinism verification failed (digest, ID or constants mismatch)
  2 - Command error (database not found, unknown run, etc.)

Examples:
  horizon replay --db ./horizon.db
  horizon replay --db ./horizon.db --run 0190c6c4-...
  horizon replay --db ./horizon.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dbPath, err := opts.requireDatabase()
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var runIDs []string
	if opts.RunID != "" {
		runIDs = []string{opts.RunID}
	} else {
		runIDs, err = st.ListRunIDs(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	formatter := opts.formatter(cmd)
	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runIDs)),
		TotalRuns:        len(runIDs),
		AllDeterministic: true,
	}

	if len(runIDs) == 0 {
		if formatter.IsJSON() {
			return formatter.Success(result)
		}
		fmt.Fprintln(formatter.Writer, "No runs found in database.")
		return nil
	}

	logger := opts.logger(cmd.ErrOrStderr())
	for _, id := range runIDs {
		report, err := engine.Replay(ctx, st, id)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", id), err)
		}
		logger.Debug("replayed", "run", id, "evaluations", report.Evaluations, "mismatches", len(report.Mismatches))

		result.Runs = append(result.Runs, ReplayRunResult{
			RunID:         id,
			Evaluations:   report.Evaluations,
			Matched:       report.Matched,
			Pending:       report.Pending,
			Deterministic: report.Deterministic(),
			Mismatches:    report.Mismatches,
		})
		if !report.Deterministic() {
			result.AllDeterministic = false
		}
	}

	if formatter.IsJSON() {
		if !result.AllDeterministic {
			if err := formatter.Failure(ErrCodeDeterminism, "determinism verification failed", result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "determinism verification failed")
		}
		return formatter.Success(result)
	}

	return outputReplayText(formatter.Writer, result, opts.Verbose)
}

// outputReplayText outputs the replay result as text.
func outputReplayText(w io.Writer, result ReplayResult, verbose bool) error {
	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Run: %s\n", status, run.RunID)
		fmt.Fprintf(w, "  Evaluations: %d, matched %d\n", run.Evaluations, run.Matched)
		if verbose || run.Pending > 0 {
			fmt.Fprintf(w, "  Pending: %d\n", run.Pending)
		}
		for _, m := range run.Mismatches {
			if m.Operation == "" {
				fmt.Fprintf(w, "  Mismatch: %s\n", m.Reason)
			} else {
				fmt.Fprintf(w, "  Mismatch: seq %d %s: %s\n", m.Seq, m.Operation, m.Reason)
			}
			if verbose {
				fmt.Fprintf(w, "    want %s\n    got  %s\n", m.Want, m.Got)
			}
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
