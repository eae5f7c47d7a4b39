package cli

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	RunID     string
	Operation string // optional - filter to one operation
}

// TraceEvent is one evaluation or outcome on the run timeline.
type TraceEvent struct {
	Seq       int64       `json:"seq"`
	Type      string      `json:"type"` // "evaluation" or "outcome"
	ID        string      `json:"id"`
	Operation string      `json:"operation"`
	Args      ir.IRObject `json:"args,omitempty"`
	Case      string      `json:"case,omitempty"`
	Result    ir.IRObject `json:"result,omitempty"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	RunID         string       `json:"run_id"`
	ConstantsName string       `json:"constants_name"`
	ConstantsHash string       `json:"constants_hash"`
	Timeline      []TraceEvent `json:"timeline"`
	Stats         TraceStats   `json:"stats"`
}

// TraceStats holds summary statistics for the run.
type TraceStats struct {
	TotalEvents int            `json:"total_events"`
	Evaluations int            `json:"evaluations"`
	Outcomes    int            `json:"outcomes"`
	Pending     int            `json:"pending"`
	LastSeq     int64          `json:"last_seq"`
	Cases       map[string]int `json:"cases"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the evaluation timeline of a run",
		Long: `Print the recorded evaluations and outcomes of a run in seq order.

The output includes:
- Timeline: evaluations with their arguments and outcomes with their results
- Stats: evaluation and outcome counts, pending evaluations and cases

Examples:
  horizon trace --db ./horizon.db --run 0190c6c4-...
  horizon trace --db ./horizon.db --run 0190c6c4-... --operation observer.dilation
  horizon trace --db ./horizon.db --run 0190c6c4-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to trace (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "filter to one operation")

	return cmd
}

func runTrace(ctx context.Context, opts *TraceOptions, cmd *cobra.Command) error {
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

	state, err := st.GetRunState(ctx, opts.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	timeline := buildTimeline(state, opts.Operation)
	result := TraceResult{
		RunID:         state.Run.ID,
		ConstantsName: state.Run.ConstantsName,
		ConstantsHash: state.Run.ConstantsHash,
		Timeline:      timeline,
		Stats: TraceStats{
			TotalEvents: len(timeline),
			Evaluations: len(state.Evaluations),
			Outcomes:    len(state.Outcomes),
			Pending:     state.PendingCount,
			LastSeq:     state.LastSeq,
			Cases:       state.CaseCounts,
		},
	}

	formatter := opts.formatter(cmd)
	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	return outputTraceText(formatter.Writer, result, opts.Verbose)
}

// buildTimeline merges evaluations and outcomes by seq. When operation is
// set, only that operation's evaluations and their outcomes are kept.
func buildTimeline(state store.RunState, operation string) []TraceEvent {
	ops := make(map[string]string, len(state.Evaluations))
	timeline := []TraceEvent{}

	for _, ev := range state.Evaluations {
		ops[ev.ID] = ev.Operation
		if operation != "" && ev.Operation != operation {
			continue
		}
		timeline = append(timeline, TraceEvent{
			Seq:       ev.Seq,
			Type:      "evaluation",
			ID:        ev.ID,
			Operation: ev.Operation,
			Args:      ev.Args,
		})
	}
	for _, out := range state.Outcomes {
		op := ops[out.EvaluationID]
		if operation != "" && op != operation {
			continue
		}
		timeline = append(timeline, TraceEvent{
			Seq:       out.Seq,
			Type:      "outcome",
			ID:        out.ID,
			Operation: op,
			Case:      out.Case,
			Result:    out.Result,
		})
	}

	slices.SortStableFunc(timeline, func(a, b TraceEvent) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return timeline
}

// outputTraceText outputs the trace result as text.
func outputTraceText(w io.Writer, result TraceResult, verbose bool) error {
	fmt.Fprintf(w, "Trace for Run: %s\n", result.RunID)
	fmt.Fprintf(w, "Constants: %s (%s)\n", result.ConstantsName, truncateID(result.ConstantsHash))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no events)")
	}
	for _, event := range result.Timeline {
		formatTimelineEvent(w, event, verbose)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Events: %d\n", result.Stats.TotalEvents)
	fmt.Fprintf(w, "  Evaluations:  %d\n", result.Stats.Evaluations)
	fmt.Fprintf(w, "  Outcomes:     %d\n", result.Stats.Outcomes)
	if result.Stats.Pending > 0 {
		fmt.Fprintf(w, "  Pending:      %d\n", result.Stats.Pending)
	}
	cases := make([]string, 0, len(result.Stats.Cases))
	for c := range result.Stats.Cases {
		cases = append(cases, c)
	}
	slices.Sort(cases)
	for _, c := range cases {
		fmt.Fprintf(w, "  %s: %d\n", c, result.Stats.Cases[c])
	}
	return nil
}

// formatTimelineEvent formats a single timeline event for text output.
func formatTimelineEvent(w io.Writer, event TraceEvent, verbose bool) {
	switch event.Type {
	case "evaluation":
		fmt.Fprintf(w, "  [%d] EVAL %s %s\n", event.Seq, event.Operation, formatIRValue(event.Args))
	case "outcome":
		fmt.Fprintf(w, "  [%d] OUT  %s\n", event.Seq, event.Case)
		if verbose && len(event.Result) > 0 {
			fmt.Fprintf(w, "       Result: %s\n", formatIRValue(event.Result))
		}
	}
	if verbose {
		fmt.Fprintf(w, "       ID: %s\n", truncateID(event.ID))
	}
}

// formatIRValue renders a value for display. Objects and arrays use their
// canonical JSON, which sorts keys.
func formatIRValue(v ir.IRValue) string {
	switch val := v.(type) {
	case ir.IRString:
		return string(val)
	case ir.IRFloat:
		return formatFloat(float64(val))
	case ir.IRInt:
		return fmt.Sprintf("%d", int64(val))
	case ir.IRBool:
		return fmt.Sprintf("%t", bool(val))
	case nil:
		return "{}"
	}
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// formatFloat renders a float in canonical form, spelling out non-finite values.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ir.NaN
	case math.IsInf(f, 1):
		return ir.PosInf
	case math.IsInf(f, -1):
		return ir.NegInf
	}
	return ir.FormatNumber(f)
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
