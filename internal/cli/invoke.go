package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/horizon/internal/engine"
	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Args  string
	RunID string
}

// InvokeResult is the output of one evaluation.
type InvokeResult struct {
	RunID        string      `json:"run_id"`
	Operation    string      `json:"operation"`
	Case         string      `json:"case"`
	Result       ir.IRObject `json:"result"`
	Seq          int64       `json:"seq"`
	EvaluationID string      `json:"evaluation_id"`
	Digest       string      `json:"digest"`
	Recorded     bool        `json:"recorded"`
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <operation>",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation against the selected constant set.

With --db (or HORIZON_DB) the evaluation and its outcome are appended to the
sqlite log. Passing --run resumes an existing run; otherwise a new UUIDv7
run is started.

Exit codes:
  0 - Evaluation succeeded
  1 - Evaluation recorded a failure case (InvalidArgument, UnrecognizedUnitKind)
  2 - Command error (unknown operation, bad --args, unreadable constants)

Examples:
  horizon invoke observer.dilation --args '{"mass_kg":1.98847e30,"length_m":1e4}'
  horizon invoke units.to_natural --args '{"value":1,"kind":"mass"}' --format json
  horizon invoke qftcs.vacuum --args '{"tau":0.5}' --db ./horizon.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeOperation(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "{}", "operation arguments as a JSON object")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "append to this run ID instead of starting a new run")

	return cmd
}

func invokeOperation(ctx context.Context, opts *InvokeOptions, operation string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	if _, ok := engine.Lookup(operation); !ok {
		return formatter.fail(ExitCommandError, ErrCodeUnknownOperation,
			fmt.Sprintf("unknown operation %q (see horizon ops)", operation), nil)
	}

	args, err := ir.UnmarshalIRObject([]byte(opts.Args))
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeArgs, "invalid --args JSON", err)
	}

	set, err := LoadConstants(opts.Constants)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConstants, "failed to load constants", err)
	}

	engineOpts := []engine.Option{engine.WithLogger(opts.logger(cmd.ErrOrStderr()))}
	if opts.RunID != "" {
		engineOpts = append(engineOpts, engine.WithRunID(opts.RunID))
	}
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer st.Close()
		engineOpts = append(engineOpts, engine.WithStore(st))
	}

	eng, err := engine.New(set, engineOpts...)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConstants, "failed to create engine", err)
	}

	rec, err := eng.Invoke(ctx, operation, args)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "evaluation failed", err)
	}

	result := InvokeResult{
		RunID:        rec.Evaluation.RunID,
		Operation:    operation,
		Case:         rec.Outcome.Case,
		Result:       rec.Outcome.Result,
		Seq:          rec.Evaluation.Seq,
		EvaluationID: rec.Evaluation.ID,
		Digest:       rec.Outcome.Digest,
		Recorded:     opts.Database != "",
	}

	if rec.Outcome.Case != ir.CaseSuccess {
		msg := fmt.Sprintf("%s: %s", rec.Outcome.Case, resultMessage(rec.Outcome.Result))
		if formatter.IsJSON() {
			if err := formatter.Failure(ErrCodeEvaluation, msg, result); err != nil {
				return err
			}
		} else {
			outputInvokeText(formatter, result)
		}
		return NewExitError(ExitFailure, msg)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	outputInvokeText(formatter, result)
	return nil
}

func outputInvokeText(f *OutputFormatter, r InvokeResult) {
	status := "✓"
	if r.Case != ir.CaseSuccess {
		status = "✗"
	}
	fmt.Fprintf(f.Writer, "%s %s → %s\n", status, r.Operation, r.Case)
	for _, key := range r.Result.SortedKeys() {
		fmt.Fprintf(f.Writer, "  %s: %s\n", key, formatIRValue(r.Result[key]))
	}
	if f.Verbose {
		fmt.Fprintf(f.Writer, "  run: %s seq: %d\n", r.RunID, r.Seq)
		fmt.Fprintf(f.Writer, "  evaluation: %s\n", truncateID(r.EvaluationID))
		fmt.Fprintf(f.Writer, "  digest: %s\n", truncateID(r.Digest))
	}
}

func resultMessage(result ir.IRObject) string {
	if msg, ok := result["message"].(ir.IRString); ok {
		return string(msg)
	}
	return formatIRValue(result)
}
