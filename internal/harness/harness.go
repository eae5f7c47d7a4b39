package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/horizon/internal/constants"
	"github.com/roach88/horizon/internal/engine"
	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
	"github.com/roach88/horizon/internal/testutil"
)

// Harness runs one scenario against a real engine.
type Harness struct {
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a deterministic
// clock and a fixed run ID, so the trace is identical on every run.
//
// Execution flow:
// 1. Load the constant set and open a fresh store
// 2. Invoke every flow step through the engine and check its expect clause
// 3. Evaluate assertions against the trace and the store
// 4. Replay the recorded run and require every digest to reproduce
//
// Failed expectations are reported in Result.Errors. The returned error is
// reserved for infrastructure failures.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	set, err := constants.Load(scenario.Constants)
	if err != nil {
		return nil, fmt.Errorf("failed to load constants: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng, err := engine.New(set,
		engine.WithStore(st),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(scenario.RunID)),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	h := &Harness{engine: eng, logger: logger}
	result := NewResult(eng.Run().ID)

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	actx := &AssertionContext{Store: st, Ctx: ctx, RunID: result.RunID}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	report, err := engine.Replay(ctx, st, result.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to replay: %w", err)
	}
	for _, m := range report.Mismatches {
		result.AddError(fmt.Sprintf("replay: seq %d %s: %s differs", m.Seq, m.Operation, m.Reason))
	}

	return result, nil
}

// executeFlow invokes every step and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		args, err := convertArgsToIRObject(step.Args)
		if err != nil {
			return fmt.Errorf("flow step %d: failed to convert args: %w", i, err)
		}

		rec, err := h.engine.Invoke(ctx, step.Invoke, args)
		if engine.IsUnknownOperation(err) {
			result.AddError(fmt.Sprintf("flow[%d]: %v", i, err))
			continue
		}
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}

		result.AddEvaluationTrace(step.Invoke, rec.Evaluation.Args, rec.Evaluation.Seq)
		result.AddOutcomeTrace(step.Invoke, rec.Outcome.Case, rec.Outcome.Result, rec.Outcome.Seq)

		if step.Expect != nil {
			for _, msg := range checkExpect(step.Expect, rec.Outcome) {
				result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Invoke, msg))
			}
		}

		h.logger.Info("flow step completed",
			"step", i,
			"operation", step.Invoke,
			"case", rec.Outcome.Case,
		)
	}
	return nil
}

// checkExpect compares an outcome with an expect clause.
func checkExpect(exp *ExpectClause, out ir.Outcome) []string {
	if out.Case != exp.Case {
		return []string{fmt.Sprintf("case = %s, want %s (result %v)", out.Case, exp.Case, out.Result)}
	}
	if exp.Result == nil {
		return nil
	}

	want, err := convertArgsToIRObject(exp.Result)
	if err != nil {
		return []string{fmt.Sprintf("expected result: %v", err)}
	}
	tol := exp.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	var errs []string
	for _, key := range want.SortedKeys() {
		errs = append(errs, matchValue(key, out.Result[key], want[key], tol)...)
	}
	return errs
}

// matchValue reports where got differs from want. Objects match as subsets,
// arrays element by element, numbers within a relative tolerance.
func matchValue(path string, got, want ir.IRValue, tol float64) []string {
	if got == nil {
		return []string{fmt.Sprintf("%s: missing", path)}
	}

	if wf, ok := ir.AsFloat(want); ok {
		gf, ok := ir.AsFloat(got)
		if !ok {
			return []string{fmt.Sprintf("%s = %v, want number %v", path, got, wf)}
		}
		if !floatsClose(gf, wf, tol) {
			return []string{fmt.Sprintf("%s = %v, want %v (tolerance %v)", path, gf, wf, tol)}
		}
		return nil
	}

	switch w := want.(type) {
	case ir.IRObject:
		g, ok := got.(ir.IRObject)
		if !ok {
			return []string{fmt.Sprintf("%s = %v, want object", path, got)}
		}
		var errs []string
		for _, key := range w.SortedKeys() {
			errs = append(errs, matchValue(path+"."+key, g[key], w[key], tol)...)
		}
		return errs
	case ir.IRArray:
		g, ok := got.(ir.IRArray)
		if !ok || len(g) != len(w) {
			return []string{fmt.Sprintf("%s: want array of %d elements", path, len(w))}
		}
		var errs []string
		for i := range w {
			errs = append(errs, matchValue(fmt.Sprintf("%s[%d]", path, i), g[i], w[i], tol)...)
		}
		return errs
	default:
		if got != want {
			return []string{fmt.Sprintf("%s = %v, want %v", path, got, want)}
		}
		return nil
	}
}

// floatsClose compares with relative tolerance; exact equality covers the
// infinities and NaN matches NaN.
func floatsClose(got, want, tol float64) bool {
	switch {
	case got == want:
		return true
	case math.IsNaN(want):
		return math.IsNaN(got)
	case math.IsInf(want, 0) || math.IsInf(got, 0) || math.IsNaN(got):
		return false
	case want == 0:
		return math.Abs(got) <= tol
	}
	return math.Abs(got-want) <= tol*math.Abs(want)
}

// convertArgsToIRObject converts YAML-decoded values to an IRObject.
func convertArgsToIRObject(args map[string]any) (ir.IRObject, error) {
	if args == nil {
		return ir.IRObject{}, nil
	}

	result := make(ir.IRObject, len(args))
	for key, val := range args {
		irVal, err := convertToIRValue(val)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		result[key] = irVal
	}
	return result, nil
}

// convertToIRValue converts a YAML-decoded value to an IRValue.
// yaml.v3 decodes integers as int and everything with a fraction, an
// exponent or .inf/.nan as float64; they become IRInt and IRFloat.
// Nulls are rejected because canonical JSON forbids them.
func convertToIRValue(val any) (ir.IRValue, error) {
	if val == nil {
		return nil, fmt.Errorf("null values are forbidden in IR")
	}

	switch v := val.(type) {
	case string:
		return ir.IRString(v), nil
	case int:
		return ir.IRInt(int64(v)), nil
	case int64:
		return ir.IRInt(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return ir.IRInt(int64(v)), nil
	case float64:
		return ir.IRFloat(v), nil
	case bool:
		return ir.IRBool(v), nil
	case []any:
		arr := make(ir.IRArray, len(v))
		for i, elem := range v {
			irElem, err := convertToIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		return convertArgsToIRObject(v)
	default:
		return nil, fmt.Errorf("unsupported type %T", val)
	}
}
