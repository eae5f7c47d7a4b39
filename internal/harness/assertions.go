package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes the evaluations of the trace for context.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			if event.Type == EventEvaluation {
				fmt.Fprintf(&buf, "  [%d] %s %v\n", event.Seq, event.Operation, event.Args)
			}
		}
	}

	return buf.String()
}

// assertTraceContains checks for an evaluation of the operation whose args
// contain the asserted args. Numbers match within DefaultTolerance.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	want, err := convertArgsToIRObject(assertion.Args)
	if err != nil {
		return fmt.Errorf("trace_contains args: %w", err)
	}

	for _, event := range trace {
		if event.Type != EventEvaluation || event.Operation != assertion.Operation {
			continue
		}
		if len(matchValue("args", event.Args, want, DefaultTolerance)) == 0 {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("operation %s with args %v", assertion.Operation, want),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the first evaluation of each operation
// appears in the asserted order. Other evaluations may come in between.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if event.Type != EventEvaluation {
			continue
		}
		if _, seen := positions[event.Operation]; !seen {
			positions[event.Operation] = i + 1
		}
	}

	for _, op := range assertion.Operations {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all operations present: %v", assertion.Operations),
				Actual:   fmt.Sprintf("missing operation: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Operations); i++ {
		prev := assertion.Operations[i-1]
		curr := assertion.Operations[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("operations in order: %v", assertion.Operations),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that the operation was evaluated exactly Count times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Type == EventEvaluation && event.Operation == assertion.Operation {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d evaluations of %s", assertion.Count, assertion.Operation),
			Actual:   fmt.Sprintf("%d evaluations", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertResultRange checks a numeric field of every successful outcome of the
// operation against [Min, Max]. At least one such outcome must exist.
func assertResultRange(result *Result, assertion Assertion) error {
	var checked int
	for _, event := range result.Outcomes(assertion.Operation) {
		if event.Case != ir.CaseSuccess {
			continue
		}
		checked++

		v, ok := lookupField(event.Result, assertion.Field)
		if !ok {
			return &AssertionError{
				Type:     AssertResultRange,
				Expected: fmt.Sprintf("numeric field %s in %s result", assertion.Field, assertion.Operation),
				Actual:   fmt.Sprintf("seq %d result %v", event.Seq, event.Result),
			}
		}
		if (assertion.Min != nil && !(v >= *assertion.Min)) || (assertion.Max != nil && !(v <= *assertion.Max)) {
			return &AssertionError{
				Type:     AssertResultRange,
				Expected: fmt.Sprintf("%s.%s in %s", assertion.Operation, assertion.Field, formatRange(assertion.Min, assertion.Max)),
				Actual:   fmt.Sprintf("%v at seq %d", v, event.Seq),
			}
		}
	}

	if checked == 0 {
		return &AssertionError{
			Type:     AssertResultRange,
			Expected: fmt.Sprintf("a successful outcome of %s", assertion.Operation),
			Actual:   "none in trace",
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertStoredCount checks the number of outcomes recorded for the run,
// optionally restricted to one case.
func assertStoredCount(actx *AssertionContext, assertion Assertion) error {
	n, err := actx.Store.CountOutcomes(actx.Ctx, actx.RunID, assertion.Case)
	if err != nil {
		return fmt.Errorf("stored_count: %w", err)
	}
	if n != assertion.Count {
		what := "outcomes"
		if assertion.Case != "" {
			what = assertion.Case + " outcomes"
		}
		return &AssertionError{
			Type:     AssertStoredCount,
			Expected: fmt.Sprintf("%d stored %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d", n),
		}
	}
	return nil
}

// lookupField follows a dotted path through nested result objects.
func lookupField(obj ir.IRObject, path string) (float64, bool) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := obj[part].(ir.IRObject)
		if !ok {
			return 0, false
		}
		obj = next
	}
	return obj.Float(parts[len(parts)-1])
}

func formatRange(lo, hi *float64) string {
	l, h := "-Inf", "+Inf"
	if lo != nil {
		l = fmt.Sprint(*lo)
	}
	if hi != nil {
		h = fmt.Sprint(*hi)
	}
	return "[" + l + ", " + h + "]"
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	RunID string
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for stored_count assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertResultRange:
			err = assertResultRange(result, assertion)
		case AssertStoredCount:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: stored_count requires database context", i)
			} else {
				err = assertStoredCount(actx, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
