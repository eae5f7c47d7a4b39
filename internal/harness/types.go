package harness

import "github.com/roach88/horizon/internal/ir"

// Trace event types.
const (
	EventEvaluation = "evaluation"
	EventOutcome    = "outcome"
)

// TraceEvent is one evaluation or outcome in scenario order.
type TraceEvent struct {
	Type      string      `json:"type"`
	Operation string      `json:"operation"`
	Args      ir.IRObject `json:"args,omitempty"`
	Case      string      `json:"case,omitempty"`
	Result    ir.IRObject `json:"result,omitempty"`
	Seq       int64       `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// RunID is the run the scenario recorded into.
	RunID string `json:"run_id"`

	// Trace holds all evaluations and outcomes in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddEvaluationTrace appends an evaluation.
func (r *Result) AddEvaluationTrace(operation string, args ir.IRObject, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:      EventEvaluation,
		Operation: operation,
		Args:      args,
		Seq:       seq,
	})
}

// AddOutcomeTrace appends an outcome.
func (r *Result) AddOutcomeTrace(operation, outcomeCase string, result ir.IRObject, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:      EventOutcome,
		Operation: operation,
		Case:      outcomeCase,
		Result:    result,
		Seq:       seq,
	})
}

// Outcomes returns the outcome events of one operation.
func (r *Result) Outcomes(operation string) []TraceEvent {
	var out []TraceEvent
	for _, ev := range r.Trace {
		if ev.Type == EventOutcome && ev.Operation == operation {
			out = append(out, ev)
		}
	}
	return out
}
