package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/horizon/internal/ir"
)

// GoldenDir holds golden trace snapshots, relative to the test package.
const GoldenDir = "testdata/golden"

// TraceSnapshot captures the trace of one scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunID        string       `json:"run_id"`
	Trace        []TraceEvent `json:"trace"`
}

// toIR converts the snapshot to an IRObject so it serializes through the
// canonical encoder, keeping float formatting identical to stored results.
func (s *TraceSnapshot) toIR() ir.IRObject {
	trace := make(ir.IRArray, len(s.Trace))
	for i, event := range s.Trace {
		obj := ir.IRObject{
			"type":      ir.IRString(event.Type),
			"operation": ir.IRString(event.Operation),
			"seq":       ir.IRInt(event.Seq),
		}
		if event.Args != nil {
			obj["args"] = event.Args
		}
		if event.Case != "" {
			obj["case"] = ir.IRString(event.Case)
		}
		if event.Result != nil {
			obj["result"] = event.Result
		}
		trace[i] = obj
	}

	return ir.IRObject{
		"scenario_name": ir.IRString(s.ScenarioName),
		"run_id":        ir.IRString(s.RunID),
		"trace":         trace,
	}
}

// Snapshot renders a result as canonical JSON.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snap := TraceSnapshot{
		ScenarioName: scenarioName,
		RunID:        result.RunID,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snap.toIR())
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
