package harness

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/testutil"
)

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Flow: []FlowStep{
			{Invoke: "qftcs.vacuum", Args: map[string]any{"tau": 1}},
		},
		Assertions: []Assertion{
			{Type: AssertTraceContains, Operation: "qftcs.vacuum"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, testutil.DefaultRunID, result.RunID)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, EventEvaluation, result.Trace[0].Type)
	assert.Equal(t, EventOutcome, result.Trace[1].Type)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.Equal(t, ir.CaseSuccess, result.Trace[1].Case)
}

func TestRun_ExpectCaseMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "case_mismatch",
		Description: "Negative tau is rejected",
		Flow: []FlowStep{
			{
				Invoke: "qftcs.vacuum",
				Args:   map[string]any{"tau": -1},
				Expect: &ExpectClause{Case: ir.CaseSuccess},
			},
		},
		Assertions: []Assertion{{Type: AssertStoredCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "case = InvalidArgument, want Success")
}

func TestRun_ExpectResultTolerance(t *testing.T) {
	step := FlowStep{
		Invoke: "qftcs.vacuum",
		Args:   map[string]any{"tau": 0.25},
		Expect: &ExpectClause{
			Case:   ir.CaseSuccess,
			Result: map[string]any{"beta_coefficient": 0.866},
		},
	}
	scenario := &Scenario{
		Name:        "tolerance",
		Description: "Loose tolerance accepts a rounded value",
		Flow:        []FlowStep{step},
		Assertions:  []Assertion{{Type: AssertStoredCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass, "default tolerance rejects 0.866")

	scenario.Flow[0].Expect.Tolerance = 1e-3
	result, err = Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_UnknownOperation(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_op",
		Description: "Unknown operations are reported and not recorded",
		Flow: []FlowStep{
			{Invoke: "observer.teleport", Args: map[string]any{}},
			{Invoke: "qftcs.vacuum", Args: map[string]any{"tau": 1}},
		},
		Assertions: []Assertion{{Type: AssertStoredCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "flow[0]")
	assert.Contains(t, result.Errors[0], "UNKNOWN_OPERATION")
	assert.Len(t, result.Trace, 2)
}

func TestRun_NullArgRejected(t *testing.T) {
	scenario := &Scenario{
		Name:        "null_arg",
		Description: "Null arguments cannot be represented",
		Flow: []FlowStep{
			{Invoke: "qftcs.vacuum", Args: map[string]any{"tau": nil}},
		},
		Assertions: []Assertion{{Type: AssertStoredCount, Count: 0}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null values are forbidden")
}

func TestRun_MissingConstants(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_constants",
		Description: "Constants file missing",
		Constants:   filepath.Join("testdata", "constants", "nope.cue"),
		Flow:        []FlowStep{{Invoke: "qftcs.vacuum", Args: map[string]any{"tau": 1}}},
		Assertions:  []Assertion{{Type: AssertStoredCount, Count: 1}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load constants")
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "vacuum_and_collapse.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_ScenarioFiles(t *testing.T) {
	paths, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestConvertToIRValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want ir.IRValue
	}{
		{"string", "mass", ir.IRString("mass")},
		{"int", 3, ir.IRInt(3)},
		{"float", 0.5, ir.IRFloat(0.5)},
		{"bool", true, ir.IRBool(true)},
		{"array", []any{1, "a"}, ir.IRArray{ir.IRInt(1), ir.IRString("a")}},
		{"object", map[string]any{"k": 2.5}, ir.IRObject{"k": ir.IRFloat(2.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertToIRValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := convertToIRValue(math.Inf(1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got.(ir.IRFloat)), 1))

	_, err = convertToIRValue(nil)
	assert.Error(t, err)
	_, err = convertToIRValue(struct{}{})
	assert.Error(t, err)
}

func TestFloatsClose(t *testing.T) {
	inf := math.Inf(1)

	assert.True(t, floatsClose(1.0, 1.0+1e-12, 1e-9))
	assert.False(t, floatsClose(1.0, 1.1, 1e-9))
	assert.True(t, floatsClose(inf, inf, 1e-9))
	assert.False(t, floatsClose(inf, 1e308, 1e-9))
	assert.True(t, floatsClose(math.NaN(), math.NaN(), 1e-9))
	assert.False(t, floatsClose(math.NaN(), 0, 1e-9))
	assert.True(t, floatsClose(1e-12, 0, 1e-9))
	assert.False(t, floatsClose(1e-6, 0, 1e-9))
}

func TestMatchValue_NestedAndNonFinite(t *testing.T) {
	got := ir.IRObject{
		"bogoliubov": ir.IRObject{"beta_coefficient": ir.IRFloat(0)},
		"limit":      ir.IRFloat(math.Inf(1)),
		"vacuum":     ir.IRString("undefined"),
	}

	want := ir.IRObject{
		"bogoliubov": ir.IRObject{"beta_coefficient": ir.IRInt(0)},
		"limit":      ir.IRString(ir.PosInf),
		"vacuum":     ir.IRString("undefined"),
	}
	assert.Empty(t, matchValue("result", got, want, DefaultTolerance))

	want["vacuum"] = ir.IRString("unruh_modes")
	want["missing"] = ir.IRInt(1)
	errs := matchValue("result", got, want, DefaultTolerance)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "result.missing: missing")
	assert.Contains(t, errs[1], "result.vacuum")
}
