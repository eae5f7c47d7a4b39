package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_VacuumAndCollapse(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "vacuum_and_collapse.yaml"))
	require.NoError(t, err)

	// To regenerate: go test ./internal/harness -run TestRunWithGolden -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_ArgumentFailures(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "argument_failures.yaml"))
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_Canonical(t *testing.T) {
	scenario := &Scenario{
		Name:        "snapshot",
		Description: "Snapshot encoding",
		Flow:        []FlowStep{{Invoke: "qftcs.vacuum", Args: map[string]any{"tau": 0}}},
		Assertions:  []Assertion{{Type: AssertStoredCount, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	data, err := Snapshot("snapshot", result)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, `{"run_id":"test-run-default","scenario_name":"snapshot","trace":[`))
	assert.Contains(t, s, `"modified_uncertainty":"+Inf"`)
	assert.NotContains(t, s, "\n")
}
