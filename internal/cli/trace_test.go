package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/horizon/internal/ir"
	"github.com/roach88/horizon/internal/store"
)

func runTraceCmd(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	cmd := NewTraceCommand(opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return buf.String(), err
}

func TestTraceCommand_Text(t *testing.T) {
	dbPath := recordRun(t, "run-trace")

	out, err := runTraceCmd(t, &RootOptions{Format: "text", Database: dbPath}, "--run", "run-trace")
	require.NoError(t, err)

	assert.Contains(t, out, "Trace for Run: run-trace")
	assert.Contains(t, out, "Constants: codata2018")
	assert.Contains(t, out, "=== Timeline ===")
	assert.Contains(t, out, `[1] EVAL qftcs.vacuum {"tau":0.25}`)
	assert.Contains(t, out, "[2] OUT  Success")
	assert.Contains(t, out, "[6] OUT  InvalidArgument")
	assert.Contains(t, out, "=== Stats ===")
	assert.Contains(t, out, "Evaluations:  3")
	assert.Contains(t, out, "InvalidArgument: 1")
	assert.Contains(t, out, "Success: 2")
}

func TestTraceCommand_JSONFilterByOperation(t *testing.T) {
	dbPath := recordRun(t, "run-trace-json")

	out, err := runTraceCmd(t, &RootOptions{Format: "json", Database: dbPath},
		"--run", "run-trace-json", "--operation", "observer.dilation")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "codata2018", resp.Data.ConstantsName)
	require.Len(t, resp.Data.Timeline, 4)
	for _, ev := range resp.Data.Timeline {
		assert.Equal(t, "observer.dilation", ev.Operation)
	}
	assert.Equal(t, int64(3), resp.Data.Timeline[0].Seq)
	assert.Equal(t, 3, resp.Data.Stats.Evaluations)
	assert.Equal(t, int64(6), resp.Data.Stats.LastSeq)
}

func TestTraceCommand_Errors(t *testing.T) {
	dbPath := recordRun(t, "run-known")

	tests := []struct {
		name     string
		opts     *RootOptions
		args     []string
		wantText string
	}{
		{"missing database", &RootOptions{Format: "text"}, []string{"--run", "x"}, "database path required"},
		{"unknown run", &RootOptions{Format: "text", Database: dbPath}, []string{"--run", "run-unknown"}, "run not found: run-unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runTraceCmd(t, tt.opts, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantText)
		})
	}
}

func TestTraceCommand_RunFlagRequired(t *testing.T) {
	_, err := runTraceCmd(t, &RootOptions{Format: "text", Database: "unused.db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"run" not set`)
}

func TestBuildTimeline_PendingEvaluation(t *testing.T) {
	state := store.RunState{
		Evaluations: []ir.Evaluation{
			{ID: "e1", Operation: "qftcs.vacuum", Seq: 1},
			{ID: "e2", Operation: "qftcs.modes", Seq: 3},
		},
		Outcomes: []ir.Outcome{
			{ID: "o1", EvaluationID: "e1", Case: ir.CaseSuccess, Seq: 2},
		},
	}

	timeline := buildTimeline(state, "")
	require.Len(t, timeline, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{timeline[0].Seq, timeline[1].Seq, timeline[2].Seq})
	assert.Equal(t, "qftcs.vacuum", timeline[1].Operation)
}

func TestFormatIRValue(t *testing.T) {
	tests := []struct {
		name  string
		value ir.IRValue
		want  string
	}{
		{"string", ir.IRString("Success"), "Success"},
		{"int", ir.IRInt(42), "42"},
		{"float", ir.IRFloat(0.1), "0.1"},
		{"exponent", ir.IRFloat(1e-34), "1e-34"},
		{"infinity", ir.IRFloat(math.Inf(1)), ir.PosInf},
		{"bool", ir.IRBool(true), "true"},
		{"nil", nil, "{}"},
		{"object", ir.IRObject{"b": ir.IRInt(2), "a": ir.IRInt(1)}, `{"a":1,"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatIRValue(tt.value))
		})
	}
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "short", truncateID("short"))
	assert.Equal(t, "01234567...89abcdef", truncateID("0123456789abcdef0123456789abcdef"))
}
