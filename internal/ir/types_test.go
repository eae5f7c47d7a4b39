package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFieldNaming(t *testing.T) {
	data, err := json.Marshal(Outcome{
		ID:           "o1",
		EvaluationID: "e1",
		Case:         CaseSuccess,
		Result:       IRObject{"tau": IRFloat(0.5)},
		Digest:       "d",
		Seq:          2,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "o1",
		"evaluation_id": "e1",
		"case": "Success",
		"result": {"tau": 0.5},
		"digest": "d",
		"seq": 2
	}`, string(data))
}

func TestEvaluationRoundTrip(t *testing.T) {
	orig := Evaluation{
		ID:        "e1",
		RunID:     "run-1",
		Operation: "observer.dilation",
		Args:      IRObject{"mass_kg": IRFloat(1.98847e30), "length_m": IRFloat(5906.5)},
		Seq:       1,
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Evaluation
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, orig, back)
}

func TestRunMarshaling(t *testing.T) {
	data, err := json.Marshal(Run{ID: "run-1", ConstantsName: "codata2018", EngineVersion: EngineVersion, IRVersion: IRVersion})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"id", "constants_name", "constants_hash", "constants", "engine_version", "ir_version"} {
		assert.Contains(t, m, key)
	}
}
