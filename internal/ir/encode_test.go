package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regime string

type sample struct {
	Velocity float64   `json:"v_coordinate"`
	Regime   regime    `json:"regime"`
	Flag     bool      `json:"causal_violation"`
	Series   []float64 `json:"series"`
	Hidden   string    `json:"-"`
	Plain    int
	private  int
}

func TestFromStruct(t *testing.T) {
	obj, err := FromStruct(sample{
		Velocity: math.Inf(1),
		Regime:   "quantum",
		Series:   []float64{1, 0.5},
		Hidden:   "x",
		Plain:    3,
		private:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, IRObject{
		"v_coordinate":     IRFloat(math.Inf(1)),
		"regime":           IRString("quantum"),
		"causal_violation": IRBool(false),
		"series":           IRArray{IRFloat(1), IRFloat(0.5)},
		"Plain":            IRInt(3),
	}, obj)
}

func TestFromStructNested(t *testing.T) {
	type inner struct {
		A float64 `json:"a"`
	}
	type outer struct {
		In  inner            `json:"in"`
		Ptr *inner           `json:"ptr"`
		Map map[string]inner `json:"map"`
	}

	obj, err := FromStruct(outer{
		In:  inner{A: 1},
		Ptr: &inner{A: 2},
		Map: map[string]inner{"k": {A: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, IRObject{"a": IRFloat(1)}, obj["in"])
	assert.Equal(t, IRObject{"a": IRFloat(2)}, obj["ptr"])
	assert.Equal(t, IRObject{"k": IRObject{"a": IRFloat(3)}}, obj["map"])
}

func TestFromStructRejects(t *testing.T) {
	_, err := FromStruct(1.5)
	require.Error(t, err)

	type withNil struct {
		P *int `json:"p"`
	}
	_, err = FromStruct(withNil{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p")
}

func TestEncodeNilSliceIsEmptyArray(t *testing.T) {
	v, err := Encode([]float64(nil))
	require.NoError(t, err)
	assert.Equal(t, IRArray{}, v)
}
