package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", IRString("hello"), `"hello"`},
		{"empty string", IRString(""), `""`},
		{"int", IRInt(42), "42"},
		{"negative int", IRInt(-100), "-100"},
		{"float", IRFloat(0.5), "0.5"},
		{"integral float", IRFloat(1), "1"},
		{"go float64", 2.5, "2.5"},
		{"bool true", IRBool(true), "true"},
		{"bool false", IRBool(false), "false"},
		{"empty array", IRArray{}, "[]"},
		{"empty object", IRObject{}, "{}"},
		{"array of floats", IRArray{IRFloat(1), IRFloat(0.25), IRFloat(-3)}, "[1,0.25,-3]"},
		{"simple object", IRObject{"a": IRInt(1)}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalNonFiniteFloats(t *testing.T) {
	obj := IRObject{
		"pos": IRFloat(math.Inf(1)),
		"neg": IRFloat(math.Inf(-1)),
		"nan": IRFloat(math.NaN()),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"nan":"NaN","neg":"-Inf","pos":"+Inf"}`, string(result))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-1, "-1"},
		{0.5, "0.5"},
		{123.456, "123.456"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.0546e-22, "1.0546e-22"},
		{299792458, "299792458"},
		{6.6743e-11, "6.6743e-11"},
		{1.98847e30, "1.98847e+30"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{5e-324, "5e-324"},
		{-2.5e-8, "-2.5e-8"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := IRObject{
		"zebra": IRInt(1),
		"alpha": IRInt(2),
		"beta":  IRInt(3),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonicalNestedSortedKeys(t *testing.T) {
	obj := IRObject{
		"z": IRObject{
			"b": IRInt(1),
			"a": IRFloat(0.125),
		},
		"a": IRInt(3),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"z":{"a":0.125,"b":1}}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+E000 vs U+10000: UTF-16 order differs from UTF-8.
	obj := IRObject{
		"\uE000":     IRInt(1),
		"\U00010000": IRInt(2), // surrogate pair 0xD800 0xDC00
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)

	expected := "{\"\U00010000\":2,\"\uE000\":1}"
	assert.Equal(t, expected, string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical(IRString("<a & b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(result))
	assert.NotContains(t, string(result), "\\u003c")
	assert.NotContains(t, string(result), "\\u0026")
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)

	_, err = MarshalCanonical(IRObject{"a": IRNull{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	composed := "caf\u00E9"
	decomposed := "cafe\u0301"

	r1, err := MarshalCanonical(IRObject{composed: IRString(composed)})
	require.NoError(t, err)
	r2, err := MarshalCanonical(IRObject{decomposed: IRString(decomposed)})
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestMarshalCanonicalU2028U2029(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"line separator", "a\u2028b", "\"a\u2028b\""},
		{"paragraph separator", "a\u2029b", "\"a\u2029b\""},
		{"literal escape text", `see \u2028`, `"see \\u2028"`},
		{"mixed", "lit \\u2028 real \u2028", "\"lit \\\\u2028 real \u2028\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(IRString(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalWithGoTypes(t *testing.T) {
	result, err := MarshalCanonical(map[string]any{
		"name":  "sun",
		"mass":  1.98847e30,
		"count": 3,
		"flags": []any{true, false},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"count":3,"flags":[true,false],"mass":1.98847e+30,"name":"sun"}`, string(result))
}

func TestMarshalCanonicalIdempotency(t *testing.T) {
	original := IRObject{
		"v": IRFloat(0.7071067811865476),
		"s": IRString("quantum"),
		"a": IRArray{IRFloat(1e-35), IRFloat(math.Inf(1))},
	}

	first, err := MarshalCanonical(original)
	require.NoError(t, err)

	parsed, err := UnmarshalIRObject(first)
	require.NoError(t, err)

	second, err := MarshalCanonical(parsed)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
