package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for hashing.
// CRITICAL: This is the ONLY serialization that should be used for
// content-addressed identity computation.
//
// Key differences from standard json.Marshal:
// 1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
// 2. No HTML escaping (< > & are NOT escaped)
// 3. Strings are NFC normalized
// 4. Finite floats use the ECMAScript shortest round-trip form
// 5. Non-finite floats become the strings "+Inf", "-Inf" and "NaN"
// 6. No null (returns error)
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case IRNull:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case IRString:
		return marshalCanonicalString(string(val))
	case IRInt:
		return []byte(fmt.Sprintf("%d", val)), nil
	case IRFloat:
		return marshalCanonicalFloat(float64(val))
	case IRBool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case IRArray:
		return marshalCanonicalArray(val)
	case IRObject:
		return marshalCanonicalObject(val)
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return marshalCanonicalArray(arr)
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return marshalCanonicalObject(obj)
	case float64:
		return marshalCanonicalFloat(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// toIRValue converts a Go value to an IRValue.
func toIRValue(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden")
	case IRValue:
		return val, nil
	case string:
		return IRString(val), nil
	case int64:
		return IRInt(val), nil
	case int:
		return IRInt(val), nil
	case bool:
		return IRBool(val), nil
	case float64:
		return IRFloat(val), nil
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// marshalCanonicalFloat encodes finite values as RFC 8785 numbers and
// non-finite values as strings, so every result stays valid JSON.
func marshalCanonicalFloat(f float64) ([]byte, error) {
	switch {
	case math.IsNaN(f):
		return marshalCanonicalString(NaN)
	case math.IsInf(f, 1):
		return marshalCanonicalString(PosInf)
	case math.IsInf(f, -1):
		return marshalCanonicalString(NegInf)
	}
	return []byte(FormatNumber(f)), nil
}

// FormatNumber renders a finite float the way ECMAScript Number.prototype.toString
// does, as required by RFC 8785 section 3.2.2.3.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0" // also -0
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits as d.ddddde±x.
	mant, expStr, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	m := digits[:1]
	if k > 1 {
		m += "." + digits[1:]
	}
	e := n - 1
	if e < 0 {
		return sign + m + "e-" + strconv.Itoa(-e)
	}
	return sign + m + "e+" + strconv.Itoa(e)
}

// marshalCanonicalString produces canonical JSON string with NFC normalization.
// CRITICAL: RFC 8785 compliance:
// - No HTML escaping (<, >, & are NOT escaped)
// - U+2028 (LINE SEPARATOR) and U+2029 (PARAGRAPH SEPARATOR) are NOT escaped
// - Only control characters (U+0000-U+001F), backslash, and quote are escaped
func marshalCanonicalString(s string) ([]byte, error) {
	// NFC normalize at serialization boundary
	normalized := norm.NFC.String(s)

	// Use encoder with HTML escaping disabled
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // CRITICAL: <, >, & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// RFC 8785: U+2028 and U+2029 should NOT be escaped.
	// Go's json.Encoder escapes them for JavaScript compatibility, but this
	// violates RFC 8785 canonical JSON. We must unescape them.
	//
	// CRITICAL: We must NOT replace \u2028 when it's part of \\u2028 (escaped backslash).
	// The json encoder produces:
	// - \u2028  for actual U+2028 character (should be unescaped)
	// - \\u2028 for literal backslash + "u2028" text (should stay escaped)
	result = unescapeU2028U2029(result)

	return result, nil
}

// unescapeU2028U2029 turns the \u2028 and \u2029 escapes json.Encoder emits
// back into literal characters. An escape preceded by an odd run of
// backslashes is literal text (\\u2028) and is left alone.
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if i+6 <= len(data) && bytes.HasPrefix(data[i:], []byte(`\u202`)) && (data[i+5] == '8' || data[i+5] == '9') {
			run := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				run++
			}
			if run%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, "\u2028"...)
				} else {
					out = append(out, "\u2029"...)
				}
				i += 5
				continue
			}
		}
		out = append(out, data[i])
	}
	return out
}

// marshalCanonicalArray marshals an array to canonical JSON.
func marshalCanonicalArray(arr IRArray) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalCanonicalObject marshals an object to canonical JSON with RFC 8785 key ordering.
func marshalCanonicalObject(obj IRObject) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	// CRITICAL: RFC 8785 UTF-16 code unit ordering
	keys := obj.SortedKeys()

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		// Marshal key (NFC normalized, no HTML escape)
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		// Marshal value
		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
