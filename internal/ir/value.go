package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
)

// IRValue is a sealed interface representing constrained value types.
// Only IRNull, IRString, IRInt, IRFloat, IRBool, IRArray, and IRObject
// implement this.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRNull represents a JSON null value in the IR.
type IRNull struct{}

func (IRNull) irValue() {}

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString represents a string value in the IR.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value in the IR.
type IRInt int64

func (IRInt) irValue() {}

// IRFloat represents an IEEE-754 double in the IR.
// Non-finite values are serialized as the strings "+Inf", "-Inf" and "NaN".
type IRFloat float64

func (IRFloat) irValue() {}

// IRBool represents a boolean value in the IR.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// Non-finite float encodings.
const (
	PosInf = "+Inf"
	NegInf = "-Inf"
	NaN    = "NaN"
)

// IRPair represents a key-value pair for typed IRObject construction.
type IRPair struct {
	Key   string
	Value IRValue
}

// NewIRObjectFromPairs creates an IRObject from typed key-value pairs.
// Example: NewIRObjectFromPairs(O("mass_kg", IRFloat(1.98847e30)), O("kind", IRString("mass")))
func NewIRObjectFromPairs(pairs ...IRPair) IRObject {
	obj := make(IRObject, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// O is a shorthand for IRPair for ergonomic construction.
func O(key string, value IRValue) IRPair {
	return IRPair{Key: key, Value: value}
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// CRITICAL: Go's sort.Strings uses UTF-8 which produces DIFFERENT order.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// Float returns the numeric value stored under key. Integers are widened and
// the non-finite string encodings are decoded. ok is false when the key is
// missing or not numeric.
func (obj IRObject) Float(key string) (f float64, ok bool) {
	v, present := obj[key]
	if !present {
		return 0, false
	}
	return AsFloat(v)
}

// AsFloat converts a numeric IRValue to float64.
func AsFloat(v IRValue) (float64, bool) {
	switch val := v.(type) {
	case IRFloat:
		return float64(val), true
	case IRInt:
		return float64(val), true
	case IRString:
		switch string(val) {
		case PosInf:
			return math.Inf(1), true
		case NegInf:
			return math.Inf(-1), true
		case NaN:
			return math.NaN(), true
		}
	}
	return 0, false
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering
// as required by RFC 8785 (Canonical JSON).
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// If all compared units are equal, shorter string comes first
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// UnmarshalJSON implements json.Unmarshaler for IRObject.
func (obj *IRObject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*obj = make(IRObject, len(raw))
	for k, v := range raw {
		val, err := unmarshalIRValue(v)
		if err != nil {
			return fmt.Errorf("IRObject key %q: %w", k, err)
		}
		(*obj)[k] = val
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for IRArray.
func (arr *IRArray) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*arr = make(IRArray, len(raw))
	for i, v := range raw {
		val, err := unmarshalIRValue(v)
		if err != nil {
			return fmt.Errorf("IRArray index %d: %w", i, err)
		}
		(*arr)[i] = val
	}
	return nil
}

// unmarshalIRValue decodes a JSON value into the appropriate IRValue type.
// null becomes IRNull so stored records round-trip.
func unmarshalIRValue(data []byte) (IRValue, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return IRString(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return IRBool(b), nil

	case 'n':
		return IRNull{}, nil

	case '[':
		var arr IRArray
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, err
		}
		return arr, nil

	case '{':
		var obj IRObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		return obj, nil

	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return numberValue(n)
	}
}

// numberValue keeps integer literals as IRInt and everything else as IRFloat.
func numberValue(n json.Number) (IRValue, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return IRInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %s: %w", s, err)
	}
	return IRFloat(f), nil
}

// MarshalJSON implements json.Marshaler for IRObject with sorted keys (RFC 8785 ordering).
// NOTE: This is NOT canonical marshaling. Use MarshalCanonical for hashing.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := obj.SortedKeys()
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalIRValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for IRFloat.
func (f IRFloat) MarshalJSON() ([]byte, error) {
	return marshalCanonicalFloat(float64(f))
}

// MarshalIRValue marshals an IRValue to JSON bytes.
// NOTE: This is NOT canonical marshaling. Use MarshalCanonical for hashing.
func MarshalIRValue(v IRValue) ([]byte, error) {
	switch val := v.(type) {
	case IRNull:
		return []byte("null"), nil
	case IRString:
		return json.Marshal(string(val))
	case IRInt:
		return json.Marshal(int64(val))
	case IRFloat:
		return val.MarshalJSON()
	case IRBool:
		return json.Marshal(bool(val))
	case IRArray:
		return marshalIRArray(val)
	case IRObject:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown IRValue type: %T", v)
	}
}

// marshalIRArray marshals an IRArray to JSON bytes.
func marshalIRArray(arr IRArray) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalIRValue(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalIRObject parses operation arguments. The top level must be an
// object; null is rejected anywhere inside it.
func UnmarshalIRObject(data []byte) (IRObject, error) {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(IRObject)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}

// UnmarshalIRValue deserializes JSON into an IRValue with strict validation.
// CRITICAL: Rejects null - only string/number/bool/array/object allowed.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	return convertToIRValue(raw)
}

// convertToIRValue recursively converts a decoded JSON value to an IRValue.
func convertToIRValue(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in IR: only string, number, bool, array, object allowed")
	case bool:
		return IRBool(val), nil
	case string:
		return IRString(val), nil
	case json.Number:
		return numberValue(val)
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := convertToIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := convertToIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
