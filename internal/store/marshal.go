package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/horizon/internal/ir"
)

// marshalObject converts an IRObject to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON so stored text hashes the same as the ID inputs.
func marshalObject(what string, obj ir.IRObject) (string, error) {
	if obj == nil {
		obj = ir.IRObject{}
	}
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", what, err)
	}
	return string(data), nil
}

// unmarshalObject parses canonical JSON TEXT to IRObject.
// ir.IRObject.UnmarshalJSON keeps integer literals as IRInt and decodes
// everything else as IRFloat, so a stored result round-trips to the same
// canonical bytes.
func unmarshalObject(what, data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	var obj ir.IRObject
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", what, err)
	}
	return obj, nil
}
