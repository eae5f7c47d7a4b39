package ir

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct converts a result struct into an IRObject using its json tags.
// Fields tagged "-" are skipped; untagged exported fields use their Go name.
func FromStruct(v any) (IRObject, error) {
	val, err := Encode(v)
	if err != nil {
		return nil, err
	}
	obj, ok := val.(IRObject)
	if !ok {
		return nil, fmt.Errorf("FromStruct: %T does not encode to an object", v)
	}
	return obj, nil
}

// Encode converts a Go value into an IRValue. It accepts booleans, strings,
// integers, floats, slices, string-keyed maps and structs, and the named types
// built on them. nil pointers, maps and slices are rejected.
func Encode(v any) (IRValue, error) {
	if iv, ok := v.(IRValue); ok {
		return iv, nil
	}
	return encodeValue(reflect.ValueOf(v))
}

func encodeValue(rv reflect.Value) (IRValue, error) {
	if !rv.IsValid() {
		return nil, fmt.Errorf("null is forbidden in IR")
	}
	if rv.CanInterface() {
		if iv, ok := rv.Interface().(IRValue); ok {
			return iv, nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return IRBool(rv.Bool()), nil
	case reflect.String:
		return IRString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IRInt(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return IRInt(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return IRFloat(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("null is forbidden in IR")
		}
		return encodeValue(rv.Elem())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return IRArray{}, nil
		}
		arr := make(IRArray, rv.Len())
		for i := range arr {
			elem, err := encodeValue(rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = elem
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key must be a string, got %s", rv.Type().Key())
		}
		obj := make(IRObject, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elem, err := encodeValue(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", iter.Key().String(), err)
			}
			obj[iter.Key().String()] = elem
		}
		return obj, nil
	case reflect.Struct:
		return encodeStruct(rv)
	default:
		return nil, fmt.Errorf("unsupported type: %s", rv.Type())
	}
}

func encodeStruct(rv reflect.Value) (IRObject, error) {
	t := rv.Type()
	obj := make(IRObject, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		elem, err := encodeValue(rv.Field(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		obj[name] = elem
	}
	return obj, nil
}
