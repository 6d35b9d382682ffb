package spotify

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// kind is the JSON type of a raw value
type kind int

const (
	kindInvalid kind = iota
	kindNull
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindBool:
		return "boolean"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "invalid JSON"
	}
}

// kindOf classifies raw by its first significant byte.
// Values taken out of an already parsed object are valid JSON, so this is enough.
func kindOf(raw json.RawMessage) kind {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return kindInvalid
	}
	switch c := trimmed[0]; {
	case c == '{':
		return kindObject
	case c == '[':
		return kindArray
	case c == '"':
		return kindString
	case c == 't' || c == 'f':
		return kindBool
	case c == 'n':
		return kindNull
	case c == '-' || (c >= '0' && c <= '9'):
		return kindNumber
	default:
		return kindInvalid
	}
}

// object is a parsed JSON object with typed field accessors.
// Required accessors fail with a DecodeError; optional ones fall back to nil.
type object struct {
	typ    string
	fields map[string]json.RawMessage
}

func newObject(typ string, raw json.RawMessage) (object, error) {
	if k := kindOf(raw); k != kindObject {
		return object{}, &DecodeError{Type: typ, Reason: "expected object, got " + k.String()}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return object{}, &DecodeError{Type: typ, Reason: err.Error()}
	}
	return object{typ: typ, fields: fields}, nil
}

func (o object) fail(field, reason string) error {
	return &DecodeError{Type: o.typ, Field: field, Reason: reason}
}

// wrap prefixes an error raised while decoding the nested value at field
func (o object) wrap(field string, err error) error {
	return fmt.Errorf("%s.%s: %w", o.typ, field, err)
}

// has reports whether key is present with the given kind
func (o object) has(key string, want kind) bool {
	raw, ok := o.fields[key]
	return ok && kindOf(raw) == want
}

// present returns the value at key whatever its kind
func (o object) present(key string) (json.RawMessage, error) {
	raw, ok := o.fields[key]
	if !ok {
		return nil, o.fail(key, "missing required field")
	}
	return raw, nil
}

func (o object) require(key string, want kind) (json.RawMessage, error) {
	raw, err := o.present(key)
	if err != nil {
		return nil, err
	}
	if k := kindOf(raw); k != want {
		return nil, o.fail(key, fmt.Sprintf("expected %s, got %s", want, k))
	}
	return raw, nil
}

func (o object) str(key string) (string, error) {
	raw, err := o.require(key, kindString)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", o.fail(key, err.Error())
	}
	return s, nil
}

// maxCount is the largest integer a JSON number holds exactly
const maxCount = 1 << 53

// count decodes a non-negative integer, truncating any fractional part
func (o object) count(key string) (int, error) {
	raw, err := o.require(key, kindNumber)
	if err != nil {
		return 0, err
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, o.fail(key, err.Error())
	}
	if f < 0 {
		return 0, o.fail(key, fmt.Sprintf("expected non-negative number, got %v", f))
	}
	if f > maxCount {
		return 0, o.fail(key, fmt.Sprintf("number %v out of range", f))
	}
	return int(f), nil
}

// truthy requires key to be present and reports whether it is exactly JSON true
func (o object) truthy(key string) (bool, error) {
	raw, err := o.present(key)
	if err != nil {
		return false, err
	}
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true")), nil
}

// optionalString returns nil unless key holds a JSON string
func (o object) optionalString(key string) *string {
	if !o.has(key, kindString) {
		return nil
	}
	var s string
	if err := json.Unmarshal(o.fields[key], &s); err != nil {
		return nil
	}
	return &s
}

// field decodes the required value at key with decode
func field[T any](o object, key string, decode Decoder[T]) (T, error) {
	var zero T
	raw, err := o.present(key)
	if err != nil {
		return zero, err
	}
	v, err := decode(raw)
	if err != nil {
		return zero, o.wrap(key, err)
	}
	return v, nil
}

// optionalField decodes the value at key only when it is an object
func optionalField[T any](o object, key string, decode Decoder[T]) (*T, error) {
	if !o.has(key, kindObject) {
		return nil, nil
	}
	v, err := decode(o.fields[key])
	if err != nil {
		return nil, o.wrap(key, err)
	}
	return &v, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	if k := kindOf(raw); k != kindString {
		return "", &DecodeError{Type: "string", Reason: "expected string, got " + k.String()}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &DecodeError{Type: "string", Reason: err.Error()}
	}
	return s, nil
}
