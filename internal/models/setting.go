// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Setting is a single key-value pair. The value is stored as text and
// decoded back to its original shape when read.
type Setting struct {
	ID          uuid.UUID    `json:"id"`
	Key         string       `json:"key"`
	Value       SettingValue `json:"value"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ValueKind tags the variants of SettingValue.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueScalar
	ValueStructured
)

// SettingValue is either a raw scalar string or a decoded JSON tree.
type SettingValue struct {
	kind       ValueKind
	raw        string
	structured any
}

// ScalarValue wraps a plain string.
func ScalarValue(s string) SettingValue {
	return SettingValue{kind: ValueScalar, raw: s}
}

// DecodeSettingValue decodes a stored value. Text that parses as JSON becomes
// a structured value; anything else is returned unchanged as a scalar.
func DecodeSettingValue(stored *string) SettingValue {
	if stored == nil {
		return SettingValue{}
	}
	var tree any
	if err := json.Unmarshal([]byte(*stored), &tree); err != nil {
		return ScalarValue(*stored)
	}
	return SettingValue{kind: ValueStructured, raw: *stored, structured: tree}
}

// EncodeSettingValue converts an API value into its stored text form.
// Mappings and sequences are JSON-encoded, strings are kept verbatim and
// other scalars use their canonical string form. Nil maps to NULL.
func EncodeSettingValue(v any) (*string, error) {
	var s string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = x
	case bool:
		s = strconv.FormatBool(x)
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case SettingValue:
		if x.kind == ValueNull {
			return nil, nil
		}
		s = x.raw
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("encode setting value: %w", err)
		}
		s = string(b)
	}
	return &s, nil
}

// Kind returns which variant v holds.
func (v SettingValue) Kind() ValueKind { return v.kind }

// IsNull reports whether no value is stored.
func (v SettingValue) IsNull() bool { return v.kind == ValueNull }

// Raw returns the stored text.
func (v SettingValue) Raw() string { return v.raw }

// Value returns the decoded tree for structured values, the raw string for
// scalars and nil for null.
func (v SettingValue) Value() any {
	switch v.kind {
	case ValueStructured:
		return v.structured
	case ValueScalar:
		return v.raw
	default:
		return nil
	}
}

// String returns the value as a string, or fallback when it is null. JSON
// strings are unquoted; other structured values return their stored text.
func (v SettingValue) String(fallback string) string {
	switch v.kind {
	case ValueNull:
		return fallback
	case ValueStructured:
		if s, ok := v.structured.(string); ok {
			return s
		}
	}
	return v.raw
}

// Bool interprets the value as a flag, returning fallback when it is null or
// not recognizable as a boolean.
func (v SettingValue) Bool(fallback bool) bool {
	switch x := v.Value().(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		if b, err := strconv.ParseBool(x); err == nil {
			return b
		}
	}
	return fallback
}

// MarshalJSON renders the decoded value.
func (v SettingValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Value())
}
