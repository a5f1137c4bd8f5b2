// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem defines the closed taxonomy of build-failure root
// causes that the rest of this module classifies log lines into.
//
// Every variant is a plain struct implementing Problem. A package-level
// registry maps the stable "kind" string to a constructor so that a
// Problem can be round-tripped through JSON: MarshalJSON encodes the
// struct's own fields (kind and is_global are carried out of band, as
// methods, not struct fields, so they never appear in the field map);
// FromJSON looks the kind up in the registry and decodes into a fresh
// zero value of the right type.
package problem

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Problem is implemented by every taxonomy variant.
type Problem interface {
	// Kind returns the variant's stable string tag, e.g. "missing-c-header".
	Kind() string
	// IsGlobal reports whether this kind should win over a more specific
	// match found in the same scan window (e.g. "no-space-on-device").
	IsGlobal() bool
	// String renders a short human description, used in CLI output.
	String() string
}

type constructor func() Problem

var registry = map[string]constructor{}

// register adds a kind to the registry. It panics on a duplicate kind,
// mirroring the Python original's __init_subclass__ assertion: a
// duplicate registration is a programming error, not a runtime
// condition callers should recover from.
func register(kind string, global bool, new constructor) {
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("problem: duplicate kind registered: %q", kind))
	}
	registry[kind] = new
	globalKinds[kind] = global
}

var globalKinds = map[string]bool{}

// IsGlobalKind reports whether kind is registered as a global,
// scan-overriding kind. Used by the scanner's tie-break rule without
// requiring an instance in hand.
func IsGlobalKind(kind string) bool {
	return globalKinds[kind]
}

// Kinds returns every registered kind, for diagnostics and tests.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// MarshalJSON encodes p's own fields only — kind and is_global are
// carried by the envelope a caller builds around this (see Envelope),
// not inside the field map itself, matching the original's
// Problem.json() behaviour.
func MarshalJSON(p Problem) ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON decodes data (a JSON object of payload fields) into a fresh
// value of the type registered for kind.
func FromJSON(kind string, data []byte) (Problem, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("problem: unknown kind %q", kind)
	}
	p := ctor()
	// p is always a pointer to a concrete struct; unmarshal in place.
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("problem: decoding kind %q: %w", kind, err)
	}
	return p, nil
}

// Equal reports whether a and b are the same kind with equal payload
// fields. Problem values are plain structs (or pointers to them), so
// reflect.DeepEqual already implements the "same kind, same fields"
// invariant precisely: two different concrete types can never compare
// equal, and field-by-field comparison is exactly what DeepEqual does
// for structs and the pointers/slices that appear in their fields.
func Equal(a, b Problem) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Envelope is the wire shape used by CLI JSON output: {kind,
// is_global, ...fields}, with the payload fields spliced in next to
// the tag fields rather than nested, matching the original's
// {kind, is_global, **p.json()} construction.
type Envelope struct {
	Kind     string          `json:"kind"`
	IsGlobal bool            `json:"is_global"`
	Fields   json.RawMessage `json:"-"`
}

// MarshalEnvelope builds the combined {kind, is_global, ...fields} JSON
// object for p.
func MarshalEnvelope(p Problem) ([]byte, error) {
	fields, err := MarshalJSON(p)
	if err != nil {
		return nil, err
	}
	var fieldMap map[string]json.RawMessage
	if err := json.Unmarshal(fields, &fieldMap); err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	for k, v := range fieldMap {
		out[k] = v
	}
	kindJSON, _ := json.Marshal(p.Kind())
	globalJSON, _ := json.Marshal(p.IsGlobal())
	out["kind"] = kindJSON
	out["is_global"] = globalJSON
	return json.Marshal(out)
}
