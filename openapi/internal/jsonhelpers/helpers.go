// Package jsonhelpers provides helper functions for JSON marshaling of OpenAPI
// objects that carry extension fields (x-* properties).
package jsonhelpers

import (
	"encoding/json"
	"maps"
)

// MarshalWithExtras marshals a base map while merging in extension fields.
// Known fields win over extension keys with the same name.
func MarshalWithExtras(base map[string]any, extras map[string]any) ([]byte, error) {
	out := make(map[string]any, len(base)+len(extras))
	maps.Copy(out, extras)
	maps.Copy(out, base)
	return json.Marshal(out)
}

// SetIfNotEmpty sets a field in the map only if the value is not empty.
func SetIfNotEmpty(m map[string]any, key string, value string) {
	if value != "" {
		m[key] = value
	}
}

// SetIfNotNil sets a field in the map only if the value is not nil.
// Typed nil pointers are not detected; callers pass them through their own checks.
func SetIfNotNil(m map[string]any, key string, value any) {
	if value != nil {
		m[key] = value
	}
}

// SetIfTrue sets a boolean field in the map only if the value is true.
func SetIfTrue(m map[string]any, key string, value bool) {
	if value {
		m[key] = value
	}
}

// SetIfSliceNotEmpty sets a slice field in the map only if the slice has length > 0.
func SetIfSliceNotEmpty[T any](m map[string]any, key string, value []T) {
	if len(value) > 0 {
		m[key] = value
	}
}

// SetIfMapNotEmpty sets a map field in the map only if the map has length > 0.
func SetIfMapNotEmpty[K comparable, V any](m map[string]any, key string, value map[K]V) {
	if len(value) > 0 {
		m[key] = value
	}
}
