package uec

import (
	"encoding/json"
	"math"
	"strings"
)

// Primitive predicates over the JSON value model. Every validator and tree
// tool is built on these; they accept the shapes produced by the JSON driver
// (float64 numbers) as well as Go-native ints from hand-built or YAML-decoded
// documents.

// IsPlainObject reports whether v is a JSON object.
func IsPlainObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsNumber reports whether v is a finite number. Booleans are never numbers.
func IsNumber(v any) bool {
	_, ok := asNumber(v)
	return ok
}

// IsBool reports whether v is a boolean.
func IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// OptionalString accepts absent/null or a string.
func OptionalString(v any) bool { return v == nil || IsString(v) }

// OptionalNumber accepts absent/null or a finite number.
func OptionalNumber(v any) bool { return v == nil || IsNumber(v) }

// OptionalBool accepts absent/null or a boolean.
func OptionalBool(v any) bool { return v == nil || IsBool(v) }

// OptionalObject accepts absent/null or a JSON object.
func OptionalObject(v any) bool { return v == nil || IsPlainObject(v) }

// OptionalStringList accepts absent/null or an array whose elements are all
// strings.
func OptionalStringList(v any) bool {
	if v == nil {
		return true
	}
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range arr {
		if !IsString(item) {
			return false
		}
	}
	return true
}

// IsKnownVersion reports whether v is one of the recognized schema version
// strings.
func IsKnownVersion(v any) bool {
	s, ok := v.(string)
	return ok && KnownVersions[s]
}

// IsAssetLocatorObject reports whether v is an object whose type field names
// one of the recognized locator kinds, regardless of where it sits in the
// tree.
func IsAssetLocatorObject(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	switch obj["type"] {
	case AssetTypeInlineBase64, AssetTypeRemoteURL, AssetTypeAssetRef:
		return true
	}
	return false
}

// IsLikelyAssetString reports whether v is a string that looks like a media
// reference: an http(s) URL or a data URI.
func IsLikelyAssetString(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:")
}

// asNumber widens any numeric representation the value model can carry into a
// float64, rejecting non-finite values.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
