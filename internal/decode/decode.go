// Package decode normalizes loosely-typed values returned by the chain RPC.
//
// Raw objects come back as nested maps whose field encodings vary between
// node versions: strings may arrive as plain strings or as numeric byte
// arrays, and collection handles may be flattened or nested one level under
// a "fields" wrapper. Every helper here is total: malformed input yields a
// zero value, never a panic.
package decode

import (
	"strconv"
	"strings"
)

// Bytes decodes a raw chain field into a UTF-8 string. The field may already
// be a string or may be a byte array serialized as a JSON number list.
// Unrecognized shapes decode to the empty string.
func Bytes(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case []interface{}:
		buf := make([]byte, 0, len(t))
		for _, e := range t {
			n, ok := e.(float64)
			if !ok {
				return ""
			}
			buf = append(buf, byte(int64(n)))
		}
		return string(buf)
	}

	return ""
}

// HandleID extracts the canonical identifier of an indirect table/object
// handle. The handle may be a bare hex-prefixed identifier, or an object
// exposing an id field, possibly under a "fields" wrapper and possibly
// itself nested one more level ({id: {id: "0x..."}}).
// Identifiers are recognized by the "0x" prefix only; no checksum is done.
func HandleID(v interface{}) string {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "0x") {
			return t
		}
	case map[string]interface{}:
		id := t["id"]
		if id == nil {
			if f, ok := t["fields"].(map[string]interface{}); ok {
				id = f["id"]
			}
		}

		switch id := id.(type) {
		case string:
			if strings.HasPrefix(id, "0x") {
				return id
			}
		case map[string]interface{}:
			if s, ok := id["id"].(string); ok {
				return s
			}
		}
	}

	return ""
}

// String returns the value as a string, or empty for non-string shapes.
func String(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Int64 parses a numeric chain field. Large integers (u64 amounts, sequence
// numbers, timestamps) are serialized as decimal strings by newer nodes and
// as JSON numbers by older ones; both are accepted.
func Int64(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case int:
		return int64(t)
	case int64:
		return t
	}

	return 0
}

// Uint64 is Int64 for unsigned amounts (tier prices in mist).
func Uint64(v interface{}) uint64 {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	return 0
}

// Bool returns the value as a bool, false for anything else.
func Bool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// Fields unwraps a nested value struct: {fields: {...}} yields the inner
// map, a bare map is returned as-is.
func Fields(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}

	if f, ok := m["fields"].(map[string]interface{}); ok {
		return f
	}

	return m
}
