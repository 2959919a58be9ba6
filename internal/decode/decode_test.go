package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	tt := []struct {
		name     string
		in       interface{}
		expected string
	}{
		{name: "string", in: "hello", expected: "hello"},
		{name: "byte_slice", in: []byte("hello"), expected: "hello"},
		{name: "number_list", in: []interface{}{float64(104), float64(105)}, expected: "hi"},
		{name: "mixed_list", in: []interface{}{float64(104), "x"}, expected: ""},
		{name: "nil", in: nil, expected: ""},
		{name: "number", in: float64(42), expected: ""},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Bytes(tc.in))
		})
	}
}

func TestBytes_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "hi", "héllo wörld", "こんにちは", "🎸 live"} {
		encoded := make([]interface{}, 0, len(s))
		for _, b := range []byte(s) {
			encoded = append(encoded, float64(b))
		}

		assert.Equal(t, s, Bytes(encoded))
	}
}

func TestHandleID(t *testing.T) {
	tt := []struct {
		name     string
		in       interface{}
		expected string
	}{
		{name: "bare_id", in: "0xabc", expected: "0xabc"},
		{name: "bare_string_without_prefix", in: "abc", expected: ""},
		{
			name:     "id_field",
			in:       map[string]interface{}{"id": "0xabc"},
			expected: "0xabc",
		},
		{
			name:     "wrapped_fields",
			in:       map[string]interface{}{"fields": map[string]interface{}{"id": "0xabc"}},
			expected: "0xabc",
		},
		{
			name:     "nested_id",
			in:       map[string]interface{}{"id": map[string]interface{}{"id": "0xabc"}},
			expected: "0xabc",
		},
		{name: "nil", in: nil, expected: ""},
		{name: "empty_map", in: map[string]interface{}{}, expected: ""},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HandleID(tc.in))
		})
	}
}

func TestInt64(t *testing.T) {
	assert.EqualValues(t, 5, Int64(float64(5)))
	assert.EqualValues(t, 1700000000000, Int64("1700000000000"))
	assert.EqualValues(t, 7, Int64(7))
	assert.EqualValues(t, 9, Int64(int64(9)))
	assert.EqualValues(t, 0, Int64("nope"))
	assert.EqualValues(t, 0, Int64(nil))
}

func TestUint64(t *testing.T) {
	assert.EqualValues(t, 1000000000, Uint64("1000000000"))
	assert.EqualValues(t, 5, Uint64(float64(5)))
	assert.EqualValues(t, 0, Uint64(float64(-5)))
	assert.EqualValues(t, 0, Uint64("-5"))
	assert.EqualValues(t, 0, Uint64(nil))
}

func TestFields(t *testing.T) {
	inner := map[string]interface{}{"a": "b"}

	assert.Equal(t, inner, Fields(map[string]interface{}{"fields": inner}))
	assert.Equal(t, inner, Fields(inner))
	assert.Nil(t, Fields("not a map"))
	assert.Nil(t, Fields(nil))
}
