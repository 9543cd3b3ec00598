package relay

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{name: "nil", input: nil, expected: 0},
		{name: "plain string", input: "42", expected: 42},
		{name: "negative string", input: "-17", expected: -17},
		{name: "leading whitespace", input: "  7", expected: 7},
		{name: "numeric prefix", input: "12abc", expected: 12},
		{name: "not numeric", input: "abc", expected: 0},
		{name: "empty string", input: "", expected: 0},
		{name: "decimal string truncates", input: "1.9", expected: 1},
		{name: "negative decimal truncates toward zero", input: "-1.9", expected: -1},
		{name: "exponent", input: "1e3", expected: 1000},
		{name: "leading dot", input: ".5", expected: 0},
		{name: "trailing dot", input: "5.", expected: 5},
		{name: "overflow clamps", input: "99999999999999999999", expected: math.MaxInt},
		{name: "float truncates", input: 3.99, expected: 3},
		{name: "NaN", input: math.NaN(), expected: 0},
		{name: "true", input: true, expected: 1},
		{name: "false", input: false, expected: 0},
		{name: "int64", input: int64(9), expected: 9},
		{name: "uint8", input: uint8(200), expected: 200},
		{name: "json number", input: json.Number("15"), expected: 15},
		{name: "json decimal number", input: json.Number("2.7"), expected: 2},
		{name: "json exponent number", input: json.Number("1e2"), expected: 100},
		{name: "empty list", input: []any{}, expected: 0},
		{name: "non-empty list", input: []any{"a"}, expected: 1},
		{name: "non-empty map", input: map[string]any{"a": 1}, expected: 1},
		{name: "bytes", input: []byte("8"), expected: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceInt(tt.input))
		})
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string verbatim", input: " hello ", expected: " hello "},
		{name: "true", input: true, expected: "1"},
		{name: "false", input: false, expected: ""},
		{name: "int", input: 12, expected: "12"},
		{name: "float", input: 1.5, expected: "1.5"},
		{name: "whole float", input: 2.0, expected: "2"},
		{name: "json number", input: json.Number("3.25"), expected: "3.25"},
		{name: "json number trailing zero", input: json.Number("1.50"), expected: "1.5"},
		{name: "json exponent number", input: json.Number("1e2"), expected: "100"},
		{name: "json negative zero", input: json.Number("-0"), expected: "0"},
		{name: "list", input: []any{1, 2}, expected: "Array"},
		{name: "map", input: map[string]any{}, expected: "Array"},
		{name: "bytes", input: []byte("raw"), expected: "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceString(tt.input))
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected bool
	}{
		{name: "nil", input: nil, expected: false},
		{name: "empty string", input: "", expected: false},
		{name: "zero string", input: "0", expected: false},
		{name: "false string", input: "false", expected: false},
		{name: "uppercase FALSE is truthy", input: "FALSE", expected: true},
		{name: "space is truthy", input: " ", expected: true},
		{name: "no is truthy", input: "no", expected: true},
		{name: "one", input: "1", expected: true},
		{name: "int zero", input: 0, expected: false},
		{name: "int non-zero", input: -3, expected: true},
		{name: "float zero", input: 0.0, expected: false},
		{name: "float non-zero", input: 0.1, expected: true},
		{name: "json zero", input: json.Number("0"), expected: false},
		{name: "json decimal zero", input: json.Number("0.0"), expected: false},
		{name: "json negative zero", input: json.Number("-0"), expected: false},
		{name: "json non-zero", input: json.Number("0.5"), expected: true},
		{name: "bool", input: true, expected: true},
		{name: "empty list", input: []any{}, expected: false},
		{name: "non-empty list", input: []string{"x"}, expected: true},
		{name: "empty map", input: map[string]any{}, expected: false},
		{name: "struct", input: struct{}{}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceBool(tt.input))
		})
	}
}

func TestCoerce_DecodedJSONNumbers(t *testing.T) {
	values, err := decodeJSONObject([]byte(`{"flag":0.0,"neg":-0,"s":1.50,"e":1e2,"n":7}`))
	require.NoError(t, err)

	assert.False(t, CoerceBool(values["flag"]))
	assert.False(t, CoerceBool(values["neg"]))
	assert.True(t, CoerceBool(values["n"]))
	assert.Equal(t, "1.5", CoerceString(values["s"]))
	assert.Equal(t, "100", CoerceString(values["e"]))
	assert.Equal(t, 100, CoerceInt(values["e"]))
	assert.Equal(t, 1, CoerceInt(values["s"]))

	for key, raw := range values {
		native := map[string]any{"flag": 0.0, "neg": 0.0, "s": 1.5, "e": 100.0, "n": 7.0}[key]
		assert.Equal(t, CoerceBool(native), CoerceBool(raw), key)
		assert.Equal(t, CoerceString(native), CoerceString(raw), key)
	}
}

func TestCoerceList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []any
	}{
		{name: "nil", input: nil, expected: []any{}},
		{name: "list passes through", input: []any{1, "a"}, expected: []any{1, "a"}},
		{name: "string slice", input: []string{"a", "b"}, expected: []any{"a", "b"}},
		{name: "scalar wraps", input: "one", expected: []any{"one"}},
		{name: "int wraps", input: 5, expected: []any{5}},
		{name: "map values by key", input: map[string]any{"b": 2, "a": 1}, expected: []any{1, 2}},
		{name: "string map values by key", input: map[string]string{"y": "2", "x": "1"}, expected: []any{"1", "2"}},
		{name: "bytes are a scalar", input: []byte("ab"), expected: []any{"ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceList(tt.input))
		})
	}
}

func TestCoerce(t *testing.T) {
	v, err := Coerce("7", IntType)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Coerce(7, StringType)
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = Coerce("7", LiteralType("float"))
	assert.Error(t, err)
}

func TestParseLiteralType(t *testing.T) {
	for _, s := range []string{"int", "string", "bool", "list"} {
		lt, err := ParseLiteralType(s)
		require.NoError(t, err)
		assert.Equal(t, LiteralType(s), lt)
	}

	lt, err := ParseLiteralType("array")
	require.NoError(t, err)
	assert.Equal(t, ListType, lt)

	_, err = ParseLiteralType("GirlService")
	assert.Error(t, err)
	assert.False(t, IsLiteralType("GirlService"))
	assert.True(t, IsLiteralType("integer"))
}
