package jsonfield

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyInput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectArray bool
		expected    string
	}{
		{
			name:        "empty array-expected",
			input:       "",
			expectArray: true,
			expected:    "[]",
		},
		{
			name:        "empty object-expected",
			input:       "",
			expectArray: false,
			expected:    "{}",
		},
		{
			name:        "whitespace array-expected",
			input:       "   \n\t ",
			expectArray: true,
			expected:    "[]",
		},
		{
			name:        "whitespace object-expected",
			input:       "  ",
			expectArray: false,
			expected:    "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.input, tt.expectArray, "field")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectArray bool
	}{
		{
			name:        "compact array",
			input:       `[{"time":"08:00","title":"pour","details":"slab B"},{"time":"14:00","title":"inspection"}]`,
			expectArray: true,
		},
		{
			name:        "messy whitespace array",
			input:       "[ 1,\n\t2 ,  3 ]",
			expectArray: true,
		},
		{
			name:        "nested object",
			input:       `{"tempC":18,"windKph":12,"detail":{"precip":"light rain","gusts":[20,25]}}`,
			expectArray: false,
		},
		{
			name:        "surrounding whitespace",
			input:       "  {\"a\": 1}  ",
			expectArray: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.input, tt.expectArray, "field")
			require.NoError(t, err)

			var want, got any
			require.NoError(t, json.Unmarshal([]byte(tt.input), &want))
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, want, got, "normalized output must parse to the same value")
		})
	}
}

func TestNormalize_PreservesKeyOrder(t *testing.T) {
	out, err := Normalize(`{"zebra":1,"alpha":2}`, false, "weather")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zebra\": 1,\n  \"alpha\": 2\n}", out)
}

func TestNormalize_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectArray bool
		wantMsg     string
	}{
		{
			name:        "object where array expected",
			input:       `{"a":1}`,
			expectArray: true,
			wantMsg:     "events must be a JSON array (e.g., [])",
		},
		{
			name:        "array where object expected",
			input:       `[1,2]`,
			expectArray: false,
			wantMsg:     "weather must be a JSON object (e.g., {})",
		},
		{
			name:        "scalar where array expected",
			input:       `5`,
			expectArray: true,
			wantMsg:     "events must be a JSON array (e.g., [])",
		},
		{
			name:        "string where object expected",
			input:       `"sunny"`,
			expectArray: false,
			wantMsg:     "weather must be a JSON object (e.g., {})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := "events"
			if !tt.expectArray {
				field = "weather"
			}
			_, err := Normalize(tt.input, tt.expectArray, field)
			require.Error(t, err)

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, field, shapeErr.Field)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestNormalize_MalformedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated object", input: `{bad`},
		{name: "plain text", input: `not json at all`},
		{name: "trailing garbage", input: `[] extra`},
		{name: "single quote strings", input: `['a']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input, true, "issues")
			require.Error(t, err)

			var malformedErr *MalformedError
			require.True(t, errors.As(err, &malformedErr))
			assert.Equal(t, "issues", malformedErr.Field)
			assert.Contains(t, err.Error(), "issues has invalid JSON:")
		})
	}
}

func TestCountArrayItems(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty string", input: "", expected: 0},
		{name: "whitespace", input: "  ", expected: 0},
		{name: "object", input: "{}", expected: 0},
		{name: "not json", input: "not json", expected: 0},
		{name: "null", input: "null", expected: 0},
		{name: "empty array", input: "[]", expected: 0},
		{name: "three numbers", input: "[1,2,3]", expected: 3},
		{name: "mixed elements", input: `[{"a":1}, "b", [3]]`, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountArrayItems(tt.input))
		})
	}
}

func TestSummarizeWeather(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "temp and wind",
			input:    `{"tempC":18,"windKph":12}`,
			expected: "18°C, Wind 12 kph",
		},
		{
			name:     "all keys",
			input:    `{"tempC":20.5,"windKph":8,"precip":"light rain"}`,
			expected: "20.5°C, Wind 8 kph, Precip light rain",
		},
		{
			name:     "precip only",
			input:    `{"precip":"snow"}`,
			expected: "Precip snow",
		},
		{
			name:     "string temperature",
			input:    `{"tempC":"18"}`,
			expected: "18°C",
		},
		{
			name:     "boolean value",
			input:    `{"precip":true}`,
			expected: "Precip true",
		},
		{
			name:     "blank string skipped",
			input:    `{"tempC":"  ","windKph":12}`,
			expected: "Wind 12 kph",
		},
		{
			name:     "unrecognized kinds skipped",
			input:    `{"tempC":{"value":18},"windKph":null}`,
			expected: "—",
		},
		{
			name:     "empty object",
			input:    `{}`,
			expected: "—",
		},
		{
			name:     "no recognized keys",
			input:    `{"humidity":80}`,
			expected: "—",
		},
		{
			name:     "garbage",
			input:    "garbage",
			expected: "—",
		},
		{
			name:     "array",
			input:    "[1,2]",
			expected: "—",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "—",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SummarizeWeather(tt.input))
		})
	}
}
