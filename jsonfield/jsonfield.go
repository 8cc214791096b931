// Package jsonfield validates, canonicalizes and summarizes the free-form
// JSON fragments stored on daily log rows.
package jsonfield

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedError reports a field whose content is not parseable JSON.
type MalformedError struct {
	Field string
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s has invalid JSON: %v", e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// ShapeError reports a field that parses as JSON but has the wrong top-level
// kind. Expected is "array" or "object".
type ShapeError struct {
	Field    string
	Expected string
}

func (e *ShapeError) Error() string {
	example := "[]"
	if e.Expected == "object" {
		example = "{}"
	}
	return fmt.Sprintf("%s must be a JSON %s (e.g., %s)", e.Field, e.Expected, example)
}

// Normalize validates raw as JSON of the expected top-level shape and returns
// it re-serialized in canonical pretty-printed form. Formatting is normalized;
// key order and element order are preserved. Empty or whitespace-only input
// yields the canonical empty value for the expected shape.
func Normalize(raw string, expectArray bool, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if expectArray {
			return "[]", nil
		}
		return "{}", nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", &MalformedError{Field: field, Err: err}
	}

	// Top-level kind is determined by the first byte of valid JSON.
	if expectArray && raw[0] != '[' {
		return "", &ShapeError{Field: field, Expected: "array"}
	}
	if !expectArray && raw[0] != '{' {
		return "", &ShapeError{Field: field, Expected: "object"}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return "", &MalformedError{Field: field, Err: err}
	}
	return buf.String(), nil
}

// CountArrayItems returns the number of top-level elements when raw is a JSON
// array, and 0 for anything else: empty input, unparseable text, or a
// non-array top-level value. It never fails.
func CountArrayItems(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return 0
	}
	return len(items)
}

// SummarizeWeather renders a short one-line summary of a stored weather
// object, e.g. "18°C, Wind 12 kph, Precip light rain". Any input that is
// empty, unparseable, not an object, or carries none of the recognized keys
// degrades to the placeholder dash.
func SummarizeWeather(raw string) string {
	const placeholder = "—"

	if strings.TrimSpace(raw) == "" {
		return placeholder
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || dec.More() {
		return placeholder
	}

	temp := weatherValue(obj, "tempC")
	wind := weatherValue(obj, "windKph")
	precip := weatherValue(obj, "precip")

	var parts []string
	if temp != "" {
		parts = append(parts, temp+"°C")
	}
	if wind != "" {
		parts = append(parts, "Wind "+wind+" kph")
	}
	if precip != "" {
		parts = append(parts, "Precip "+precip)
	}

	if len(parts) == 0 {
		return placeholder
	}
	return strings.Join(parts, ", ")
}

// weatherValue renders a recognized key's value as display text. Numbers keep
// their raw JSON text, so "18" stays "18" and "12.5" stays "12.5". Unsupported
// kinds and blank strings yield "".
func weatherValue(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case string:
		if strings.TrimSpace(t) == "" {
			return ""
		}
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
