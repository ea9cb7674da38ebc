package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Placeholder replaces flight-plan text fields whose wire value is not a string.
const Placeholder = "No Value"

// Shape is the JSON kind a single field arrived as.
type Shape int

const (
	ShapeAbsent Shape = iota
	ShapeNull
	ShapeString
	ShapeNumber
	ShapeBool
	ShapeObject
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeString:
		return "string"
	case ShapeNumber:
		return "number"
	case ShapeBool:
		return "bool"
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "absent"
	}
}

// WireValue is a classified JSON field value. Text is set for ShapeString and
// Number for ShapeNumber; the other shapes carry no payload.
type WireValue struct {
	Shape  Shape
	Text   string
	Number float64
}

// Classify inspects one raw JSON value. A nil or empty input means the key was
// missing from its object. Malformed input classifies as absent.
func Classify(raw json.RawMessage) WireValue {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return WireValue{Shape: ShapeAbsent}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return WireValue{Shape: ShapeAbsent}
		}
		return WireValue{Shape: ShapeString, Text: s}
	case 'n':
		return WireValue{Shape: ShapeNull}
	case 't', 'f':
		return WireValue{Shape: ShapeBool}
	case '{':
		return WireValue{Shape: ShapeObject}
	case '[':
		return WireValue{Shape: ShapeArray}
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return WireValue{Shape: ShapeAbsent}
	}
	return WireValue{Shape: ShapeNumber, Number: n}
}

// PlanText applies the string-or-placeholder rule used by flight-plan overview
// and fuel fields.
func PlanText(v WireValue) string {
	if v.Shape == ShapeString {
		return v.Text
	}
	return Placeholder
}

// AirportText passes strings through and reads every other shape as "".
func AirportText(v WireValue) string {
	if v.Shape == ShapeString {
		return v.Text
	}
	return ""
}

// Visibility applies the string-or-numeric-or-absent rule. Numbers are rendered
// in their shortest decimal form, so 6 and 6.0 both become "6".
func Visibility(v WireValue) (string, bool) {
	switch v.Shape {
	case ShapeString:
		return v.Text, true
	case ShapeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Measurement reads a numeric observation. Numbers encoded as strings are
// accepted; anything else, including NaN and infinities, is absent.
func Measurement(v WireValue) (float64, bool) {
	var n float64
	switch v.Shape {
	case ShapeNumber:
		n = v.Number
	case ShapeString:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// OptionalText reads a string field, treating every other shape as absent.
func OptionalText(v WireValue) (string, bool) {
	if v.Shape == ShapeString {
		return v.Text, true
	}
	return "", false
}

// fieldSet is a decoded JSON object whose members are classified lazily.
type fieldSet map[string]json.RawMessage

func (f fieldSet) get(key string) WireValue {
	return Classify(f[key])
}
