package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw   string
		shape Shape
	}{
		{"", ShapeAbsent},
		{"null", ShapeNull},
		{`"10+"`, ShapeString},
		{"6", ShapeNumber},
		{"-0.25", ShapeNumber},
		{"1e3", ShapeNumber},
		{"true", ShapeBool},
		{"{}", ShapeObject},
		{"[1,2]", ShapeArray},
		{"  {}  ", ShapeObject},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String()+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.shape, Classify(json.RawMessage(tt.raw)).Shape)
		})
	}
}

func TestPlanText(t *testing.T) {
	assert.Equal(t, "84", PlanText(Classify(json.RawMessage(`"84"`))))
	assert.Equal(t, "", PlanText(Classify(json.RawMessage(`""`))))
	assert.Equal(t, Placeholder, PlanText(Classify(json.RawMessage(`{}`))))
	assert.Equal(t, Placeholder, PlanText(Classify(json.RawMessage(`84`))))
	assert.Equal(t, Placeholder, PlanText(Classify(json.RawMessage(`null`))))
	assert.Equal(t, Placeholder, PlanText(Classify(nil)))
}

func TestAirportText(t *testing.T) {
	assert.Equal(t, "KJFK", AirportText(Classify(json.RawMessage(`"KJFK"`))))
	assert.Equal(t, "", AirportText(Classify(json.RawMessage(`{}`))))
	assert.Equal(t, "", AirportText(Classify(json.RawMessage(`18000`))))
	assert.Equal(t, "", AirportText(Classify(nil)))
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"string passes through", `"10+"`, "10+", true},
		{"fraction string", `"1/2"`, "1/2", true},
		{"integer", `6`, "6", true},
		{"integer written as float", `6.0`, "6", true},
		{"decimal", `0.25`, "0.25", true},
		{"null", `null`, "", false},
		{"missing", ``, "", false},
		{"object", `{}`, "", false},
		{"bool", `false`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Visibility(Classify(json.RawMessage(tt.raw)))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMeasurement(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"number", `15.5`, 15.5, true},
		{"negative", `-3`, -3, true},
		{"numeric string", `" 29.92 "`, 29.92, true},
		{"variable wind", `"VRB"`, 0, false},
		{"NaN string", `"NaN"`, 0, false},
		{"null", `null`, 0, false},
		{"missing", ``, 0, false},
		{"object", `{}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Measurement(Classify(json.RawMessage(tt.raw)))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
