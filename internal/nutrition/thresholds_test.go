package nutrition

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultThresholdsValid(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Thresholds)
	}{
		{"sodium inverted", func(t *Thresholds) { t.Sodium = Band{High: 100, Moderate: 300} }},
		{"negative fiber", func(t *Thresholds) { t.FiberLow = -1 }},
		{"nan sugar", func(t *Thresholds) { t.Sugar.High = math.NaN() }},
		{"inf combo", func(t *Thresholds) { t.ComboTotalFat = math.Inf(1) }},
		{"negative additives", func(t *Thresholds) { t.Additives = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := DefaultThresholds()
			tt.mutate(&tbl)
			if err := tbl.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultThresholdsIsCopy(t *testing.T) {
	a := DefaultThresholds()
	a.Sugar.High = 99
	if DefaultThresholds().Sugar.High != 10 {
		t.Error("DefaultThresholds returned shared state")
	}
}

func TestFlagJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Flag
	}{
		{`{"refined_carb": true}`, true},
		{`{"refined_carb": false}`, false},
		{`{"refined_carb": 1}`, true},
		{`{"refined_carb": 0}`, false},
		{`{"refined_carb": null}`, false},
		{`{"refined_carb": 1.0}`, true},
		{`{}`, false},
	}
	for _, tt := range tests {
		var p Product
		if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if p.RefinedCarb != tt.want {
			t.Errorf("%s: got %v, want %v", tt.in, p.RefinedCarb, tt.want)
		}
	}

	for _, bad := range []string{`{"refined_carb": "maybe"}`, `{"refined_carb": 2}`, `{"refined_carb": 0.5}`, `{"refined_carb": -1}`} {
		var p Product
		if err := json.Unmarshal([]byte(bad), &p); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestFlagYAML(t *testing.T) {
	tests := []struct {
		in   string
		want Flag
	}{
		{"refined_carb: true\n", true},
		{"refined_carb: false\n", false},
		{"refined_carb: 1\n", true},
		{"refined_carb: 0\n", false},
	}
	for _, tt := range tests {
		var p Product
		if err := yaml.Unmarshal([]byte(tt.in), &p); err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if p.RefinedCarb != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, p.RefinedCarb, tt.want)
		}
	}

	for _, bad := range []string{"refined_carb: [1]\n", "refined_carb: 2\n", "refined_carb: 0.5\n"} {
		var p Product
		if err := yaml.Unmarshal([]byte(bad), &p); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestEnumsValid(t *testing.T) {
	for _, l := range []TrafficLight{LightRed, LightYellow, LightGreen} {
		if !l.Valid() {
			t.Errorf("expected %q to be valid", l)
		}
	}
	if TrafficLight("blue").Valid() {
		t.Error("expected blue to be invalid")
	}
	if LightRed.Level() <= LightYellow.Level() || LightYellow.Level() <= LightGreen.Level() {
		t.Error("levels should order red > yellow > green")
	}
	for _, r := range []Recommendation{RecommendPositive, RecommendModeration, RecommendLimit} {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if FindingCode("NOPE").Valid() {
		t.Error("expected NOPE to be invalid")
	}
	if !CodeSaltyRefinedCarb.Valid() {
		t.Error("expected SALTY_REFINED_CARB to be valid")
	}
}
