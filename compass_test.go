package awekas

import (
	"math"
	"testing"
)

func TestCompassLabel(t *testing.T) {
	tests := []struct {
		deg    float64
		lang   string
		want   string
		wantOK bool
	}{
		{0, "en", "N", true},
		{11.24, "en", "N", true},
		{11.25, "en", "NNE", true},
		{22.5, "en", "NNE", true},
		{45, "en", "NE", true},
		{45, "de", "NO", true},
		{90, "fr", "E", true},
		{180, "it", "S", true},
		{270, "de", "W", true},
		{348.75, "en", "N", true},
		{360, "en", "N", true},
		{45, "xx", "NE", true},
		{-1, "en", "", false},
		{360.5, "en", "", false},
		{math.NaN(), "en", "", false},
	}

	for _, tt := range tests {
		got, ok := CompassLabel(tt.deg, tt.lang)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CompassLabel(%v, %q) = (%q, %v), want (%q, %v)", tt.deg, tt.lang, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStateDefinitions(t *testing.T) {
	defs := StateDefinitions()

	if len(defs) == 0 {
		t.Fatal("StateDefinitions() is empty")
	}
	if defs[0].Name != "error" || defs[0].Type != "string" {
		t.Errorf("first definition = %+v, want the string error state", defs[0])
	}

	seen := make(map[string]bool, len(defs))
	byName := make(map[string]StateDefinition, len(defs))
	for _, d := range defs {
		if seen[d.Name] {
			t.Errorf("duplicate state %q", d.Name)
		}
		seen[d.Name] = true
		byName[d.Name] = d

		if d.Role != "value" {
			t.Errorf("%s: Role = %q, want value", d.Name, d.Role)
		}
		switch d.Type {
		case "number", "string", "boolean":
		default:
			t.Errorf("%s: Type = %q", d.Name, d.Type)
		}
	}

	if d := byName["current_temperature"]; d.Type != "number" || d.Unit != "°C" {
		t.Errorf("current_temperature = %+v", d)
	}
	if d := byName["current_winddirection_text"]; d.Type != "string" {
		t.Errorf("current_winddirection_text = %+v", d)
	}
}
