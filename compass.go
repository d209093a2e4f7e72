package awekas

import "github.com/jpalmerr/awekas/internal/report"

// CompassLabel translates a wind direction in degrees into a 16-point compass
// label in the given language, e.g. 45° is "NE" in English and "NO" in
// German.
//
// It reports false for degrees outside [0, 360] and for NaN. Languages
// without a table fall back to English.
func CompassLabel(degrees float64, lang string) (string, bool) {
	return report.CompassLabel(degrees, lang)
}

// StateDefinition describes one state the connector writes.
type StateDefinition struct {
	Name string
	// Type is "number", "string" or "boolean".
	Type string
	Role string
	Unit string
}

const stateRole = "value"

// StateDefinitions returns every state the connector writes: the "error"
// state followed by the mapped weather fields in write order.
func StateDefinitions() []StateDefinition {
	defs := report.Definitions()
	out := make([]StateDefinition, len(defs))
	for i, d := range defs {
		out[i] = StateDefinition{Name: d.Name, Type: string(d.Kind), Role: stateRole, Unit: d.Unit}
	}
	return out
}
