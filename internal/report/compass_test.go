package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompassLabel(t *testing.T) {
	tests := []struct {
		name     string
		degrees  float64
		language string
		want     string
	}{
		{"north at zero", 0, "en", "N"},
		{"east", 90, "en", "E"},
		{"south", 180, "en", "S"},
		{"west", 270, "en", "W"},
		{"wraps to north", 359, "en", "N"},
		{"full circle", 360, "en", "N"},
		{"last degree before first boundary", 11.24, "en", "N"},
		{"first boundary", 11.25, "en", "NNE"},
		{"north east english", 45, "en", "NE"},
		{"north east german", 45, "de", "NO"},
		{"east german", 90, "de", "O"},
		{"south west french", 225, "fr", "SO"},
		{"south west italian", 225, "it", "SO"},
		{"west spanish", 270, "es", "O"},
		{"south dutch", 180, "nl", "Z"},
		{"east south east dutch", 112.5, "nl", "OZO"},
		{"upper case language", 45, "DE", "NO"},
		{"unknown language falls back to english", 45, "pl", "NE"},
		{"empty language falls back to english", 45, "", "NE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CompassLabel(tt.degrees, tt.language)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompassLabel_InvalidDegrees(t *testing.T) {
	for _, deg := range []float64{-0.1, -90, 360.01, 720, math.NaN(), math.Inf(1), math.Inf(-1)} {
		label, ok := CompassLabel(deg, "en")
		assert.False(t, ok, "degrees %v", deg)
		assert.Empty(t, label)
	}
}

func TestCompassLabel_NeverPlaceholder(t *testing.T) {
	for _, lang := range CompassLanguages() {
		table := compassTables[lang]
		labels := make(map[string]bool, compassSectors)
		for _, l := range table[1:] {
			labels[l] = true
		}

		for tenth := 0; tenth <= 3600; tenth++ {
			deg := float64(tenth) / 10
			got, ok := CompassLabel(deg, lang)
			if !assert.True(t, ok) {
				return
			}
			assert.NotEqual(t, "-", got, "%s at %v", lang, deg)
			assert.True(t, labels[got], "%s at %v produced %q", lang, deg, got)

			again, _ := CompassLabel(deg, lang)
			assert.Equal(t, got, again)
		}
	}
}

func TestCompassTables_Complete(t *testing.T) {
	assert.Len(t, compassTables, len(CompassLanguages()))
	for _, lang := range CompassLanguages() {
		table, ok := compassTables[lang]
		assert.True(t, ok, lang)
		assert.Equal(t, "-", table[0])
		assert.Equal(t, "N", table[1], lang)
	}
}
