package report

import (
	"math"
	"strings"
)

// compassSectors is the number of 22.5° sectors on the compass rose.
const compassSectors = 16

// fallbackLanguage is used for languages without a compass table.
const fallbackLanguage = "en"

// compassTables maps a language to its labels. Index 0 is a placeholder,
// 1..16 run clockwise from north.
var compassTables = map[string][compassSectors + 1]string{
	"de": {"-", "N", "NNO", "NO", "ONO", "O", "OSO", "SO", "SSO", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"},
	"en": {"-", "N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"},
	"es": {"-", "N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSO", "SO", "OSO", "O", "ONO", "NO", "NNO"},
	"it": {"-", "N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSO", "SO", "OSO", "O", "ONO", "NO", "NNO"},
	"fr": {"-", "N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSO", "SO", "OSO", "O", "ONO", "NO", "NNO"},
	"nl": {"-", "N", "NNO", "NO", "ONO", "O", "OZO", "ZO", "ZZO", "Z", "ZZW", "ZW", "WZW", "W", "WNW", "NW", "NNW"},
}

// CompassLabel translates a wind direction in degrees into a compass label
// such as "NNE" in the given language.
//
// Degrees must lie in [0, 360]; anything else (including NaN) reports false.
// Sector boundaries sit halfway between compass points, so 0 ≤ d < 11.25 and
// 348.75 ≤ d ≤ 360 both map to north. Languages without a table use English.
func CompassLabel(degrees float64, language string) (string, bool) {
	if math.IsNaN(degrees) || degrees < 0 || degrees > 360 {
		return "", false
	}

	index := 2 + int(math.Floor((degrees-11.25)/22.5))
	if index > compassSectors {
		index = 1
	}

	table, ok := compassTables[strings.ToLower(language)]
	if !ok {
		table = compassTables[fallbackLanguage]
	}
	return table[index], true
}

// CompassLanguages returns the languages that have their own compass table.
func CompassLanguages() []string {
	return []string{"de", "en", "es", "fr", "it", "nl"}
}
