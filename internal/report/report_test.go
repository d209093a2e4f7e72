package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return body
}

func TestDecode_Fixture(t *testing.T) {
	r, err := Decode(loadFixture(t, "current.json"))
	require.NoError(t, err)

	_, hasErr := r.APIError()
	assert.False(t, hasErr)

	require.NotNil(t, r.Current)
	assert.Equal(t, Number{Value: 12.4, Valid: true}, r.Current.Temperature)
	assert.Equal(t, Number{Value: 5.5, Valid: true}, r.Current.AirQualityPM2, "numeric string")
	assert.Equal(t, Flag{Value: false, Valid: true}, r.Current.ItsRaining)
	assert.False(t, r.Current.SnowHeight.Valid)

	require.NotNil(t, r.Hour)
	assert.Equal(t, 0.2, r.Hour.Precipitation.Value)

	require.NotNil(t, r.Day)
	assert.Equal(t, 180.0, r.Day.WindDirMax.Value)

	for n := 0; n < ForecastDays; n++ {
		require.NotNil(t, r.Forecast.Day(n), "day%d", n)
	}
	assert.Equal(t, "cloudy 3", r.Forecast.Day(3).Text.Value)
	assert.Nil(t, r.Forecast.Day(ForecastDays))
}

func TestDecode_APIError(t *testing.T) {
	r, err := Decode([]byte(`{"error":"invalid key"}`))
	require.NoError(t, err)

	code, ok := r.APIError()
	assert.True(t, ok)
	assert.Equal(t, ErrorInvalidKey, code)
	assert.Nil(t, r.Current)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"null", "null"},
		{"html", "<html>busy</html>"},
		{"truncated", `{"error":null,"current":{`},
		{"object as error", `{"error":{"code":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode([]byte(tt.body))
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func TestDecode_OffTypeLeaf(t *testing.T) {
	body := `{"error":null,` +
		`"current":{"temperature":"-","itsraining":2,"humidity":81,"winddirection":"270"},` +
		`"day":{"windspeed_max":[3]}}`

	r, err := Decode([]byte(body))
	require.NoError(t, err)

	_, hasErr := r.APIError()
	assert.False(t, hasErr)

	require.NotNil(t, r.Current)
	assert.False(t, r.Current.Temperature.Valid)
	assert.Nil(t, r.Current.Temperature.Any())
	assert.False(t, r.Current.ItsRaining.Valid)
	assert.Equal(t, Number{Value: 81, Valid: true}, r.Current.Humidity)
	assert.Equal(t, Number{Value: 270, Valid: true}, r.Current.WindDirection)

	require.NotNil(t, r.Day)
	assert.False(t, r.Day.WindSpeedMax.Valid)
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Number
	}{
		{raw: `12.5`, want: Number{Value: 12.5, Valid: true}},
		{raw: `-3`, want: Number{Value: -3, Valid: true}},
		{raw: `"7.25"`, want: Number{Value: 7.25, Valid: true}},
		{raw: `null`, want: Number{}},
		{raw: `""`, want: Number{}},
		{raw: `"abc"`, want: Number{}},
		{raw: `"-"`, want: Number{}},
		{raw: `true`, want: Number{}},
		{raw: `{"v":1}`, want: Number{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n Number
			err := n.UnmarshalJSON([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Flag
	}{
		{raw: `true`, want: Flag{Value: true, Valid: true}},
		{raw: `false`, want: Flag{Valid: true}},
		{raw: `1`, want: Flag{Value: true, Valid: true}},
		{raw: `0`, want: Flag{Valid: true}},
		{raw: `"1"`, want: Flag{Value: true, Valid: true}},
		{raw: `null`, want: Flag{}},
		{raw: `2`, want: Flag{}},
		{raw: `"yes"`, want: Flag{}},
		{raw: `[1]`, want: Flag{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f Flag
			err := f.UnmarshalJSON([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestText_Any(t *testing.T) {
	var txt Text
	require.NoError(t, txt.UnmarshalJSON([]byte(`42`)))
	assert.Equal(t, "42", txt.Any())

	require.NoError(t, txt.UnmarshalJSON([]byte(`null`)))
	assert.Nil(t, txt.Any())
}
