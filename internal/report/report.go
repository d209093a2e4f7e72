package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes the AWEKAS API reports in the top-level error field.
const (
	ErrorQuotaExceeded = "maximum quota exceeded"
	ErrorPlusInactive  = "AWEKAS plus not active"
	ErrorInvalidKey    = "invalid key"
)

// ErrEmptyDocument is returned by [Decode] for an empty or null body.
var ErrEmptyDocument = errors.New("empty report document")

// Report is one current.php response.
//
// When Error is valid the sections are not guaranteed to be present and
// must not be read.
type Report struct {
	Error     Text      `json:"error"`
	FetchDate Number    `json:"fetchdate"`
	Current   *Current  `json:"current"`
	Hour      *Hour     `json:"1h"`
	Day       *Day      `json:"day"`
	Forecast  *Forecast `json:"forecast"`
}

// APIError returns the error code and whether the report carries one.
func (r *Report) APIError() (string, bool) {
	if r == nil || !r.Error.Valid {
		return "", false
	}
	return r.Error.Value, true
}

// Current holds the instant readings of the station.
type Current struct {
	DataTimestamp       Number `json:"datatimestamp"`
	TimeOffset          Number `json:"timeoffset"`
	ConditionTimestamp  Number `json:"conditiontimestamp"`
	Condition           Number `json:"condition"`
	Temperature         Number `json:"temperature"`
	DewPoint            Number `json:"dewpoint"`
	WindChill           Number `json:"windchill"`
	WetBulbTemperature  Number `json:"wetbulbtemperature"`
	Humidity            Number `json:"humidity"`
	AirPressRel         Number `json:"airpress_rel"`
	Tendency            Number `json:"tendency"`
	Precipitation       Number `json:"precipitation"`
	RainRate            Number `json:"rainrate"`
	ItsRaining          Flag   `json:"itsraining"`
	WindSpeed           Number `json:"windspeed"`
	GustSpeed           Number `json:"gustspeed"`
	WindDirection       Number `json:"winddirection"`
	UV                  Number `json:"uv"`
	Solar               Number `json:"solar"`
	Brightness          Number `json:"brightness"`
	SunTime             Number `json:"suntime"`
	SnowHeightTimestamp Number `json:"snowheighttimestamp"`
	SnowHeight          Number `json:"snowheight"`
	Temp1               Number `json:"temp1"`
	Temp2               Number `json:"temp2"`
	Temp3               Number `json:"temp3"`
	Temp4               Number `json:"temp4"`
	Humidity1           Number `json:"humidity1"`
	Humidity2           Number `json:"humidity2"`
	Humidity3           Number `json:"humidity3"`
	Humidity4           Number `json:"humidity4"`
	SoilMoisture1       Number `json:"soilmoisture1"`
	SoilMoisture2       Number `json:"soilmoisture2"`
	SoilMoisture3       Number `json:"soilmoisture3"`
	SoilMoisture4       Number `json:"soilmoisture4"`
	LeafWetness1        Number `json:"leafwetness1"`
	LeafWetness2        Number `json:"leafwetness2"`
	IndoorTemperature   Number `json:"indoortemperature"`
	IndoorHumidity      Number `json:"indoorhumidity"`
	AirQualityPM1       Number `json:"airquality_pm1"`
	AirQualityPM2       Number `json:"airquality_pm2"`
	AirQualityPM10      Number `json:"airquality_pm10"`
}

// Hour holds the rolling one-hour aggregate.
type Hour struct {
	Precipitation Number `json:"precipitation_1h"`
}

// Day holds the daily extrema, each paired with a unix timestamp.
type Day struct {
	TempMin          Number `json:"temp_min"`
	TempMinTS        Number `json:"temp_min_ts"`
	TempMax          Number `json:"temp_max"`
	TempMaxTS        Number `json:"temp_max_ts"`
	DewPointMin      Number `json:"dewpoint_min"`
	DewPointMinTS    Number `json:"dewpoint_min_ts"`
	DewPointMax      Number `json:"dewpoint_max"`
	DewPointMaxTS    Number `json:"dewpoint_max_ts"`
	HumMin           Number `json:"hum_min"`
	HumMinTS         Number `json:"hum_min_ts"`
	HumMax           Number `json:"hum_max"`
	HumMaxTS         Number `json:"hum_max_ts"`
	AirPressRelMin   Number `json:"airp_rel_min"`
	AirPressRelMinTS Number `json:"airp_rel_min_ts"`
	AirPressRelMax   Number `json:"airp_rel_max"`
	AirPressRelMaxTS Number `json:"airp_rel_max_ts"`
	WindSpeedMin     Number `json:"windspeed_min"`
	WindSpeedMinTS   Number `json:"windspeed_min_ts"`
	WindSpeedMax     Number `json:"windspeed_max"`
	WindSpeedMaxTS   Number `json:"windspeed_max_ts"`
	WindDirMax       Number `json:"winddir_max"`
	GustSpeedMin     Number `json:"gustspeed_min"`
	GustSpeedMinTS   Number `json:"gustspeed_min_ts"`
	GustSpeedMax     Number `json:"gustspeed_max"`
	GustSpeedMaxTS   Number `json:"gustspeed_max_ts"`
	GustDirMax       Number `json:"gustdir_max"`
	RainRateMax      Number `json:"rainrate_max"`
	RainRateMaxTS    Number `json:"rainrate_max_ts"`
	Precipitation24h Number `json:"precipitation_24h"`
	BrightnessMax    Number `json:"brightness_max"`
	BrightnessMaxTS  Number `json:"brightness_max_ts"`
	SolarMax         Number `json:"solar_max"`
	SolarMaxTS       Number `json:"solar_max_ts"`
	UVMax            Number `json:"uv_max"`
	UVMaxTS          Number `json:"uv_max_ts"`
	IndoorTempMin    Number `json:"intemp_min"`
	IndoorTempMinTS  Number `json:"intemp_min_ts"`
	IndoorTempMax    Number `json:"intemp_max"`
	IndoorTempMaxTS  Number `json:"intemp_max_ts"`
	IndoorHumMin     Number `json:"inhum_min"`
	IndoorHumMinTS   Number `json:"inhum_min_ts"`
	IndoorHumMax     Number `json:"inhum_max"`
	IndoorHumMaxTS   Number `json:"inhum_max_ts"`
	AirQualityPM1    Number `json:"airquality_pm1"`
	AirQualityPM2    Number `json:"airquality_pm2"`
	AirQualityPM10   Number `json:"airquality_pm10"`
}

// ForecastDays is the number of forecast entries in a report.
const ForecastDays = 6

// Forecast holds today's forecast (Day0) and the next five days.
type Forecast struct {
	Day0 *ForecastDay `json:"day0"`
	Day1 *ForecastDay `json:"day1"`
	Day2 *ForecastDay `json:"day2"`
	Day3 *ForecastDay `json:"day3"`
	Day4 *ForecastDay `json:"day4"`
	Day5 *ForecastDay `json:"day5"`
}

// Day returns forecast entry n (0..5), or nil if it is absent.
func (f *Forecast) Day(n int) *ForecastDay {
	if f == nil {
		return nil
	}
	switch n {
	case 0:
		return f.Day0
	case 1:
		return f.Day1
	case 2:
		return f.Day2
	case 3:
		return f.Day3
	case 4:
		return f.Day4
	case 5:
		return f.Day5
	}
	return nil
}

// ForecastDay is one daily forecast entry.
type ForecastDay struct {
	Code            Number `json:"fc_code"`
	Icon            Number `json:"fc_icon"`
	Text            Text   `json:"fc_text"`
	TempMin         Number `json:"fc_temp_min"`
	TempMax         Number `json:"fc_temp_max"`
	RainSum         Number `json:"fc_rainsum"`
	RainPossibility Number `json:"fc_rain_possibility"`
}

// Decode parses a response body into a [Report].
func Decode(body []byte) (*Report, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral) {
		return nil, ErrEmptyDocument
	}

	var r Report
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
