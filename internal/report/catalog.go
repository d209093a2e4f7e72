package report

import (
	"errors"
	"fmt"
)

// ErrMissingSection is returned when a report lacks a section that a catalog
// field reads from.
var ErrMissingSection = errors.New("missing report section")

// ErrorState is the state that receives the API error code on every parsed
// response. It is not part of the mapped catalog.
const ErrorState = "error"

// Kind is the value type of a state.
type Kind string

const (
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
)

// Units attached to state definitions.
const (
	unitCelsius    = "°C"
	unitPercent    = "%"
	unitHectopas   = "hPa"
	unitMillimetre = "mm"
	unitRainRate   = "mm/h"
	unitSpeed      = "km/h"
	unitDegree     = "°"
	unitIndex      = "idx"
	unitIrradiance = "W/m²"
	unitLux        = "Lux"
	unitHours      = "h"
	unitCentimetre = "cm"
	unitCentibar   = "cbar"
	unitParticles  = "μg/m³"
)

// Definition describes a state for registration with the sink.
type Definition struct {
	Name string
	Kind Kind
	Unit string
}

// Field is one mapped state: its definition plus the extractor that reads it
// from a [Report].
type Field struct {
	Definition
	read func(r *Report, language string) (any, error)
}

// Read extracts the field's value. A nil value means the leaf was absent.
func (f Field) Read(r *Report, language string) (any, error) {
	return f.read(r, language)
}

var catalog = buildCatalog()

// Catalog returns the mapped fields in write order.
func Catalog() []Field {
	out := make([]Field, len(catalog))
	copy(out, catalog)
	return out
}

// Definitions returns the definition of every state the connector writes,
// starting with [ErrorState].
func Definitions() []Definition {
	defs := make([]Definition, 0, len(catalog)+1)
	defs = append(defs, Definition{Name: ErrorState, Kind: KindString})
	for _, f := range catalog {
		defs = append(defs, f.Definition)
	}
	return defs
}

func currentOf(r *Report) *Current { return r.Current }
func hourOf(r *Report) *Hour       { return r.Hour }
func dayOf(r *Report) *Day         { return r.Day }

// fromSection builds a field that reads a leaf of an optional section.
func fromSection[S any, V valuer](name string, kind Kind, unit, section string, sec func(*Report) *S, get func(*S) V) Field {
	return Field{
		Definition: Definition{Name: name, Kind: kind, Unit: unit},
		read: func(r *Report, _ string) (any, error) {
			s := sec(r)
			if s == nil {
				return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
			}
			return get(s).Any(), nil
		},
	}
}

// compassFrom builds a derived label field from a degree leaf.
func compassFrom[S any](name, section string, sec func(*Report) *S, get func(*S) Number) Field {
	return Field{
		Definition: Definition{Name: name, Kind: KindString},
		read: func(r *Report, language string) (any, error) {
			s := sec(r)
			if s == nil {
				return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
			}
			deg := get(s)
			if !deg.Valid {
				return nil, nil
			}
			label, ok := CompassLabel(deg.Value, language)
			if !ok {
				return nil, nil
			}
			return label, nil
		},
	}
}

func current(name string, unit string, get func(*Current) Number) Field {
	return fromSection(name, KindNumber, unit, "current", currentOf, get)
}

func day(name string, unit string, get func(*Day) Number) Field {
	return fromSection(name, KindNumber, unit, "day", dayOf, get)
}

func buildCatalog() []Field {
	fields := []Field{
		{
			Definition: Definition{Name: "fetchdate", Kind: KindNumber},
			read: func(r *Report, _ string) (any, error) {
				return r.FetchDate.Any(), nil
			},
		},
		current("datatimestamp", "", func(c *Current) Number { return c.DataTimestamp }),
		current("timeoffset", "", func(c *Current) Number { return c.TimeOffset }),
		current("conditiontimestamp", "", func(c *Current) Number { return c.ConditionTimestamp }),
		current("condition", "", func(c *Current) Number { return c.Condition }),
		current("current_temperature", unitCelsius, func(c *Current) Number { return c.Temperature }),
		current("current_dewpoint", unitCelsius, func(c *Current) Number { return c.DewPoint }),
		current("current_windchill", unitCelsius, func(c *Current) Number { return c.WindChill }),
		current("current_wetbulbtemperature", unitCelsius, func(c *Current) Number { return c.WetBulbTemperature }),
		current("current_humidity", unitPercent, func(c *Current) Number { return c.Humidity }),
		current("current_airpress_rel", unitHectopas, func(c *Current) Number { return c.AirPressRel }),
		current("current_tendency", "", func(c *Current) Number { return c.Tendency }),
		current("current_precipitation", unitMillimetre, func(c *Current) Number { return c.Precipitation }),
		current("current_rainrate", unitRainRate, func(c *Current) Number { return c.RainRate }),
		fromSection("current_itsraining", KindBoolean, "", "current", currentOf, func(c *Current) Flag { return c.ItsRaining }),
		current("current_windspeed", unitSpeed, func(c *Current) Number { return c.WindSpeed }),
		current("current_gustspeed", unitSpeed, func(c *Current) Number { return c.GustSpeed }),
		current("current_winddirection", unitDegree, func(c *Current) Number { return c.WindDirection }),
		compassFrom("current_winddirection_text", "current", currentOf, func(c *Current) Number { return c.WindDirection }),
		current("current_uv", unitIndex, func(c *Current) Number { return c.UV }),
		current("current_solar", unitIrradiance, func(c *Current) Number { return c.Solar }),
		current("current_brightness", unitLux, func(c *Current) Number { return c.Brightness }),
		current("current_suntime", unitHours, func(c *Current) Number { return c.SunTime }),
		current("snowheighttimestamp", "", func(c *Current) Number { return c.SnowHeightTimestamp }),
		current("snowheight", unitCentimetre, func(c *Current) Number { return c.SnowHeight }),
		current("current_temp1", unitCelsius, func(c *Current) Number { return c.Temp1 }),
		current("current_temp2", unitCelsius, func(c *Current) Number { return c.Temp2 }),
		current("current_temp3", unitCelsius, func(c *Current) Number { return c.Temp3 }),
		current("current_temp4", unitCelsius, func(c *Current) Number { return c.Temp4 }),
		current("current_humidity1", unitPercent, func(c *Current) Number { return c.Humidity1 }),
		current("current_humidity2", unitPercent, func(c *Current) Number { return c.Humidity2 }),
		current("current_humidity3", unitPercent, func(c *Current) Number { return c.Humidity3 }),
		current("current_humidity4", unitPercent, func(c *Current) Number { return c.Humidity4 }),
		current("current_soilmoisture1", unitCentibar, func(c *Current) Number { return c.SoilMoisture1 }),
		current("current_soilmoisture2", unitCentibar, func(c *Current) Number { return c.SoilMoisture2 }),
		current("current_soilmoisture3", unitCentibar, func(c *Current) Number { return c.SoilMoisture3 }),
		current("current_soilmoisture4", unitCentibar, func(c *Current) Number { return c.SoilMoisture4 }),
		current("current_leafwetness1", "", func(c *Current) Number { return c.LeafWetness1 }),
		current("current_leafwetness2", "", func(c *Current) Number { return c.LeafWetness2 }),
		current("current_indoortemperature", unitCelsius, func(c *Current) Number { return c.IndoorTemperature }),
		current("current_indoorhumidity", unitPercent, func(c *Current) Number { return c.IndoorHumidity }),
		current("current_airquality_pm1", unitParticles, func(c *Current) Number { return c.AirQualityPM1 }),
		current("current_airquality_pm2", unitParticles, func(c *Current) Number { return c.AirQualityPM2 }),
		current("current_airquality_pm10", unitParticles, func(c *Current) Number { return c.AirQualityPM10 }),

		fromSection("1h_precipitation", KindNumber, unitMillimetre, "1h", hourOf, func(h *Hour) Number { return h.Precipitation }),

		day("day_temp_min", unitCelsius, func(d *Day) Number { return d.TempMin }),
		day("day_temp_min_ts", "", func(d *Day) Number { return d.TempMinTS }),
		day("day_temp_max", unitCelsius, func(d *Day) Number { return d.TempMax }),
		day("day_temp_max_ts", "", func(d *Day) Number { return d.TempMaxTS }),
		day("day_dewpoint_min", unitCelsius, func(d *Day) Number { return d.DewPointMin }),
		day("day_dewpoint_min_ts", "", func(d *Day) Number { return d.DewPointMinTS }),
		day("day_dewpoint_max", unitCelsius, func(d *Day) Number { return d.DewPointMax }),
		day("day_dewpoint_max_ts", "", func(d *Day) Number { return d.DewPointMaxTS }),
		day("day_hum_min", unitPercent, func(d *Day) Number { return d.HumMin }),
		day("day_hum_min_ts", "", func(d *Day) Number { return d.HumMinTS }),
		day("day_hum_max", unitPercent, func(d *Day) Number { return d.HumMax }),
		day("day_hum_max_ts", "", func(d *Day) Number { return d.HumMaxTS }),
		day("day_airp_rel_min", unitHectopas, func(d *Day) Number { return d.AirPressRelMin }),
		day("day_airp_rel_min_ts", "", func(d *Day) Number { return d.AirPressRelMinTS }),
		day("day_airp_rel_max", unitHectopas, func(d *Day) Number { return d.AirPressRelMax }),
		day("day_airp_rel_max_ts", "", func(d *Day) Number { return d.AirPressRelMaxTS }),
		day("day_windspeed_min", unitSpeed, func(d *Day) Number { return d.WindSpeedMin }),
		day("day_windspeed_min_ts", "", func(d *Day) Number { return d.WindSpeedMinTS }),
		day("day_windspeed_max", unitSpeed, func(d *Day) Number { return d.WindSpeedMax }),
		day("day_windspeed_max_ts", "", func(d *Day) Number { return d.WindSpeedMaxTS }),
		day("day_winddir_max", unitDegree, func(d *Day) Number { return d.WindDirMax }),
		compassFrom("day_winddir_max_text", "day", dayOf, func(d *Day) Number { return d.WindDirMax }),
		day("day_gustspeed_min", unitSpeed, func(d *Day) Number { return d.GustSpeedMin }),
		day("day_gustspeed_min_ts", "", func(d *Day) Number { return d.GustSpeedMinTS }),
		day("day_gustspeed_max", unitSpeed, func(d *Day) Number { return d.GustSpeedMax }),
		day("day_gustspeed_max_ts", "", func(d *Day) Number { return d.GustSpeedMaxTS }),
		day("day_gustdir_max", unitDegree, func(d *Day) Number { return d.GustDirMax }),
		compassFrom("day_gustdir_max_text", "day", dayOf, func(d *Day) Number { return d.GustDirMax }),
		day("day_rainrate_max", unitRainRate, func(d *Day) Number { return d.RainRateMax }),
		day("day_rainrate_max_ts", "", func(d *Day) Number { return d.RainRateMaxTS }),
		day("day_precipitation_24h", unitMillimetre, func(d *Day) Number { return d.Precipitation24h }),
		day("day_brightness_max", unitLux, func(d *Day) Number { return d.BrightnessMax }),
		day("day_brightness_max_ts", "", func(d *Day) Number { return d.BrightnessMaxTS }),
		day("day_solar_max", unitIrradiance, func(d *Day) Number { return d.SolarMax }),
		day("day_solar_max_ts", "", func(d *Day) Number { return d.SolarMaxTS }),
		day("day_uv_max", unitIndex, func(d *Day) Number { return d.UVMax }),
		day("day_uv_max_ts", "", func(d *Day) Number { return d.UVMaxTS }),
		day("day_intemp_min", unitCelsius, func(d *Day) Number { return d.IndoorTempMin }),
		day("day_intemp_min_ts", "", func(d *Day) Number { return d.IndoorTempMinTS }),
		day("day_intemp_max", unitCelsius, func(d *Day) Number { return d.IndoorTempMax }),
		day("day_intemp_max_ts", "", func(d *Day) Number { return d.IndoorTempMaxTS }),
		day("day_inhum_min", unitPercent, func(d *Day) Number { return d.IndoorHumMin }),
		day("day_inhum_min_ts", "", func(d *Day) Number { return d.IndoorHumMinTS }),
		day("day_inhum_max", unitPercent, func(d *Day) Number { return d.IndoorHumMax }),
		day("day_inhum_max_ts", "", func(d *Day) Number { return d.IndoorHumMaxTS }),
		day("day_airquality_pm1", unitParticles, func(d *Day) Number { return d.AirQualityPM1 }),
		day("day_airquality_pm2", unitParticles, func(d *Day) Number { return d.AirQualityPM2 }),
		day("day_airquality_pm10", unitParticles, func(d *Day) Number { return d.AirQualityPM10 }),
	}

	for n := 0; n < ForecastDays; n++ {
		fields = append(fields, forecastFields(n)...)
	}
	return fields
}

// forecastFields builds the seven fields of forecast entry n.
func forecastFields(n int) []Field {
	section := fmt.Sprintf("forecast.day%d", n)
	sec := func(r *Report) *ForecastDay { return r.Forecast.Day(n) }
	name := func(suffix string) string { return fmt.Sprintf("forecast_day%d_%s", n, suffix) }

	return []Field{
		fromSection(name("code"), KindNumber, "", section, sec, func(d *ForecastDay) Number { return d.Code }),
		fromSection(name("icon"), KindNumber, "", section, sec, func(d *ForecastDay) Number { return d.Icon }),
		fromSection(name("text"), KindString, "", section, sec, func(d *ForecastDay) Text { return d.Text }),
		fromSection(name("temp_min"), KindNumber, unitCelsius, section, sec, func(d *ForecastDay) Number { return d.TempMin }),
		fromSection(name("temp_max"), KindNumber, unitCelsius, section, sec, func(d *ForecastDay) Number { return d.TempMax }),
		fromSection(name("rainsum"), KindNumber, unitMillimetre, section, sec, func(d *ForecastDay) Number { return d.RainSum }),
		fromSection(name("rain_possibility"), KindNumber, unitPercent, section, sec, func(d *ForecastDay) Number { return d.RainPossibility }),
	}
}
