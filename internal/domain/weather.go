package domain

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawWeatherResponse is the forecast payload as returned by Open-Meteo.
// Blocks are pointers so an absent block can be told apart from an empty one.
type RawWeatherResponse struct {
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	Timezone             string          `json:"timezone"`
	TimezoneAbbreviation string          `json:"timezone_abbreviation"`
	CurrentWeather       *CurrentWeather `json:"current_weather"`
	Daily                *DailySeries    `json:"daily"`
	Hourly               *HourlySeries   `json:"hourly"`
}

// CurrentWeather is the current_weather block.
type CurrentWeather struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windspeed"`
	WeatherCode *int     `json:"weathercode"`
	Time        string   `json:"time"`
}

// DailySeries holds the parallel daily arrays. Index i of every slice is the same day.
type DailySeries struct {
	Time             []string   `json:"time"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	UVIndexMax       []*float64 `json:"uv_index_max"`
	Sunrise          []string   `json:"sunrise"`
	Sunset           []string   `json:"sunset"`
}

// HourlySeries holds the hourly arrays requested alongside the forecast.
type HourlySeries struct {
	Time             []string   `json:"time"`
	RelativeHumidity []*float64 `json:"relative_humidity_2m"`
}

// CurrentConditions is the normalized current-weather section of a report.
// A nil pointer or empty string means the value is unavailable.
type CurrentConditions struct {
	Temperature     *float64 `json:"temperature"`
	WindSpeed       *float64 `json:"wind_speed"`
	ConditionCode   *int     `json:"condition_code"`
	ObservedAt      string   `json:"observed_at,omitempty"`
	HumidityPercent *float64 `json:"humidity_percent"`
	Pressure        *float64 `json:"pressure"` // no upstream source, always nil
}

// ForecastDay is one day of the forecast strip.
type ForecastDay struct {
	Date               string   `json:"date"`
	MinTemp            *float64 `json:"min_temp"`
	MaxTemp            *float64 `json:"max_temp"`
	PrecipitationTotal *float64 `json:"precipitation_total"`
	UVIndexMax         *float64 `json:"uv_index_max"`
	Sunrise            string   `json:"sunrise,omitempty"`
	Sunset             string   `json:"sunset,omitempty"`
}

// WeatherReport is the UI-ready result of one successful lookup.
type WeatherReport struct {
	Place        string            `json:"place"`
	Timezone     string            `json:"timezone,omitempty"`
	Current      CurrentConditions `json:"current"`
	ForecastDays []ForecastDay     `json:"forecast_days"`
}

// Today returns the first forecast day. Reports built by Normalize always have one.
func (r WeatherReport) Today() (ForecastDay, bool) {
	if len(r.ForecastDays) == 0 {
		return ForecastDay{}, false
	}
	return r.ForecastDays[0], true
}
