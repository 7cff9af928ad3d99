package domain

import "errors"

// Normalize reshapes a raw forecast payload into a WeatherReport for place.
// The daily arrays are zipped positionally over the length of daily.time;
// companion arrays that are shorter yield nil (or "") for the missing days.
// A payload without current_weather, without daily, or with an empty daily
// series fails with ErrInvalidResponse.
func Normalize(place string, raw RawWeatherResponse) (WeatherReport, error) {
	if raw.CurrentWeather == nil {
		return WeatherReport{}, invalid(place, errors.New("missing current_weather block"))
	}
	if raw.Daily == nil {
		return WeatherReport{}, invalid(place, errors.New("missing daily block"))
	}
	if len(raw.Daily.Time) == 0 {
		return WeatherReport{}, invalid(place, errors.New("empty daily series"))
	}

	cw := raw.CurrentWeather
	report := WeatherReport{
		Place:    place,
		Timezone: raw.Timezone,
		Current: CurrentConditions{
			Temperature:     copyFloat(cw.Temperature),
			WindSpeed:       copyFloat(cw.WindSpeed),
			ConditionCode:   copyInt(cw.WeatherCode),
			ObservedAt:      cw.Time,
			HumidityPercent: firstHumidity(raw.Hourly),
		},
		ForecastDays: make([]ForecastDay, 0, len(raw.Daily.Time)),
	}

	d := raw.Daily
	for i, date := range d.Time {
		report.ForecastDays = append(report.ForecastDays, ForecastDay{
			Date:               date,
			MaxTemp:            floatAt(d.TemperatureMax, i),
			MinTemp:            floatAt(d.TemperatureMin, i),
			PrecipitationTotal: floatAt(d.PrecipitationSum, i),
			UVIndexMax:         floatAt(d.UVIndexMax, i),
			Sunrise:            stringAt(d.Sunrise, i),
			Sunset:             stringAt(d.Sunset, i),
		})
	}

	return report, nil
}

// firstHumidity returns the first hourly humidity reading, or nil when the
// series is absent or empty.
func firstHumidity(h *HourlySeries) *float64 {
	if h == nil {
		return nil
	}
	return floatAt(h.RelativeHumidity, 0)
}

func floatAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return copyFloat(values[i])
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func stringAt(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return values[i]
}

func invalid(place string, err error) error {
	return &LookupError{Kind: ErrInvalidResponse, Op: "normalize", Place: place, Err: err}
}
