// Package ui holds the display surfaces a weather lookup writes into: named
// text slots for current conditions, a forecast strip, and an error banner.
// Surfaces are always passed in by the caller so tests can substitute doubles.
package ui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// Slot names a text slot on the display.
type Slot string

const (
	SlotCity        Slot = "city"
	SlotCurrentTemp Slot = "current-temp"
	SlotWind        Slot = "wind"
	SlotHumidity    Slot = "humidity"
	SlotPressure    Slot = "pressure"
	SlotAirQuality  Slot = "air-quality"
	SlotCondition   Slot = "condition"
	SlotCurrentTime Slot = "current-time"
	SlotSunrise     Slot = "sunrise"
	SlotSunset      Slot = "sunset"
)

// Unavailable is shown in place of any missing reading.
const Unavailable = "N/A"

// ForecastStripLength is the number of days shown in the forecast strip.
const ForecastStripLength = 7

const (
	localTimeLayout = "2006-01-02T15:04"
	dateLayout      = "2006-01-02"
)

// ForecastEntry is one formatted cell of the forecast strip.
type ForecastEntry struct {
	Day       string // "Sat 01"
	TempRange string // "27° / 35°"
	UV        string // "UV: 9.1"
}

// View is the complete set of values for one rendered report.
type View struct {
	Slots    map[Slot]string
	Forecast []ForecastEntry
}

// Surface receives a fully built View. Implementations replace their whole
// display at once, so a reader never sees a half-rendered report.
type Surface interface {
	Display(v View)
}

// Render formats report and hands it to s.
func Render(s Surface, report domain.WeatherReport) {
	s.Display(BuildView(report))
}

// BuildView formats every slot of report for display.
func BuildView(report domain.WeatherReport) View {
	cur := report.Current
	v := View{
		Slots: map[Slot]string{
			SlotCity:        report.Place,
			SlotCurrentTemp: withUnit(cur.Temperature, "°C"),
			SlotWind:        withUnit(cur.WindSpeed, " kmph"),
			SlotHumidity:    withUnit(cur.HumidityPercent, "%"),
			SlotPressure:    withUnit(cur.Pressure, " hPa"),
			SlotAirQuality:  Unavailable,
			SlotCondition:   domain.ConditionLabelFor(cur.ConditionCode),
			SlotCurrentTime: clockTime(cur.ObservedAt),
			SlotSunrise:     Unavailable,
			SlotSunset:      Unavailable,
		},
	}

	if today, ok := report.Today(); ok {
		v.Slots[SlotSunrise] = clockTime(today.Sunrise)
		v.Slots[SlotSunset] = clockTime(today.Sunset)
	}

	days := report.ForecastDays
	if len(days) > ForecastStripLength {
		days = days[:ForecastStripLength]
	}
	v.Forecast = make([]ForecastEntry, 0, len(days))
	for _, d := range days {
		v.Forecast = append(v.Forecast, ForecastEntry{
			Day:       weekday(d.Date),
			TempRange: fmt.Sprintf("%s / %s", roundedDegrees(d.MinTemp), roundedDegrees(d.MaxTemp)),
			UV:        "UV: " + oneDecimal(d.UVIndexMax),
		})
	}
	return v
}

func withUnit(v *float64, unit string) string {
	if v == nil {
		return Unavailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func roundedDegrees(v *float64) string {
	if v == nil {
		return Unavailable
	}
	return fmt.Sprintf("%.0f°", math.Round(*v))
}

func oneDecimal(v *float64) string {
	if v == nil {
		return Unavailable
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// clockTime turns an Open-Meteo local timestamp into "15:04".
func clockTime(s string) string {
	t, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return Unavailable
	}
	return t.Format("15:04")
}

// weekday turns "2024-06-01" into "Sat 01". Unparseable dates pass through.
func weekday(s string) string {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Mon 02")
}
