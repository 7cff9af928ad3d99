// Command lookup runs a single weather lookup against Open-Meteo and prints
// the result, either as the rendered widget slots or as the report JSON.
// It is handy for checking what the widget would show for a place.
//
// Usage:
//
//	go run ./cmd/lookup -city "São Paulo"
//	go run ./cmd/lookup -city Chennai -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/ui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	city := fs.String("city", "", "place name to look up")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request upstream timeout")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	place := strings.TrimSpace(*city)
	if place == "" {
		return fmt.Errorf("-city is required")
	}

	logger := observability.NewLogger(stderr, *logLevel, "text")
	metrics := observability.NewMetricsForTesting()
	client := openmeteo.NewClient(*timeout, metrics, logger)
	svc := lookup.New(client, client, logger, metrics)

	report, err := svc.LookupWeather(context.Background(), place)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.Message(err), err)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printView(stdout, ui.BuildView(report))
}

var slotLabels = []struct {
	slot  ui.Slot
	label string
}{
	{ui.SlotCity, "City"},
	{ui.SlotCurrentTemp, "Temperature"},
	{ui.SlotCondition, "Condition"},
	{ui.SlotWind, "Wind"},
	{ui.SlotHumidity, "Humidity"},
	{ui.SlotPressure, "Pressure"},
	{ui.SlotAirQuality, "Air quality"},
	{ui.SlotCurrentTime, "Local time"},
	{ui.SlotSunrise, "Sunrise"},
	{ui.SlotSunset, "Sunset"},
}

func printView(w io.Writer, v ui.View) error {
	var b strings.Builder
	for _, s := range slotLabels {
		fmt.Fprintf(&b, "%-12s %s\n", s.label+":", v.Slots[s.slot])
	}
	b.WriteString("\nForecast\n")
	for _, e := range v.Forecast {
		fmt.Fprintf(&b, "  %-8s %-12s %s\n", e.Day, e.TempRange, e.UV)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
