// Package domain models a single weather lookup: a place name resolved to
// coordinates, the raw Open-Meteo forecast payload for those coordinates, and
// the flat WeatherReport rendered by the UI.
//
// # Data Source
//
// Coordinates come from the Open-Meteo geocoding API and weather from the
// Open-Meteo forecast API (https://open-meteo.com/en/docs). Both are free,
// keyless, and return JSON.
//
// # Open-Meteo Conventions
//
// Time format:
//
//	ISO 8601 local time without an offset, e.g. "2024-06-01T14:00".
//	Requests use timezone=auto, so every timestamp (current observation,
//	daily dates, sunrise, sunset) is wall-clock time at the queried location.
//	Daily "time" entries are plain dates: "2024-06-01".
//
// Daily series:
//
//	Parallel arrays keyed by field name. Index i of every array describes the
//	same day; index 0 is today at the location. Numeric entries may be null
//	when the model has no value for that day.
//
// Hourly humidity:
//
//	The hourly relative_humidity_2m series starts at local midnight. The
//	report takes its first element, i.e. the reading nearest the start of the
//	forecast, not the one matching the current hour. This is a known
//	approximation and is kept as-is.
//
// Weather codes:
//
//	WMO weather interpretation codes (0 clear sky through 99 thunderstorm with
//	heavy hail). Labels come from a fixed table; anything outside it is
//	reported as "Unknown". See [ConditionLabel].
//
// # Missing Values
//
// Every optional reading is a pointer. nil means the upstream did not supply
// the field, which keeps "missing" distinct from a real zero reading.
// Pressure has no upstream source and is always nil.
package domain
