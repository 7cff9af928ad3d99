package domain

// conditionLabels maps WMO weather interpretation codes to display labels.
var conditionLabels = map[int]string{
	0:  "Clear",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// UnknownCondition is the label for codes outside the table.
const UnknownCondition = "Unknown"

// ConditionLabel returns the human label for a weather code, or "Unknown".
func ConditionLabel(code int) string {
	if label, ok := conditionLabels[code]; ok {
		return label
	}
	return UnknownCondition
}

// ConditionLabelFor is ConditionLabel for an optional code.
func ConditionLabelFor(code *int) string {
	if code == nil {
		return UnknownCondition
	}
	return ConditionLabel(*code)
}
