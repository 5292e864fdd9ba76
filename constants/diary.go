package constants

import "strings"

// DefaultWeather is the weather condition assumed when a report does not
// state one.
const DefaultWeather = "Sunny/Dry"

// WeatherConditions lists the conditions the diary form recognises.
var WeatherConditions = []string{"Sunny/Dry", "Cloudy", "Rainy", "Stormy"}

// CanonicalWeather maps a free-text weather description onto one of the
// recognised conditions. Unrecognised input is returned trimmed, with ok
// reporting whether a canonical match was found.
func CanonicalWeather(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return DefaultWeather, false
	}

	synonyms := map[string]string{
		"sunny":    "Sunny/Dry",
		"dry":      "Sunny/Dry",
		"clear":    "Sunny/Dry",
		"overcast": "Cloudy",
		"rain":     "Rainy",
		"wet":      "Rainy",
		"showers":  "Rainy",
		"storm":    "Stormy",
		"windy":    "Stormy",
	}
	if w, ok := synonyms[normalized]; ok {
		return w, true
	}
	for _, w := range WeatherConditions {
		if normalized == strings.ToLower(w) {
			return w, true
		}
	}
	return strings.TrimSpace(input), false
}
