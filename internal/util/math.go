package util

import (
	"math"
)

// Coerce returns the given value, limited to the range [min, max]
func Coerce(value float64, min float64, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// CelsiusToFahrenheit converts a celsius reading to whole-degree
// fahrenheit, rounding half away from zero.
func CelsiusToFahrenheit(celsius float64) int {
	return int(math.Round((celsius * 9.0 / 5.0) + 32.0))
}
