package weather

// The station reports imperial units; trend history is kept metric.

// FahrenheitToCelsius converts a temperature reading to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// InHgToHectopascals converts a pressure reading from inches of mercury
// to hectopascals.
func InHgToHectopascals(inHg float64) float64 {
	return inHg * 33.8639
}
