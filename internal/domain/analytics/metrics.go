package analytics

import "math"

// Ratio computes num/den as a percentage. A zero or negative denominator
// yields 0, never NaN or an error.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}

// Round2 rounds v to exactly two decimal places. Every floating metric
// returned to a caller passes through here.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// Coalesce returns the value of a nullable upstream average, treating a
// missing value as 0.
func Coalesce(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
