package greenops

import "math"

// SequestrationPerYearKg returns the kg of CO2 a single tree removes from the
// atmosphere per year, given its annual biomass gain in kg and the share of
// that biomass that is carbon, in percent.
//
//	biomassKg × (carbonPercent / 100) × 3.67
//
// The result is not rounded; see RoundKg and FormatKg for display.
func SequestrationPerYearKg(biomassKg, carbonPercent float64) float64 {
	return biomassKg * (carbonPercent / percentDivisor) * CO2ToCarbonMassRatio
}

// ScenarioTotalKg scales a per-tree annual rate to a planting of trees kept
// for years. It is linear in both counts.
func ScenarioTotalKg(perTreePerYearKg float64, trees, years int) float64 {
	return perTreePerYearKg * float64(trees) * float64(years)
}

// CheckFinite reports ErrCalculationOverflow for NaN or infinite values and
// ErrNegativeValue for negative ones.
func CheckFinite(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ErrCalculationOverflow
	}
	if v < 0 {
		return ErrNegativeValue
	}
	return nil
}
