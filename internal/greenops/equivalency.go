package greenops

import (
	"fmt"
	"math"
)

// Calculate converts a sequestered amount of CO2 (kg) into EPA-based
// equivalencies: vehicle miles, smartphone charges and home electricity days
// that the trees offset.
//
// Amounts below MinEquivalencyThresholdKg yield an empty output and no error.
// Negative or non-finite amounts return ErrNegativeValue or
// ErrCalculationOverflow with an empty output.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if err := CheckFinite(kg); err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	homeDays := kg / EPAHomeDayFactor

	if math.IsInf(miles, 0) || math.IsInf(phones, 0) || math.IsInf(homeDays, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	results := []EquivalencyResult{
		{
			Type:           EquivalencyMilesDriven,
			Value:          miles,
			FormattedValue: milesFormatted,
			Label:          "miles driven",
		},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: phonesFormatted,
			Label:          "smartphone charges",
		},
		{
			Type:           EquivalencyHomeDays,
			Value:          homeDays,
			FormattedValue: formatEquivalencyValue(homeDays),
			Label:          "days of home electricity",
		},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to offsetting %s miles driven or %s smartphone charges",
			milesFormatted, phonesFormatted),
	}, nil
}

// formatEquivalencyValue marks the value as approximate with a single "~",
// using large number scaling for million/billion values and a
// comma-separated integer otherwise.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return "~" + FormatNumber(int64(math.Round(v)))
}
