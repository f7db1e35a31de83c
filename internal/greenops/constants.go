package greenops

// CO2ToCarbonMassRatio converts a mass of carbon into the mass of CO2 that
// contains it: molecular weight of CO2 (44) over atomic weight of carbon (12).
const CO2ToCarbonMassRatio = 3.67

// percentDivisor turns a percentage column into a fraction.
const percentDivisor = 100.0

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e attributed to one unit of activity:
//
//	equivalency = kg_CO2 / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Display Threshold Constants.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2 for showing equivalencies.
	// Below it the equivalencies become meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is the threshold for "~X.X million" display.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// DisplayPrecision is the number of decimals kept when a sequestration
// amount is shown to the user or written to the usage log.
const DisplayPrecision = 2
