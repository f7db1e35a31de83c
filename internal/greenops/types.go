// Package greenops provides the carbon arithmetic behind CarbonRoots.
//
// It derives the annual CO2 a single tree sequesters from its biomass gain
// and carbon content, formats sequestration amounts for display and logging,
// and converts totals into relatable real-world equivalencies using
// EPA-published conversion factors.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven expresses sequestered CO2 as passenger vehicle miles offset.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged expresses sequestered CO2 as smartphone charges offset.
	EquivalencySmartphonesCharged

	// EquivalencyHomeDays expresses sequestered CO2 as days of average US home electricity.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the sequestered amount in kilograms CO2.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results,omitempty"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Equivalent to offsetting ~449,193 miles driven or ~10,492,092 smartphone charges"
	DisplayText string `json:"display_text,omitempty"`

	// IsEmpty is true if no equivalencies were calculated.
	IsEmpty bool `json:"is_empty"`
}
