// Package species loads the tree species dataset that every CarbonRoots
// calculation is based on.
//
// The dataset is a table with one row per species. Each row carries the
// species' annual biomass gain and carbon content, from which the annual
// CO2 a single tree sequesters is derived on demand.
package species

import (
	"github.com/carbonroots/carbonroots/internal/greenops"
)

// Column headers of the species dataset.
const (
	ColumnSpecies        = "Tree_Species"
	ColumnBiomassGain    = "Annual_Biomass_Gain_kg"
	ColumnCarbonContent  = "Carbon_Content_Percent"
	ColumnSurvivalRate   = "Survival_Rate_Percent"
	ColumnNativeRegion   = "Native_Region"
	ColumnCO2Sequestered = "CO2_Sequestered_kg_per_year"
)

// RequiredColumns lists the headers a dataset must provide, in canonical order.
//
//nolint:gochecknoglobals // Read-only column list.
var RequiredColumns = []string{
	ColumnSpecies,
	ColumnBiomassGain,
	ColumnCarbonContent,
	ColumnSurvivalRate,
	ColumnNativeRegion,
}

// Record is one species row.
type Record struct {
	Name                 string  `json:"tree_species"`
	AnnualBiomassGainKg  float64 `json:"annual_biomass_gain_kg"`
	CarbonContentPercent float64 `json:"carbon_content_percent"`
	SurvivalRatePercent  float64 `json:"survival_rate_percent"`
	NativeRegion         string  `json:"native_region"`
}

// CO2PerYearKg returns the kg of CO2 one tree of this species sequesters per
// year. It is always derived from the biomass and carbon columns.
func (r Record) CO2PerYearKg() float64 {
	return greenops.SequestrationPerYearKg(r.AnnualBiomassGainKg, r.CarbonContentPercent)
}

// DerivedRecord is a Record with its computed sequestration column attached.
type DerivedRecord struct {
	Record

	CO2PerYearKg float64 `json:"co2_sequestered_kg_per_year"`
}

// Table is the loaded dataset. It is read-only once built.
type Table struct {
	records []Record
	index   map[string]int
	source  string
}

// newTable builds a Table; callers guarantee unique, non-empty names.
func newTable(records []Record, source string) *Table {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.Name] = i
	}
	return &Table{records: records, index: index, source: source}
}

// Source describes where the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of species.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records in dataset order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Names returns the species names in dataset order.
func (t *Table) Names() []string {
	names := make([]string, len(t.records))
	for i, r := range t.records {
		names[i] = r.Name
	}
	return names
}

// Get looks up a species by exact name.
func (t *Table) Get(name string) (Record, bool) {
	i, ok := t.index[name]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// Derived returns every record with CO2PerYearKg computed, in dataset order.
func (t *Table) Derived() []DerivedRecord {
	out := make([]DerivedRecord, len(t.records))
	for i, r := range t.records {
		out[i] = DerivedRecord{Record: r, CO2PerYearKg: r.CO2PerYearKg()}
	}
	return out
}
