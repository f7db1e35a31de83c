package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroots/carbonroots/internal/species"
)

func referenceTable(t *testing.T) *species.Table {
	t.Helper()
	table, err := species.Load("../species/testdata/reference.csv")
	require.NoError(t, err)
	return table
}

func embeddedTable(t *testing.T) *species.Table {
	t.Helper()
	table, err := species.Load("")
	require.NoError(t, err)
	return table
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		scenario    Scenario
		wantPerTree float64
		wantTotal   float64
	}{
		{
			name:        "reference oak defaults",
			scenario:    Scenario{Species: "Reference Oak", Trees: DefaultTrees, Years: DefaultYears},
			wantPerTree: 86.245,
			wantTotal:   86245,
		},
		{
			name:        "single tree single year equals per tree rate",
			scenario:    Scenario{Species: "Reference Oak", Trees: 1, Years: 1},
			wantPerTree: 86.245,
			wantTotal:   86.245,
		},
		{
			name:        "slow shrub",
			scenario:    Scenario{Species: "Slow Shrub", Trees: 3, Years: 2},
			wantPerTree: 2.936,
			wantTotal:   17.616,
		},
	}

	table := referenceTable(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(table, tt.scenario)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPerTree, got.PerTreePerYearKg, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.TotalKg, 1e-6)
			assert.Equal(t, tt.scenario, got.Scenario)
		})
	}
}

func TestCalculate_CarriesSpeciesDetails(t *testing.T) {
	got, err := Calculate(embeddedTable(t), Scenario{Species: "Neem", Trees: 10, Years: 5})
	require.NoError(t, err)

	assert.InDelta(t, 30.18575, got.PerTreePerYearKg, 1e-9)
	assert.InDelta(t, 1509.2875, got.TotalKg, 1e-6)
	assert.InDelta(t, 85.0, got.SurvivalRatePercent, 1e-9)
	assert.Equal(t, "Pan-India (dry regions)", got.NativeRegion)
	assert.False(t, got.Equivalency.IsEmpty)
}

func TestCalculate_Linearity(t *testing.T) {
	table := referenceTable(t)

	base, err := Calculate(table, Scenario{Species: "Reference Oak", Trees: 7, Years: 3})
	require.NoError(t, err)
	doubledTrees, err := Calculate(table, Scenario{Species: "Reference Oak", Trees: 14, Years: 3})
	require.NoError(t, err)
	doubledYears, err := Calculate(table, Scenario{Species: "Reference Oak", Trees: 7, Years: 6})
	require.NoError(t, err)

	assert.InDelta(t, 2*base.TotalKg, doubledTrees.TotalKg, 1e-9)
	assert.InDelta(t, 2*base.TotalKg, doubledYears.TotalKg, 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  error
	}{
		{"unknown species", Scenario{Species: "Baobab", Trees: 1, Years: 1}, ErrUnknownSpecies},
		{"zero trees", Scenario{Species: "Reference Oak", Trees: 0, Years: 1}, ErrInvalidScenario},
		{"negative years", Scenario{Species: "Reference Oak", Trees: 1, Years: -2}, ErrInvalidScenario},
	}

	table := referenceTable(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(table, tt.scenario)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsUserError(err))
		})
	}
}

func TestScenario_Clamp(t *testing.T) {
	assert.Equal(t, Scenario{Species: "X", Trees: 1, Years: 1}, Scenario{Species: "X"}.Clamp())
	assert.Equal(t, Scenario{Trees: 1, Years: 4}, Scenario{Trees: -5, Years: 4}.Clamp())
	assert.Equal(t, Scenario{Trees: 250, Years: 30}, Scenario{Trees: 250, Years: 30}.Clamp())
}
