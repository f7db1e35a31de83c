package species

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Embedded(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EmbeddedSource, table.Source())
	assert.Equal(t, 16, table.Len())

	neem, ok := table.Get("Neem")
	require.True(t, ok)
	assert.InDelta(t, 30.18575, neem.CO2PerYearKg(), 1e-9)
	assert.Equal(t, "Pan-India (dry regions)", neem.NativeRegion)
}

func TestLoad_CSV(t *testing.T) {
	table, err := Load(filepath.Join("testdata", "reference.csv"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Reference Oak", "Slow Shrub"}, table.Names())

	oak, ok := table.Get("Reference Oak")
	require.True(t, ok)
	assert.Equal(t, 50.0, oak.AnnualBiomassGainKg)
	assert.Equal(t, 47.0, oak.CarbonContentPercent)
	assert.Equal(t, 90.0, oak.SurvivalRatePercent)
	assert.InDelta(t, 86.245, oak.CO2PerYearKg(), 1e-9)

	_, ok = table.Get("reference oak")
	assert.False(t, ok, "lookup is exact")
}

func TestLoad_ColumnOrderAndExtras(t *testing.T) {
	path := writeFile(t, "shuffled.csv",
		"Native_Region,Notes,Carbon_Content_Percent,Tree_Species,Survival_Rate_Percent,Annual_Biomass_Gain_kg\n"+
			"Kerala,planted 2019,44,Coconut,86,12\n"+
			",,,,,\n"+
			"Assam,,45,Bamboo,90,40\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len(), "blank rows are skipped")

	bamboo, ok := table.Get("Bamboo")
	require.True(t, ok)
	assert.Equal(t, 40.0, bamboo.AnnualBiomassGainKg)
	assert.Equal(t, "Assam", bamboo.NativeRegion)
}

func TestLoad_DataUnavailable(t *testing.T) {
	header := "Tree_Species,Annual_Biomass_Gain_kg,Carbon_Content_Percent,Survival_Rate_Percent,Native_Region\n"

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			wantMsg: "no such file",
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeFile(t, "empty.csv", "") },
			wantMsg: "is empty",
		},
		{
			name: "missing column",
			path: func(t *testing.T) string {
				return writeFile(t, "cols.csv", "Tree_Species,Annual_Biomass_Gain_kg\nNeem,17.5\n")
			},
			wantMsg: "Carbon_Content_Percent",
		},
		{
			name: "unparsable number",
			path: func(t *testing.T) string {
				return writeFile(t, "num.csv", header+"Neem,lots,47,85,India\n")
			},
			wantMsg: "row 2",
		},
		{
			name: "NaN biomass",
			path: func(t *testing.T) string {
				return writeFile(t, "nan.csv", header+"Neem,NaN,47,85,India\n")
			},
			wantMsg: "calculation overflow",
		},
		{
			name: "infinite carbon content",
			path: func(t *testing.T) string {
				return writeFile(t, "inf.csv", header+"Neem,17.5,Inf,85,India\n")
			},
			wantMsg: "calculation overflow",
		},
		{
			name: "negative biomass",
			path: func(t *testing.T) string {
				return writeFile(t, "neg.csv", header+"Neem,-50,47,85,India\n")
			},
			wantMsg: "negative carbon value",
		},
		{
			name: "carbon content above 100 percent",
			path: func(t *testing.T) string {
				return writeFile(t, "pct.csv", header+"Neem,17.5,147,85,India\n")
			},
			wantMsg: "above 100 percent",
		},
		{
			name: "overflowing CO2 rate",
			path: func(t *testing.T) string {
				return writeFile(t, "huge.csv", header+"Neem,1e308,47,85,India\n")
			},
			wantMsg: "calculation overflow",
		},
		{
			name: "duplicate species",
			path: func(t *testing.T) string {
				return writeFile(t, "dup.csv", header+"Neem,17.5,47,85,India\nNeem,18,47,85,India\n")
			},
			wantMsg: "duplicate species",
		},
		{
			name: "blank species name",
			path: func(t *testing.T) string {
				return writeFile(t, "blank.csv", header+" ,17.5,47,85,India\n")
			},
			wantMsg: "blank species name",
		},
		{
			name:    "header only",
			path:    func(t *testing.T) string { return writeFile(t, "header.csv", header) },
			wantMsg: "no species rows",
		},
		{
			name:    "corrupt xlsx",
			path:    func(t *testing.T) string { return writeFile(t, "bad.xlsx", "not a zip") },
			wantMsg: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, ErrDataUnavailable)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Tree_Species", "Annual_Biomass_Gain_kg", "Carbon_Content_Percent", "Survival_Rate_Percent", "Native_Region"},
		{"Teak", 35, 49, 75, "Central & South India"},
		{"Reference Oak", 50, 47, 90, "Test Region"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Teak", "Reference Oak"}, table.Names())

	oak, ok := table.Get("Reference Oak")
	require.True(t, ok)
	assert.InDelta(t, 86.245, oak.CO2PerYearKg(), 1e-9)
}

func TestNewLoader_RereadsSource(t *testing.T) {
	header := "Tree_Species,Annual_Biomass_Gain_kg,Carbon_Content_Percent,Survival_Rate_Percent,Native_Region\n"
	path := writeFile(t, "live.csv", header+"Neem,17.5,47,85,India\n")
	load := NewLoader(path)

	first, err := load()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	require.NoError(t, os.WriteFile(path, []byte(header+"Neem,17.5,47,85,India\nSal,30,49.5,72,India\n"), 0o600))

	second, err := load()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len(), "loader must not cache between cycles")
}
