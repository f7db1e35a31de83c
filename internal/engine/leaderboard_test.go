package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroots/carbonroots/internal/species"
)

func TestLeaderboard_Embedded(t *testing.T) {
	board := Leaderboard(embeddedTable(t), DefaultLeaderboardSize)
	require.Len(t, board, DefaultLeaderboardSize)

	want := []string{
		"Bamboo", "Teak", "Eucalyptus", "Sal", "Banyan",
		"Peepal", "Arjuna", "Mango", "Sheesham", "Tamarind",
	}
	for i, entry := range board {
		assert.Equal(t, i+1, entry.Rank)
		assert.Equal(t, want[i], entry.Species)
	}
	assert.InDelta(t, 66.06, board[0].CO2PerYearKg, 1e-9)
}

func TestLeaderboard_Descending(t *testing.T) {
	board := Leaderboard(embeddedTable(t), 100)
	require.Len(t, board, 16)
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].CO2PerYearKg, board[i].CO2PerYearKg)
	}
}

func TestLeaderboard_Sizes(t *testing.T) {
	table := referenceTable(t)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer species than n", 10, 2},
		{"exact", 2, 2},
		{"truncated", 1, 1},
		{"zero", 0, 0},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Leaderboard(table, tt.n), tt.want)
		})
	}
}

func TestLeaderboard_TiesKeepDatasetOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ties.csv")
	data := "Tree_Species,Annual_Biomass_Gain_kg,Carbon_Content_Percent,Survival_Rate_Percent,Native_Region\n" +
		"Second,10,50,80,A\n" +
		"First,20,50,80,B\n" +
		"Third,10,50,70,C\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	table, err := species.Load(path)
	require.NoError(t, err)

	board := Leaderboard(table, 3)
	require.Len(t, board, 3)
	assert.Equal(t, "First", board[0].Species)
	assert.Equal(t, "Second", board[1].Species)
	assert.Equal(t, "Third", board[2].Species)
}
