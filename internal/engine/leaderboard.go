package engine

import (
	"sort"

	"github.com/carbonroots/carbonroots/internal/species"
)

// LeaderboardEntry is one ranked species.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Species      string  `json:"tree_species"`
	CO2PerYearKg float64 `json:"co2_sequestered_kg_per_year"`
}

// Leaderboard ranks every species by annual CO2 per tree, highest first, and
// returns the top n. Ties keep dataset order. n < 1 returns nothing.
func Leaderboard(table *species.Table, n int) []LeaderboardEntry {
	if n < 1 {
		return []LeaderboardEntry{}
	}

	derived := table.Derived()
	sort.SliceStable(derived, func(i, j int) bool {
		return derived[i].CO2PerYearKg > derived[j].CO2PerYearKg
	})

	n = min(n, len(derived))
	out := make([]LeaderboardEntry, n)
	for i := range n {
		out[i] = LeaderboardEntry{
			Rank:         i + 1,
			Species:      derived[i].Name,
			CO2PerYearKg: derived[i].CO2PerYearKg,
		}
	}
	return out
}
