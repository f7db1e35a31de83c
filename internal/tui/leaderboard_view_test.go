package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonroots/carbonroots/internal/engine"
)

func TestRenderLeaderboard(t *testing.T) {
	entries := []engine.LeaderboardEntry{
		{Rank: 1, Species: "Bamboo", CO2PerYearKg: 66.06},
		{Rank: 2, Species: "Neem", CO2PerYearKg: 33.03},
		{Rank: 3, Species: "Amla", CO2PerYearKg: 0},
	}

	out := RenderLeaderboard(entries, 60)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[1], "Bamboo")
	assert.Contains(t, lines[1], "66.06")
	assert.Contains(t, lines[2], "33.03")

	bamboo := strings.Count(lines[1], barRune)
	neem := strings.Count(lines[2], barRune)
	assert.Equal(t, 0, strings.Count(lines[3], barRune))
	assert.Greater(t, bamboo, neem)
	assert.InDelta(t, bamboo/2, neem, 1)
}

func TestRenderLeaderboard_Empty(t *testing.T) {
	assert.Equal(t, "No species to rank.", RenderLeaderboard(nil, 80))
}

func TestRenderLeaderboard_NarrowWidth(t *testing.T) {
	out := RenderLeaderboard([]engine.LeaderboardEntry{{Rank: 1, Species: "Teak", CO2PerYearKg: 62.94}}, 5)
	assert.Equal(t, minBarWidth, strings.Count(out, barRune))
}
