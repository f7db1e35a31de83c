package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/greenops"
)

const (
	barRune        = "█"
	minBarWidth    = 10
	defaultWidth   = 80
	chartGutter    = 3
	valuePrecision = 2
)

// RenderLeaderboard draws entries as horizontal bars scaled to the largest
// value, one species per row.
func RenderLeaderboard(entries []engine.LeaderboardEntry, width int) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No species to rank.")
	}
	if width <= 0 {
		width = defaultWidth
	}

	nameWidth, valueWidth := 0, 0
	values := make([]string, len(entries))
	peak := 0.0
	for i, e := range entries {
		values[i] = greenops.FormatFloat(e.CO2PerYearKg, valuePrecision)
		nameWidth = max(nameWidth, lipgloss.Width(e.Species))
		valueWidth = max(valueWidth, len(values[i]))
		peak = max(peak, e.CO2PerYearKg)
	}

	barWidth := max(width-nameWidth-valueWidth-2*chartGutter, minBarWidth)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Top CO₂ absorbing trees (kg per tree per year)"))
	b.WriteString("\n")
	for i, e := range entries {
		n := 0
		if peak > 0 {
			n = int(e.CO2PerYearKg / peak * float64(barWidth))
		}
		if e.CO2PerYearKg > 0 {
			n = max(n, 1)
		}

		b.WriteString(LabelStyle.Render(padRight(e.Species, nameWidth)))
		b.WriteString(strings.Repeat(" ", chartGutter))
		b.WriteString(BarStyle.Render(strings.Repeat(barRune, n)))
		b.WriteString(strings.Repeat(" ", barWidth-n+chartGutter))
		b.WriteString(ValueStyle.Render(values[i]))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
