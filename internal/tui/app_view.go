package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/greenops"
)

const appTitle = "CarbonRoots: Modeling CO₂ Absorption Potential of Indian Tree Species"

const intro = `Trees absorb CO₂, release oxygen, cool urban heat, support biodiversity
and prevent soil erosion.

Why CO₂ sequestration matters:
  • Climate change mitigation: trees are natural carbon sinks.
  • Sustainable future: knowing each tree's uptake helps plan greener spaces.
  • Biodiversity support: native species create better habitats.`

// View renders the current screen.
func (m *Model) View() string {
	var body string
	switch m.stage {
	case StageQuitting:
		return ""
	case StageName:
		body = m.renderNameView()
	case StageCalculator:
		body = m.renderCalculatorView()
	case StageFatal:
		body = RenderFatal(m.err)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(appTitle))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render(Footer))
	return b.String()
}

func (m *Model) renderNameView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Welcome to CarbonRoots"))
	b.WriteString("\n")
	b.WriteString("To get started, please enter your name:\n\n")
	b.WriteString(m.nameInput.View())
	if m.nameWarning != "" {
		b.WriteString("\n\n")
		b.WriteString(WarningStyle.Render(m.nameWarning))
	}
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("enter: start • esc: quit"))
	return b.String()
}

func (m *Model) renderCalculatorView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Hello, %s!", m.identity.Name())))
	b.WriteString("\n")
	b.WriteString(intro)
	b.WriteString("\n\n")

	if m.table == nil {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("Loading species dataset..."))
		return b.String()
	}

	b.WriteString(HeaderStyle.Render("Tree-Based CO₂ Calculator"))
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(FieldSpecies, "Select a Tree Species"))
	b.WriteString("\n")
	b.WriteString(m.selector.View())
	b.WriteString("\n\n")
	b.WriteString(m.fieldLabel(FieldTrees, "Number of Trees "))
	b.WriteString(m.treesInput.View())
	b.WriteString("\n")
	b.WriteString(m.fieldLabel(FieldYears, "Number of Years "))
	b.WriteString(m.yearsInput.View())
	b.WriteString("\n")

	switch {
	case m.calculating:
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("Calculating..."))
	case m.outcome != nil:
		b.WriteString("\n")
		b.WriteString(RenderOutcome(m.identity.Name(), *m.outcome))
	}

	if m.showLeaderboard {
		b.WriteString("\n")
		b.WriteString(RenderLeaderboard(m.leaderboard, m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render(
		"tab/shift+tab: switch field • ↑/↓: species • enter: calculate • t: top 10 chart • q: quit"))
	return b.String()
}

func (m *Model) fieldLabel(f Field, label string) string {
	if m.focus == f {
		return FocusedStyle.Render("▸ " + label)
	}
	return LabelStyle.Render("  " + label)
}

func renderSpeciesOption(name string, selected bool) string {
	if selected {
		return SelectedStyle.Render("  ● " + name)
	}
	return "  ○ " + name
}

// ResultSentence is the headline of a calculation result.
func ResultSentence(user string, r engine.Result) string {
	return fmt.Sprintf("%s, your trees will sequester %s kg of CO₂ over %d years.",
		user, greenops.FormatKg(r.TotalKg), r.Years)
}

// ResultDetails lists the per-species facts shown under the headline.
func ResultDetails(r engine.Result) []string {
	return []string{
		"CO₂ per tree per year: " + greenops.FormatKg(r.PerTreePerYearKg) + " kg",
		"Survival Rate: " + strconv.FormatFloat(r.SurvivalRatePercent, 'f', -1, 64) + "%",
		"Native Region: " + r.NativeRegion,
	}
}

// RenderOutcome renders a calculation result, followed by a warning when the
// usage log entry could not be saved.
func RenderOutcome(user string, out engine.Outcome) string {
	var b strings.Builder
	b.WriteString(SuccessStyle.Render(ResultSentence(user, out.Result)))
	for _, line := range ResultDetails(out.Result) {
		b.WriteString("\n  - ")
		b.WriteString(line)
	}
	if !out.Result.Equivalency.IsEmpty {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(out.Result.Equivalency.DisplayText))
	}
	if out.LogErr != nil {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("Warning: this calculation was not saved to the usage log: " + out.LogErr.Error()))
	}
	return b.String()
}

// RenderFatal renders an unrecoverable error screen.
func RenderFatal(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", err)) + "\n\n" + SubtleStyle.Render("Press q to quit.")
}
