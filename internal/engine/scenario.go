// Package engine runs CarbonRoots calculations: it turns a species table and
// a planting scenario into a sequestration result, ranks species for the
// leaderboard, and drives one full interaction cycle (reload, compute, log).
package engine

import (
	"errors"
	"fmt"

	"github.com/carbonroots/carbonroots/internal/greenops"
	"github.com/carbonroots/carbonroots/internal/species"
)

// Input defaults and bounds for a planting scenario.
const (
	DefaultTrees           = 100
	DefaultYears           = 10
	MinTrees               = 1
	MinYears               = 1
	DefaultLeaderboardSize = 10
)

var (
	// ErrUnknownSpecies means the scenario names a species absent from the
	// table. Input surfaces only offer loaded species, so this indicates a
	// programming error rather than bad user input.
	ErrUnknownSpecies = errors.New("unknown tree species")

	// ErrInvalidScenario means a count below its minimum reached the
	// calculator; input surfaces clamp before calling.
	ErrInvalidScenario = errors.New("invalid planting scenario")
)

// Scenario is one planting the user wants evaluated.
type Scenario struct {
	Species string `json:"tree_species"`
	Trees   int    `json:"trees_planted"`
	Years   int    `json:"years"`
}

// Clamp raises counts below their minimum to the minimum.
func (s Scenario) Clamp() Scenario {
	s.Trees = max(s.Trees, MinTrees)
	s.Years = max(s.Years, MinYears)
	return s
}

// Result is the outcome of evaluating a Scenario.
type Result struct {
	Scenario

	PerTreePerYearKg    float64                    `json:"co2_per_tree_per_year_kg"`
	TotalKg             float64                    `json:"co2_sequestered_kg"`
	SurvivalRatePercent float64                    `json:"survival_rate_percent"`
	NativeRegion        string                     `json:"native_region"`
	Equivalency         greenops.EquivalencyOutput `json:"equivalency"`
}

// Calculate evaluates sc against table:
//
//	total = per-tree-per-year × trees × years
//
// The per-tree rate is taken from the species record unrounded.
func Calculate(table *species.Table, sc Scenario) (Result, error) {
	if sc.Trees < MinTrees || sc.Years < MinYears {
		return Result{}, fmt.Errorf("%w: trees=%d years=%d", ErrInvalidScenario, sc.Trees, sc.Years)
	}

	rec, ok := table.Get(sc.Species)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, sc.Species)
	}

	perTree := rec.CO2PerYearKg()
	total := greenops.ScenarioTotalKg(perTree, sc.Trees, sc.Years)
	if err := greenops.CheckFinite(total); err != nil {
		return Result{}, fmt.Errorf("species %q: %w", sc.Species, err)
	}

	// Equivalency errors are impossible once total passed CheckFinite.
	equivalency, _ := greenops.Calculate(total)

	return Result{
		Scenario:            sc,
		PerTreePerYearKg:    perTree,
		TotalKg:             total,
		SurvivalRatePercent: rec.SurvivalRatePercent,
		NativeRegion:        rec.NativeRegion,
		Equivalency:         equivalency,
	}, nil
}
