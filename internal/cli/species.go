package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/greenops"
	"github.com/carbonroots/carbonroots/internal/species"
	"github.com/carbonroots/carbonroots/internal/tui"
)

const tabPadding = 2

// speciesRow is the JSON form of one species.
type speciesRow struct {
	Name                 string  `json:"tree_species"`
	AnnualBiomassGainKg  float64 `json:"annual_biomass_gain_kg"`
	CarbonContentPercent float64 `json:"carbon_content_percent"`
	SurvivalRatePercent  float64 `json:"survival_rate_percent"`
	NativeRegion         string  `json:"native_region"`
	CO2PerYearKg         float64 `json:"co2_sequestered_kg_per_year"`
}

func newSpeciesCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "species", Short: "Species dataset commands"}
	cmd.AddCommand(newSpeciesListCmd(env), newSpeciesTopCmd(env))
	return cmd
}

func newSpeciesListCmd(env *appEnv) *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every species with its annual CO₂ uptake per tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(outFormat); err != nil {
				return err
			}
			table, err := env.loader()()
			if err != nil {
				return err
			}

			rows := make([]speciesRow, 0, table.Len())
			for _, d := range table.Derived() {
				rows = append(rows, speciesRow{
					Name:                 d.Name,
					AnnualBiomassGainKg:  d.AnnualBiomassGainKg,
					CarbonContentPercent: d.CarbonContentPercent,
					SurvivalRatePercent:  d.SurvivalRatePercent,
					NativeRegion:         d.NativeRegion,
					CO2PerYearKg:         d.CO2PerYearKg,
				})
			}

			if outFormat == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return writeSpeciesTable(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "output", "o", outputText, "output format: text or json")
	return cmd
}

func writeSpeciesTable(w io.Writer, table *species.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Species\tBiomass kg/yr\tCarbon %\tSurvival %\tCO₂ kg/tree/yr\tNative Region")
	fmt.Fprintln(tw, "-------\t-------------\t--------\t----------\t--------------\t-------------")
	for _, d := range table.Derived() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name,
			formatPlain(d.AnnualBiomassGainKg),
			formatPlain(d.CarbonContentPercent),
			formatPlain(d.SurvivalRatePercent),
			greenops.FormatKg(d.CO2PerYearKg),
			d.NativeRegion,
		)
	}
	return tw.Flush()
}

func newSpeciesTopCmd(env *appEnv) *cobra.Command {
	var (
		n         int
		outFormat string
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the species that absorb the most CO₂ per tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(outFormat); err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				n = env.cfg.Calculator.LeaderboardSize
			}
			table, err := env.loader()()
			if err != nil {
				return err
			}

			board := engine.Leaderboard(table, n)
			if outFormat == outputJSON {
				return writeJSON(cmd.OutOrStdout(), board)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderLeaderboard(board, 0))
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", engine.DefaultLeaderboardSize, "number of species to show")
	cmd.Flags().StringVarP(&outFormat, "output", "o", outputText, "output format: text or json")
	return cmd
}

func checkOutputFormat(format string) error {
	if format != outputText && format != outputJSON {
		return fmt.Errorf("unsupported output format %q (use %s or %s)", format, outputText, outputJSON)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPlain(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
