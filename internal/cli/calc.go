package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/greenops"
	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/session"
)

// calcOutput is the JSON form of a calc result.
type calcOutput struct {
	User    string        `json:"user"`
	Result  engine.Result `json:"result"`
	CO2Kg   string        `json:"co2_sequestered_kg_display"`
	Logged  bool          `json:"logged"`
	LogPath string        `json:"usage_log,omitempty"`
	LogErr  string        `json:"usage_log_error,omitempty"`
}

func newCalcCmd(env *appEnv) *cobra.Command {
	var (
		name      string
		sc        engine.Scenario
		outFormat string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run one calculation and append it to the usage log",
		Example: `  carbonroots calc --name "Ada" --species Neem
  carbonroots calc --name "Ada" --species Bamboo --trees 250 --years 20 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(outFormat); err != nil {
				return err
			}
			if sc.Species == "" {
				return errors.New("--species is required")
			}

			identity := session.New()
			if err := identity.Submit(name); err != nil {
				return err
			}

			if !cmd.Flags().Changed("trees") {
				sc.Trees = env.cfg.Calculator.DefaultTrees
			}
			if !cmd.Flags().Changed("years") {
				sc.Years = env.cfg.Calculator.DefaultYears
			}

			store, err := env.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := logging.ContextWithSessionID(cmd.Context(), identity.ID())
			outcome, err := env.service(store).Calculate(ctx, identity, sc.Clamp())
			if err != nil {
				return err
			}

			if outFormat == outputJSON {
				return writeCalcJSON(cmd.OutOrStdout(), identity.Name(), store.Path(), outcome)
			}
			writeOutcome(cmd.OutOrStdout(), identity.Name(), outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	cmd.Flags().StringVar(&sc.Species, "species", "", "tree species, as listed by 'species list' (required)")
	cmd.Flags().IntVar(&sc.Trees, "trees", engine.DefaultTrees, "number of trees (minimum 1)")
	cmd.Flags().IntVar(&sc.Years, "years", engine.DefaultYears, "number of years (minimum 1)")
	cmd.Flags().StringVarP(&outFormat, "output", "o", outputText, "output format: text or json")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func writeCalcJSON(w io.Writer, user, logPath string, outcome engine.Outcome) error {
	out := calcOutput{
		User:    user,
		Result:  outcome.Result,
		CO2Kg:   greenops.FormatKg(outcome.Result.TotalKg),
		Logged:  outcome.Logged(),
		LogPath: logPath,
	}
	if outcome.LogErr != nil {
		out.LogErr = outcome.LogErr.Error()
	}
	return writeJSON(w, out)
}
