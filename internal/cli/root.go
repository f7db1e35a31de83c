package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carbonroots/carbonroots/internal/config"
	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/metrics"
	"github.com/carbonroots/carbonroots/internal/session"
	"github.com/carbonroots/carbonroots/internal/species"
	"github.com/carbonroots/carbonroots/internal/tui"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// isInteractive reports whether the full-screen TUI can run. Tests replace it.
var isInteractive = tui.IsTTY //nolint:gochecknoglobals // Swapped in tests

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	dataset    string
	usageLog   string
	debug      bool
	plain      bool
}

// appEnv is the per-invocation state built in PersistentPreRunE.
type appEnv struct {
	flags     rootFlags
	cfg       *config.Config
	logResult *logging.Result
	recorder  *metrics.Recorder
}

// NewRootCmd creates the root Cobra command for the carbonroots CLI.
// Without a subcommand it starts the interactive calculator.
func NewRootCmd(ver string) *cobra.Command {
	env := &appEnv{}

	cmd := &cobra.Command{
		Use:   "carbonroots",
		Short: "CO₂ absorption calculator for Indian tree species",
		Long: `CarbonRoots estimates how much CO₂ a planting of Indian tree species
sequesters and appends every calculation to a usage log.

Run without a subcommand to start the interactive calculator.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return env.cleanup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.runCalculator(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&env.flags.configPath, "config", "",
		"config file (default $CARBONROOTS_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&env.flags.dataset, "dataset", "",
		"species dataset (.csv or .xlsx); default is the built-in dataset")
	cmd.PersistentFlags().StringVar(&env.flags.usageLog, "usage-log", "",
		"usage log file (.csv, .xlsx, .db)")
	cmd.PersistentFlags().BoolVar(&env.flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&env.flags.plain, "plain", false, "use line prompts instead of the full-screen interface")

	cmd.AddCommand(
		newCalcCmd(env),
		newSpeciesCmd(env),
		newLogCmd(env),
		newConfigCmd(env),
	)
	return cmd
}

const rootCmdExample = `  # Start the interactive calculator
  carbonroots

  # One calculation without the interface
  carbonroots calc --name "Ada" --species Neem --trees 100 --years 10

  # Show the ten species that absorb the most CO₂
  carbonroots species top

  # Keep the usage log in SQLite instead of CSV
  carbonroots --usage-log carbonroots.db

  # Print the usage log as JSON
  carbonroots log show --output json`

// setup loads configuration, applies flag overrides and installs the logger.
func (e *appEnv) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if e.flags.configPath != "" {
		cfg, err = config.Load(e.flags.configPath)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if e.flags.dataset != "" {
		cfg.Dataset.Path = e.flags.dataset
	}
	if e.flags.usageLog != "" {
		cfg.UsageLog.Path = e.flags.usageLog
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.recorder = metrics.New(cfg.Metrics.Textfile)

	result := setupLogging(cmd, cfg, e.flags.debug, e.usesTUI(cmd))
	e.logResult = &result
	return nil
}

func (e *appEnv) cleanup() error {
	if e.logResult != nil {
		return e.logResult.Close()
	}
	return nil
}

// usesTUI reports whether cmd will take over the terminal.
func (e *appEnv) usesTUI(cmd *cobra.Command) bool {
	return cmd == cmd.Root() && !e.flags.plain && isInteractive()
}

func (e *appEnv) openStore() (usagelog.Store, error) {
	return usagelog.Open(e.cfg.UsageLog.Path, e.cfg.UsageLogOptions())
}

func (e *appEnv) loader() species.Loader {
	return species.NewLoader(e.cfg.Dataset.Path)
}

func (e *appEnv) service(store usagelog.Store) *engine.Service {
	return engine.NewService(e.loader(), store, e.recorder)
}

func (e *appEnv) calculatorOptions() tui.Options {
	return tui.Options{
		DefaultTrees:    e.cfg.Calculator.DefaultTrees,
		DefaultYears:    e.cfg.Calculator.DefaultYears,
		LeaderboardSize: e.cfg.Calculator.LeaderboardSize,
	}
}

// runCalculator starts the TUI, or the line prompt when the terminal cannot
// host it.
func (e *appEnv) runCalculator(cmd *cobra.Command) error {
	store, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	identity := session.New()
	ctx := logging.ContextWithSessionID(cmd.Context(), identity.ID())
	svc := e.service(store)

	if !e.usesTUI(cmd) {
		return RunPrompt(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc, identity, e.calculatorOptions())
	}

	model := tui.NewModel(ctx, svc, identity, e.calculatorOptions())
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running interface: %w", err)
	}
	if m, ok := final.(*tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// newConfigCmd creates the config command group.
func newConfigCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), newConfigShowCmd(env))
	return cmd
}
