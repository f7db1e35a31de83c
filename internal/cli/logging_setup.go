package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonroots/carbonroots/internal/config"
	"github.com/carbonroots/carbonroots/internal/logging"
)

// setupLogging builds the logger from configuration and the --debug flag and
// stores it in the command context. While the TUI owns the terminal, logs
// go only to a configured file, and are discarded if that file cannot be
// opened.
func setupLogging(cmd *cobra.Command, cfg *config.Config, debug, tuiMode bool) logging.Result {
	loggingCfg := cfg.Logging
	if debug {
		loggingCfg.Level = "debug"
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(cfg); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	lc := loggingCfg.ToLoggingConfig()
	lc.Stderr = cmd.ErrOrStderr()
	if tuiMode && lc.Output != logging.OutputFile {
		lc.Output = logging.OutputDiscard
	}

	result := logging.NewLogger(lc)
	fallback := logging.OutputStderr
	if tuiMode && result.FallbackUsed {
		reason := result.FallbackReason
		lc.Output = logging.OutputDiscard
		result = logging.NewLogger(lc)
		result.FallbackUsed = true
		result.FallbackReason = reason
		fallback = logging.OutputDiscard
	}
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason, fallback)
	}

	ctx := result.Logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")
	return result
}
