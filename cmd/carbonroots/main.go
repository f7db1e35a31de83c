package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carbonroots/carbonroots/internal/cli"
	"github.com/carbonroots/carbonroots/internal/config"
	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/pkg/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.String())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps an error to the process exit code. Input the user can fix
// exits with exitUsage; everything else with exitError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case engine.IsUserError(err), errors.Is(err, config.ErrInvalidConfig):
		return exitUsage
	default:
		return exitError
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
