package tui

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether both stdin and stdout are terminals, which the
// interactive screens need.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
