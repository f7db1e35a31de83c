package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbonroots/carbonroots/internal/engine"
	"github.com/carbonroots/carbonroots/internal/session"
	"github.com/carbonroots/carbonroots/internal/species"
	"github.com/carbonroots/carbonroots/internal/tui"
)

// ErrInputClosed is returned when input ends before the prompts complete.
var ErrInputClosed = errors.New("input closed before the calculation was complete")

// lineReader reads trimmed lines from the user.
type lineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *lineReader) ask(prompt string) (string, error) {
	_, _ = fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

// RunPrompt runs one calculation with line prompts, for terminals that cannot
// host the full-screen interface. It asks for a name until a non-empty one
// is given, then for species, trees and years (blank keeps the default).
func RunPrompt(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	svc *engine.Service,
	identity *session.Identity,
	opts tui.Options,
) error {
	r := &lineReader{scanner: bufio.NewScanner(in), out: out}

	fmt.Fprintln(out, "Welcome to CarbonRoots")
	for !identity.IsSet() {
		name, err := r.ask("Your Name: ")
		if err != nil {
			return err
		}
		if err = identity.Submit(name); err != nil {
			fmt.Fprintln(out, tui.NameWarning)
		}
	}

	table, err := svc.LoadTable(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nHello, %s!\n\n", identity.Name())
	speciesName, err := promptSpecies(r, table)
	if err != nil {
		return err
	}
	trees, err := promptCount(r, "Number of Trees", opts.DefaultTrees)
	if err != nil {
		return err
	}
	years, err := promptCount(r, "Number of Years", opts.DefaultYears)
	if err != nil {
		return err
	}

	outcome, err := svc.Calculate(ctx, identity, engine.Scenario{Species: speciesName, Trees: trees, Years: years})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	writeOutcome(out, identity.Name(), outcome)
	return nil
}

// promptSpecies lists the species and accepts a number or a name.
func promptSpecies(r *lineReader, table *species.Table) (string, error) {
	names := table.Names()
	for i, name := range names {
		fmt.Fprintf(r.out, "  %2d. %s\n", i+1, name)
	}

	for {
		answer, err := r.ask(fmt.Sprintf("Select a Tree Species [1-%d] (default 1): ", len(names)))
		if err != nil {
			return "", err
		}
		if name, ok := matchSpecies(names, answer); ok {
			return name, nil
		}
		fmt.Fprintln(r.out, "Please choose a species from the list.")
	}
}

func matchSpecies(names []string, answer string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	if answer == "" {
		return names[0], true
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(names) {
			return names[n-1], true
		}
		return "", false
	}
	for _, name := range names {
		if strings.EqualFold(name, answer) {
			return name, true
		}
	}
	return "", false
}

// promptCount reads a count; blank keeps def, anything below 1 becomes 1.
func promptCount(r *lineReader, label string, def int) (int, error) {
	answer, err := r.ask(fmt.Sprintf("%s (default %d): ", label, def))
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return max(def, 1), nil
	}
	return tui.ParseCount(answer), nil
}

// writeOutcome prints a calculation result in plain text.
func writeOutcome(out io.Writer, user string, outcome engine.Outcome) {
	fmt.Fprintln(out, tui.ResultSentence(user, outcome.Result))
	for _, line := range tui.ResultDetails(outcome.Result) {
		fmt.Fprintf(out, "  - %s\n", line)
	}
	if !outcome.Result.Equivalency.IsEmpty {
		fmt.Fprintln(out, outcome.Result.Equivalency.DisplayText)
	}
	if outcome.LogErr != nil {
		fmt.Fprintf(out, "Warning: this calculation was not saved to the usage log: %v\n", outcome.LogErr)
	}
}
