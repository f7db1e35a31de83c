// Package migration copies a usage log into another backend, for example
// from the original spreadsheet into SQLite. The source is never modified.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

// ErrSameLog is returned when source and destination are the same file.
var ErrSameLog = errors.New("source and destination usage logs are the same file")

// CopyLog appends every entry of src to dst, in order, and returns how many
// entries were copied. Entries already in dst stay ahead of the copied ones.
func CopyLog(ctx context.Context, src, dst usagelog.Store) (int, error) {
	if samePath(src.Path(), dst.Path()) {
		return 0, ErrSameLog
	}

	entries, err := src.Entries(ctx)
	if err != nil {
		return 0, err
	}

	for i, e := range entries {
		if err = dst.Append(ctx, e); err != nil {
			return i, fmt.Errorf("copying entry %d of %d: %w", i+1, len(entries), err)
		}
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "migration").
		Str("from", src.Path()).
		Str("to", dst.Path()).
		Int("entries", len(entries)).
		Msg("usage log copied")
	return len(entries), nil
}

// RunMigration asks for confirmation (unless assumeYes) and copies src into
// dst.
func RunMigration(
	ctx context.Context,
	out io.Writer,
	in io.Reader,
	src, dst usagelog.Store,
	assumeYes bool,
) error {
	if samePath(src.Path(), dst.Path()) {
		return ErrSameLog
	}

	if !assumeYes {
		fmt.Fprintf(out, "Copy the usage log at %s to %s? [y/N] ", src.Path(), dst.Path())

		var response string
		if _, scanErr := fmt.Fscanln(in, &response); scanErr != nil {
			// If we can't read input, treat as "no"
			response = ""
		}
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Migration skipped.")
			return nil
		}
	}

	n, err := CopyLog(ctx, src, dst)
	if err != nil {
		return fmt.Errorf("migration failed after %d entries: %w", n, err)
	}

	fmt.Fprintf(out, "Migration complete: %d entries copied. Your original log has been preserved at %s.\n",
		n, src.Path())
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
