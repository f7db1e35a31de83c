// Package usagelog persists one row per CarbonRoots calculation.
//
// The log is append-only from the caller's point of view. File-backed stores
// (CSV, XLSX) read the whole log, add the new row after every existing row and
// rewrite the file; the SQLite store inserts a row. All failures wrap
// ErrPersistence so callers can warn without discarding a computed result.
package usagelog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbonroots/carbonroots/internal/greenops"
)

// ErrPersistence indicates the usage log could not be read or written.
var ErrPersistence = errors.New("usage log persistence failed")

// Log column headers, in file order.
const (
	ColumnUser           = "User"
	ColumnSpecies        = "Tree_Species"
	ColumnTreesPlanted   = "Trees_Planted"
	ColumnYears          = "Years"
	ColumnCO2Sequestered = "CO2_Sequestered_kg"
)

// Columns is the header row of every file-backed log.
//
//nolint:gochecknoglobals // Read-only header definition.
var Columns = []string{ColumnUser, ColumnSpecies, ColumnTreesPlanted, ColumnYears, ColumnCO2Sequestered}

// Column positions within a row.
const (
	colUser = iota
	colSpecies
	colTrees
	colYears
	colCO2
)

// DefaultPath is the log file used when nothing else is configured.
const DefaultPath = "CarbonRoots_User_Data.csv"

// Entry is one logged calculation.
type Entry struct {
	User             string  `json:"user"`
	TreeSpecies      string  `json:"tree_species"`
	TreesPlanted     int     `json:"trees_planted"`
	Years            int     `json:"years"`
	CO2SequesteredKg float64 `json:"co2_sequestered_kg"`
}

// NewEntry builds an Entry, rounding the total the way it is persisted.
func NewEntry(user, treeSpecies string, trees, years int, totalKg float64) Entry {
	return Entry{
		User:             user,
		TreeSpecies:      treeSpecies,
		TreesPlanted:     trees,
		Years:            years,
		CO2SequesteredKg: greenops.RoundKg(totalKg),
	}
}

// row renders the entry as file cells.
func (e Entry) row() []string {
	return []string{
		e.User,
		e.TreeSpecies,
		strconv.Itoa(e.TreesPlanted),
		strconv.Itoa(e.Years),
		greenops.FormatKg(e.CO2SequesteredKg),
	}
}

// parseRow converts file cells back into an Entry.
func parseRow(row []string) (Entry, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	trees, err := parseCount(cell(colTrees))
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", ColumnTreesPlanted, err)
	}
	years, err := parseCount(cell(colYears))
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", ColumnYears, err)
	}
	co2, err := strconv.ParseFloat(cell(colCO2), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", ColumnCO2Sequestered, err)
	}

	return Entry{
		User:             cell(colUser),
		TreeSpecies:      cell(colSpecies),
		TreesPlanted:     trees,
		Years:            years,
		CO2SequesteredKg: co2,
	}, nil
}

// parseCount accepts "100" as well as spreadsheet renderings like "100.0".
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// checkHeader verifies an existing file's first row.
func checkHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("unexpected header %q, want %q", header, Columns)
	}
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name != Columns[i] {
			return fmt.Errorf("unexpected header %q, want %q", header, Columns)
		}
	}
	return nil
}

// Store is a usage log backend.
type Store interface {
	// Append adds one entry after every existing entry.
	Append(ctx context.Context, e Entry) error
	// Entries returns all entries in log order.
	Entries(ctx context.Context) ([]Entry, error)
	// Path returns the backing file.
	Path() string
	// Close releases resources held by the store.
	Close() error
}

// Options tunes file-backed stores.
type Options struct {
	// Lock serializes read-modify-write cycles across processes with an
	// advisory lock on <path>.lock. Without it, concurrent writers race and
	// the last writer wins.
	Lock bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Lock: true}
}

// Open returns the store matching path's extension: ".xlsx" for a
// spreadsheet, ".db", ".sqlite" or ".sqlite3" for SQLite, CSV otherwise.
func Open(path string, opts Options) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty log path", ErrPersistence)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewXLSXStore(path, opts), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path), nil
	default:
		return NewCSVStore(path, opts), nil
	}
}

func persistenceError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrPersistence, op, path, err)
}
