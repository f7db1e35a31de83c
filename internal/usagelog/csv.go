package usagelog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CSVStore keeps the log in a comma-separated file.
type CSVStore struct {
	path string
	opts Options
}

// NewCSVStore returns a store for path. The file is created on first Append.
func NewCSVStore(path string, opts Options) *CSVStore {
	return &CSVStore{path: path, opts: opts}
}

// Path returns the backing file.
func (s *CSVStore) Path() string { return s.path }

// Close is a no-op; the file is only open during Append and Entries.
func (s *CSVStore) Close() error { return nil }

// Append reads the whole log, adds e after the last row and rewrites the file.
// Existing rows are written back unchanged and in their original order.
func (s *CSVStore) Append(_ context.Context, e Entry) error {
	err := withLock(s.path, s.opts.Lock, func() error {
		rows, err := s.readRows()
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			rows = [][]string{Columns}
		} else if err = checkHeader(rows[0]); err != nil {
			return err
		}
		rows = append(rows, e.row())

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err = w.WriteAll(rows); err != nil {
			return fmt.Errorf("encoding csv: %w", err)
		}
		return atomicWrite(s.path, buf.Bytes())
	})
	if err != nil {
		return persistenceError("appending to", s.path, err)
	}
	return nil
}

// Entries returns every logged entry. A missing file is an empty log.
func (s *CSVStore) Entries(_ context.Context) ([]Entry, error) {
	rows, err := s.readRows()
	if err != nil {
		return nil, persistenceError("reading", s.path, err)
	}
	entries, err := rowsToEntries(rows)
	if err != nil {
		return nil, persistenceError("reading", s.path, err)
	}
	return entries, nil
}

func (s *CSVStore) readRows() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding csv: %w", err)
	}
	return rows, nil
}

// rowsToEntries validates the header row and parses the rest.
func rowsToEntries(rows [][]string) ([]Entry, error) {
	if len(rows) == 0 {
		return []Entry{}, nil
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		e, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
