package usagelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the worksheet name of a newly created workbook.
const defaultSheet = "Sheet1"

// XLSXStore keeps the log in the first worksheet of an Excel workbook.
type XLSXStore struct {
	path string
	opts Options
}

// NewXLSXStore returns a store for path. The workbook is created on first Append.
func NewXLSXStore(path string, opts Options) *XLSXStore {
	return &XLSXStore{path: path, opts: opts}
}

// Path returns the backing file.
func (s *XLSXStore) Path() string { return s.path }

// Close is a no-op; the workbook is only open during Append and Entries.
func (s *XLSXStore) Close() error { return nil }

// Append reads the whole worksheet, adds e as the last row and rewrites the
// workbook.
func (s *XLSXStore) Append(_ context.Context, e Entry) error {
	err := withLock(s.path, s.opts.Lock, func() error {
		sheet, rows, err := s.readRows()
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			rows = [][]string{Columns}
		} else if err = checkHeader(rows[0]); err != nil {
			return err
		}
		rows = append(rows, e.row())

		return s.write(sheet, rows)
	})
	if err != nil {
		return persistenceError("appending to", s.path, err)
	}
	return nil
}

// Entries returns every logged entry. A missing workbook is an empty log.
func (s *XLSXStore) Entries(_ context.Context) ([]Entry, error) {
	_, rows, err := s.readRows()
	if err != nil {
		return nil, persistenceError("reading", s.path, err)
	}
	entries, err := rowsToEntries(rows)
	if err != nil {
		return nil, persistenceError("reading", s.path, err)
	}
	return entries, nil
}

// readRows returns the first worksheet's name and its rows.
func (s *XLSXStore) readRows() (string, [][]string, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultSheet, nil, nil
		}
		return "", nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return "", nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return defaultSheet, nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return sheets[0], rows, nil
}

// write builds a fresh workbook holding rows and swaps it into place.
func (s *XLSXStore) write(sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("naming sheet %q: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := typedCells(row, i == 0)
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	return atomicWrite(s.path, buf.Bytes())
}

// typedCells keeps the count and CO2 columns numeric in the spreadsheet.
// Cells that do not parse are written back as text.
func typedCells(row []string, header bool) []interface{} {
	values := make([]interface{}, len(row))
	for i, c := range row {
		values[i] = c
		if header {
			continue
		}
		switch i {
		case colTrees, colYears:
			if n, err := strconv.Atoi(c); err == nil {
				values[i] = n
			}
		case colCO2:
			if f, err := strconv.ParseFloat(c, 64); err == nil {
				values[i] = f
			}
		}
	}
	return values
}
