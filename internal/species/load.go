package species

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/carbonroots/carbonroots/internal/greenops"
)

// ErrDataUnavailable indicates the species dataset is missing or malformed.
// No calculation can proceed without it.
var ErrDataUnavailable = errors.New("species dataset unavailable")

// EmbeddedSource is the Source of the dataset compiled into the binary.
const EmbeddedSource = "embedded:species.csv"

//go:embed data/species.csv
var embeddedCSV string

// Loader returns a freshly read species table on every call.
type Loader func() (*Table, error)

// NewLoader binds Load to a path. An empty path loads the embedded dataset.
func NewLoader(path string) Loader {
	return func() (*Table, error) {
		return Load(path)
	}
}

// Load reads a species dataset. An empty path selects the embedded default
// dataset; ".xlsx" files are read from their first worksheet; anything else
// is parsed as CSV. Every failure wraps ErrDataUnavailable.
func Load(path string) (*Table, error) {
	if path == "" {
		return parseCSV(strings.NewReader(embeddedCSV), EmbeddedSource)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		defer func() { _ = f.Close() }()
		return parseCSV(f, path)
	}
}

func parseCSV(r io.Reader, source string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrDataUnavailable, source, err)
	}
	return buildTable(rows, source)
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no worksheets", ErrDataUnavailable, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q of %s: %w", ErrDataUnavailable, sheets[0], path, err)
	}
	return buildTable(rows, path)
}

// buildTable validates the header and converts data rows into records.
func buildTable(rows [][]string, source string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrDataUnavailable, source)
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, source, err)
	}

	records := make([]Record, 0, len(rows)-1)
	seen := make(map[string]int, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}

		rec, parseErr := parseRecord(row, columns)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrDataUnavailable, source, line, parseErr)
		}
		if first, dup := seen[rec.Name]; dup {
			return nil, fmt.Errorf("%w: %s row %d: duplicate species %q (first on row %d)",
				ErrDataUnavailable, source, line, rec.Name, first)
		}
		seen[rec.Name] = line
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no species rows", ErrDataUnavailable, source)
	}

	return newTable(records, source), nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// maxPercent bounds the percentage columns.
const maxPercent = 100

func parseRecord(row []string, columns map[string]int) (Record, error) {
	cell := func(col string) string {
		i := columns[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell(ColumnSpecies)
	if name == "" {
		return Record{}, errors.New("blank species name")
	}

	rec := Record{Name: name, NativeRegion: cell(ColumnNativeRegion)}
	numbers := []struct {
		col     string
		dst     *float64
		percent bool
	}{
		{ColumnBiomassGain, &rec.AnnualBiomassGainKg, false},
		{ColumnCarbonContent, &rec.CarbonContentPercent, true},
		{ColumnSurvivalRate, &rec.SurvivalRatePercent, true},
	}
	for _, n := range numbers {
		v, err := strconv.ParseFloat(cell(n.col), 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %s: %w", n.col, err)
		}
		// ParseFloat accepts NaN, Inf and negatives.
		if err = greenops.CheckFinite(v); err != nil {
			return Record{}, fmt.Errorf("column %s: %q: %w", n.col, cell(n.col), err)
		}
		if n.percent && v > maxPercent {
			return Record{}, fmt.Errorf("column %s: %v is above %d percent", n.col, v, maxPercent)
		}
		*n.dst = v
	}
	if err := greenops.CheckFinite(rec.CO2PerYearKg()); err != nil {
		return Record{}, fmt.Errorf("CO2 per year for %s: %w", name, err)
	}
	return rec, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
