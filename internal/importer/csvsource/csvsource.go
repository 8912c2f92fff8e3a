// Package csvsource turns an uploaded CSV file into import records. The first
// line is the header; every following non-empty line becomes one record keyed
// by header name. File encoding is auto-detected and decoded to UTF-8 before
// parsing.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jvalencia/ledgeradmin/internal/importer"
)

// ErrHeaderMismatch reports a CSV whose header does not carry all required
// columns for the target kind.
var ErrHeaderMismatch = errors.New("csv header does not match the selected table")

// Read parses r as CSV and returns one record per data row. The header must
// contain every required field of kind; extra columns are kept as-is. Rows
// shorter than the header leave the trailing fields empty, which the
// validator then reports as missing.
func Read(r io.Reader, kind importer.Kind) ([]importer.Record, error) {
	utf8r, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv file")
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	if err := checkHeader(header, kind); err != nil {
		return nil, err
	}

	var records []importer.Record

	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		rec := make(importer.Record, len(header))

		for i, name := range header {
			if name == "" {
				continue
			}

			rec[name] = cellValue(row, i)
		}

		records = append(records, rec)
	}

	return records, nil
}

func checkHeader(header []string, kind importer.Kind) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}

	for _, name := range importer.RequiredFields(kind) {
		if _, ok := present[name]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrHeaderMismatch, name)
		}
	}

	return nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
