package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"airbnb-cleaner/models"
	"airbnb-cleaner/table"
)

// missingTokens are cell values loaded as missing.
var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "NULL": {}, "null": {},
}

// ReadCSV loads the listing file at path. Headers are kept verbatim and
// every cell is loaded as text.
func ReadCSV(path string) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	return DecodeCSV(f)
}

// DecodeCSV reads a header row followed by records from r.
func DecodeCSV(r io.Reader) (*models.RawTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	values := make([][]string, len(header))
	valid := make([][]bool, len(header))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ErrFieldCount carries the offending line
			return nil, fmt.Errorf("csv: read record: %w", err)
		}
		for j, cell := range record {
			_, missing := missingTokens[cell]
			values[j] = append(values[j], cell)
			valid[j] = append(valid[j], !missing)
		}
	}

	cols := make([]*table.Column, len(header))
	for j, name := range header {
		cols[j] = table.NewStringColumn(name, values[j], valid[j])
	}
	t, err := table.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("csv: build table: %w", err)
	}
	return models.NewRawTable(t), nil
}
