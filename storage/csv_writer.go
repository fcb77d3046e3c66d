package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"airbnb-cleaner/models"
)

// CSVWriter writes a cleaned listing table to a CSV file, header first and
// without an index column.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{path: path, file: f, writer: csv.NewWriter(f)}, nil
}

// Write writes the header and every row of ct.
func (c *CSVWriter) Write(ct *models.CleanTable) error {
	t := ct.Table()
	if err := c.writer.Write(t.Names()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	cols := t.Columns()
	row := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range cols {
			row[j] = col.Text(i)
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
