package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"airbnb-cleaner/models"
	"airbnb-cleaner/table"
)

// SheetName is the worksheet holding the cleaned listings.
const SheetName = "listings"

// XLSXWriter writes a cleaned listing table to an Excel workbook.
type XLSXWriter struct {
	path string
	file *excelize.File
}

// NewXLSXWriter prepares a workbook that is saved to path on Write.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: name sheet: %w", err)
	}
	return &XLSXWriter{path: path, file: f}, nil
}

// Write stores the header in row 1 and one typed row per listing below it.
// Missing values are left as empty cells.
func (x *XLSXWriter) Write(ct *models.CleanTable) error {
	t := ct.Table()

	header := make([]interface{}, 0, t.NumCols())
	for _, n := range t.Names() {
		header = append(header, n)
	}
	if err := x.file.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	cols := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			if col.IsNull(i) {
				continue
			}
			// dates are stored as text to avoid locale-dependent number formats
			if col.Kind() == table.Date {
				row[j] = col.Text(i)
				continue
			}
			row[j] = col.Value(i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := x.file.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i, err)
		}
	}

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) Close() error {
	return x.file.Close()
}
