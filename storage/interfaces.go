package storage

import "airbnb-cleaner/models"

// TableWriter is the interface any storage backend for cleaned listings must satisfy.
type TableWriter interface {
	Write(ct *models.CleanTable) error
	Close() error
}

var (
	_ TableWriter = (*CSVWriter)(nil)
	_ TableWriter = (*XLSXWriter)(nil)
	_ TableWriter = (*PostgresWriter)(nil)
)
