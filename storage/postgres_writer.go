package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"airbnb-cleaner/models"
	"airbnb-cleaner/table"
	"airbnb-cleaner/utils"
)

const batchSize = 50

// PostgresWriter persists cleaned listings to a PostgreSQL table whose
// columns mirror the cleaned table.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter opens a connection to PostgreSQL and pings it under the
// given retry policy.
func NewPostgresWriter(ctx context.Context, dsn, tableName string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{db: db, table: tableName}, nil
}

// sqlType maps a column kind to its PostgreSQL type.
func sqlType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	case table.Date:
		return "DATE"
	default:
		return "TEXT"
	}
}

// createTableSQL recreates the target table for the columns of t. The
// indicator columns differ between batches, so the table is rebuilt on
// every write.
func createTableSQL(name string, t *table.Table) string {
	defs := make([]string, 0, t.NumCols())
	for _, col := range t.Columns() {
		defs = append(defs, pq.QuoteIdentifier(col.Name())+" "+sqlType(col.Kind()))
	}
	quoted := pq.QuoteIdentifier(name)
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;\nCREATE TABLE %s (\n\t%s\n);",
		quoted, quoted, strings.Join(defs, ",\n\t"))
}

// insertSQL builds a multi-row INSERT for rows rows of t.
func insertSQL(name string, t *table.Table, rows int) string {
	cols := make([]string, t.NumCols())
	for j, n := range t.Names() {
		cols[j] = pq.QuoteIdentifier(n)
	}

	valueStrings := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		ph := make([]string, len(cols))
		for j := range cols {
			ph[j] = fmt.Sprintf("$%d", r*len(cols)+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(name), strings.Join(cols, ","), strings.Join(valueStrings, ","))
}

// Write replaces the target table with the rows of ct in one transaction.
func (pw *PostgresWriter) Write(ct *models.CleanTable) error {
	return pw.WriteContext(context.Background(), ct)
}

// WriteContext is Write with a caller supplied context.
func (pw *PostgresWriter) WriteContext(ctx context.Context, ct *models.CleanTable) error {
	t := ct.Table()
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createTableSQL(pw.table, t)); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}

	cols := t.Columns()
	for i := 0; i < t.NumRows(); i += batchSize {
		end := i + batchSize
		if end > t.NumRows() {
			end = t.NumRows()
		}
		args := make([]interface{}, 0, (end-i)*len(cols))
		for r := i; r < end; r++ {
			for _, col := range cols {
				args = append(args, col.Value(r))
			}
		}
		if _, err := tx.ExecContext(ctx, insertSQL(pw.table, t, end-i), args...); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", i, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Count returns the number of rows stored in the target table.
func (pw *PostgresWriter) Count(ctx context.Context) (int, error) {
	var n int
	q := "SELECT COUNT(*) FROM " + pq.QuoteIdentifier(pw.table)
	if err := pw.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
