// Package table implements a small in-memory columnar table with the
// operations the listing cleaner needs: row filtering, group-by aggregates,
// left joins of per-group values, vectorized arithmetic and one-hot encoding.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("table: column not found")
	// ErrLengthMismatch is returned when a column's length differs from the table's row count.
	ErrLengthMismatch = errors.New("table: column length mismatch")
	// ErrDuplicateColumn is returned when two columns would share a name.
	ErrDuplicateColumn = errors.New("table: duplicate column")
)

// Table is an ordered set of equally long columns plus a row index. The
// index labels rows by their original position and survives filtering
// until ResetIndex is called.
type Table struct {
	cols  []*Column
	index []int
}

// New builds a table from columns. All columns must have the same length
// and distinct names.
func New(cols ...*Column) (*Table, error) {
	t := &Table{}
	for _, c := range cols {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	if t.index == nil {
		t.index = []int{}
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.index) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Index returns a copy of the row index labels.
func (t *Table) Index() []int { return append([]int(nil), t.index...) }

// ResetIndex renumbers rows contiguously from 0.
func (t *Table) ResetIndex() {
	for i := range t.index {
		t.index[i] = i
	}
}

// Names returns column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in order. Callers must not modify them.
func (t *Table) Columns() []*Column { return append([]*Column(nil), t.cols...) }

func (t *Table) position(name string) int {
	for i, c := range t.cols {
		if c.name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool { return t.position(name) >= 0 }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, error) {
	if i := t.position(name); i >= 0 {
		return t.cols[i], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Add appends a new column.
func (t *Table) Add(c *Column) error {
	if t.Has(c.name) {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
	}
	if len(t.cols) == 0 {
		t.index = make([]int, c.Len())
		t.ResetIndex()
	}
	if c.Len() != t.NumRows() {
		return fmt.Errorf("%w: %q has %d rows, table has %d", ErrLengthMismatch, c.name, c.Len(), t.NumRows())
	}
	t.cols = append(t.cols, c)
	return nil
}

// Set replaces the column with the same name in place, or appends it.
func (t *Table) Set(c *Column) error {
	i := t.position(c.name)
	if i < 0 {
		return t.Add(c)
	}
	if c.Len() != t.NumRows() {
		return fmt.Errorf("%w: %q has %d rows, table has %d", ErrLengthMismatch, c.name, c.Len(), t.NumRows())
	}
	t.cols[i] = c
	return nil
}

// Drop removes the named columns. Absent names are ignored.
func (t *Table) Drop(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if _, ok := drop[c.name]; !ok {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(t.cols); i++ {
		t.cols[i] = nil
	}
	t.cols = kept
}

// RenameAll applies fn to every column name. It fails without modifying the
// table if two columns would end up with the same name.
func (t *Table) RenameAll(fn func(string) string) error {
	renamed := make([]string, len(t.cols))
	seen := make(map[string]string, len(t.cols))
	for i, c := range t.cols {
		n := fn(c.name)
		if prev, dup := seen[n]; dup {
			return fmt.Errorf("%w: %q and %q both become %q", ErrDuplicateColumn, prev, c.name, n)
		}
		seen[n] = c.name
		renamed[i] = n
	}
	for i, c := range t.cols {
		if c.name != renamed[i] {
			t.cols[i] = c.Renamed(renamed[i])
		}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := &Table{cols: make([]*Column, len(t.cols)), index: t.Index()}
	for i, c := range t.cols {
		out.cols[i] = c.Clone()
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true.
// Index labels of kept rows are preserved.
func (t *Table) Filter(keep func(row int) bool) *Table {
	rows := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	out := &Table{cols: make([]*Column, len(t.cols)), index: make([]int, len(rows))}
	for j, i := range rows {
		out.index[j] = t.index[i]
	}
	for k, c := range t.cols {
		out.cols[k] = c.take(rows)
	}
	return out
}
