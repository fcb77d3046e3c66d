package table

import (
	"fmt"
	"sort"
)

// DeriveInt sets column as from fn evaluated on every row. fn returns
// false for a missing result.
func (t *Table) DeriveInt(as string, fn func(row int) (int64, bool)) error {
	n := t.NumRows()
	out := make([]int64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i], valid[i] = fn(i)
	}
	return t.Set(NewIntColumn(as, out, valid))
}

// DeriveFloat sets column as from fn evaluated on every row. fn returns
// false for a missing result.
func (t *Table) DeriveFloat(as string, fn func(row int) (float64, bool)) error {
	n := t.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i], valid[i] = fn(i)
	}
	return t.Set(NewFloatColumn(as, out, valid))
}

// FillNull replaces missing values of a numeric column with v and reports
// how many values were filled.
func (t *Table) FillNull(name string, v float64) (int, error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	filled := col.Clone()
	n := 0
	for i := range filled.valid {
		if filled.valid[i] {
			continue
		}
		switch filled.kind {
		case Float:
			filled.floats[i] = v
		case Int:
			filled.ints[i] = int64(v)
		default:
			return 0, fmt.Errorf("table: fill %q: %s column is not numeric", name, filled.kind)
		}
		filled.valid[i] = true
		n++
	}
	return n, t.Set(filled)
}

// Max returns the largest present value of a numeric column. ok is false
// when the column has no present values.
func (t *Table) Max(name string) (m float64, ok bool, err error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, false, err
	}
	for i := 0; i < col.Len(); i++ {
		f, present := col.Float(i)
		if !present {
			continue
		}
		if !ok || f > m {
			m, ok = f, true
		}
	}
	return m, ok, nil
}

// OneHot replaces column name with one 0/1 integer column per category,
// named prefix + "_" + value and appended at the end of the table. With an
// empty vocab the categories are the distinct present values, sorted.
// Otherwise exactly vocab is used, in order, and rows whose value is not in
// vocab get all zeros; their count is returned as unmatched.
func (t *Table) OneHot(name, prefix string, vocab []string) (columns []string, unmatched int, err error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, 0, err
	}
	if len(vocab) == 0 {
		seen := make(map[string]struct{})
		for i := 0; i < col.Len(); i++ {
			if !col.IsNull(i) {
				seen[col.Text(i)] = struct{}{}
			}
		}
		for v := range seen {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
	}

	pos := make(map[string]int, len(vocab))
	for j, v := range vocab {
		pos[v] = j
	}
	n := col.Len()
	indicators := make([][]int64, len(vocab))
	for j := range indicators {
		indicators[j] = make([]int64, n)
	}
	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			continue
		}
		j, ok := pos[col.Text(i)]
		if !ok {
			unmatched++
			continue
		}
		indicators[j][i] = 1
	}

	t.Drop(name)
	columns = make([]string, len(vocab))
	for j, v := range vocab {
		columns[j] = prefix + "_" + v
		if err := t.Add(NewIntColumn(columns[j], indicators[j], nil)); err != nil {
			return nil, 0, err
		}
	}
	return columns, unmatched, nil
}

// Categorize retypes the named columns as categorical.
func (t *Table) Categorize(names ...string) error {
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		if err := t.Set(ToCategorical(col)); err != nil {
			return err
		}
	}
	return nil
}
