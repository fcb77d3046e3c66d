package table

// Groups partitions the rows of a table by the text value of a key column.
// Rows whose key is missing belong to no group.
type Groups struct {
	t    *Table
	key  string
	keys []string
	rows map[string][]int
}

// GroupBy partitions t by the values of column key.
func (t *Table) GroupBy(key string) (*Groups, error) {
	col, err := t.Column(key)
	if err != nil {
		return nil, err
	}
	g := &Groups{t: t, key: key, rows: make(map[string][]int)}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		k := col.Text(i)
		if _, ok := g.rows[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.rows[k] = append(g.rows[k], i)
	}
	return g, nil
}

// Keys returns group keys in order of first appearance.
func (g *Groups) Keys() []string { return append([]string(nil), g.keys...) }

// Rows returns the row positions belonging to a group.
func (g *Groups) Rows(key string) []int { return append([]int(nil), g.rows[key]...) }

// Count returns the number of rows per group.
func (g *Groups) Count() map[string]int64 {
	out := make(map[string]int64, len(g.keys))
	for _, k := range g.keys {
		out[k] = int64(len(g.rows[k]))
	}
	return out
}

// Mean returns the arithmetic mean of a numeric column per group, skipping
// missing values. Groups with no present values are omitted.
func (g *Groups) Mean(column string) (map[string]float64, error) {
	col, err := g.t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(g.keys))
	for _, k := range g.keys {
		var sum float64
		var n int
		for _, i := range g.rows[k] {
			if f, ok := col.Float(i); ok {
				sum += f
				n++
			}
		}
		if n > 0 {
			out[k] = sum / float64(n)
		}
	}
	return out, nil
}

// JoinInt left-joins per-group integer values onto t as column as. Rows whose
// key is missing or has no entry get a missing value.
func (t *Table) JoinInt(key, as string, values map[string]int64) error {
	col, err := t.Column(key)
	if err != nil {
		return err
	}
	n := t.NumRows()
	out := make([]int64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			continue
		}
		out[i], valid[i] = values[col.Text(i)]
	}
	return t.Set(NewIntColumn(as, out, valid))
}

// JoinFloat left-joins per-group float values onto t as column as. Rows whose
// key is missing or has no entry get a missing value.
func (t *Table) JoinFloat(key, as string, values map[string]float64) error {
	col, err := t.Column(key)
	if err != nil {
		return err
	}
	n := t.NumRows()
	out := make([]float64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			continue
		}
		out[i], valid[i] = values[col.Text(i)]
	}
	return t.Set(NewFloatColumn(as, out, valid))
}
