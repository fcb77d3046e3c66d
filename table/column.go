package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used when a date value is rendered as text.
const DateLayout = "2006-01-02"

// Kind identifies the physical type held by a Column.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Date
	Categorical
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Date:
		return "date"
	case Categorical:
		return "categorical"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is a named, homogeneous array of per-row values. Only the slice
// matching Kind is populated. valid[i] is false when row i is missing.
type Column struct {
	name  string
	kind  Kind
	valid []bool

	strs   []string
	ints   []int64
	floats []float64
	dates  []time.Time

	// categorical: codes index into levels, -1 when missing
	codes  []int
	levels []string
}

func allValid(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

func validOrAll(valid []bool, n int) []bool {
	if valid == nil {
		return allValid(n)
	}
	return append([]bool(nil), valid...)
}

// NewStringColumn builds a text column. A nil valid slice marks every value present.
func NewStringColumn(name string, values []string, valid []bool) *Column {
	return &Column{name: name, kind: String, strs: append([]string(nil), values...), valid: validOrAll(valid, len(values))}
}

// NewIntColumn builds an integer column. A nil valid slice marks every value present.
func NewIntColumn(name string, values []int64, valid []bool) *Column {
	return &Column{name: name, kind: Int, ints: append([]int64(nil), values...), valid: validOrAll(valid, len(values))}
}

// NewFloatColumn builds a float column. NaN values are stored as missing.
func NewFloatColumn(name string, values []float64, valid []bool) *Column {
	c := &Column{name: name, kind: Float, floats: append([]float64(nil), values...), valid: validOrAll(valid, len(values))}
	for i, f := range c.floats {
		if math.IsNaN(f) {
			c.valid[i] = false
		}
	}
	return c
}

// NewDateColumn builds a date column. A nil valid slice marks every value present.
func NewDateColumn(name string, values []time.Time, valid []bool) *Column {
	return &Column{name: name, kind: Date, dates: append([]time.Time(nil), values...), valid: validOrAll(valid, len(values))}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.valid) }

// IsNull reports whether row i holds a missing value.
func (c *Column) IsNull(i int) bool { return !c.valid[i] }

// NullCount returns the number of missing values.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Levels returns the category set of a categorical column.
func (c *Column) Levels() []string { return append([]string(nil), c.levels...) }

func (c *Column) Str(i int) string      { return c.strs[i] }
func (c *Column) Int(i int) int64       { return c.ints[i] }
func (c *Column) Time(i int) time.Time  { return c.dates[i] }
func (c *Column) FloatAt(i int) float64 { return c.floats[i] }

// Float returns row i as a float64 for Int and Float columns. ok is false when
// the value is missing or the column is not numeric.
func (c *Column) Float(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.kind {
	case Int:
		return float64(c.ints[i]), true
	case Float:
		return c.floats[i], true
	}
	return 0, false
}

// Text returns row i rendered as text, "" when missing.
func (c *Column) Text(i int) string {
	if !c.valid[i] {
		return ""
	}
	switch c.kind {
	case String:
		return c.strs[i]
	case Int:
		return strconv.FormatInt(c.ints[i], 10)
	case Float:
		return strconv.FormatFloat(c.floats[i], 'f', -1, 64)
	case Date:
		return c.dates[i].Format(DateLayout)
	case Categorical:
		return c.levels[c.codes[i]]
	}
	return ""
}

// Value returns row i as a Go value (string, int64, float64 or time.Time),
// nil when missing.
func (c *Column) Value(i int) any {
	if !c.valid[i] {
		return nil
	}
	switch c.kind {
	case Int:
		return c.ints[i]
	case Float:
		return c.floats[i]
	case Date:
		return c.dates[i]
	default:
		return c.Text(i)
	}
}

// Renamed returns a copy of c under a new name.
func (c *Column) Renamed(name string) *Column {
	out := c.Clone()
	out.name = name
	return out
}

// Clone returns a deep copy of c.
func (c *Column) Clone() *Column {
	return &Column{
		name:   c.name,
		kind:   c.kind,
		valid:  append([]bool(nil), c.valid...),
		strs:   append([]string(nil), c.strs...),
		ints:   append([]int64(nil), c.ints...),
		floats: append([]float64(nil), c.floats...),
		dates:  append([]time.Time(nil), c.dates...),
		codes:  append([]int(nil), c.codes...),
		levels: append([]string(nil), c.levels...),
	}
}

// take returns a new column holding the given rows in order.
func (c *Column) take(rows []int) *Column {
	out := &Column{name: c.name, kind: c.kind, levels: append([]string(nil), c.levels...), valid: make([]bool, len(rows))}
	for j, i := range rows {
		out.valid[j] = c.valid[i]
	}
	switch c.kind {
	case String:
		out.strs = make([]string, len(rows))
		for j, i := range rows {
			out.strs[j] = c.strs[i]
		}
	case Int:
		out.ints = make([]int64, len(rows))
		for j, i := range rows {
			out.ints[j] = c.ints[i]
		}
	case Float:
		out.floats = make([]float64, len(rows))
		for j, i := range rows {
			out.floats[j] = c.floats[i]
		}
	case Date:
		out.dates = make([]time.Time, len(rows))
		for j, i := range rows {
			out.dates[j] = c.dates[i]
		}
	case Categorical:
		out.codes = make([]int, len(rows))
		for j, i := range rows {
			out.codes[j] = c.codes[i]
		}
	}
	return out
}

// ToInt coerces c into an integer column. Integral floats are accepted;
// anything else becomes missing.
func ToInt(c *Column) *Column {
	n := c.Len()
	vals := make([]int64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if !c.valid[i] {
			continue
		}
		switch c.kind {
		case Int:
			vals[i], valid[i] = c.ints[i], true
		case Float:
			f := c.floats[i]
			if f == math.Trunc(f) && !math.IsInf(f, 0) {
				vals[i], valid[i] = int64(f), true
			}
		default:
			s := strings.TrimSpace(c.Text(i))
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				vals[i], valid[i] = v, true
			} else if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
				vals[i], valid[i] = int64(f), true
			}
		}
	}
	return NewIntColumn(c.name, vals, valid)
}

// ToFloat coerces c into a float column; unparseable values become missing.
func ToFloat(c *Column) *Column {
	n := c.Len()
	vals := make([]float64, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if f, ok := c.Float(i); ok {
			vals[i], valid[i] = f, true
			continue
		}
		if !c.valid[i] || c.kind == Int || c.kind == Float {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(c.Text(i)), 64); err == nil {
			vals[i], valid[i] = f, true
		}
	}
	return NewFloatColumn(c.name, vals, valid)
}

// ToDate coerces c into a date column by trying each layout in turn;
// values matching none of them become missing.
func ToDate(c *Column, layouts []string) *Column {
	n := c.Len()
	vals := make([]time.Time, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if !c.valid[i] {
			continue
		}
		if c.kind == Date {
			vals[i], valid[i] = c.dates[i], true
			continue
		}
		s := strings.TrimSpace(c.Text(i))
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				vals[i], valid[i] = t, true
				break
			}
		}
	}
	return NewDateColumn(c.name, vals, valid)
}

// ToCategorical retypes c as categorical with a sorted level set. Values are
// unchanged.
func ToCategorical(c *Column) *Column {
	if c.kind == Categorical {
		return c.Clone()
	}
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if c.valid[i] {
			seen[c.Text(i)] = struct{}{}
		}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	pos := make(map[string]int, len(levels))
	for i, v := range levels {
		pos[v] = i
	}
	out := &Column{name: c.name, kind: Categorical, levels: levels, codes: make([]int, c.Len()), valid: append([]bool(nil), c.valid...)}
	for i := range out.codes {
		out.codes[i] = -1
		if c.valid[i] {
			out.codes[i] = pos[c.Text(i)]
		}
	}
	return out
}

func (c *Column) String() string {
	return fmt.Sprintf("%s(%s, %d rows)", c.name, c.kind, c.Len())
}
