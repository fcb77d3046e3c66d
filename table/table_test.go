package table

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		NewIntColumn("host_id", []int64{7, 7, 9, 0}, []bool{true, true, true, false}),
		NewStringColumn("group", []string{"Brooklyn", "Manhattan", "Brooklyn", "Queens"}, nil),
		NewFloatColumn("price", []float64{100, 300, 200, 150}, nil),
	)
	require.NoError(t, err)
	return tbl
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := New(
		NewIntColumn("a", []int64{1, 2}, nil),
		NewIntColumn("b", []int64{1}, nil),
	)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestColumnLookup(t *testing.T) {
	tbl := sampleTable(t)
	_, err := tbl.Column("missing")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
	assert.True(t, tbl.Has("price"))
	assert.Equal(t, []string{"host_id", "group", "price"}, tbl.Names())
}

func TestDropIgnoresAbsent(t *testing.T) {
	tbl := sampleTable(t)
	tbl.Drop("group", "nope")
	assert.Equal(t, []string{"host_id", "price"}, tbl.Names())
}

func TestRenameAllDetectsCollision(t *testing.T) {
	tbl, err := New(
		NewIntColumn("A", []int64{1}, nil),
		NewIntColumn("a", []int64{2}, nil),
	)
	require.NoError(t, err)

	err = tbl.RenameAll(func(s string) string { return "a" })
	assert.True(t, errors.Is(err, ErrDuplicateColumn))
	assert.Equal(t, []string{"A", "a"}, tbl.Names(), "failed rename must not modify the table")
}

func TestFilterKeepsIndexLabels(t *testing.T) {
	tbl := sampleTable(t)
	price, _ := tbl.Column("price")

	out := tbl.Filter(func(i int) bool {
		f, _ := price.Float(i)
		return f >= 150
	})
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []int{1, 2, 3}, out.Index())
	assert.Equal(t, 4, tbl.NumRows(), "source table is unchanged")

	out.ResetIndex()
	assert.Equal(t, []int{0, 1, 2}, out.Index())
}

func TestGroupCountAndJoin(t *testing.T) {
	tbl := sampleTable(t)
	g, err := tbl.GroupBy("host_id")
	require.NoError(t, err)

	counts := g.Count()
	assert.Equal(t, map[string]int64{"7": 2, "9": 1}, counts)
	assert.Equal(t, []string{"7", "9"}, g.Keys())

	require.NoError(t, tbl.JoinInt("host_id", "n", counts))
	n, err := tbl.Column("n")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.Int(0))
	assert.Equal(t, int64(2), n.Int(1))
	assert.Equal(t, int64(1), n.Int(2))
	assert.True(t, n.IsNull(3), "row with missing key gets a missing value")
}

func TestGroupMeanAndJoin(t *testing.T) {
	tbl := sampleTable(t)
	g, err := tbl.GroupBy("group")
	require.NoError(t, err)

	means, err := g.Mean("price")
	require.NoError(t, err)
	assert.InDelta(t, 150.0, means["Brooklyn"], 1e-9)
	assert.InDelta(t, 300.0, means["Manhattan"], 1e-9)

	require.NoError(t, tbl.JoinFloat("group", "avg", means))
	avg, _ := tbl.Column("avg")
	assert.InDelta(t, 150.0, avg.FloatAt(2), 1e-9)

	_, err = g.Mean("nope")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestFillNullAndMax(t *testing.T) {
	tbl, err := New(NewFloatColumn("r", []float64{0.5, 0, 2}, []bool{true, false, true}))
	require.NoError(t, err)

	filled, err := tbl.FillNull("r", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	r, _ := tbl.Column("r")
	assert.Equal(t, 0, r.NullCount())

	m, ok, err := tbl.Max("r")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2.0, m)
}

func TestFillNullRejectsText(t *testing.T) {
	tbl, err := New(NewStringColumn("s", []string{""}, []bool{false}))
	require.NoError(t, err)
	_, err = tbl.FillNull("s", 0)
	assert.Error(t, err)
}

func TestOneHotObservedValues(t *testing.T) {
	tbl, err := New(NewStringColumn("room_type", []string{"Private room", "Entire home/apt", "Private room"}, nil))
	require.NoError(t, err)

	cols, unmatched, err := tbl.OneHot("room_type", "room", nil)
	require.NoError(t, err)
	assert.Zero(t, unmatched)
	assert.Equal(t, []string{"room_Entire home/apt", "room_Private room"}, cols)
	assert.False(t, tbl.Has("room_type"))

	private, _ := tbl.Column("room_Private room")
	assert.Equal(t, []int64{1, 0, 1}, []int64{private.Int(0), private.Int(1), private.Int(2)})
}

func TestOneHotFixedVocabulary(t *testing.T) {
	tbl, err := New(NewStringColumn("room_type", []string{"Hotel room", "Shared room"}, nil))
	require.NoError(t, err)

	cols, unmatched, err := tbl.OneHot("room_type", "room", []string{"Shared room", "Private room"})
	require.NoError(t, err)
	assert.Equal(t, 1, unmatched)
	assert.Equal(t, []string{"room_Shared room", "room_Private room"}, cols)
}

func TestCoercions(t *testing.T) {
	raw := NewStringColumn("v", []string{"12", "3.0", "abc", "2.5", ""}, []bool{true, true, true, true, false})

	ints := ToInt(raw)
	assert.Equal(t, Int, ints.Kind())
	assert.Equal(t, int64(12), ints.Int(0))
	assert.Equal(t, int64(3), ints.Int(1))
	assert.True(t, ints.IsNull(2))
	assert.True(t, ints.IsNull(3), "non-integral value is missing")
	assert.True(t, ints.IsNull(4))

	floats := ToFloat(raw)
	assert.Equal(t, 2.5, floats.FloatAt(3))
	assert.Equal(t, 2, floats.NullCount())

	dates := ToDate(NewStringColumn("d", []string{"2019-05-21", "not a date"}, nil), []string{DateLayout})
	assert.Equal(t, time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC), dates.Time(0))
	assert.True(t, dates.IsNull(1))
	assert.Equal(t, "2019-05-21", dates.Text(0))
	assert.Equal(t, "", dates.Text(1))
}

func TestToCategoricalKeepsValues(t *testing.T) {
	c := ToCategorical(NewStringColumn("g", []string{"Queens", "Bronx", "", "Queens"}, []bool{true, true, false, true}))
	assert.Equal(t, Categorical, c.Kind())
	assert.Equal(t, []string{"Bronx", "Queens"}, c.Levels())
	assert.Equal(t, "Queens", c.Text(0))
	assert.Equal(t, "Bronx", c.Text(1))
	assert.True(t, c.IsNull(2))
}
