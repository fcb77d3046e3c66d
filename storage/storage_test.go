package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"airbnb-cleaner/models"
	"airbnb-cleaner/table"
)

func sampleClean(t *testing.T) *models.CleanTable {
	t.Helper()
	tbl, err := table.New(
		table.NewIntColumn("id", []int64{1, 2}, nil),
		table.ToCategorical(table.NewStringColumn("neighbourhood_group", []string{"Brooklyn", "Queens"}, nil)),
		table.NewFloatColumn("price", []float64{150, 99.5}, nil),
		table.NewDateColumn("last_review", []time.Time{time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC), {}}, []bool{true, false}),
		table.NewIntColumn("room_Private room", []int64{0, 1}, nil),
	)
	require.NoError(t, err)
	return models.NewCleanTable(tbl, 3, 1, []string{"room_Private room"})
}

func TestDecodeCSV(t *testing.T) {
	in := "id,name,price,reviews_per_month\n1,Loft,150,\n2,,NaN,0.5\n"
	raw, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)

	tbl := raw.Table()
	assert.Equal(t, []string{"id", "name", "price", "reviews_per_month"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())

	rpm, err := tbl.Column("reviews_per_month")
	require.NoError(t, err)
	assert.True(t, rpm.IsNull(0))
	assert.Equal(t, "0.5", rpm.Text(1))

	price, _ := tbl.Column("price")
	assert.True(t, price.IsNull(1), "NaN token is missing")
}

func TestDecodeCSVErrors(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = DecodeCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCSVWriterWritesWithoutIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "clean.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleClean(t)))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "id,neighbourhood_group,price,last_review,room_Private room\n" +
		"1,Brooklyn,150,2019-05-21,0\n" +
		"2,Queens,99.5,,1\n"
	assert.Equal(t, want, string(data))
}

func TestCSVRoundTripKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleClean(t)))
	require.NoError(t, w.Close())

	raw, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, sampleClean(t).Table().Names(), raw.Table().Names())
	assert.Equal(t, 2, raw.Table().NumRows())
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.xlsx")
	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleClean(t)))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "room_Private room", rows[0][4])
	assert.Equal(t, "Brooklyn", rows[1][1])
	assert.Equal(t, "2019-05-21", rows[1][3])
	assert.Equal(t, "99.5", rows[2][2])
}

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL("listings_clean", sampleClean(t).Table())
	assert.Contains(t, got, `DROP TABLE IF EXISTS "listings_clean";`)
	assert.Contains(t, got, `"id" BIGINT`)
	assert.Contains(t, got, `"neighbourhood_group" TEXT`)
	assert.Contains(t, got, `"price" DOUBLE PRECISION`)
	assert.Contains(t, got, `"last_review" DATE`)
	assert.Contains(t, got, `"room_Private room" BIGINT`)
}

func TestInsertSQL(t *testing.T) {
	got := insertSQL("listings_clean", sampleClean(t).Table(), 2)
	assert.True(t, strings.HasPrefix(got, `INSERT INTO "listings_clean" ("id","neighbourhood_group","price","last_review","room_Private room") VALUES `))
	assert.True(t, strings.HasSuffix(got, "($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)"))
}
