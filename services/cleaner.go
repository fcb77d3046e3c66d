package services

import (
	"errors"
	"fmt"
	"strings"

	"airbnb-cleaner/models"
	"airbnb-cleaner/table"
	"airbnb-cleaner/utils"
)

// DaysPerYear is the fixed divisor for availability percentages, leap years included.
const DaysPerYear = 365

// dateLayouts are tried in order when parsing last_review.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
}

// Column groups coerced before the date column is parsed.
var (
	intColumns = []string{
		models.ColID, models.ColHostID, models.ColMinimumNights,
		models.ColNumberOfReviews, models.ColAvailability365,
	}
	floatColumns = []string{models.ColPrice, models.ColReviewsPerMonth}
	// optional pass-through columns, typed only when present
	optionalInt   = []string{models.ColHostListingsCount}
	optionalFloat = []string{models.ColLatitude, models.ColLongitude}
)

// Options holds the thresholds applied by the Cleaner.
type Options struct {
	PriceMin     float64
	PriceMax     float64
	MinNightsMin int64
	MinNightsMax int64
	// RoomTypes fixes the room_type indicator vocabulary. Empty means one
	// indicator per value observed in the batch.
	RoomTypes []string
}

// DefaultOptions returns the standard outlier bounds.
func DefaultOptions() Options {
	return Options{PriceMin: 100, PriceMax: 2000, MinNightsMin: 1, MinNightsMax: 365}
}

// Cleaner transforms a raw listing table into an analysis-ready table.
type Cleaner struct {
	logger *utils.Logger
	opts   Options
}

// NewCleaner creates a Cleaner with the given logger and thresholds.
func NewCleaner(logger *utils.Logger, opts Options) *Cleaner {
	return &Cleaner{logger: logger, opts: opts}
}

// NormalizeHeader trims, lowercases and replaces spaces with underscores.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Clean runs the cleaning pipeline on a copy of raw. It fails before any
// transformation if a required column is missing.
func (c *Cleaner) Clean(raw *models.RawTable) (*models.CleanTable, error) {
	t := raw.Table().Clone()

	if err := t.RenameAll(NormalizeHeader); err != nil {
		return nil, fmt.Errorf("cleaner: normalise headers: %w", err)
	}
	if err := checkSchema(t); err != nil {
		return nil, err
	}

	t.Drop(models.ColName, models.ColHostName)

	if err := c.coerceTypes(t); err != nil {
		return nil, err
	}

	filled, err := t.FillNull(models.ColReviewsPerMonth, 0)
	if err != nil {
		return nil, fmt.Errorf("cleaner: fill reviews_per_month: %w", err)
	}
	c.logger.Debug("[cleaner] Filled %d missing reviews_per_month values", filled)

	if err := deriveHasReviews(t); err != nil {
		return nil, err
	}

	inputRows := t.NumRows()
	t, err = c.filterOutliers(t)
	if err != nil {
		return nil, err
	}
	dropped := inputRows - t.NumRows()

	if err := addHostFeatures(t); err != nil {
		return nil, err
	}
	if err := addNeighbourhoodPrice(t); err != nil {
		return nil, err
	}
	if err := addAvailabilityPct(t); err != nil {
		return nil, err
	}
	if err := addScaledReviews(t); err != nil {
		return nil, err
	}

	roomCols, unmatched, err := t.OneHot(models.ColRoomType, models.RoomPrefix, c.opts.RoomTypes)
	if err != nil {
		return nil, fmt.Errorf("cleaner: encode room_type: %w", err)
	}
	if unmatched > 0 {
		c.logger.Warn("[cleaner] %d listings have a room_type outside the configured vocabulary", unmatched)
	}

	if err := t.Categorize(models.ColNeighbourhoodGroup, models.ColNeighbourhood); err != nil {
		return nil, fmt.Errorf("cleaner: categorise: %w", err)
	}

	t.ResetIndex()

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)", inputRows, t.NumRows(), dropped)
	return models.NewCleanTable(t, inputRows, dropped, roomCols), nil
}

func checkSchema(t *table.Table) error {
	var missing []string
	for _, name := range models.RequiredColumns {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &models.SchemaError{Missing: missing}
	}
	return nil
}

// coerceTypes gives numeric columns their semantic types and parses
// last_review. Unparseable values become missing.
func (c *Cleaner) coerceTypes(t *table.Table) error {
	convert := func(names []string, optional bool, fn func(*table.Column) *table.Column) error {
		for _, name := range names {
			col, err := t.Column(name)
			if errors.Is(err, table.ErrColumnNotFound) && optional {
				continue
			}
			if err != nil {
				return fmt.Errorf("cleaner: coerce %q: %w", name, err)
			}
			typed := fn(col)
			if lost := typed.NullCount() - col.NullCount(); lost > 0 {
				c.logger.Debug("[cleaner] %d unparseable %s values set to missing", lost, name)
			}
			if err := t.Set(typed); err != nil {
				return fmt.Errorf("cleaner: coerce %q: %w", name, err)
			}
		}
		return nil
	}

	if err := convert(intColumns, false, table.ToInt); err != nil {
		return err
	}
	if err := convert(floatColumns, false, table.ToFloat); err != nil {
		return err
	}
	if err := convert(optionalInt, true, table.ToInt); err != nil {
		return err
	}
	if err := convert(optionalFloat, true, table.ToFloat); err != nil {
		return err
	}
	return convert([]string{models.ColLastReview}, false, func(col *table.Column) *table.Column {
		return table.ToDate(col, dateLayouts)
	})
}

func deriveHasReviews(t *table.Table) error {
	reviews, err := t.Column(models.ColNumberOfReviews)
	if err != nil {
		return err
	}
	return t.DeriveInt(models.ColHasReviews, func(i int) (int64, bool) {
		return indicator(!reviews.IsNull(i) && reviews.Int(i) > 0), true
	})
}

// filterOutliers keeps rows whose price and minimum_nights lie within the
// configured bounds. Missing values fail the bounds.
func (c *Cleaner) filterOutliers(t *table.Table) (*table.Table, error) {
	price, err := t.Column(models.ColPrice)
	if err != nil {
		return nil, err
	}
	nights, err := t.Column(models.ColMinimumNights)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(i int) bool {
		p, ok := price.Float(i)
		if !ok || p < c.opts.PriceMin || p > c.opts.PriceMax {
			return false
		}
		if nights.IsNull(i) {
			return false
		}
		n := nights.Int(i)
		return n >= c.opts.MinNightsMin && n <= c.opts.MinNightsMax
	}), nil
}

func addHostFeatures(t *table.Table) error {
	hosts, err := t.GroupBy(models.ColHostID)
	if err != nil {
		return err
	}
	if err := t.JoinInt(models.ColHostID, models.ColHostTotalListings, hosts.Count()); err != nil {
		return fmt.Errorf("cleaner: join host counts: %w", err)
	}
	total, err := t.Column(models.ColHostTotalListings)
	if err != nil {
		return err
	}
	return t.DeriveInt(models.ColHostIsProfessional, func(i int) (int64, bool) {
		return indicator(!total.IsNull(i) && total.Int(i) > 1), true
	})
}

func addNeighbourhoodPrice(t *table.Table) error {
	groups, err := t.GroupBy(models.ColNeighbourhoodGroup)
	if err != nil {
		return err
	}
	means, err := groups.Mean(models.ColPrice)
	if err != nil {
		return err
	}
	if err := t.JoinFloat(models.ColNeighbourhoodGroup, models.ColAvgPriceNeighbourhood, means); err != nil {
		return fmt.Errorf("cleaner: join neighbourhood prices: %w", err)
	}
	return nil
}

func addAvailabilityPct(t *table.Table) error {
	avail, err := t.Column(models.ColAvailability365)
	if err != nil {
		return err
	}
	return t.DeriveFloat(models.ColAvailabilityPct, func(i int) (float64, bool) {
		days, ok := avail.Float(i)
		if !ok {
			return 0, false
		}
		return days / DaysPerYear * 100, true
	})
}

// addScaledReviews divides reviews_per_month by its maximum. A zero maximum
// (or an empty table) scales every row to 0.
func addScaledReviews(t *table.Table) error {
	reviews, err := t.Column(models.ColReviewsPerMonth)
	if err != nil {
		return err
	}
	peak, ok, err := t.Max(models.ColReviewsPerMonth)
	if err != nil {
		return err
	}
	return t.DeriveFloat(models.ColReviewsScaled, func(i int) (float64, bool) {
		r, present := reviews.Float(i)
		if !present || !ok || peak == 0 {
			return 0, true
		}
		return r / peak, true
	})
}

func indicator(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
