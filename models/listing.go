package models

import (
	"errors"
	"strings"

	"airbnb-cleaner/table"
)

// Column names of the listing dataset after header normalisation.
const (
	ColID                    = "id"
	ColName                  = "name"
	ColHostID                = "host_id"
	ColHostName              = "host_name"
	ColNeighbourhoodGroup    = "neighbourhood_group"
	ColNeighbourhood         = "neighbourhood"
	ColLatitude              = "latitude"
	ColLongitude             = "longitude"
	ColRoomType              = "room_type"
	ColPrice                 = "price"
	ColMinimumNights         = "minimum_nights"
	ColNumberOfReviews       = "number_of_reviews"
	ColLastReview            = "last_review"
	ColReviewsPerMonth       = "reviews_per_month"
	ColHostListingsCount     = "calculated_host_listings_count"
	ColAvailability365       = "availability_365"
	ColHasReviews            = "has_reviews"
	ColHostTotalListings     = "host_total_listings"
	ColHostIsProfessional    = "host_is_professional"
	ColAvgPriceNeighbourhood = "avg_price_neighbourhood"
	ColAvailabilityPct       = "availability_pct"
	ColReviewsScaled         = "reviews_per_month_scaled"
)

// RoomPrefix prefixes the indicator columns generated from room_type.
const RoomPrefix = "room"

// RequiredColumns must all be present in a raw listing table.
var RequiredColumns = []string{
	ColID, ColHostID, ColNeighbourhoodGroup, ColNeighbourhood, ColRoomType,
	ColPrice, ColMinimumNights, ColNumberOfReviews, ColLastReview,
	ColReviewsPerMonth, ColAvailability365,
}

// ErrMissingColumn marks a raw table that lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// SchemaError lists the required columns absent from an input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return ErrMissingColumn.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumn }

// RawTable is a listing table as loaded from the source file, before any
// cleaning. Only a RawTable can be cleaned.
type RawTable struct {
	t *table.Table
}

// NewRawTable wraps a freshly loaded table.
func NewRawTable(t *table.Table) *RawTable { return &RawTable{t: t} }

// Table returns the underlying table.
func (r *RawTable) Table() *table.Table { return r.t }

// CleanTable is the analysis-ready result of cleaning a RawTable. It has a
// different schema from RawTable and cannot be fed back into the cleaner.
type CleanTable struct {
	t *table.Table

	// InputRows and DroppedRows describe the outlier filter's effect.
	InputRows   int
	DroppedRows int
	// RoomColumns are the generated room_type indicator columns, in order.
	RoomColumns []string
}

// NewCleanTable wraps the cleaner's output table.
func NewCleanTable(t *table.Table, inputRows, droppedRows int, roomColumns []string) *CleanTable {
	return &CleanTable{t: t, InputRows: inputRows, DroppedRows: droppedRows, RoomColumns: roomColumns}
}

// Table returns the underlying table.
func (c *CleanTable) Table() *table.Table { return c.t }

// Len returns the number of listings.
func (c *CleanTable) Len() int { return c.t.NumRows() }

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	TotalListings        int
	InputListings        int
	DroppedListings      int
	AveragePrice         float64
	MinPrice             float64
	MaxPrice             float64
	MostExpensiveID      int64
	ReviewedListings     int
	ProfessionalListings int

	ListingsByGroup map[string]int
	AvgPriceByGroup map[string]float64
	ListingsByRoom  map[string]int
}
