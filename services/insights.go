package services

import (
	"fmt"
	"sort"
	"strings"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises a cleaned listing table.
func (s *InsightService) Generate(ct *models.CleanTable) (*models.InsightReport, error) {
	report := &models.InsightReport{
		ListingsByGroup: make(map[string]int),
		AvgPriceByGroup: make(map[string]float64),
		ListingsByRoom:  make(map[string]int),
	}
	if ct == nil {
		return report, nil
	}

	report.TotalListings = ct.Len()
	report.InputListings = ct.InputRows
	report.DroppedListings = ct.DroppedRows
	if ct.Len() == 0 {
		return report, nil
	}

	t := ct.Table()
	ids, err := t.Column(models.ColID)
	if err != nil {
		return nil, err
	}
	price, err := t.Column(models.ColPrice)
	if err != nil {
		return nil, err
	}
	groups, err := t.Column(models.ColNeighbourhoodGroup)
	if err != nil {
		return nil, err
	}
	avg, err := t.Column(models.ColAvgPriceNeighbourhood)
	if err != nil {
		return nil, err
	}
	hasReviews, err := t.Column(models.ColHasReviews)
	if err != nil {
		return nil, err
	}
	pro, err := t.Column(models.ColHostIsProfessional)
	if err != nil {
		return nil, err
	}

	var total float64
	first := true
	for i := 0; i < ct.Len(); i++ {
		p, _ := price.Float(i)
		total += p
		if first || p < report.MinPrice {
			report.MinPrice = p
		}
		if first || p > report.MaxPrice {
			report.MaxPrice = p
			report.MostExpensiveID = ids.Int(i)
		}
		first = false

		if !groups.IsNull(i) {
			g := groups.Text(i)
			report.ListingsByGroup[g]++
			if a, ok := avg.Float(i); ok {
				report.AvgPriceByGroup[g] = round2(a)
			}
		}
		if hasReviews.Int(i) == 1 {
			report.ReviewedListings++
		}
		if pro.Int(i) == 1 {
			report.ProfessionalListings++
		}
	}
	report.AveragePrice = round2(total / float64(ct.Len()))
	report.MinPrice = round2(report.MinPrice)
	report.MaxPrice = round2(report.MaxPrice)

	for _, name := range ct.RoomColumns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		room := strings.TrimPrefix(name, models.RoomPrefix+"_")
		for i := 0; i < col.Len(); i++ {
			if col.Int(i) == 1 {
				report.ListingsByRoom[room]++
			}
		}
	}

	s.logger.Debug("[insights] Report built over %d listings", report.TotalListings)
	return report, nil
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 CLEANED LISTINGS INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Input listings         : \033[1m%d\033[0m\n", r.InputListings)
	fmt.Printf("  Kept after cleaning    : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Dropped as outliers    : \033[1m%d\033[0m\n", r.DroppedListings)
	fmt.Printf("  With reviews           : \033[1m%d\033[0m\n", r.ReviewedListings)
	fmt.Printf("  Professional hosts     : \033[1m%d\033[0m\n", r.ProfessionalListings)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics (per night)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m (listing %d)\n", r.MaxPrice, r.MostExpensiveID)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Neighbourhood Group\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, kc := range sortedCounts(r.ListingsByGroup) {
		fmt.Printf("  %-20s %6d  avg $%.2f\n", truncate(kc.key, 20), kc.count, r.AvgPriceByGroup[kc.key])
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Room Type\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByRoom) == 0 {
		fmt.Printf("  No room type data\n")
	}
	for _, kc := range sortedCounts(r.ListingsByRoom) {
		fmt.Printf("  %-30s %d\n", truncate(kc.key, 28), kc.count)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders a count map by count descending, then key.
func sortedCounts(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, c := range m {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
