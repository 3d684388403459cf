package services

import (
	"testing"
	"time"

	"soletracker_backend/internal/models"

	"github.com/shopspring/decimal"
)

func soldRecord(id int64, purchasePrice, soldPrice string, soldDate time.Time) models.MergedItem {
	sp := decimal.RequireFromString(soldPrice)
	sd := soldDate
	return models.MergedItem{
		Item: models.Item{
			ID:            id,
			Name:          "Test Sneaker",
			PurchasePrice: decimal.RequireFromString(purchasePrice),
			Size:          "UK9",
			Status:        models.StatusSold,
		},
		SoldPrice: &sp,
		SoldDate:  &sd,
	}
}

func availableRecord(id int64, purchasePrice string) models.MergedItem {
	return models.MergedItem{
		Item: models.Item{
			ID:            id,
			Name:          "Shelf Sneaker",
			PurchasePrice: decimal.RequireFromString(purchasePrice),
			Size:          "UK8",
			Status:        models.StatusAvailable,
		},
	}
}

func TestPercentChangeThresholds(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		previous  string
		direction models.Direction
		formatted string
	}{
		{"above band is up", "103", "100", models.DirectionUp, "+3.0%"},
		{"inside band is neutral", "100.4", "100", models.DirectionNeutral, "0%"},
		{"below band is down", "90", "100", models.DirectionDown, "-10.0%"},
		{"zero previous guards division", "0", "0", models.DirectionNeutral, "N/A"},
		{"zero previous with sales", "250", "0", models.DirectionNeutral, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentChange(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
			if got.Direction != tt.direction {
				t.Errorf("direction: expected %s, got %s", tt.direction, got.Direction)
			}
			if got.FormattedString != tt.formatted {
				t.Errorf("formatted: expected %q, got %q", tt.formatted, got.FormattedString)
			}
		})
	}
}

func TestCountChangeUsesRawDifference(t *testing.T) {
	if got := countChange(3, 1); got.Direction != models.DirectionUp || got.FormattedString != "+2" {
		t.Errorf("expected UP/+2, got %s/%q", got.Direction, got.FormattedString)
	}
	if got := countChange(1, 3); got.Direction != models.DirectionDown || got.FormattedString != "-2" {
		t.Errorf("expected DOWN/-2, got %s/%q", got.Direction, got.FormattedString)
	}
	if got := countChange(2, 2); got.Direction != models.DirectionNeutral || got.FormattedString != "0" {
		t.Errorf("expected NEUTRAL/0, got %s/%q", got.Direction, got.FormattedString)
	}
}

func TestComputeStatsWindowBoundary(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	records := []models.MergedItem{
		// Exactly 7 days ago: inclusive boundary, counts for the current weekly window.
		soldRecord(1, "60", "100", now.AddDate(0, 0, -7)),
		// 8 days ago: outside the current window, inside the comparison window.
		soldRecord(2, "30", "50", now.AddDate(0, 0, -8)),
	}

	stats := ComputeStats(records, models.PeriodWeekly, now)

	if stats.Sold != 1 {
		t.Errorf("expected 1 item sold in current window, got %d", stats.Sold)
	}
	if !stats.Revenue.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected revenue 100, got %s", stats.Revenue)
	}
	// The boundary record belongs to both windows (shared inclusive edge), so
	// the comparison window holds 100+50.
	if stats.RevenueChange.Direction != models.DirectionDown {
		t.Errorf("expected revenue DOWN, got %s", stats.RevenueChange.Direction)
	}
	if stats.RevenueChange.FormattedString != "-33.3%" {
		t.Errorf("expected -33.3%%, got %q", stats.RevenueChange.FormattedString)
	}
}

func TestComputeStatsMetrics(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []models.MergedItem{
		soldRecord(1, "120", "200", now.AddDate(0, 0, -2)),
		soldRecord(2, "80", "90", now.AddDate(0, 0, -10)),
		availableRecord(3, "500"),
		// Far outside every monthly window.
		soldRecord(4, "10", "1000", now.AddDate(0, 0, -200)),
	}

	stats := ComputeStats(records, models.PeriodMonthly, now)

	if stats.Sold != 2 {
		t.Fatalf("expected 2 sold in window, got %d", stats.Sold)
	}
	if !stats.Revenue.Equal(decimal.NewFromInt(290)) {
		t.Errorf("expected revenue 290, got %s", stats.Revenue)
	}
	if !stats.Cost.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected cost 200, got %s", stats.Cost)
	}
	if !stats.Profit.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected profit 90, got %s", stats.Profit)
	}
	// No sales in the comparison window: every percentage change guards with N/A.
	if stats.RevenueChange.FormattedString != "N/A" {
		t.Errorf("expected revenue change N/A, got %q", stats.RevenueChange.FormattedString)
	}
	if stats.ProfitChange.FormattedString != "N/A" {
		t.Errorf("expected profit change N/A, got %q", stats.ProfitChange.FormattedString)
	}
	if stats.SoldChange.Direction != models.DirectionUp || stats.SoldChange.FormattedString != "+2" {
		t.Errorf("expected sold change UP/+2, got %s/%q", stats.SoldChange.Direction, stats.SoldChange.FormattedString)
	}
}

// The legacy dashboard grouped trend buckets by month name only, silently
// merging e.g. March 2023 and March 2024. Buckets here are year-qualified
// instead, which is a deliberate divergence from that lossy grouping.
func TestComputeTrendSeparatesYears(t *testing.T) {
	records := []models.MergedItem{
		soldRecord(1, "50", "80", time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)),
		soldRecord(2, "60", "100", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	}

	trend := ComputeTrend(records)

	if len(trend) != 2 {
		t.Fatalf("expected 2 buckets for the same month of different years, got %d", len(trend))
	}
	if trend[0].Month != "Mar 2023" || trend[1].Month != "Mar 2024" {
		t.Errorf("expected chronological [Mar 2023, Mar 2024], got [%s, %s]", trend[0].Month, trend[1].Month)
	}
	if trend[0].SalesCount != 1 || trend[1].SalesCount != 1 {
		t.Errorf("expected 1 sale per bucket, got %d and %d", trend[0].SalesCount, trend[1].SalesCount)
	}
}

func TestComputeTrendAggregatesWithinMonth(t *testing.T) {
	records := []models.MergedItem{
		soldRecord(1, "100", "150", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
		soldRecord(2, "40", "90", time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC)),
		soldRecord(3, "10", "25", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)),
		availableRecord(4, "75"),
	}

	trend := ComputeTrend(records)

	if len(trend) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(trend))
	}
	jan := trend[0]
	if jan.Month != "Jan 2024" {
		t.Fatalf("expected first bucket Jan 2024, got %s", jan.Month)
	}
	if jan.SalesCount != 2 {
		t.Errorf("expected 2 sales in Jan, got %d", jan.SalesCount)
	}
	if !jan.Revenue.Equal(decimal.NewFromInt(240)) {
		t.Errorf("expected Jan revenue 240, got %s", jan.Revenue)
	}
	if !jan.Profit.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected Jan profit 100, got %s", jan.Profit)
	}
	if trend[1].Month != "Feb 2024" {
		t.Errorf("expected second bucket Feb 2024, got %s", trend[1].Month)
	}
}

func TestComputeTrendEmpty(t *testing.T) {
	if trend := ComputeTrend(nil); len(trend) != 0 {
		t.Errorf("expected empty trend, got %d buckets", len(trend))
	}
}
