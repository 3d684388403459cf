package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"soletracker_backend/internal/models"
	"soletracker_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// --- AnalyticsService Interface ---
type AnalyticsService interface {
	GetStats(period models.Period, now time.Time) (*models.Stats, error)
	GetTrend() ([]models.TrendPoint, error)
}

// --- analyticsService Implementation ---
type analyticsService struct {
	itemRepo repositories.ItemRepository
	saleRepo repositories.SaleRepository
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(ir repositories.ItemRepository, sr repositories.SaleRepository) AnalyticsService {
	return &analyticsService{
		itemRepo: ir,
		saleRepo: sr,
	}
}

// GetStats computes the dashboard statistics over a fresh merged snapshot.
func (s *analyticsService) GetStats(period models.Period, now time.Time) (*models.Stats, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
	records, err := s.mergedSnapshot()
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(records, period, now)
	return &stats, nil
}

// GetTrend computes the monthly trend series over a fresh merged snapshot.
func (s *analyticsService) GetTrend() ([]models.TrendPoint, error) {
	records, err := s.mergedSnapshot()
	if err != nil {
		return nil, err
	}
	return ComputeTrend(records), nil
}

func (s *analyticsService) mergedSnapshot() ([]models.MergedItem, error) {
	items, err := s.itemRepo.GetItems()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	sales, err := s.saleRepo.GetSales()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	return mergeItemsAndSales(items, sales), nil
}

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// ComputeStats is a pure function over a merged snapshot. The current window
// is the trailing period.Days() days ending at now, inclusive on both ends;
// the comparison window is the same length immediately before it, ending
// where the current window starts.
func ComputeStats(records []models.MergedItem, period models.Period, now time.Time) models.Stats {
	days := period.Days()
	start := now.AddDate(0, 0, -days)
	prevStart := now.AddDate(0, 0, -2*days)

	current := soldBetween(records, start, now)
	previous := soldBetween(records, prevStart, start)

	revenue, cost := sumRevenueAndCost(current)
	prevRevenue, prevCost := sumRevenueAndCost(previous)
	profit := revenue.Sub(cost)
	prevProfit := prevRevenue.Sub(prevCost)

	return models.Stats{
		Period:        period,
		Revenue:       revenue,
		Cost:          cost,
		Profit:        profit,
		Sold:          len(current),
		RevenueChange: percentChange(revenue, prevRevenue),
		ProfitChange:  percentChange(profit, prevProfit),
		SoldChange:    countChange(len(current), len(previous)),
	}
}

// ComputeTrend groups sold records into calendar-month buckets and returns
// them in chronological order. Buckets are year-qualified ("Mar 2024"), so
// sales from the same month of different years land in separate buckets.
func ComputeTrend(records []models.MergedItem) []models.TrendPoint {
	buckets := make(map[int]*models.TrendPoint)
	keys := []int{}

	for _, record := range records {
		if record.Status != models.StatusSold || record.SoldDate == nil {
			continue
		}
		soldDate := *record.SoldDate
		key := soldDate.Year()*12 + int(soldDate.Month())
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.TrendPoint{
				Month:   soldDate.Format("Jan 2006"),
				Revenue: decimal.Zero,
				Profit:  decimal.Zero,
			}
			buckets[key] = bucket
			keys = append(keys, key)
		}
		bucket.SalesCount++
		if record.SoldPrice != nil {
			bucket.Revenue = bucket.Revenue.Add(*record.SoldPrice)
			bucket.Profit = bucket.Profit.Add(record.SoldPrice.Sub(record.PurchasePrice))
		}
	}

	sort.Ints(keys)
	trend := make([]models.TrendPoint, 0, len(keys))
	for _, key := range keys {
		trend = append(trend, *buckets[key])
	}
	return trend
}

// soldBetween filters records sold within [start, end], both ends inclusive.
func soldBetween(records []models.MergedItem, start, end time.Time) []models.MergedItem {
	sold := []models.MergedItem{}
	for _, record := range records {
		if record.Status != models.StatusSold || record.SoldDate == nil {
			continue
		}
		soldDate := *record.SoldDate
		if !soldDate.Before(start) && !soldDate.After(end) {
			sold = append(sold, record)
		}
	}
	return sold
}

func sumRevenueAndCost(records []models.MergedItem) (revenue, cost decimal.Decimal) {
	for _, record := range records {
		if record.SoldPrice != nil {
			revenue = revenue.Add(*record.SoldPrice)
		}
		cost = cost.Add(record.PurchasePrice)
	}
	return revenue, cost
}

// percentChange builds a change descriptor for a money metric. Movements
// inside the ±1% band count as NEUTRAL to filter noise; an empty previous
// window yields "N/A" rather than dividing by zero.
func percentChange(current, previous decimal.Decimal) models.ChangeDescriptor {
	if previous.IsZero() {
		return models.ChangeDescriptor{Direction: models.DirectionNeutral, FormattedString: "N/A"}
	}
	pct := current.Sub(previous).Div(previous).Mul(decimalHundred)
	switch {
	case pct.GreaterThanOrEqual(decimalOne):
		return models.ChangeDescriptor{Direction: models.DirectionUp, FormattedString: "+" + pct.StringFixed(1) + "%"}
	case pct.LessThanOrEqual(decimalOne.Neg()):
		return models.ChangeDescriptor{Direction: models.DirectionDown, FormattedString: pct.StringFixed(1) + "%"}
	default:
		return models.ChangeDescriptor{Direction: models.DirectionNeutral, FormattedString: "0%"}
	}
}

// countChange thresholds on the raw unit difference instead of a percentage,
// since percentages are unstable for counts near zero.
func countChange(current, previous int) models.ChangeDescriptor {
	diff := current - previous
	switch {
	case diff >= 1:
		return models.ChangeDescriptor{Direction: models.DirectionUp, FormattedString: "+" + strconv.Itoa(diff)}
	case diff <= -1:
		return models.ChangeDescriptor{Direction: models.DirectionDown, FormattedString: strconv.Itoa(diff)}
	default:
		return models.ChangeDescriptor{Direction: models.DirectionNeutral, FormattedString: "0"}
	}
}
