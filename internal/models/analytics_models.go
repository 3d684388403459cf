package models

import "github.com/shopspring/decimal"

// Period selects the trailing window length for dashboard statistics.
type Period string

const (
	PeriodWeekly    Period = "WEEKLY"
	PeriodMonthly   Period = "MONTHLY"
	PeriodQuarterly Period = "QUARTERLY"
)

// Valid reports whether the period is one of the known values.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return true
	default:
		return false
	}
}

// Days returns the window length in days for the period.
func (p Period) Days() int {
	switch p {
	case PeriodWeekly:
		return 7
	case PeriodQuarterly:
		return 90
	default:
		return 30
	}
}

// Direction classifies the movement between the current and the previous window.
type Direction string

const (
	DirectionUp      Direction = "UP"
	DirectionDown    Direction = "DOWN"
	DirectionNeutral Direction = "NEUTRAL"
)

// ChangeDescriptor summarises current-vs-previous-window movement of a metric.
// FormattedString is "N/A" when the previous window is empty, "0%" inside the
// noise band and a signed one-decimal percentage otherwise.
type ChangeDescriptor struct {
	Direction       Direction `json:"direction"`
	FormattedString string    `json:"formatted_string"`
}

// Stats holds the dashboard metrics for one trailing window.
type Stats struct {
	Period        Period           `json:"period"`
	Revenue       decimal.Decimal  `json:"revenue"`
	Cost          decimal.Decimal  `json:"cost"`
	Profit        decimal.Decimal  `json:"profit"`
	Sold          int              `json:"sold"`
	RevenueChange ChangeDescriptor `json:"revenue_change"`
	ProfitChange  ChangeDescriptor `json:"profit_change"`
	SoldChange    ChangeDescriptor `json:"sold_change"`
}

// TrendPoint is one monthly bucket of the sales trend series.
type TrendPoint struct {
	Month      string          `json:"month"`
	SalesCount int             `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
}
