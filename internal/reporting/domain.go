package reporting

import "time"

// RangeKind selects one of the dashboard quick ranges.
type RangeKind string

const (
	RangeDay   RangeKind = "day"
	RangeWeek  RangeKind = "week"
	RangeMonth RangeKind = "month"
	RangeYear  RangeKind = "year"
)

// Valid reports whether the kind is one of the recognised quick ranges.
func (k RangeKind) Valid() bool {
	switch k {
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

// Filter scopes a report. When From or To is set the custom range takes
// precedence over the quick range; To is inclusive through end of day.
type Filter struct {
	Range RangeKind
	From  *time.Time
	To    *time.Time
}

// Custom reports whether an explicit date range is in effect.
func (f Filter) Custom() bool {
	return f.From != nil || f.To != nil
}

// ChartPoint is a single revenue/profit bucket in the dashboard series.
type ChartPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Summary aggregates the filtered sales for the dashboard cards and chart.
type Summary struct {
	TotalRevenue float64      `json:"totalRevenue"`
	TotalCost    float64      `json:"totalCost"`
	TotalProfit  float64      `json:"totalProfit"`
	Margin       float64      `json:"margin"`
	SaleCount    int          `json:"saleCount"`
	Chart        []ChartPoint `json:"chart"`
}
