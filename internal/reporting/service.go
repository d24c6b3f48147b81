package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/lumapos/lumapos/internal/sales"
)

// SalesPort is the slice of the sales service the reports need.
type SalesPort interface {
	List(ctx context.Context) ([]sales.SaleRecord, error)
}

// Service filters and aggregates sale records into dashboard summaries.
type Service struct {
	sales SalesPort
	now   func() time.Time
}

func NewService(salesSvc SalesPort) *Service {
	return &Service{sales: salesSvc, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *Service) WithNow(fn func() time.Time) {
	s.now = fn
}

// FilterSales returns the sale records inside the filter window, newest first.
func (s *Service) FilterSales(ctx context.Context, filter Filter) ([]sales.SaleRecord, error) {
	records, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]sales.SaleRecord, 0, len(records))
	pred := s.predicate(filter)
	for _, rec := range records {
		if pred(rec.Timestamp) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched, nil
}

// Summarize aggregates the filtered sales into totals and a chart series.
func (s *Service) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	records, err := s.FilterSales(ctx, filter)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{SaleCount: len(records), Chart: []ChartPoint{}}
	for _, rec := range records {
		summary.TotalRevenue += rec.TotalRevenue
		summary.TotalCost += rec.TotalCost
		summary.TotalProfit += rec.TotalProfit
	}
	if summary.TotalRevenue > 0 {
		summary.Margin = summary.TotalProfit / summary.TotalRevenue * 100
	}
	summary.Chart = bucketChart(records, hourlyBuckets(filter))
	return summary, nil
}

// hourlyBuckets is true only for the day quick range with no custom window,
// where a per-day chart would collapse to a single bar.
func hourlyBuckets(filter Filter) bool {
	return !filter.Custom() && filter.Range == RangeDay
}

func bucketChart(records []sales.SaleRecord, hourly bool) []ChartPoint {
	type bucket struct {
		at      time.Time
		revenue float64
		profit  float64
	}
	buckets := make(map[time.Time]*bucket)
	for _, rec := range records {
		key := rec.Timestamp.Truncate(24 * time.Hour)
		if hourly {
			key = rec.Timestamp.Truncate(time.Hour)
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{at: key}
			buckets[key] = b
		}
		b.revenue += rec.TotalRevenue
		b.profit += rec.TotalProfit
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

	layout := "2006-01-02"
	if hourly {
		layout = "15:04"
	}
	points := make([]ChartPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, ChartPoint{
			Label:   b.at.Format(layout),
			Revenue: b.revenue,
			Profit:  b.profit,
		})
	}
	return points
}

func (s *Service) predicate(filter Filter) func(time.Time) bool {
	if filter.Custom() {
		var from, to time.Time
		if filter.From != nil {
			from = startOfDay(*filter.From)
		}
		if filter.To != nil {
			to = endOfDay(*filter.To)
		}
		return func(ts time.Time) bool {
			if filter.From != nil && ts.Before(from) {
				return false
			}
			if filter.To != nil && ts.After(to) {
				return false
			}
			return true
		}
	}

	now := s.now()
	switch filter.Range {
	case RangeWeek:
		cutoff := now.AddDate(0, 0, -7)
		return func(ts time.Time) bool { return !ts.Before(cutoff) && !ts.After(now) }
	case RangeMonth:
		return func(ts time.Time) bool {
			return ts.Year() == now.Year() && ts.Month() == now.Month()
		}
	case RangeYear:
		return func(ts time.Time) bool { return ts.Year() == now.Year() }
	default: // day
		y, m, d := now.Date()
		return func(ts time.Time) bool {
			ty, tm, td := ts.Date()
			return ty == y && tm == m && td == d
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
