package services

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// Trend labels for month-over-month revenue movement. Thresholds follow
// the documented heuristic: > +5% strong, (0, +5%] moderate, [-5%, 0]
// stable, < -5% decline.
const (
	TrendStrongGrowth   = "strong growth"
	TrendModerateGrowth = "moderate growth"
	TrendStable         = "stable"
	TrendDecline        = "decline"
	TrendInsufficient   = "insufficient data"
)

const monthLayout = "2006-01"

// ComputeKPIs derives the headline metrics from a filtered row set. An
// empty input yields an all-zero KPI set rather than an error; ratio
// metrics guard their denominators.
func ComputeKPIs(rows []models.Sale) models.KPISet {
	if len(rows) == 0 {
		return models.KPISet{}
	}

	var kpis models.KPISet
	amounts := make([]float64, 0, len(rows))
	discountSum := 0.0

	for _, s := range rows {
		kpis.TotalRevenue += s.Amount
		kpis.TotalUnits += s.Quantity
		discountSum += s.Discount
		amounts = append(amounts, s.Amount)

		switch s.Status {
		case models.StatusCompleted:
			kpis.CompletedCount++
		case models.StatusPending:
			kpis.PendingCount++
		case models.StatusCancelled:
			kpis.CancelledCount++
		}
	}

	kpis.TotalSales = len(rows)
	kpis.AverageTicket = kpis.TotalRevenue / float64(kpis.TotalSales)
	kpis.AverageDiscount = discountSum / float64(kpis.TotalSales)
	kpis.MedianTicket = median(amounts)
	kpis.MaxSale = slices.Max(amounts)
	kpis.MinSale = slices.Min(amounts)

	return kpis
}

// GroupByDimension partitions the rows by the dimension's value and
// aggregates count, revenue, average ticket, units and revenue share per
// group, ordered by descending revenue. Every row lands in exactly one
// group, so group counts sum to len(rows) and group revenue to the total.
func GroupByDimension(rows []models.Sale, dim models.Dimension) []models.DimensionRow {
	groups := make(map[string]*models.DimensionRow)
	cities := make(map[string]map[string]struct{})
	totalRevenue := 0.0

	for _, s := range rows {
		key := dimensionKey(s, dim)
		g := groups[key]
		if g == nil {
			g = &models.DimensionRow{Key: key}
			groups[key] = g
		}
		g.Count++
		g.Revenue += s.Amount
		g.Units += s.Quantity
		totalRevenue += s.Amount

		if dim == models.DimensionRegion {
			if cities[key] == nil {
				cities[key] = make(map[string]struct{})
			}
			cities[key][s.City] = struct{}{}
		}
	}

	result := make([]models.DimensionRow, 0, len(groups))
	for key, g := range groups {
		if g.Count > 0 {
			g.AverageTicket = g.Revenue / float64(g.Count)
		}
		g.RevenueShare = revenueShare(g.Revenue, totalRevenue)
		g.Cities = len(cities[key])
		result = append(result, *g)
	}

	slices.SortFunc(result, func(a, b models.DimensionRow) int {
		if a.Revenue > b.Revenue {
			return -1
		}
		if a.Revenue < b.Revenue {
			return 1
		}
		return 0
	})
	return result
}

func dimensionKey(s models.Sale, dim models.Dimension) string {
	switch dim {
	case models.DimensionRegion:
		return s.Region
	case models.DimensionSeller:
		return s.Seller
	case models.DimensionPaymentMethod:
		return s.PaymentMethod
	default:
		return s.Category
	}
}

// revenueShare computes the group's percentage of total revenue, rounded
// to two decimals in decimal arithmetic so the shares of a ranking table
// read as clean percentages.
func revenueShare(revenue, total float64) float64 {
	if total == 0 {
		return 0
	}
	share := decimal.NewFromFloat(revenue).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return share.InexactFloat64()
}

// TopN bounds a ranked table for display.
func TopN(rows []models.DimensionRow, n int) []models.DimensionRow {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// MonthlySeries buckets rows by calendar month, in chronological order,
// annotating each transition with its revenue growth and trend label.
func MonthlySeries(rows []models.Sale) []models.MonthlyPoint {
	buckets := make(map[string]*models.MonthlyPoint)

	for _, s := range rows {
		month := s.Date.Format(monthLayout)
		p := buckets[month]
		if p == nil {
			p = &models.MonthlyPoint{Month: month}
			buckets[month] = p
		}
		p.Revenue += s.Amount
		p.Sales++
		p.Units += s.Quantity
	}

	series := make([]models.MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		if p.Sales > 0 {
			p.AverageTicket = p.Revenue / float64(p.Sales)
		}
		series = append(series, *p)
	}
	slices.SortFunc(series, func(a, b models.MonthlyPoint) int {
		if a.Month < b.Month {
			return -1
		}
		if a.Month > b.Month {
			return 1
		}
		return 0
	})

	for i := 1; i < len(series); i++ {
		growth := growthPct(series[i].Revenue, series[i-1].Revenue)
		series[i].GrowthPct = growth
		series[i].Trend = classifyGrowth(growth)
	}

	return series
}

// ComputeTrend summarizes the latest month-over-month movement. Fewer than
// two months of data cannot be classified.
func ComputeTrend(series []models.MonthlyPoint) models.TrendSummary {
	if len(series) < 2 {
		return models.TrendSummary{Trend: TrendInsufficient}
	}

	last := series[len(series)-1]
	prev := series[len(series)-2]
	growth := growthPct(last.Revenue, prev.Revenue)

	return models.TrendSummary{
		MonthlyGrowthPct: growth,
		Trend:            classifyGrowth(growth),
		LastMonth:        last.Revenue,
		PreviousMonth:    prev.Revenue,
	}
}

func growthPct(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func classifyGrowth(pct float64) string {
	switch {
	case pct > 5:
		return TrendStrongGrowth
	case pct > 0:
		return TrendModerateGrowth
	case pct >= -5:
		return TrendStable
	default:
		return TrendDecline
	}
}

// DescribeNumeric produces describe()-style summaries for the numeric
// columns of the filtered set.
func DescribeNumeric(rows []models.Sale) []models.NumericSummary {
	amounts := make([]float64, 0, len(rows))
	quantities := make([]float64, 0, len(rows))
	discounts := make([]float64, 0, len(rows))

	for _, s := range rows {
		amounts = append(amounts, s.Amount)
		quantities = append(quantities, float64(s.Quantity))
		discounts = append(discounts, s.Discount)
	}

	return []models.NumericSummary{
		describeColumn("amount", amounts),
		describeColumn("quantity", quantities),
		describeColumn("discount", discounts),
	}
}

func describeColumn(name string, values []float64) models.NumericSummary {
	s := models.NumericSummary{Column: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		sq := 0.0
		for _, v := range sorted {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = percentile(sorted, 0.25)
	s.Median = percentile(sorted, 0.50)
	s.P75 = percentile(sorted, 0.75)
	return s
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	slices.Sort(sorted)
	return percentile(sorted, 0.50)
}

// percentile interpolates linearly between the two nearest ranks of an
// already sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
