package models

import "time"

// KPISet holds the headline metrics for one filtered view of the dataset.
// All values are computed over the rows passing the active filters; status
// counts partition that same set.
type KPISet struct {
	TotalSales      int     `json:"total_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageTicket   float64 `json:"average_ticket"`
	MedianTicket    float64 `json:"median_ticket"`
	MaxSale         float64 `json:"max_sale"`
	MinSale         float64 `json:"min_sale"`
	TotalUnits      int     `json:"total_units"`
	CompletedCount  int     `json:"completed_count"`
	PendingCount    int     `json:"pending_count"`
	CancelledCount  int     `json:"cancelled_count"`
	AverageDiscount float64 `json:"average_discount"`
}

type Dimension string

const (
	DimensionCategory      Dimension = "category"
	DimensionRegion        Dimension = "region"
	DimensionSeller        Dimension = "seller"
	DimensionPaymentMethod Dimension = "payment_method"
)

// DimensionRow is one group of a grouped aggregate table, ordered by
// descending revenue in the tables the engine produces. Cities is only
// populated for the region dimension.
type DimensionRow struct {
	Key           string  `json:"key"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
	Units         int     `json:"units"`
	RevenueShare  float64 `json:"revenue_share"`
	Cities        int     `json:"cities,omitempty"`
}

// MonthlyPoint is one calendar-month bucket of the time series. GrowthPct
// and Trend describe the transition from the previous month and are zero
// valued on the first point.
type MonthlyPoint struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	Sales         int     `json:"sales"`
	AverageTicket float64 `json:"average_ticket"`
	Units         int     `json:"units"`
	GrowthPct     float64 `json:"growth_pct"`
	Trend         string  `json:"trend,omitempty"`
}

type TrendSummary struct {
	MonthlyGrowthPct float64 `json:"monthly_growth_pct"`
	Trend            string  `json:"trend"`
	LastMonth        float64 `json:"last_month"`
	PreviousMonth    float64 `json:"previous_month"`
}

// NumericSummary mirrors a describe() row for one numeric column.
type NumericSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// FilterOptions lists the selectable values and date bounds the UI offers.
type FilterOptions struct {
	DateMin        time.Time `json:"date_min"`
	DateMax        time.Time `json:"date_max"`
	Statuses       []Status  `json:"statuses"`
	Categories     []string  `json:"categories"`
	Regions        []string  `json:"regions"`
	PaymentMethods []string  `json:"payment_methods"`
}
