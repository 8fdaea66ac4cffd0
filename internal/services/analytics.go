package services

import (
	"hash/fnv"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sales-dashboard/internal/models"
)

// Snapshot bundles everything one filtered view of the dataset derives:
// the KPI set, the grouped aggregate tables, the monthly series and its
// trend summary. Snapshots are immutable once computed.
type Snapshot struct {
	KPIs            models.KPISet           `json:"kpis"`
	ByCategory      []models.DimensionRow   `json:"by_category"`
	ByRegion        []models.DimensionRow   `json:"by_region"`
	BySeller        []models.DimensionRow   `json:"by_seller"`
	ByPaymentMethod []models.DimensionRow   `json:"by_payment_method"`
	Monthly         []models.MonthlyPoint   `json:"monthly"`
	Trend           models.TrendSummary     `json:"trend"`
	Describe        []models.NumericSummary `json:"describe"`
	FilteredCount   int                     `json:"filtered_count"`
	ComputedAt      time.Time               `json:"computed_at"`
}

// Analytics owns the in-memory dataset for the life of the process and
// answers every query from a memoized snapshot. The memo is keyed by
// (dataset version, criteria hash) so unchanged filters never trigger a
// recomputation, without hiding the cache in package state.
type Analytics struct {
	mu      sync.RWMutex
	records []models.Sale
	version string
	memo    map[uint64]*Snapshot
	logger  *slog.Logger
}

func NewAnalytics() *Analytics {
	return &Analytics{
		version: uuid.NewString(),
		memo:    make(map[uint64]*Snapshot),
		logger:  slog.Default(),
	}
}

// SetData replaces the dataset, bumping the version so stale memo entries
// can never be served.
func (a *Analytics) SetData(records []models.Sale) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = slices.Clone(records)
	a.version = uuid.NewString()
	a.memo = make(map[uint64]*Snapshot)
}

func (a *Analytics) Version() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.version
}

func (a *Analytics) RecordCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}

// Snapshot returns the derived view for the criteria, computing it at
// most once per (dataset version, criteria) pair.
func (a *Analytics) Snapshot(c models.FilterCriteria) *Snapshot {
	key := a.snapshotKey(c)

	a.mu.RLock()
	snap, hit := a.memo[key]
	a.mu.RUnlock()
	if hit {
		return snap
	}

	start := time.Now()
	a.mu.RLock()
	filtered := ApplyFilters(a.records, c)
	a.mu.RUnlock()

	monthly := MonthlySeries(filtered)
	snap = &Snapshot{
		KPIs:            ComputeKPIs(filtered),
		ByCategory:      GroupByDimension(filtered, models.DimensionCategory),
		ByRegion:        GroupByDimension(filtered, models.DimensionRegion),
		BySeller:        GroupByDimension(filtered, models.DimensionSeller),
		ByPaymentMethod: GroupByDimension(filtered, models.DimensionPaymentMethod),
		Monthly:         monthly,
		Trend:           ComputeTrend(monthly),
		Describe:        DescribeNumeric(filtered),
		FilteredCount:   len(filtered),
		ComputedAt:      time.Now(),
	}

	a.mu.Lock()
	a.memo[key] = snap
	a.mu.Unlock()

	a.logger.Debug("snapshot computed",
		"criteria", c.Key(),
		"filtered", len(filtered),
		"duration", time.Since(start),
	)
	return snap
}

func (a *Analytics) snapshotKey(c models.FilterCriteria) uint64 {
	a.mu.RLock()
	version := a.version
	a.mu.RUnlock()

	h := fnv.New64a()
	h.Write([]byte(version))
	h.Write([]byte{0})
	h.Write([]byte(c.Key()))
	return h.Sum64()
}

// Filtered returns the rows matching the criteria in dataset order.
func (a *Analytics) Filtered(c models.FilterCriteria) []models.Sale {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return ApplyFilters(a.records, c)
}

// FilterOptions lists the distinct dimension values and the date bounds of
// the dataset, for populating the filter controls.
func (a *Analytics) FilterOptions() models.FilterOptions {
	a.mu.RLock()
	defer a.mu.RUnlock()

	opts := models.FilterOptions{
		Statuses: []models.Status{
			models.StatusCompleted,
			models.StatusPending,
			models.StatusCancelled,
		},
	}

	categories := make(map[string]struct{})
	regions := make(map[string]struct{})
	payments := make(map[string]struct{})

	for i, s := range a.records {
		categories[s.Category] = struct{}{}
		regions[s.Region] = struct{}{}
		payments[s.PaymentMethod] = struct{}{}

		if i == 0 || s.Date.Before(opts.DateMin) {
			opts.DateMin = s.Date
		}
		if i == 0 || s.Date.After(opts.DateMax) {
			opts.DateMax = s.Date
		}
	}

	opts.Categories = sortedKeys(categories)
	opts.Regions = sortedKeys(regions)
	opts.PaymentMethods = sortedKeys(payments)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats reports service internals for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"record_count":    len(a.records),
		"dataset_version": a.version,
		"memo_entries":    len(a.memo),
	}
}
