package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const (
	defaultTopN = 10
	maxTopN     = 50

	cacheHeader = "public, max-age=300"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func writeCached(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheHeader,
	})
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).KPIs)
}

func (h *APIHandlers) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).ByCategory)
}

func (h *APIHandlers) HandleByRegion(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).ByRegion)
}

func (h *APIHandlers) HandleTopSellers(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	top := intParam(r, "top", defaultTopN, maxTopN)

	writeCached(w, services.TopN(h.analytics.Snapshot(criteria).BySeller, top))
}

func (h *APIHandlers) HandlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).ByPaymentMethod)
}

func (h *APIHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).Monthly)
}

func (h *APIHandlers) HandleTrend(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).Trend)
}

func (h *APIHandlers) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeCached(w, h.analytics.Snapshot(criteria).Describe)
}

// HandleRecords serves the detail table: filtered rows projected onto a
// whitelisted column selection, bounded by 'limit'.
func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	columns := multiParam(r, "columns")
	limit := intParam(r, "limit", 0, 1000)

	rows, err := services.ProjectRecords(h.analytics.Filtered(criteria), columns, limit)
	if err != nil {
		h.writeError(w, r, errors.ValidationWrap(err, "invalid column selection"))
		return
	}

	errors.WriteSuccess(w, rows)
}

func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	writeCached(w, h.analytics.FilterOptions())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
