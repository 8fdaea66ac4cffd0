package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const maxTableRows = 50

var kpiCardsTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-cards">
<div class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total Revenue</span><strong>${{printf "%.2f" .KPIs.TotalRevenue}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Total Sales</span><strong>{{.KPIs.TotalSales}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Average Ticket</span><strong>${{printf "%.2f" .KPIs.AverageTicket}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Median Ticket</span><strong>${{printf "%.2f" .KPIs.MedianTicket}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Units Sold</span><strong>{{.KPIs.TotalUnits}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Pending</span><strong>{{.KPIs.PendingCount}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Cancelled</span><strong>{{.KPIs.CancelledCount}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Discount</span><strong>{{printf "%.1f" .AvgDiscountPct}}%</strong></div>
</div>
<div class="trend-banner">Monthly trend: <strong>{{.Trend.Trend}}</strong> ({{printf "%+.2f" .Trend.MonthlyGrowthPct}}%) · {{.FilteredCount}} records in view</div>
</div>`))

var recordsTableTemplate = template.Must(template.New("recordsTable").Parse(`
<div id="records-content">
<table class="modern-table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range $row := .Rows}}<tr>{{range $col := $.Columns}}<td>{{index $row $col}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

type kpiCardData struct {
	*services.Snapshot
	AvgDiscountPct float64
}

func (h *SSEHandlers) renderKPICards(snap *services.Snapshot) (string, error) {
	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, kpiCardData{
		Snapshot:       snap,
		AvgDiscountPct: snap.KPIs.AverageDiscount * 100,
	})
	return buf.String(), err
}

// HandleDashboard recomputes the filtered view for the criteria in the
// query string, patches the KPI cards and pushes fresh chart datasets.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	criteria, err := parseCriteria(r)
	if err != nil {
		h.logger.Warn("dashboard refresh rejected", "error", err)
		sse.PatchElements(`<div id="kpi-cards" class="error">Invalid filter values</div>`)
		return
	}
	top := intParam(r, "top", defaultTopN, maxTopN)

	_, span := observability.StartSpan(r.Context(), "dashboard.refresh")
	snap := h.analytics.Snapshot(criteria)
	span.SetTag("filtered_count", strconv.Itoa(snap.FilteredCount))
	span.Finish()

	html, err := h.renderKPICards(snap)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"categoryData": snap.ByCategory,
		"regionData":   snap.ByRegion,
		"sellersData":  services.TopN(snap.BySeller, top),
		"paymentData":  snap.ByPaymentMethod,
		"monthlyData":  snap.Monthly,
		"trendData":    snap.Trend,
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRecords patches the detail table fragment for the current filters
// and column selection.
func (h *SSEHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	criteria, err := parseCriteria(r)
	if err != nil {
		h.logger.Warn("records refresh rejected", "error", err)
		sse.PatchElements(`<div id="records-content" class="error">Invalid filter values</div>`)
		return
	}
	columns := multiParam(r, "columns")
	limit := intParam(r, "limit", maxTableRows, maxTableRows)

	rows, err := services.ProjectRecords(h.analytics.Filtered(criteria), columns, limit)
	if err != nil {
		h.logger.Warn("records refresh rejected", "error", err)
		sse.PatchElements(`<div id="records-content" class="error">Unknown column selected</div>`)
		return
	}
	if len(columns) == 0 {
		columns = services.DefaultColumns
	}

	var buf strings.Builder
	if err := recordsTableTemplate.Execute(&buf, map[string]any{
		"Columns": columns,
		"Rows":    rows,
	}); err != nil {
		h.logger.Error("render records table", "error", err)
		return
	}
	sse.PatchElements(buf.String())

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
