package handler

import (
	"net/http"
	"sort"
	"strconv"

	"inventory-rest-api/internal/report"
	"inventory-rest-api/internal/service"
	"inventory-rest-api/pkg/response"
)

// Default result counts matching the dashboard views.
const (
	defaultTopItemsLimit = 5
	defaultLowStockLimit = 10
)

// ReportHandler serves derived views over the current item collection.
// Every request works on a fresh snapshot; nothing is precomputed.
type ReportHandler struct {
	catalog *service.Catalog
}

// NewReportHandler creates a new report handler.
func NewReportHandler(catalog *service.Catalog) *ReportHandler {
	return &ReportHandler{catalog: catalog}
}

// Summary handles GET /api/reports/summary.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, report.Summarize(items))
}

// Categories handles GET /api/reports/categories.
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, report.CategoryBreakdown(items))
}

// TopItems handles GET /api/reports/top-items?limit=n.
func (h *ReportHandler) TopItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, report.TopByValue(items, limitParam(r, defaultTopItemsLimit)))
}

// LowStock handles GET /api/reports/low-stock?limit=n. Items at or below
// their minimum, most urgent (lowest quantity) first.
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	low := report.FilterLowStock(items)
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})

	limit := limitParam(r, defaultLowStockLimit)
	if limit < len(low) {
		low = low[:limit]
	}
	response.OK(w, low)
}

func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}
