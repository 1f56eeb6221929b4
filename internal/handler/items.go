package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inventory-rest-api/internal/model"
	"inventory-rest-api/internal/report"
	"inventory-rest-api/internal/service"
	"inventory-rest-api/pkg/apierror"
	"inventory-rest-api/pkg/response"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	catalog *service.Catalog
}

// NewItemHandler creates a new item handler.
func NewItemHandler(catalog *service.Catalog) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

// List handles GET /api/items.
//
// Optional query parameters push report-engine views server-side:
// search (substring match), category (exact match, "all" disables),
// low_stock=true (quantity <= minStock), sort (name|quantity|price|category).
// Without parameters the full collection is returned in insertion order.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	q := r.URL.Query()
	items = report.Search(items, q.Get("search"))
	items = report.FilterByCategory(items, q.Get("category"))
	if q.Get("low_stock") == "true" {
		items = report.FilterLowStock(items)
	}
	if key := q.Get("sort"); key != "" {
		items = report.SortBy(items, report.SortKey(key))
	}

	response.OK(w, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.ItemDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request body"))
		return
	}

	item, err := h.catalog.CreateItem(r.Context(), draft)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var draft model.ItemDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request body"))
		return
	}

	item, err := h.catalog.UpdateItem(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.Message(w, "Item deleted successfully")
}
