package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inventory-rest-api/internal/model"
	"inventory-rest-api/internal/service"
	"inventory-rest-api/pkg/apierror"
	"inventory-rest-api/pkg/response"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	catalog *service.Catalog
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalog *service.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, categories)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request body"))
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), draft)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, category)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var draft model.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request body"))
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	response.Message(w, "Category deleted successfully")
}
