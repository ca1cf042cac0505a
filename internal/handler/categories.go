package handler

import (
	"net/http"
	"strconv"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// CreateCategory handles category creation
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateCategory(uid, &category); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// ListCategories returns the user's categories, filterable by expense flag
// and active state
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	entityID, err := entityScope(r)
	if err != nil {
		badRequest(w, "invalid entity scope")
		return
	}
	filter := repository.CategoryFilter{EntityID: entityID}
	if raw := r.URL.Query().Get("is_expense"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "invalid is_expense")
			return
		}
		filter.IsExpense = &v
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "invalid is_active")
			return
		}
		filter.IsActive = &v
	}
	categories, err := h.svc.ListCategories(uid, filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// GetCategory returns one category
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}
	category, err := h.svc.GetCategory(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// UpdateCategory saves category changes
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	category.ID = id
	if err := h.svc.UpdateCategory(uid, &category); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory deactivates a category
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}
	if err := h.svc.DeleteCategory(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
