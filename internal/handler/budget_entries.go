package handler

import (
	"net/http"

	"github.com/tallytrace/finance-service/internal/models"
)

// CreateBudgetEntry creates a recurring budget entry
func (h *Handler) CreateBudgetEntry(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var entry models.BudgetEntry
	if err := decodeBody(r, &entry); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateBudgetEntry(uid, &entry); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListBudgetEntries returns the user's budget entries
func (h *Handler) ListBudgetEntries(w http.ResponseWriter, r *http.Request) {
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
	entries, err := h.svc.ListBudgetEntries(uid, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// GetBudgetEntry returns one budget entry
func (h *Handler) GetBudgetEntry(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid budget entry id")
		return
	}
	entry, err := h.svc.GetBudgetEntry(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// UpdateBudgetEntry saves budget entry changes
func (h *Handler) UpdateBudgetEntry(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid budget entry id")
		return
	}
	var entry models.BudgetEntry
	if err := decodeBody(r, &entry); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	entry.ID = id
	if err := h.svc.UpdateBudgetEntry(uid, &entry); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// DeleteBudgetEntry deactivates a budget entry
func (h *Handler) DeleteBudgetEntry(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid budget entry id")
		return
	}
	if err := h.svc.DeleteBudgetEntry(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
