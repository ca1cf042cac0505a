package handler

import (
	"net/http"

	"github.com/tallytrace/finance-service/internal/models"
)

// CreateAllocation creates an allocation bucket
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var allocation models.Allocation
	if err := decodeBody(r, &allocation); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateAllocation(uid, &allocation); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, allocation)
}

// ListAllocations returns the user's allocations, filterable by type
func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
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
	allocations, err := h.svc.ListAllocations(uid, entityID, r.URL.Query().Get("type"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, allocations)
}

// GetAllocation returns one allocation
func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid allocation id")
		return
	}
	allocation, err := h.svc.GetAllocation(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, allocation)
}

// UpdateAllocation saves allocation changes
func (h *Handler) UpdateAllocation(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid allocation id")
		return
	}
	var allocation models.Allocation
	if err := decodeBody(r, &allocation); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	allocation.ID = id
	if err := h.svc.UpdateAllocation(uid, &allocation); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, allocation)
}

// DeleteAllocation deactivates an allocation
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid allocation id")
		return
	}
	if err := h.svc.DeleteAllocation(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
