package handler

import (
	"net/http"
)

// Cashflow returns the month-by-month projection. months defaults to 6,
// bounded 1..24.
func (h *Handler) Cashflow(w http.ResponseWriter, r *http.Request) {
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
	months, err := queryInt(r, "months", 6)
	if err != nil || months < 1 || months > 24 {
		badRequest(w, "months must be between 1 and 24")
		return
	}
	periods, err := h.svc.ProjectCashflow(uid, entityID, months)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, periods)
}

// Upcoming returns obligations due within the window. days defaults to 30,
// bounded 1..365.
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
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
	days, err := queryInt(r, "days", 30)
	if err != nil || days < 1 || days > 365 {
		badRequest(w, "days must be between 1 and 365")
		return
	}
	items, err := h.svc.UpcomingItems(uid, entityID, days)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// DisposableIncome returns the normalized monthly summary
func (h *Handler) DisposableIncome(w http.ResponseWriter, r *http.Request) {
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
	disposable, err := h.svc.DisposableIncome(uid, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, disposable)
}
