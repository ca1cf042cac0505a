package handler

import (
	"net/http"
)

// DashboardSnapshot returns everything the front-end renders on login
func (h *Handler) DashboardSnapshot(w http.ResponseWriter, r *http.Request) {
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
	snapshot, err := h.svc.Dashboard(uid, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}
