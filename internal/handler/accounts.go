package handler

import (
	"net/http"

	"github.com/tallytrace/finance-service/internal/models"
)

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var account models.Account
	if err := decodeBody(r, &account); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateAccount(uid, &account); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

// ListAccounts returns the user's accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
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
	accounts, err := h.svc.ListAccounts(uid, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

// GetAccount returns one account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	account, err := h.svc.GetAccount(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// UpdateAccount saves account changes
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	var account models.Account
	if err := decodeBody(r, &account); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	account.ID = id
	if err := h.svc.UpdateAccount(uid, &account); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// DeleteAccount deactivates an account
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	if err := h.svc.DeleteAccount(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
