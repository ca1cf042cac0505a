package handler

import (
	"net/http"
	"strconv"

	"github.com/tallytrace/finance-service/internal/models"
)

// CreateWishlistItem adds a wishlist item
func (h *Handler) CreateWishlistItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var item models.WishlistItem
	if err := decodeBody(r, &item); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateWishlistItem(uid, &item); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// ListWishlistItems returns the wishlist in priority order
func (h *Handler) ListWishlistItems(w http.ResponseWriter, r *http.Request) {
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
	var isPurchased *bool
	if raw := r.URL.Query().Get("is_purchased"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "invalid is_purchased")
			return
		}
		isPurchased = &v
	}
	items, err := h.svc.ListWishlistItems(uid, entityID, isPurchased)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetWishlistItem returns one wishlist item
func (h *Handler) GetWishlistItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid wishlist item id")
		return
	}
	item, err := h.svc.GetWishlistItem(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// UpdateWishlistItem saves wishlist item changes
func (h *Handler) UpdateWishlistItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid wishlist item id")
		return
	}
	var item models.WishlistItem
	if err := decodeBody(r, &item); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	item.ID = id
	if err := h.svc.UpdateWishlistItem(uid, &item); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteWishlistItem removes a wishlist item
func (h *Handler) DeleteWishlistItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid wishlist item id")
		return
	}
	if err := h.svc.DeleteWishlistItem(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// WishlistReadiness returns the affordability advisory for one item
func (h *Handler) WishlistReadiness(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid wishlist item id")
		return
	}
	entityID, err := entityScope(r)
	if err != nil {
		badRequest(w, "invalid entity scope")
		return
	}
	readiness, err := h.svc.WishlistReadiness(uid, id, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, readiness)
}

// WishlistPlan returns the sequential purchase timeline
func (h *Handler) WishlistPlan(w http.ResponseWriter, r *http.Request) {
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
	plan, err := h.svc.WishlistPlan(uid, entityID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}
