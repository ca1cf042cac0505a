package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tallytrace/finance-service/internal/models"
)

// CreateEntity creates a personal or business book
func (h *Handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var entity models.Entity
	if err := decodeBody(r, &entity); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.svc.CreateEntity(uid, &entity); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entity)
}

// ListEntities returns the entities the user belongs to
func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	entities, err := h.svc.ListEntities(uid)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entities)
}

// GetEntity returns one entity
func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	entity, err := h.svc.GetEntity(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entity)
}

// UpdateEntity saves entity changes (owner only)
func (h *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	var entity models.Entity
	if err := decodeBody(r, &entity); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	entity.ID = id
	if err := h.svc.UpdateEntity(uid, &entity); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entity)
}

// DeleteEntity soft-deletes an entity (owner only)
func (h *Handler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	if err := h.svc.DeleteEntity(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddEntityMember invites a user by email (owner only)
func (h *Handler) AddEntityMember(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}
	if req.Role == "" {
		req.Role = models.MemberRoleMember
	}
	membership, err := h.svc.AddEntityMember(uid, id, req.Email, req.Role)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, membership)
}

// ListEntityMembers returns the entity's memberships
func (h *Handler) ListEntityMembers(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	members, err := h.svc.ListEntityMembers(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// RemoveEntityMember removes a member from an entity (owner only)
func (h *Handler) RemoveEntityMember(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	targetID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		badRequest(w, "invalid member user id")
		return
	}
	if err := h.svc.RemoveEntityMember(uid, id, targetID); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ExportEntityJSON downloads an entity's full data set as JSON
func (h *Handler) ExportEntityJSON(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	export, err := h.svc.ExportEntity(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="entity-%d-export.json"`, id))
	json.NewEncoder(w).Encode(export)
}

// ExportEntityCSV downloads an entity's full data set as sectioned CSV
func (h *Handler) ExportEntityCSV(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid entity id")
		return
	}
	data, err := h.svc.ExportEntityCSV(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="entity-%d-export.csv"`, id))
	w.Write(data)
}
