package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/tallytrace/finance-service/internal/integrations/ecb"
	"github.com/tallytrace/finance-service/internal/repository"
	"github.com/tallytrace/finance-service/internal/service"
)

// Handler translates HTTP requests into service calls
type Handler struct {
	svc *service.Service
	fx  *ecb.Client
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, fx *ecb.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, fx: fx, log: log}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service error categories to HTTP statuses
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.Errorf("Internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// userID extracts the authenticated user ID set by the auth middleware
func userID(r *http.Request) (int64, error) {
	raw, _ := r.Context().Value("userID").(string)
	return strconv.ParseInt(raw, 10, 64)
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// entityScope reads the optional entity scope from the X-Entity-Id header or
// the entity_id query parameter. The header wins when both are present.
func entityScope(r *http.Request) (*int64, error) {
	raw := r.Header.Get("X-Entity-Id")
	if raw == "" {
		raw = r.URL.Query().Get("entity_id")
	}
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryInt reads an integer query parameter, clamping nothing: out-of-range
// values are the caller's to reject
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
