package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/tallytrace/finance-service/internal/config"
)

func TestRoutesRegistered(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())
	router := h.Routes(&config.Config{JWTSecret: "test-secret"})

	cases := []struct {
		method string
		target string
	}{
		{"DELETE", "/api/v1/entities/5"},
		{"DELETE", "/api/v1/entities/5/members/7"},
		{"GET", "/api/v1/wishlist/5/readiness"},
		{"GET", "/api/v1/wishlist/plan"},
		{"POST", "/api/v1/transactions/import"},
		{"GET", "/api/v1/dashboard/snapshot"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), "%s %s not routed", tc.method, tc.target)
		assert.NoError(t, match.MatchErr, "%s %s", tc.method, tc.target)
	}
}

func TestDeleteEntityInvalidID(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())

	req := mux.SetURLVars(authedRequest("DELETE", "/entities/abc"), map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	h.DeleteEntity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveEntityMemberInvalidTarget(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())

	req := mux.SetURLVars(authedRequest("DELETE", "/entities/5/members/none"),
		map[string]string{"id": "5", "user_id": "none"})
	rec := httptest.NewRecorder()
	h.RemoveEntityMember(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistReadinessInvalidID(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())

	req := mux.SetURLVars(authedRequest("GET", "/wishlist/soon/readiness"), map[string]string{"id": "soon"})
	rec := httptest.NewRecorder()
	h.WishlistReadiness(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
