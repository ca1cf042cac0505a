package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(context.WithValue(req.Context(), "userID", "1"))
}

func TestEntityScopeQueryParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/accounts?entity_id=5", nil)
	id, err := entityScope(req)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(5), *id)
}

func TestEntityScopeHeaderWins(t *testing.T) {
	req := httptest.NewRequest("GET", "/accounts?entity_id=5", nil)
	req.Header.Set("X-Entity-Id", "9")
	id, err := entityScope(req)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(9), *id)
}

func TestEntityScopeAbsent(t *testing.T) {
	req := httptest.NewRequest("GET", "/accounts", nil)
	id, err := entityScope(req)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestEntityScopeInvalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/accounts?entity_id=household", nil)
	_, err := entityScope(req)
	assert.Error(t, err)
}

func TestQueryIntDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/forecast/cashflow", nil)
	v, err := queryInt(req, "months", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestCashflowRejectsOutOfRangeMonths(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())

	for _, target := range []string{
		"/forecast/cashflow?months=0",
		"/forecast/cashflow?months=25",
		"/forecast/cashflow?months=soon",
	} {
		rec := httptest.NewRecorder()
		h.Cashflow(rec, authedRequest("GET", target))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestUpcomingRejectsOutOfRangeDays(t *testing.T) {
	h := NewHandler(nil, nil, logrus.New())

	for _, target := range []string{
		"/forecast/upcoming?days=0",
		"/forecast/upcoming?days=366",
	} {
		rec := httptest.NewRecorder()
		h.Upcoming(rec, authedRequest("GET", target))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
