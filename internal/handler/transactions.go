package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// import uploads are spreadsheet exports, not bulk dumps
const maxImportBytes = 5 << 20

// CreateTransaction records a transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var txn models.Transaction
	if err := decodeBody(r, &txn); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = time.Now().UTC()
	}
	if err := h.svc.CreateTransaction(uid, &txn); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

// ListTransactions returns the user's transactions with optional filters
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
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
	filter := repository.TransactionFilter{EntityID: entityID}
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(w, "invalid account_id")
			return
		}
		filter.AccountID = &id
	}
	if raw := r.URL.Query().Get("is_posted"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "invalid is_posted")
			return
		}
		filter.IsPosted = &v
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(w, "invalid from date, want YYYY-MM-DD")
			return
		}
		filter.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(w, "invalid to date, want YYYY-MM-DD")
			return
		}
		filter.To = &t
	}

	transactions, err := h.svc.ListTransactions(uid, filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// GetTransaction returns one transaction
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	txn, err := h.svc.GetTransaction(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

// PostTransaction marks an unposted transaction posted
func (h *Handler) PostTransaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	txn, err := h.svc.PostTransaction(uid, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

// DeleteTransaction removes a transaction
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	if err := h.svc.DeleteTransaction(uid, id); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ImportTransactions ingests a CSV body of transactions
func (h *Handler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
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
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		badRequest(w, "failed to read request body")
		return
	}
	result, err := h.svc.ImportTransactionsCSV(uid, entityID, data)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
