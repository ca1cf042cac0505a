package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallytrace/finance-service/internal/models"
)

func TestParseTransactionRow(t *testing.T) {
	txn, err := parseTransactionRow([]string{"7", "149.99", "debit", "2026-09-01"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), txn.AccountID)
	assert.Equal(t, 149.99, txn.Amount)
	assert.Equal(t, models.TransactionTypeDebit, txn.TransactionType)
	assert.Equal(t, "2026-09-01", txn.TransactionDate.Format("2006-01-02"))
	assert.False(t, txn.IsPosted)
	assert.Nil(t, txn.CategoryID)
}

func TestParseTransactionRowOptionalColumns(t *testing.T) {
	txn, err := parseTransactionRow([]string{"7", "25.00", "credit", "2026-09-02", "refund", "3", "true"})
	require.NoError(t, err)

	assert.Equal(t, "refund", txn.Description)
	require.NotNil(t, txn.CategoryID)
	assert.Equal(t, int64(3), *txn.CategoryID)
	assert.True(t, txn.IsPosted)
}

func TestParseTransactionRowMoneyFormats(t *testing.T) {
	// Spreadsheet exports wrap amounts in symbols and separators
	txn, err := parseTransactionRow([]string{"1", "$1,234.56", "debit", "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 1234.56, txn.Amount)

	txn, err = parseTransactionRow([]string{"1", " €99.90 ", "debit", "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 99.9, txn.Amount)
}

func TestParseTransactionRowRejectsBadRows(t *testing.T) {
	cases := map[string][]string{
		"too few columns":     {"1", "10.00", "debit"},
		"bad account id":      {"abc", "10.00", "debit", "2026-09-01"},
		"garbage amount":      {"1", "ten dollars", "debit", "2026-09-01"},
		"zero amount":         {"1", "0", "debit", "2026-09-01"},
		"negative amount":     {"1", "-5.00", "debit", "2026-09-01"},
		"transfer type":       {"1", "10.00", "transfer", "2026-09-01"},
		"unknown type":        {"1", "10.00", "withdrawal", "2026-09-01"},
		"bad date":            {"1", "10.00", "debit", "01/09/2026"},
		"bad category id":     {"1", "10.00", "debit", "2026-09-01", "", "x"},
		"bad is_posted value": {"1", "10.00", "debit", "2026-09-01", "", "", "maybe"},
	}
	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseTransactionRow(record)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "1234.56", normalizeAmount("$1,234.56"))
	assert.Equal(t, "99.90", normalizeAmount(" €99.90 "))
	assert.Equal(t, "10.00", normalizeAmount("£10.00"))
	assert.Equal(t, "42", normalizeAmount("42"))
}
