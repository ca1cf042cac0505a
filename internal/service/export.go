package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// EntityExport bundles everything belonging to one entity for a JSON export
type EntityExport struct {
	ExportedAt    string                `json:"exported_at"`
	Entity        *models.Entity        `json:"entity"`
	Accounts      []models.Account      `json:"accounts"`
	Categories    []models.Category     `json:"categories"`
	Transactions  []models.Transaction  `json:"transactions"`
	BudgetEntries []models.BudgetEntry  `json:"budget_entries"`
	Allocations   []models.Allocation   `json:"allocations"`
	WishlistItems []models.WishlistItem `json:"wishlist_items"`
}

// ExportEntity collects an entity's full data set for download
func (s *Service) ExportEntity(userID, entityID int64) (*EntityExport, error) {
	if err := s.requireEntityAccess(userID, &entityID); err != nil {
		return nil, err
	}
	entity, err := s.repo.FindEntityByID(entityID)
	if err != nil {
		return nil, err
	}

	export := &EntityExport{
		ExportedAt: time.Now().UTC().Format("2006-01-02T15:04:05"),
		Entity:     entity,
	}
	eid := &entityID
	if export.Accounts, err = s.repo.ListAccounts(userID, eid); err != nil {
		return nil, err
	}
	if export.Categories, err = s.repo.ListCategories(userID, repository.CategoryFilter{EntityID: eid}); err != nil {
		return nil, err
	}
	if export.Transactions, err = s.repo.ListTransactions(userID, repository.TransactionFilter{EntityID: eid}); err != nil {
		return nil, err
	}
	if export.BudgetEntries, err = s.repo.ListBudgetEntries(userID, eid); err != nil {
		return nil, err
	}
	if export.Allocations, err = s.repo.ListAllocations(userID, eid, ""); err != nil {
		return nil, err
	}
	if export.WishlistItems, err = s.repo.ListWishlistItems(userID, eid, nil); err != nil {
		return nil, err
	}
	return export, nil
}

// ExportEntityCSV renders the entity export as a sectioned CSV document.
// Each section starts with a "# name" marker row followed by its header.
func (s *Service) ExportEntityCSV(userID, entityID int64) ([]byte, error) {
	export, err := s.ExportEntity(userID, entityID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"# accounts"})
	w.Write([]string{"id", "name", "account_type", "balance", "currency", "is_active"})
	for _, a := range export.Accounts {
		w.Write([]string{
			strconv.FormatInt(a.ID, 10), a.Name, a.AccountType,
			formatAmount(a.Balance), a.Currency, strconv.FormatBool(a.IsActive),
		})
	}

	w.Write([]string{"# categories"})
	w.Write([]string{"id", "name", "is_expense", "is_active"})
	for _, c := range export.Categories {
		w.Write([]string{
			strconv.FormatInt(c.ID, 10), c.Name,
			strconv.FormatBool(c.IsExpense), strconv.FormatBool(c.IsActive),
		})
	}

	w.Write([]string{"# transactions"})
	w.Write([]string{"id", "account_id", "category_id", "amount", "currency",
		"description", "transaction_type", "transaction_date", "is_posted"})
	for _, t := range export.Transactions {
		w.Write([]string{
			strconv.FormatInt(t.ID, 10),
			strconv.FormatInt(t.AccountID, 10),
			formatOptionalID(t.CategoryID),
			formatAmount(t.Amount), t.Currency, t.Description, t.TransactionType,
			t.TransactionDate.Format("2006-01-02"),
			strconv.FormatBool(t.IsPosted),
		})
	}

	w.Write([]string{"# budget_entries"})
	w.Write([]string{"id", "entry_type", "name", "amount", "currency", "cadence",
		"next_occurrence", "is_active"})
	for _, e := range export.BudgetEntries {
		w.Write([]string{
			strconv.FormatInt(e.ID, 10), e.EntryType, e.Name,
			formatAmount(e.Amount), e.Currency, e.Cadence,
			e.NextOccurrence.Format("2006-01-02"),
			strconv.FormatBool(e.IsActive),
		})
	}

	w.Write([]string{"# allocations"})
	w.Write([]string{"id", "account_id", "name", "allocation_type", "target_amount",
		"current_amount", "currency", "is_active"})
	for _, a := range export.Allocations {
		target := ""
		if a.TargetAmount != nil {
			target = formatAmount(*a.TargetAmount)
		}
		w.Write([]string{
			strconv.FormatInt(a.ID, 10),
			strconv.FormatInt(a.AccountID, 10),
			a.Name, a.AllocationType, target,
			formatAmount(a.CurrentAmount), a.Currency,
			strconv.FormatBool(a.IsActive),
		})
	}

	w.Write([]string{"# wishlist_items"})
	w.Write([]string{"id", "name", "estimated_cost", "currency", "priority", "is_purchased"})
	for _, item := range export.WishlistItems {
		w.Write([]string{
			strconv.FormatInt(item.ID, 10), item.Name,
			formatAmount(item.EstimatedCost), item.Currency, item.Priority,
			strconv.FormatBool(item.IsPurchased),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write export csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportRowError reports why one CSV row was rejected
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a CSV transaction import
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// transaction import columns, header required
var importHeader = []string{"account_id", "amount", "transaction_type", "transaction_date"}

// ImportTransactionsCSV ingests transactions from a CSV document. Expected
// columns: account_id, amount, transaction_type, transaction_date, then
// optional description, category_id, is_posted. Bad rows are reported, not
// fatal.
func (s *Service) ImportTransactionsCSV(userID int64, entityID *int64, data []byte) (*ImportResult, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %w", ErrInvalidInput)
	}
	for i, col := range importHeader {
		if i >= len(records[0]) || strings.TrimSpace(strings.ToLower(records[0][i])) != col {
			return nil, fmt.Errorf("unexpected csv header, want %s: %w",
				strings.Join(importHeader, ","), ErrInvalidInput)
		}
	}

	result := &ImportResult{}
	for i, record := range records[1:] {
		rowNum := i + 2
		txn, err := parseTransactionRow(record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		txn.EntityID = entityID
		if err := s.CreateTransaction(userID, txn); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Imported++
	}
	s.log.Infof("CSV import for user %d: %d imported, %d skipped", userID, result.Imported, result.Skipped)
	return result, nil
}

func parseTransactionRow(record []string) (*models.Transaction, error) {
	if len(record) < len(importHeader) {
		return nil, fmt.Errorf("expected at least %d columns, got %d", len(importHeader), len(record))
	}

	accountID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid account_id %q", record[0])
	}

	// Amounts arrive as arbitrary money strings; decimal parsing rejects
	// garbage that ParseFloat would happily truncate.
	amount, err := decimal.NewFromString(normalizeAmount(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", record[1])
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %q", record[1])
	}

	txnType := strings.TrimSpace(strings.ToLower(record[2]))
	if txnType != models.TransactionTypeDebit && txnType != models.TransactionTypeCredit {
		return nil, fmt.Errorf("invalid transaction_type %q", record[2])
	}

	txnDate, err := time.Parse("2006-01-02", strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid transaction_date %q", record[3])
	}

	txn := &models.Transaction{
		AccountID:       accountID,
		Amount:          amount.Round(2).InexactFloat64(),
		TransactionType: txnType,
		TransactionDate: txnDate,
	}
	if len(record) > 4 {
		txn.Description = strings.TrimSpace(record[4])
	}
	if len(record) > 5 && strings.TrimSpace(record[5]) != "" {
		categoryID, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id %q", record[5])
		}
		txn.CategoryID = &categoryID
	}
	if len(record) > 6 && strings.TrimSpace(record[6]) != "" {
		posted, err := strconv.ParseBool(strings.TrimSpace(record[6]))
		if err != nil {
			return nil, fmt.Errorf("invalid is_posted %q", record[6])
		}
		txn.IsPosted = posted
	}
	return txn, nil
}

// normalizeAmount strips currency symbols and thousands separators that
// spreadsheet exports commonly include
func normalizeAmount(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimLeft(cleaned, "$€£")
	return strings.ReplaceAll(cleaned, ",", "")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
