package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const budgetEntryColumns = `id, user_id, entity_id, entry_type, name, description, amount, currency,
		cadence, next_occurrence, lead_time_days, account_id, category_id, allocation_id,
		is_autopay, is_active, created_at, updated_at`

func scanBudgetEntry(s interface{ Scan(...interface{}) error }, e *models.BudgetEntry) error {
	return s.Scan(&e.ID, &e.UserID, &e.EntityID, &e.EntryType, &e.Name, &e.Description,
		&e.Amount, &e.Currency, &e.Cadence, &e.NextOccurrence, &e.LeadTimeDays,
		&e.AccountID, &e.CategoryID, &e.AllocationID, &e.IsAutopay, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt)
}

// CreateBudgetEntry creates a recurring budget entry
func (r *Repository) CreateBudgetEntry(entry *models.BudgetEntry) error {
	err := r.db.QueryRow(`
		INSERT INTO budget_entries (user_id, entity_id, entry_type, name, description, amount,
			currency, cadence, next_occurrence, lead_time_days, account_id, category_id,
			allocation_id, is_autopay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, is_active, created_at, updated_at`,
		entry.UserID, entry.EntityID, entry.EntryType, entry.Name, entry.Description,
		entry.Amount, entry.Currency, entry.Cadence, entry.NextOccurrence, entry.LeadTimeDays,
		entry.AccountID, entry.CategoryID, entry.AllocationID, entry.IsAutopay).
		Scan(&entry.ID, &entry.IsActive, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget entry: %w", err)
	}
	return nil
}

// FindBudgetEntryByID retrieves one budget entry owned by the user
func (r *Repository) FindBudgetEntryByID(id, userID int64) (*models.BudgetEntry, error) {
	e := &models.BudgetEntry{}
	err := scanBudgetEntry(r.db.QueryRow(
		`SELECT `+budgetEntryColumns+` FROM budget_entries WHERE id = $1 AND user_id = $2`, id, userID), e)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget entry: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find budget entry: %w", err)
	}
	return e, nil
}

// ListBudgetEntries returns the user's budget entries, optionally entity-filtered
func (r *Repository) ListBudgetEntries(userID int64, entityID *int64) ([]models.BudgetEntry, error) {
	query := `SELECT ` + budgetEntryColumns + ` FROM budget_entries WHERE user_id = $1`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}
	query += ` ORDER BY next_occurrence`

	return r.queryBudgetEntries(query, args...)
}

// ActiveBudgetEntries returns active entries only; part of the forecast
// data source
func (r *Repository) ActiveBudgetEntries(userID int64, entityID *int64) ([]models.BudgetEntry, error) {
	query := `SELECT ` + budgetEntryColumns + ` FROM budget_entries WHERE user_id = $1 AND is_active = TRUE`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}

	return r.queryBudgetEntries(query, args...)
}

func (r *Repository) queryBudgetEntries(query string, args ...interface{}) ([]models.BudgetEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget entries: %w", err)
	}
	defer rows.Close()

	var entries []models.BudgetEntry
	for rows.Next() {
		var e models.BudgetEntry
		if err := scanBudgetEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateBudgetEntry saves mutable budget entry fields
func (r *Repository) UpdateBudgetEntry(entry *models.BudgetEntry) error {
	err := r.db.QueryRow(`
		UPDATE budget_entries
		SET entry_type = $1, name = $2, description = $3, amount = $4, currency = $5,
		    cadence = $6, next_occurrence = $7, lead_time_days = $8, account_id = $9,
		    category_id = $10, allocation_id = $11, is_autopay = $12, is_active = $13,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $14 AND user_id = $15
		RETURNING updated_at`,
		entry.EntryType, entry.Name, entry.Description, entry.Amount, entry.Currency,
		entry.Cadence, entry.NextOccurrence, entry.LeadTimeDays, entry.AccountID,
		entry.CategoryID, entry.AllocationID, entry.IsAutopay, entry.IsActive,
		entry.ID, entry.UserID).
		Scan(&entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("budget entry: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update budget entry: %w", err)
	}
	return nil
}

// DeactivateBudgetEntry soft-deletes a budget entry
func (r *Repository) DeactivateBudgetEntry(id, userID int64) error {
	result, err := r.db.Exec(`
		UPDATE budget_entries SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate budget entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("budget entry: %w", ErrNotFound)
	}
	return nil
}
