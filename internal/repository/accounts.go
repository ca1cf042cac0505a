package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const accountColumns = `id, user_id, entity_id, name, account_type, balance, currency, description, is_active, created_at, updated_at`

func scanAccount(s interface{ Scan(...interface{}) error }, a *models.Account) error {
	return s.Scan(&a.ID, &a.UserID, &a.EntityID, &a.Name, &a.AccountType, &a.Balance,
		&a.Currency, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, entity_id, name, account_type, balance, currency, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRow(query, account.UserID, account.EntityID, account.Name,
		account.AccountType, account.Balance, account.Currency, account.Description).
		Scan(&account.ID, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves one account owned by the user
func (r *Repository) FindAccountByID(id, userID int64) (*models.Account, error) {
	a := &models.Account{}
	err := scanAccount(r.db.QueryRow(
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND user_id = $2`, id, userID), a)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return a, nil
}

// ListAccounts returns the user's accounts, optionally entity-filtered
func (r *Repository) ListAccounts(userID int64, entityID *int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ActiveAccounts returns active accounts only; part of the forecast data source
func (r *Repository) ActiveAccounts(userID int64, entityID *int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND is_active = TRUE`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount saves mutable account fields
func (r *Repository) UpdateAccount(account *models.Account) error {
	err := r.db.QueryRow(`
		UPDATE accounts
		SET name = $1, account_type = $2, balance = $3, currency = $4,
		    description = $5, is_active = $6, entity_id = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8 AND user_id = $9
		RETURNING updated_at`,
		account.Name, account.AccountType, account.Balance, account.Currency,
		account.Description, account.IsActive, account.EntityID, account.ID, account.UserID).
		Scan(&account.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// DeactivateAccount soft-deletes an account
func (r *Repository) DeactivateAccount(id, userID int64) error {
	result, err := r.db.Exec(`
		UPDATE accounts SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("account: %w", ErrNotFound)
	}
	return nil
}
