package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tallytrace/finance-service/internal/models"
)

const transactionColumns = `id, user_id, entity_id, account_id, category_id, amount, currency,
		description, transaction_type, transaction_date, posting_date, is_posted,
		transfer_to_account_id, created_at, updated_at`

func scanTransaction(s interface{ Scan(...interface{}) error }, t *models.Transaction) error {
	return s.Scan(&t.ID, &t.UserID, &t.EntityID, &t.AccountID, &t.CategoryID, &t.Amount,
		&t.Currency, &t.Description, &t.TransactionType, &t.TransactionDate, &t.PostingDate,
		&t.IsPosted, &t.TransferToAccountID, &t.CreatedAt, &t.UpdatedAt)
}

// applyBalanceEffect moves the transaction's amount through account balances.
// sign is +1 when posting and -1 when reversing.
func applyBalanceEffect(tx *sql.Tx, txn *models.Transaction, sign float64) error {
	adjust := func(accountID int64, delta float64) error {
		result, err := tx.Exec(`
			UPDATE accounts SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2`, delta, accountID)
		if err != nil {
			return fmt.Errorf("failed to adjust balance of account %d: %w", accountID, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
		}
		return nil
	}

	switch txn.TransactionType {
	case models.TransactionTypeDebit:
		return adjust(txn.AccountID, -sign*txn.Amount)
	case models.TransactionTypeCredit:
		return adjust(txn.AccountID, sign*txn.Amount)
	case models.TransactionTypeTransfer:
		if txn.TransferToAccountID == nil {
			return fmt.Errorf("transfer transaction %d has no destination account", txn.ID)
		}
		if err := adjust(txn.AccountID, -sign*txn.Amount); err != nil {
			return err
		}
		return adjust(*txn.TransferToAccountID, sign*txn.Amount)
	default:
		return fmt.Errorf("unknown transaction type %q", txn.TransactionType)
	}
}

// CreateTransaction inserts a transaction. Posted transactions apply their
// balance effect in the same database transaction, keeping the invariant
// that unposted rows are the only cash events not yet in balances.
func (r *Repository) CreateTransaction(txn *models.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if txn.IsPosted && txn.PostingDate == nil {
		now := time.Now().UTC()
		txn.PostingDate = &now
	}

	err = tx.QueryRow(`
		INSERT INTO transactions (user_id, entity_id, account_id, category_id, amount, currency,
			description, transaction_type, transaction_date, posting_date, is_posted, transfer_to_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		txn.UserID, txn.EntityID, txn.AccountID, txn.CategoryID, txn.Amount, txn.Currency,
		txn.Description, txn.TransactionType, txn.TransactionDate, txn.PostingDate,
		txn.IsPosted, txn.TransferToAccountID).
		Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if txn.IsPosted {
		if err := applyBalanceEffect(tx, txn, 1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// PostTransaction marks an unposted transaction posted and applies its
// balance effect.
func (r *Repository) PostTransaction(id, userID int64) (*models.Transaction, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn := &models.Transaction{}
	err = scanTransaction(tx.QueryRow(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, id, userID), txn)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if txn.IsPosted {
		return nil, fmt.Errorf("transaction %d is already posted", id)
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(`
		UPDATE transactions SET is_posted = TRUE, posting_date = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, now, id); err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}
	txn.IsPosted = true
	txn.PostingDate = &now

	if err := applyBalanceEffect(tx, txn, 1); err != nil {
		return nil, err
	}

	return txn, tx.Commit()
}

// FindTransactionByID retrieves one transaction owned by the user
func (r *Repository) FindTransactionByID(id, userID int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := scanTransaction(r.db.QueryRow(
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID), t)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

// TransactionFilter narrows ListTransactions
type TransactionFilter struct {
	EntityID  *int64
	AccountID *int64
	IsPosted  *bool
	From      *time.Time
	To        *time.Time
}

// ListTransactions returns the user's transactions with optional filters,
// newest first
func (r *Repository) ListTransactions(userID int64, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(` AND account_id = $%d`, len(args))
	}
	if filter.IsPosted != nil {
		args = append(args, *filter.IsPosted)
		query += fmt.Sprintf(` AND is_posted = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND transaction_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND transaction_date <= $%d`, len(args))
	}
	query += ` ORDER BY transaction_date DESC, id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// UnpostedTransactions returns future cash events; part of the forecast
// data source
func (r *Repository) UnpostedTransactions(userID int64, entityID *int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND is_posted = FALSE`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unposted transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// DeleteTransaction removes a transaction, reversing its balance effect if
// it was posted.
func (r *Repository) DeleteTransaction(id, userID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn := &models.Transaction{}
	err = scanTransaction(tx.QueryRow(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, id, userID), txn)
	if err == sql.ErrNoRows {
		return fmt.Errorf("transaction: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if txn.IsPosted {
		if err := applyBalanceEffect(tx, txn, -1); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return tx.Commit()
}
