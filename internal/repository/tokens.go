package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

// ReplaceEmailToken removes existing tokens of the same type for the user
// and stores a fresh one.
func (r *Repository) ReplaceEmailToken(token *models.EmailToken) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM email_tokens WHERE user_id = $1 AND token_type = $2`,
		token.UserID, token.TokenType); err != nil {
		return fmt.Errorf("failed to delete stale tokens: %w", err)
	}

	err = tx.QueryRow(`
		INSERT INTO email_tokens (user_id, token, token_type, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		token.UserID, token.Token, token.TokenType, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create email token: %w", err)
	}

	return tx.Commit()
}

// FindEmailToken looks up a token value of the given type
func (r *Repository) FindEmailToken(value, tokenType string) (*models.EmailToken, error) {
	token := &models.EmailToken{}
	err := r.db.QueryRow(`
		SELECT id, user_id, token, token_type, expires_at, created_at
		FROM email_tokens
		WHERE token = $1 AND token_type = $2`, value, tokenType).
		Scan(&token.ID, &token.UserID, &token.Token, &token.TokenType, &token.ExpiresAt, &token.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("email token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find email token: %w", err)
	}
	return token, nil
}

// DeleteEmailTokens removes all tokens of one type for a user
func (r *Repository) DeleteEmailTokens(userID int64, tokenType string) error {
	_, err := r.db.Exec(`DELETE FROM email_tokens WHERE user_id = $1 AND token_type = $2`, userID, tokenType)
	if err != nil {
		return fmt.Errorf("failed to delete email tokens: %w", err)
	}
	return nil
}
