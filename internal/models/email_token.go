package models

import "time"

// Email token types
const (
	EmailTokenTypeVerify = "verify_email"
	EmailTokenTypeReset  = "reset_password"
)

// EmailToken is a single-use token mailed to a user for verification or
// password reset
type EmailToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
