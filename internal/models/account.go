package models

import "time"

// Account types
const (
	AccountTypeCash     = "cash"
	AccountTypeEWallet  = "e_wallet"
	AccountTypeSavings  = "savings"
	AccountTypeChecking = "checking"
	AccountTypeCredit   = "credit"
)

// Account holds funds for a user, optionally scoped to an entity
type Account struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	EntityID    *int64    `json:"entity_id,omitempty"`
	Name        string    `json:"name"`
	AccountType string    `json:"account_type"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
