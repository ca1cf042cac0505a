package models

import "time"

// Transaction types
const (
	TransactionTypeDebit    = "debit"
	TransactionTypeCredit   = "credit"
	TransactionTypeTransfer = "transfer"
)

// Transaction represents a financial transaction. Posted transactions are
// already reflected in the account balance; unposted ones are known future
// cash events.
type Transaction struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	EntityID            *int64     `json:"entity_id,omitempty"`
	AccountID           int64      `json:"account_id"`
	CategoryID          *int64     `json:"category_id,omitempty"`
	Amount              float64    `json:"amount"`
	Currency            string     `json:"currency"`
	Description         string     `json:"description,omitempty"`
	TransactionType     string     `json:"transaction_type"`
	TransactionDate     time.Time  `json:"transaction_date"`
	PostingDate         *time.Time `json:"posting_date,omitempty"`
	IsPosted            bool       `json:"is_posted"`
	TransferToAccountID *int64     `json:"transfer_to_account_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
