package models

import "time"

// Budget entry types
const (
	BudgetEntryTypeIncome  = "income"
	BudgetEntryTypeExpense = "expense"
)

// BudgetEntry is a recurring scheduled income or expense. Amount is the
// per-cadence amount, not a monthly figure. NextOccurrence anchors the
// recurrence walk; the forecasting engine never writes it back.
type BudgetEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	EntityID       *int64    `json:"entity_id,omitempty"`
	EntryType      string    `json:"entry_type"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Cadence        string    `json:"cadence"`
	NextOccurrence time.Time `json:"next_occurrence"`
	LeadTimeDays   int       `json:"lead_time_days"`
	AccountID      *int64    `json:"account_id,omitempty"`
	CategoryID     *int64    `json:"category_id,omitempty"`
	AllocationID   *int64    `json:"allocation_id,omitempty"`
	IsAutopay      bool      `json:"is_autopay"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
