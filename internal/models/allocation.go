package models

import "time"

// Allocation types
const (
	AllocationTypeSavings = "savings"
	AllocationTypeBudget  = "budget"
	AllocationTypeGoal    = "goal"
)

// Allocation earmarks part of an account for savings, a budget envelope or a goal
type Allocation struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	EntityID       *int64     `json:"entity_id,omitempty"`
	AccountID      int64      `json:"account_id"`
	Name           string     `json:"name"`
	AllocationType string     `json:"allocation_type"`
	Description    string     `json:"description,omitempty"`
	TargetAmount   *float64   `json:"target_amount,omitempty"`
	CurrentAmount  float64    `json:"current_amount"`
	MonthlyTarget  *float64   `json:"monthly_target,omitempty"`
	Currency       string     `json:"currency"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
