package models

import "time"

// Category labels transactions and budget entries
type Category struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	EntityID    *int64    `json:"entity_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsExpense   bool      `json:"is_expense"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
