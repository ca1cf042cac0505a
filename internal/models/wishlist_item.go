package models

import "time"

// Wishlist priorities, highest first
const (
	WishlistPriorityCritical = "critical"
	WishlistPriorityHigh     = "high"
	WishlistPriorityMedium   = "medium"
	WishlistPriorityLow      = "low"
)

// WishlistItem is a planned future purchase
type WishlistItem struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	EntityID      *int64     `json:"entity_id,omitempty"`
	Name          string     `json:"name"`
	EstimatedCost float64    `json:"estimated_cost"`
	Currency      string     `json:"currency"`
	Priority      string     `json:"priority"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	URL           string     `json:"url,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	IsPurchased   bool       `json:"is_purchased"`
	PurchasedAt   *time.Time `json:"purchased_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
