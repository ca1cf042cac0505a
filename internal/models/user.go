package models

import "time"

// User represents a registered user
type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	PasswordHash        string     `json:"-"` // Not serialized
	IsActive            bool       `json:"is_active"`
	IsVerified          bool       `json:"is_verified"`
	DefaultCurrency     string     `json:"default_currency"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
