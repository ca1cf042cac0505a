package models

import "time"

// Entity types
const (
	EntityTypePersonal = "personal"
	EntityTypeBusiness = "business"
)

// Membership roles
const (
	MemberRoleOwner  = "owner"
	MemberRoleMember = "member"
)

// Entity is a personal or business book grouping accounts and transactions
type Entity struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	EntityType      string    `json:"entity_type"`
	Description     string    `json:"description,omitempty"`
	DefaultCurrency string    `json:"default_currency"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EntityMembership links a user to an entity with a role
type EntityMembership struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	EntityID int64     `json:"entity_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
