package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const entityColumns = `id, name, entity_type, description, default_currency, is_active, created_at, updated_at`

func scanEntity(s interface{ Scan(...interface{}) error }, e *models.Entity) error {
	return s.Scan(&e.ID, &e.Name, &e.EntityType, &e.Description, &e.DefaultCurrency,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt)
}

// CreateEntityWithOwner creates an entity and makes the user its owner in
// one transaction.
func (r *Repository) CreateEntityWithOwner(entity *models.Entity, userID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO entities (name, entity_type, description, default_currency)
		VALUES ($1, $2, $3, $4)
		RETURNING `+entityColumns,
		entity.Name, entity.EntityType, entity.Description, entity.DefaultCurrency).
		Scan(&entity.ID, &entity.Name, &entity.EntityType, &entity.Description,
			&entity.DefaultCurrency, &entity.IsActive, &entity.CreatedAt, &entity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO entity_memberships (user_id, entity_id, role)
		VALUES ($1, $2, $3)`, userID, entity.ID, models.MemberRoleOwner); err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	return tx.Commit()
}

// ListEntitiesForUser returns every entity the user is a member of
func (r *Repository) ListEntitiesForUser(userID int64) ([]models.Entity, error) {
	query := `
		SELECT e.id, e.name, e.entity_type, e.description, e.default_currency, e.is_active, e.created_at, e.updated_at
		FROM entities e
		JOIN entity_memberships m ON m.entity_id = e.id
		WHERE m.user_id = $1
		ORDER BY e.created_at`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		var e models.Entity
		if err := scanEntity(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// FindEntityByID retrieves one entity
func (r *Repository) FindEntityByID(id int64) (*models.Entity, error) {
	e := &models.Entity{}
	err := scanEntity(r.db.QueryRow(`SELECT `+entityColumns+` FROM entities WHERE id = $1`, id), e)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entity: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entity: %w", err)
	}
	return e, nil
}

// UpdateEntity saves mutable entity fields
func (r *Repository) UpdateEntity(entity *models.Entity) error {
	err := r.db.QueryRow(`
		UPDATE entities
		SET name = $1, entity_type = $2, description = $3, default_currency = $4,
		    is_active = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at`,
		entity.Name, entity.EntityType, entity.Description, entity.DefaultCurrency,
		entity.IsActive, entity.ID).Scan(&entity.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("entity: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// DeactivateEntity soft-deletes an entity
func (r *Repository) DeactivateEntity(id int64) error {
	result, err := r.db.Exec(`
		UPDATE entities
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate entity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("entity: %w", ErrNotFound)
	}
	return nil
}

// FindMembership returns the user's membership in an entity, if any
func (r *Repository) FindMembership(entityID, userID int64) (*models.EntityMembership, error) {
	m := &models.EntityMembership{}
	err := r.db.QueryRow(`
		SELECT id, user_id, entity_id, role, joined_at
		FROM entity_memberships
		WHERE entity_id = $1 AND user_id = $2`, entityID, userID).
		Scan(&m.ID, &m.UserID, &m.EntityID, &m.Role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("membership: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return m, nil
}

// AddMembership adds a user to an entity
func (r *Repository) AddMembership(m *models.EntityMembership) error {
	err := r.db.QueryRow(`
		INSERT INTO entity_memberships (user_id, entity_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`, m.UserID, m.EntityID, m.Role).
		Scan(&m.ID, &m.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// RemoveMembership removes a user from an entity
func (r *Repository) RemoveMembership(entityID, userID int64) error {
	result, err := r.db.Exec(`
		DELETE FROM entity_memberships
		WHERE entity_id = $1 AND user_id = $2`, entityID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("membership: %w", ErrNotFound)
	}
	return nil
}

// ListMemberships returns all memberships of an entity
func (r *Repository) ListMemberships(entityID int64) ([]models.EntityMembership, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, entity_id, role, joined_at
		FROM entity_memberships
		WHERE entity_id = $1
		ORDER BY joined_at`, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var members []models.EntityMembership
	for rows.Next() {
		var m models.EntityMembership
		if err := rows.Scan(&m.ID, &m.UserID, &m.EntityID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
