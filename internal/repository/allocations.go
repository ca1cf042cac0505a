package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const allocationColumns = `id, user_id, entity_id, account_id, name, allocation_type, description,
		target_amount, current_amount, monthly_target, currency, target_date, is_active,
		created_at, updated_at`

func scanAllocation(s interface{ Scan(...interface{}) error }, a *models.Allocation) error {
	return s.Scan(&a.ID, &a.UserID, &a.EntityID, &a.AccountID, &a.Name, &a.AllocationType,
		&a.Description, &a.TargetAmount, &a.CurrentAmount, &a.MonthlyTarget, &a.Currency,
		&a.TargetDate, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

// CreateAllocation creates an allocation bucket
func (r *Repository) CreateAllocation(allocation *models.Allocation) error {
	err := r.db.QueryRow(`
		INSERT INTO allocations (user_id, entity_id, account_id, name, allocation_type,
			description, target_amount, current_amount, monthly_target, currency, target_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_active, created_at, updated_at`,
		allocation.UserID, allocation.EntityID, allocation.AccountID, allocation.Name,
		allocation.AllocationType, allocation.Description, allocation.TargetAmount,
		allocation.CurrentAmount, allocation.MonthlyTarget, allocation.Currency,
		allocation.TargetDate).
		Scan(&allocation.ID, &allocation.IsActive, &allocation.CreatedAt, &allocation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create allocation: %w", err)
	}
	return nil
}

// FindAllocationByID retrieves one allocation owned by the user
func (r *Repository) FindAllocationByID(id, userID int64) (*models.Allocation, error) {
	a := &models.Allocation{}
	err := scanAllocation(r.db.QueryRow(
		`SELECT `+allocationColumns+` FROM allocations WHERE id = $1 AND user_id = $2`, id, userID), a)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("allocation: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find allocation: %w", err)
	}
	return a, nil
}

// ListAllocations returns the user's allocations, optionally filtered by
// entity and type
func (r *Repository) ListAllocations(userID int64, entityID *int64, allocationType string) ([]models.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE user_id = $1`
	args := []interface{}{userID}
	if entityID != nil {
		args = append(args, *entityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	if allocationType != "" {
		args = append(args, allocationType)
		query += fmt.Sprintf(` AND allocation_type = $%d`, len(args))
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := scanAllocation(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// ActiveGoalAllocations returns active goal-type allocations for the
// dashboard snapshot
func (r *Repository) ActiveGoalAllocations(userID int64, entityID *int64) ([]models.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations
		WHERE user_id = $1 AND allocation_type = 'goal' AND is_active = TRUE`
	args := []interface{}{userID}
	if entityID != nil {
		query += ` AND entity_id = $2`
		args = append(args, *entityID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal allocations: %w", err)
	}
	defer rows.Close()

	var allocations []models.Allocation
	for rows.Next() {
		var a models.Allocation
		if err := scanAllocation(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// UpdateAllocation saves mutable allocation fields
func (r *Repository) UpdateAllocation(allocation *models.Allocation) error {
	err := r.db.QueryRow(`
		UPDATE allocations
		SET name = $1, allocation_type = $2, description = $3, target_amount = $4,
		    current_amount = $5, monthly_target = $6, currency = $7, target_date = $8,
		    is_active = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11
		RETURNING updated_at`,
		allocation.Name, allocation.AllocationType, allocation.Description,
		allocation.TargetAmount, allocation.CurrentAmount, allocation.MonthlyTarget,
		allocation.Currency, allocation.TargetDate, allocation.IsActive,
		allocation.ID, allocation.UserID).
		Scan(&allocation.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("allocation: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}
	return nil
}

// DeactivateAllocation soft-deletes an allocation
func (r *Repository) DeactivateAllocation(id, userID int64) error {
	result, err := r.db.Exec(`
		UPDATE allocations SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate allocation: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("allocation: %w", ErrNotFound)
	}
	return nil
}
