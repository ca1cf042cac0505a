package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const categoryColumns = `id, user_id, entity_id, name, description, color, is_expense, is_active, created_at, updated_at`

func scanCategory(s interface{ Scan(...interface{}) error }, c *models.Category) error {
	return s.Scan(&c.ID, &c.UserID, &c.EntityID, &c.Name, &c.Description, &c.Color,
		&c.IsExpense, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

// CreateCategory creates a new category
func (r *Repository) CreateCategory(category *models.Category) error {
	err := r.db.QueryRow(`
		INSERT INTO categories (user_id, entity_id, name, description, color, is_expense)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at`,
		category.UserID, category.EntityID, category.Name, category.Description,
		category.Color, category.IsExpense).
		Scan(&category.ID, &category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindCategoryByID retrieves one category owned by the user
func (r *Repository) FindCategoryByID(id, userID int64) (*models.Category, error) {
	c := &models.Category{}
	err := scanCategory(r.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, userID), c)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

// FindCategoryByName checks for a duplicate name for the user
func (r *Repository) FindCategoryByName(name string, userID int64) (*models.Category, error) {
	c := &models.Category{}
	err := scanCategory(r.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1 AND user_id = $2`, name, userID), c)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

// CategoryFilter narrows ListCategories
type CategoryFilter struct {
	EntityID  *int64
	IsExpense *bool
	IsActive  *bool
}

// ListCategories returns the user's categories with optional filters
func (r *Repository) ListCategories(userID int64, filter CategoryFilter) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []interface{}{userID}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	if filter.IsExpense != nil {
		args = append(args, *filter.IsExpense)
		query += fmt.Sprintf(` AND is_expense = $%d`, len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += fmt.Sprintf(` AND is_active = $%d`, len(args))
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory saves mutable category fields
func (r *Repository) UpdateCategory(category *models.Category) error {
	err := r.db.QueryRow(`
		UPDATE categories
		SET name = $1, description = $2, color = $3, is_expense = $4, is_active = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`,
		category.Name, category.Description, category.Color, category.IsExpense,
		category.IsActive, category.ID, category.UserID).
		Scan(&category.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeactivateCategory soft-deletes a category
func (r *Repository) DeactivateCategory(id, userID int64) error {
	result, err := r.db.Exec(`
		UPDATE categories SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	return nil
}
