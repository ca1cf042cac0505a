package repository

import (
	"database/sql"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

const wishlistColumns = `id, user_id, entity_id, name, estimated_cost, currency, priority,
		category_id, url, notes, target_date, is_purchased, purchased_at, created_at, updated_at`

// priorityOrder ranks critical first for wishlist listings
const priorityOrder = `CASE priority
		WHEN 'critical' THEN 0
		WHEN 'high' THEN 1
		WHEN 'medium' THEN 2
		ELSE 3
	END`

func scanWishlistItem(s interface{ Scan(...interface{}) error }, w *models.WishlistItem) error {
	return s.Scan(&w.ID, &w.UserID, &w.EntityID, &w.Name, &w.EstimatedCost, &w.Currency,
		&w.Priority, &w.CategoryID, &w.URL, &w.Notes, &w.TargetDate, &w.IsPurchased,
		&w.PurchasedAt, &w.CreatedAt, &w.UpdatedAt)
}

// CreateWishlistItem creates a wishlist item
func (r *Repository) CreateWishlistItem(item *models.WishlistItem) error {
	err := r.db.QueryRow(`
		INSERT INTO wishlist_items (user_id, entity_id, name, estimated_cost, currency,
			priority, category_id, url, notes, target_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_purchased, created_at, updated_at`,
		item.UserID, item.EntityID, item.Name, item.EstimatedCost, item.Currency,
		item.Priority, item.CategoryID, item.URL, item.Notes, item.TargetDate).
		Scan(&item.ID, &item.IsPurchased, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}
	return nil
}

// FindWishlistItemByID retrieves one wishlist item owned by the user
func (r *Repository) FindWishlistItemByID(id, userID int64) (*models.WishlistItem, error) {
	w := &models.WishlistItem{}
	err := scanWishlistItem(r.db.QueryRow(
		`SELECT `+wishlistColumns+` FROM wishlist_items WHERE id = $1 AND user_id = $2`, id, userID), w)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wishlist item: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist item: %w", err)
	}
	return w, nil
}

// ListWishlistItems returns the user's wishlist sorted by priority then age
func (r *Repository) ListWishlistItems(userID int64, entityID *int64, isPurchased *bool) ([]models.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items WHERE user_id = $1`
	args := []interface{}{userID}
	if entityID != nil {
		args = append(args, *entityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	if isPurchased != nil {
		args = append(args, *isPurchased)
		query += fmt.Sprintf(` AND is_purchased = $%d`, len(args))
	}
	query += ` ORDER BY ` + priorityOrder + `, created_at`

	return r.queryWishlistItems(query, args...)
}

// UnpurchasedWishlistItems returns unpurchased items by priority, optionally
// limited (dashboard uses the top 3)
func (r *Repository) UnpurchasedWishlistItems(userID int64, entityID *int64, limit int) ([]models.WishlistItem, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist_items
		WHERE user_id = $1 AND is_purchased = FALSE`
	args := []interface{}{userID}
	if entityID != nil {
		args = append(args, *entityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	query += ` ORDER BY ` + priorityOrder + `, created_at`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	return r.queryWishlistItems(query, args...)
}

func (r *Repository) queryWishlistItems(query string, args ...interface{}) ([]models.WishlistItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var w models.WishlistItem
		if err := scanWishlistItem(rows, &w); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// UpdateWishlistItem saves mutable wishlist fields
func (r *Repository) UpdateWishlistItem(item *models.WishlistItem) error {
	err := r.db.QueryRow(`
		UPDATE wishlist_items
		SET name = $1, estimated_cost = $2, currency = $3, priority = $4, category_id = $5,
		    url = $6, notes = $7, target_date = $8, is_purchased = $9, purchased_at = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11 AND user_id = $12
		RETURNING updated_at`,
		item.Name, item.EstimatedCost, item.Currency, item.Priority, item.CategoryID,
		item.URL, item.Notes, item.TargetDate, item.IsPurchased, item.PurchasedAt,
		item.ID, item.UserID).
		Scan(&item.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("wishlist item: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update wishlist item: %w", err)
	}
	return nil
}

// DeleteWishlistItem removes a wishlist item
func (r *Repository) DeleteWishlistItem(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("wishlist item: %w", ErrNotFound)
	}
	return nil
}
