package service

import (
	"errors"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// CreateCategory creates a category; names are unique per user
func (s *Service) CreateCategory(userID int64, category *models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, category.EntityID); err != nil {
		return err
	}
	if _, err := s.repo.FindCategoryByName(category.Name, userID); err == nil {
		return fmt.Errorf("category %q already exists: %w", category.Name, ErrInvalidInput)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	category.UserID = userID
	return s.repo.CreateCategory(category)
}

// GetCategory returns one of the user's categories
func (s *Service) GetCategory(userID, categoryID int64) (*models.Category, error) {
	return s.repo.FindCategoryByID(categoryID, userID)
}

// ListCategories returns the user's categories with optional filters
func (s *Service) ListCategories(userID int64, filter repository.CategoryFilter) ([]models.Category, error) {
	if err := s.requireEntityAccess(userID, filter.EntityID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(userID, filter)
}

// UpdateCategory saves changes to one of the user's categories
func (s *Service) UpdateCategory(userID int64, category *models.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}
	category.UserID = userID
	return s.repo.UpdateCategory(category)
}

// DeleteCategory soft-deletes a category
func (s *Service) DeleteCategory(userID, categoryID int64) error {
	return s.repo.DeactivateCategory(categoryID, userID)
}
