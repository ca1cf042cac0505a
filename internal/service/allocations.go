package service

import (
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

var validAllocationTypes = map[string]bool{
	models.AllocationTypeSavings: true,
	models.AllocationTypeBudget:  true,
	models.AllocationTypeGoal:    true,
}

// CreateAllocation creates an allocation bucket on one of the user's accounts
func (s *Service) CreateAllocation(userID int64, allocation *models.Allocation) error {
	if allocation.Name == "" {
		return fmt.Errorf("allocation name is required: %w", ErrInvalidInput)
	}
	if !validAllocationTypes[allocation.AllocationType] {
		return fmt.Errorf("unknown allocation type %q: %w", allocation.AllocationType, ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, allocation.EntityID); err != nil {
		return err
	}
	if _, err := s.repo.FindAccountByID(allocation.AccountID, userID); err != nil {
		return err
	}

	allocation.UserID = userID
	return s.repo.CreateAllocation(allocation)
}

// GetAllocation returns one of the user's allocations
func (s *Service) GetAllocation(userID, allocationID int64) (*models.Allocation, error) {
	return s.repo.FindAllocationByID(allocationID, userID)
}

// ListAllocations returns the user's allocations with optional filters
func (s *Service) ListAllocations(userID int64, entityID *int64, allocationType string) ([]models.Allocation, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	if allocationType != "" && !validAllocationTypes[allocationType] {
		return nil, fmt.Errorf("unknown allocation type %q: %w", allocationType, ErrInvalidInput)
	}
	return s.repo.ListAllocations(userID, entityID, allocationType)
}

// UpdateAllocation saves changes to one of the user's allocations
func (s *Service) UpdateAllocation(userID int64, allocation *models.Allocation) error {
	if !validAllocationTypes[allocation.AllocationType] {
		return fmt.Errorf("unknown allocation type %q: %w", allocation.AllocationType, ErrInvalidInput)
	}
	allocation.UserID = userID
	return s.repo.UpdateAllocation(allocation)
}

// DeleteAllocation soft-deletes an allocation
func (s *Service) DeleteAllocation(userID, allocationID int64) error {
	return s.repo.DeactivateAllocation(allocationID, userID)
}
