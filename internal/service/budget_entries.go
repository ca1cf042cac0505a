package service

import (
	"fmt"

	"github.com/tallytrace/finance-service/internal/forecast"
	"github.com/tallytrace/finance-service/internal/models"
)

var validCadences = map[string]bool{
	string(forecast.CadenceMonthly):    true,
	string(forecast.CadenceQuarterly):  true,
	string(forecast.CadenceSemiAnnual): true,
	string(forecast.CadenceAnnual):     true,
}

// CreateBudgetEntry creates a recurring budget entry
func (s *Service) CreateBudgetEntry(userID int64, entry *models.BudgetEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("budget entry name is required: %w", ErrInvalidInput)
	}
	if entry.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	if entry.EntryType != models.BudgetEntryTypeIncome && entry.EntryType != models.BudgetEntryTypeExpense {
		return fmt.Errorf("unknown entry type %q: %w", entry.EntryType, ErrInvalidInput)
	}
	if !validCadences[entry.Cadence] {
		return fmt.Errorf("unknown cadence %q: %w", entry.Cadence, ErrInvalidInput)
	}
	if entry.NextOccurrence.IsZero() {
		return fmt.Errorf("next occurrence is required: %w", ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, entry.EntityID); err != nil {
		return err
	}

	entry.UserID = userID
	return s.repo.CreateBudgetEntry(entry)
}

// GetBudgetEntry returns one of the user's budget entries
func (s *Service) GetBudgetEntry(userID, entryID int64) (*models.BudgetEntry, error) {
	return s.repo.FindBudgetEntryByID(entryID, userID)
}

// ListBudgetEntries returns the user's budget entries, optionally
// entity-scoped
func (s *Service) ListBudgetEntries(userID int64, entityID *int64) ([]models.BudgetEntry, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	return s.repo.ListBudgetEntries(userID, entityID)
}

// UpdateBudgetEntry saves changes to one of the user's budget entries
func (s *Service) UpdateBudgetEntry(userID int64, entry *models.BudgetEntry) error {
	if entry.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	if !validCadences[entry.Cadence] {
		return fmt.Errorf("unknown cadence %q: %w", entry.Cadence, ErrInvalidInput)
	}
	entry.UserID = userID
	return s.repo.UpdateBudgetEntry(entry)
}

// DeleteBudgetEntry soft-deletes a budget entry; inactive entries drop out
// of forecasts
func (s *Service) DeleteBudgetEntry(userID, entryID int64) error {
	return s.repo.DeactivateBudgetEntry(entryID, userID)
}
