package service

import (
	"time"

	"github.com/tallytrace/finance-service/internal/models"
)

// ProjectCashflow returns the month-by-month cash-flow projection
func (s *Service) ProjectCashflow(userID int64, entityID *int64, months int) ([]models.CashflowPeriod, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	return s.engine.ProjectCashflow(userID, entityID, months, time.Now())
}

// UpcomingItems returns obligations due within the look-ahead window
func (s *Service) UpcomingItems(userID int64, entityID *int64, days int) ([]models.UpcomingItem, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	return s.engine.UpcomingItems(userID, entityID, days, time.Now())
}

// DisposableIncome returns the cadence-normalized monthly income, expenses
// and disposable amount
func (s *Service) DisposableIncome(userID int64, entityID *int64) (models.DisposableIncome, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return models.DisposableIncome{}, err
	}
	return s.engine.DisposableIncome(userID, entityID)
}
