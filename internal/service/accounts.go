package service

import (
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
)

var validAccountTypes = map[string]bool{
	models.AccountTypeCash:     true,
	models.AccountTypeEWallet:  true,
	models.AccountTypeSavings:  true,
	models.AccountTypeChecking: true,
	models.AccountTypeCredit:   true,
}

// CreateAccount creates an account for the user
func (s *Service) CreateAccount(userID int64, account *models.Account) error {
	if account.Name == "" {
		return fmt.Errorf("account name is required: %w", ErrInvalidInput)
	}
	if !validAccountTypes[account.AccountType] {
		return fmt.Errorf("unknown account type %q: %w", account.AccountType, ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, account.EntityID); err != nil {
		return err
	}

	account.UserID = userID
	if err := s.repo.CreateAccount(account); err != nil {
		return err
	}
	s.log.Infof("Account %d created for user %d", account.ID, userID)
	return nil
}

// GetAccount returns one of the user's accounts
func (s *Service) GetAccount(userID, accountID int64) (*models.Account, error) {
	return s.repo.FindAccountByID(accountID, userID)
}

// ListAccounts returns the user's accounts, optionally entity-scoped
func (s *Service) ListAccounts(userID int64, entityID *int64) ([]models.Account, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	return s.repo.ListAccounts(userID, entityID)
}

// UpdateAccount saves changes to one of the user's accounts
func (s *Service) UpdateAccount(userID int64, account *models.Account) error {
	if !validAccountTypes[account.AccountType] {
		return fmt.Errorf("unknown account type %q: %w", account.AccountType, ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, account.EntityID); err != nil {
		return err
	}
	account.UserID = userID
	return s.repo.UpdateAccount(account)
}

// DeleteAccount soft-deletes an account; balances of inactive accounts no
// longer contribute to forecasts
func (s *Service) DeleteAccount(userID, accountID int64) error {
	return s.repo.DeactivateAccount(accountID, userID)
}
