package service

import (
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// CreateTransaction records a transaction. Posted transactions apply their
// balance effect immediately; unposted ones become future cash events for
// the forecast.
func (s *Service) CreateTransaction(userID int64, txn *models.Transaction) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	switch txn.TransactionType {
	case models.TransactionTypeDebit, models.TransactionTypeCredit:
	case models.TransactionTypeTransfer:
		if txn.TransferToAccountID == nil {
			return fmt.Errorf("transfer requires a destination account: %w", ErrInvalidInput)
		}
		if _, err := s.repo.FindAccountByID(*txn.TransferToAccountID, userID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown transaction type %q: %w", txn.TransactionType, ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, txn.EntityID); err != nil {
		return err
	}
	account, err := s.repo.FindAccountByID(txn.AccountID, userID)
	if err != nil {
		return err
	}
	if txn.Currency == "" {
		txn.Currency = account.Currency
	}

	txn.UserID = userID
	if err := s.repo.CreateTransaction(txn); err != nil {
		return err
	}

	s.publisher.PublishTransactionCreated(txn.ID, txn.UserID, txn.Amount, txn.TransactionType)
	s.log.Infof("Transaction %d (%s %.2f) created for user %d", txn.ID, txn.TransactionType, txn.Amount, userID)
	return nil
}

// GetTransaction returns one of the user's transactions
func (s *Service) GetTransaction(userID, txnID int64) (*models.Transaction, error) {
	return s.repo.FindTransactionByID(txnID, userID)
}

// ListTransactions returns the user's transactions with optional filters
func (s *Service) ListTransactions(userID int64, filter repository.TransactionFilter) ([]models.Transaction, error) {
	if err := s.requireEntityAccess(userID, filter.EntityID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(userID, filter)
}

// PostTransaction marks an unposted transaction posted, moving its amount
// into the account balance
func (s *Service) PostTransaction(userID, txnID int64) (*models.Transaction, error) {
	txn, err := s.repo.PostTransaction(txnID, userID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Transaction %d posted for user %d", txnID, userID)
	return txn, nil
}

// DeleteTransaction removes a transaction, reversing its balance effect if
// posted
func (s *Service) DeleteTransaction(userID, txnID int64) error {
	return s.repo.DeleteTransaction(txnID, userID)
}
