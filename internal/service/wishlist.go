package service

import (
	"fmt"
	"math"
	"time"

	"github.com/tallytrace/finance-service/internal/models"
)

var validPriorities = map[string]bool{
	models.WishlistPriorityCritical: true,
	models.WishlistPriorityHigh:     true,
	models.WishlistPriorityMedium:   true,
	models.WishlistPriorityLow:      true,
}

// CreateWishlistItem adds a planned purchase to the user's wishlist
func (s *Service) CreateWishlistItem(userID int64, item *models.WishlistItem) error {
	if item.Name == "" {
		return fmt.Errorf("wishlist item name is required: %w", ErrInvalidInput)
	}
	if item.EstimatedCost <= 0 {
		return fmt.Errorf("estimated cost must be positive: %w", ErrInvalidInput)
	}
	if item.Priority == "" {
		item.Priority = models.WishlistPriorityMedium
	}
	if !validPriorities[item.Priority] {
		return fmt.Errorf("unknown priority %q: %w", item.Priority, ErrInvalidInput)
	}
	if err := s.requireEntityAccess(userID, item.EntityID); err != nil {
		return err
	}

	item.UserID = userID
	return s.repo.CreateWishlistItem(item)
}

// GetWishlistItem returns one of the user's wishlist items
func (s *Service) GetWishlistItem(userID, itemID int64) (*models.WishlistItem, error) {
	return s.repo.FindWishlistItemByID(itemID, userID)
}

// ListWishlistItems returns the user's wishlist, priority order, optionally
// filtered by purchase state
func (s *Service) ListWishlistItems(userID int64, entityID *int64, isPurchased *bool) ([]models.WishlistItem, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	return s.repo.ListWishlistItems(userID, entityID, isPurchased)
}

// UpdateWishlistItem saves changes to a wishlist item. Marking an item
// purchased stamps PurchasedAt.
func (s *Service) UpdateWishlistItem(userID int64, item *models.WishlistItem) error {
	if !validPriorities[item.Priority] {
		return fmt.Errorf("unknown priority %q: %w", item.Priority, ErrInvalidInput)
	}
	current, err := s.repo.FindWishlistItemByID(item.ID, userID)
	if err != nil {
		return err
	}
	if item.IsPurchased && !current.IsPurchased {
		now := time.Now().UTC()
		item.PurchasedAt = &now
	} else if item.IsPurchased {
		item.PurchasedAt = current.PurchasedAt
	} else {
		item.PurchasedAt = nil
	}
	item.UserID = userID
	return s.repo.UpdateWishlistItem(item)
}

// DeleteWishlistItem removes a wishlist item permanently
func (s *Service) DeleteWishlistItem(userID, itemID int64) error {
	return s.repo.DeleteWishlistItem(itemID, userID)
}

// WishlistReadiness reports when a single item becomes affordable at half
// the monthly disposable income
func (s *Service) WishlistReadiness(userID, itemID int64, entityID *int64) (*models.WishlistReadiness, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	item, err := s.repo.FindWishlistItemByID(itemID, userID)
	if err != nil {
		return nil, err
	}
	disposable, err := s.engine.DisposableIncome(userID, entityID)
	if err != nil {
		return nil, err
	}
	readiness := buildWishlistReadiness(item, disposable, time.Now().UTC())
	return &readiness, nil
}

// unreachableMonths flags a plan that never completes: with no disposable
// income there is no finite saving horizon
const unreachableMonths = 9999

func buildWishlistReadiness(item *models.WishlistItem, disposable models.DisposableIncome, now time.Time) models.WishlistReadiness {
	savingsRate := 0.5 * disposable.MonthlyDisposable

	months := unreachableMonths
	affordableNow := false
	if savingsRate > 0 {
		months = int(math.Ceil(item.EstimatedCost / savingsRate))
		affordableNow = item.EstimatedCost <= disposable.MonthlyDisposable
	}

	return models.WishlistReadiness{
		ItemID:                item.ID,
		Name:                  item.Name,
		EstimatedCost:         item.EstimatedCost,
		MonthlyDisposable:     disposable.MonthlyDisposable,
		SavingsRate:           math.Round(savingsRate*100) / 100,
		MonthsNeeded:          months,
		EstimatedPurchaseDate: now.AddDate(0, 0, months*30).Format("2006-01-02"),
		AffordableNow:         affordableNow,
	}
}

// WishlistPlan schedules unpurchased items sequentially against half of the
// monthly disposable income. Items are taken in priority order; each one is
// saved for in full before the next begins.
func (s *Service) WishlistPlan(userID int64, entityID *int64) (*models.WishlistPlan, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}
	disposable, err := s.engine.DisposableIncome(userID, entityID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.UnpurchasedWishlistItems(userID, entityID, 0)
	if err != nil {
		return nil, err
	}

	// Half the disposable goes to the wishlist; the floor keeps the plan
	// finite when disposable income is zero or negative.
	savingsRate := math.Max(0.5*disposable.MonthlyDisposable, 0.01)

	plan := &models.WishlistPlan{
		MonthlyDisposable: disposable.MonthlyDisposable,
		SavingsRate:       math.Round(savingsRate*100) / 100,
		Items:             make([]models.WishlistPlanItem, 0, len(items)),
	}

	today := time.Now().UTC()
	cumulative := 0
	for _, item := range items {
		months := int(math.Ceil(item.EstimatedCost / savingsRate))
		if months < 1 {
			months = 1
		}
		cumulative += months
		purchaseDate := today.AddDate(0, 0, cumulative*30)
		plan.Items = append(plan.Items, models.WishlistPlanItem{
			ItemID:                item.ID,
			Name:                  item.Name,
			EstimatedCost:         item.EstimatedCost,
			EstimatedPurchaseDate: purchaseDate.Format("2006-01-02"),
			CumulativeMonths:      cumulative,
		})
	}
	return plan, nil
}
