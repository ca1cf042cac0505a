package service

import (
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallytrace/finance-service/internal/models"
)

// Dashboard assembles the snapshot the front-end renders on login. The
// independent sections are fetched concurrently.
func (s *Service) Dashboard(userID int64, entityID *int64) (*models.DashboardSnapshot, error) {
	if err := s.requireEntityAccess(userID, entityID); err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := &models.DashboardSnapshot{}

	var g errgroup.Group

	g.Go(func() error {
		accounts, err := s.repo.ActiveAccounts(userID, entityID)
		if err != nil {
			return err
		}
		summary := models.BalanceSummary{ByAccount: make([]models.AccountBalance, 0, len(accounts))}
		for _, a := range accounts {
			summary.Total += a.Balance
			summary.ByAccount = append(summary.ByAccount, models.AccountBalance{
				ID:       a.ID,
				Name:     a.Name,
				Balance:  a.Balance,
				Currency: a.Currency,
			})
		}
		summary.Total = math.Round(summary.Total*100) / 100
		snapshot.Balances = summary
		return nil
	})

	g.Go(func() error {
		items, err := s.engine.UpcomingItems(userID, entityID, 30, now)
		if err != nil {
			return err
		}
		snapshot.UpcomingThisMonth = items
		return nil
	})

	g.Go(func() error {
		disposable, err := s.engine.DisposableIncome(userID, entityID)
		if err != nil {
			return err
		}
		snapshot.MonthlySummary = disposable
		return nil
	})

	g.Go(func() error {
		periods, err := s.engine.ProjectCashflow(userID, entityID, 3, now)
		if err != nil {
			return err
		}
		snapshot.ForecastNext3Month = periods
		return nil
	})

	g.Go(func() error {
		goals, err := s.repo.ActiveGoalAllocations(userID, entityID)
		if err != nil {
			return err
		}
		progress := make([]models.GoalProgress, 0, len(goals))
		for _, goal := range goals {
			p := models.GoalProgress{
				ID:            goal.ID,
				Name:          goal.Name,
				TargetAmount:  goal.TargetAmount,
				CurrentAmount: goal.CurrentAmount,
			}
			if goal.TargetAmount != nil && *goal.TargetAmount > 0 {
				p.ProgressPct = math.Round(goal.CurrentAmount / *goal.TargetAmount * 10000) / 100
				p.Remaining = math.Round((*goal.TargetAmount-goal.CurrentAmount)*100) / 100
				if p.Remaining < 0 {
					p.Remaining = 0
				}
			}
			progress = append(progress, p)
		}
		snapshot.GoalsProgress = progress
		return nil
	})

	g.Go(func() error {
		advisories, err := s.wishlistNextUp(userID, entityID, now)
		if err != nil {
			return err
		}
		snapshot.WishlistNextUp = advisories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// wishlistNextUp estimates when the top unpurchased items become affordable,
// saving for them sequentially at half the disposable income
func (s *Service) wishlistNextUp(userID int64, entityID *int64, now time.Time) ([]models.WishlistAdvisory, error) {
	items, err := s.repo.UnpurchasedWishlistItems(userID, entityID, 3)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.WishlistAdvisory{}, nil
	}
	disposable, err := s.engine.DisposableIncome(userID, entityID)
	if err != nil {
		return nil, err
	}
	savingsRate := math.Max(0.5*disposable.MonthlyDisposable, 0.01)

	advisories := make([]models.WishlistAdvisory, 0, len(items))
	cumulative := 0
	for _, item := range items {
		months := int(math.Ceil(item.EstimatedCost / savingsRate))
		if months < 1 {
			months = 1
		}
		cumulative += months
		advisories = append(advisories, models.WishlistAdvisory{
			ID:           item.ID,
			Name:         item.Name,
			Cost:         item.EstimatedCost,
			Priority:     item.Priority,
			AffordableBy: now.UTC().AddDate(0, 0, cumulative*30).Format("2006-01-02"),
		})
	}
	return advisories, nil
}
