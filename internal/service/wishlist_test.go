package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tallytrace/finance-service/internal/models"
)

var readinessNow = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestBuildWishlistReadiness(t *testing.T) {
	item := &models.WishlistItem{ID: 4, Name: "Standing desk", EstimatedCost: 600}
	disposable := models.DisposableIncome{MonthlyDisposable: 400}

	r := buildWishlistReadiness(item, disposable, readinessNow)

	assert.Equal(t, int64(4), r.ItemID)
	assert.Equal(t, "Standing desk", r.Name)
	assert.Equal(t, 600.0, r.EstimatedCost)
	assert.Equal(t, 400.0, r.MonthlyDisposable)
	assert.Equal(t, 200.0, r.SavingsRate)
	// 600 / 200 = 3 months at half the disposable income
	assert.Equal(t, 3, r.MonthsNeeded)
	assert.Equal(t, readinessNow.AddDate(0, 0, 90).Format("2006-01-02"), r.EstimatedPurchaseDate)
	assert.False(t, r.AffordableNow)
}

func TestBuildWishlistReadinessAffordableNow(t *testing.T) {
	item := &models.WishlistItem{ID: 1, Name: "Keyboard", EstimatedCost: 120}
	disposable := models.DisposableIncome{MonthlyDisposable: 300}

	r := buildWishlistReadiness(item, disposable, readinessNow)

	assert.True(t, r.AffordableNow)
	assert.Equal(t, 1, r.MonthsNeeded)
}

func TestBuildWishlistReadinessPartialMonthRoundsUp(t *testing.T) {
	item := &models.WishlistItem{ID: 2, Name: "Camera", EstimatedCost: 500}
	disposable := models.DisposableIncome{MonthlyDisposable: 300}

	r := buildWishlistReadiness(item, disposable, readinessNow)

	// 500 / 150 = 3.33, saving a partial month still takes the whole month
	assert.Equal(t, 4, r.MonthsNeeded)
}

func TestBuildWishlistReadinessNoDisposableIncome(t *testing.T) {
	item := &models.WishlistItem{ID: 3, Name: "Bike", EstimatedCost: 800}

	for _, monthly := range []float64{0, -150} {
		r := buildWishlistReadiness(item, models.DisposableIncome{MonthlyDisposable: monthly}, readinessNow)

		assert.Equal(t, unreachableMonths, r.MonthsNeeded)
		assert.False(t, r.AffordableNow)
	}
}
