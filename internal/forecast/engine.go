package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tallytrace/finance-service/internal/models"
)

// Walk iteration bounds. A corrupted next_occurrence anchor far in the past
// would otherwise loop for a very long time.
const (
	projectorWalkCap = 1000
	listerWalkCap    = 100
)

// DataSource provides the read-only working sets the engine computes over.
// Accounts and budget entries are pre-filtered to active rows, transactions
// to unposted ones. A nil entityID scopes to the user across all entities.
type DataSource interface {
	ActiveAccounts(userID int64, entityID *int64) ([]models.Account, error)
	ActiveBudgetEntries(userID int64, entityID *int64) ([]models.BudgetEntry, error)
	UnpostedTransactions(userID int64, entityID *int64) ([]models.Transaction, error)
}

// Engine produces cash-flow projections, upcoming-obligation lists and
// disposable-income summaries. It performs no writes; every call recomputes
// from a fresh snapshot.
type Engine struct {
	src DataSource
	log *logrus.Logger
}

// NewEngine initializes a forecasting engine
func NewEngine(src DataSource, log *logrus.Logger) *Engine {
	return &Engine{src: src, log: log}
}

// ProjectCashflow generates a month-by-month projection of opening/closing
// balances starting at the first day of reference's month.
func (e *Engine) ProjectCashflow(userID int64, entityID *int64, months int, reference time.Time) ([]models.CashflowPeriod, error) {
	now := reference.UTC()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	accounts, err := e.src.ActiveAccounts(userID, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	opening := 0.0
	for _, a := range accounts {
		opening += a.Balance
	}

	entries, err := e.src.ActiveBudgetEntries(userID, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget entries: %w", err)
	}
	txns, err := e.src.UnpostedTransactions(userID, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	// Entries whose catch-up walk exhausts the cap are dropped from the
	// remainder of the projection instead of looping forever.
	exhausted := make(map[int64]bool)

	timeline := make([]models.CashflowPeriod, 0, months)
	for i := 0; i < months; i++ {
		periodEnd := AddMonths(periodStart, 1)

		var income, expenses float64
		for _, entry := range entries {
			if exhausted[entry.ID] {
				continue
			}
			cadence := Cadence(entry.Cadence)

			// Walk a local copy of the anchor forward into the period;
			// the stored record is never mutated.
			occ := entry.NextOccurrence.UTC()
			walked := 0
			for occ.Before(periodStart) {
				occ = NextOccurrence(occ, cadence)
				walked++
				if walked >= projectorWalkCap {
					break
				}
			}
			if walked >= projectorWalkCap && occ.Before(periodStart) {
				exhausted[entry.ID] = true
				e.log.Warnf("Budget entry %d: occurrence walk exceeded %d iterations, dropping from projection", entry.ID, projectorWalkCap)
				continue
			}

			for !occ.Before(periodStart) && occ.Before(periodEnd) {
				if entry.EntryType == models.BudgetEntryTypeIncome {
					income += entry.Amount
				} else {
					expenses += entry.Amount
				}
				occ = NextOccurrence(occ, cadence)
			}
		}

		// Net outflow from unposted rows: debits add, credits are funds
		// arriving and subtract. Transfers are excluded entirely.
		var unposted float64
		for _, txn := range txns {
			date := txn.TransactionDate.UTC()
			if date.Before(periodStart) || !date.Before(periodEnd) {
				continue
			}
			switch txn.TransactionType {
			case models.TransactionTypeDebit:
				unposted += txn.Amount
			case models.TransactionTypeCredit:
				unposted -= txn.Amount
			}
		}

		net := income - expenses - unposted
		closing := opening + net

		timeline = append(timeline, models.CashflowPeriod{
			PeriodLabel:      periodStart.Format("January 2006"),
			PeriodStart:      periodStart.Format(isoTimestamp),
			PeriodEnd:        periodEnd.Format(isoTimestamp),
			OpeningBalance:   round2(opening),
			Income:           round2(income),
			Expenses:         round2(expenses),
			UnpostedExpenses: round2(unposted),
			Net:              round2(net),
			ClosingBalance:   round2(closing),
		})

		opening = closing
		periodStart = periodEnd
	}

	return timeline, nil
}

// UpcomingItems lists scheduled occurrences and unposted transactions due
// within the next `days` days, sorted by due date. Same-day ties keep their
// original relative order.
func (e *Engine) UpcomingItems(userID int64, entityID *int64, days int, reference time.Time) ([]models.UpcomingItem, error) {
	now := reference.UTC()
	cutoff := now.AddDate(0, 0, days)

	entries, err := e.src.ActiveBudgetEntries(userID, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget entries: %w", err)
	}
	txns, err := e.src.UnpostedTransactions(userID, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	items := make([]models.UpcomingItem, 0)
	for _, entry := range entries {
		cadence := Cadence(entry.Cadence)
		occ := entry.NextOccurrence.UTC()
		for counter := 0; !occ.After(cutoff) && counter < listerWalkCap; counter++ {
			if !occ.Before(now) {
				items = append(items, models.UpcomingItem{
					Name:      entry.Name,
					Amount:    entry.Amount,
					DueDate:   occ.Format(isoDate),
					EntryType: entry.EntryType,
					Source:    models.UpcomingSourceBudgetEntry,
					SourceID:  entry.ID,
				})
			}
			occ = NextOccurrence(occ, cadence)
		}
	}

	for _, txn := range txns {
		date := txn.TransactionDate.UTC()
		if date.Before(now) || date.After(cutoff) {
			continue
		}
		name := txn.Description
		if name == "" {
			name = "Unposted transaction"
		}
		items = append(items, models.UpcomingItem{
			Name:      name,
			Amount:    txn.Amount,
			DueDate:   date.Format(isoDate),
			EntryType: txn.TransactionType,
			Source:    models.UpcomingSourceTransaction,
			SourceID:  txn.ID,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DueDate < items[j].DueDate
	})
	return items, nil
}

// DisposableIncome normalizes every active budget entry to its monthly
// equivalent and totals income against expenses.
func (e *Engine) DisposableIncome(userID int64, entityID *int64) (models.DisposableIncome, error) {
	entries, err := e.src.ActiveBudgetEntries(userID, entityID)
	if err != nil {
		return models.DisposableIncome{}, fmt.Errorf("failed to load budget entries: %w", err)
	}

	var income, expenses float64
	for _, entry := range entries {
		monthly := MonthlyEquivalent(entry.Amount, Cadence(entry.Cadence))
		if entry.EntryType == models.BudgetEntryTypeIncome {
			income += monthly
		} else {
			expenses += monthly
		}
	}

	return models.DisposableIncome{
		MonthlyIncome:     round2(income),
		MonthlyExpenses:   round2(expenses),
		MonthlyDisposable: round2(income - expenses),
	}, nil
}

const (
	isoTimestamp = "2006-01-02T15:04:05"
	isoDate      = "2006-01-02"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
