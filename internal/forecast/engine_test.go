package forecast

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallytrace/finance-service/internal/models"
)

// fakeSource serves fixtures the way the repository would: accounts and
// entries already filtered to active, transactions to unposted, and an
// optional entity filter applied on top.
type fakeSource struct {
	accounts []models.Account
	entries  []models.BudgetEntry
	txns     []models.Transaction
}

func (f *fakeSource) ActiveAccounts(userID int64, entityID *int64) ([]models.Account, error) {
	out := []models.Account{}
	for _, a := range f.accounts {
		if a.UserID == userID && matchEntity(a.EntityID, entityID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSource) ActiveBudgetEntries(userID int64, entityID *int64) ([]models.BudgetEntry, error) {
	out := []models.BudgetEntry{}
	for _, e := range f.entries {
		if e.UserID == userID && matchEntity(e.EntityID, entityID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) UnpostedTransactions(userID int64, entityID *int64) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, t := range f.txns {
		if t.UserID == userID && matchEntity(t.EntityID, entityID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchEntity(rowEntity, filter *int64) bool {
	if filter == nil {
		return true
	}
	return rowEntity != nil && *rowEntity == *filter
}

func newTestEngine(src DataSource) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewEngine(src, log)
}

var reference = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func TestProjectCashflow_SingleMonth(t *testing.T) {
	anchor := monthStart(reference)
	src := &fakeSource{
		accounts: []models.Account{{ID: 1, UserID: 7, Balance: 1000}},
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeIncome, Name: "Salary", Amount: 500, Cadence: "monthly", NextOccurrence: anchor},
			{ID: 2, UserID: 7, EntryType: models.BudgetEntryTypeExpense, Name: "Rent", Amount: 300, Cadence: "monthly", NextOccurrence: anchor},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 1, reference)
	require.NoError(t, err)
	require.Len(t, timeline, 1)

	p := timeline[0]
	assert.Equal(t, "March 2026", p.PeriodLabel)
	assert.Equal(t, "2026-03-01T00:00:00", p.PeriodStart)
	assert.Equal(t, "2026-04-01T00:00:00", p.PeriodEnd)
	assert.Equal(t, 1000.0, p.OpeningBalance)
	assert.Equal(t, 500.0, p.Income)
	assert.Equal(t, 300.0, p.Expenses)
	assert.Equal(t, 0.0, p.UnpostedExpenses)
	assert.Equal(t, 200.0, p.Net)
	assert.Equal(t, 1200.0, p.ClosingBalance)
}

func TestProjectCashflow_BalancesChain(t *testing.T) {
	anchor := monthStart(reference)
	src := &fakeSource{
		accounts: []models.Account{{ID: 1, UserID: 7, Balance: 100}},
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeIncome, Amount: 50, Cadence: "monthly", NextOccurrence: anchor},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 4, reference)
	require.NoError(t, err)
	require.Len(t, timeline, 4)
	for i, p := range timeline {
		assert.Equal(t, 100.0+float64(i)*50, p.OpeningBalance)
		assert.Equal(t, 100.0+float64(i+1)*50, p.ClosingBalance)
	}
	assert.Equal(t, "June 2026", timeline[3].PeriodLabel)
}

func TestProjectCashflow_UnpostedDebit(t *testing.T) {
	src := &fakeSource{
		txns: []models.Transaction{
			{ID: 1, UserID: 7, Amount: 50, TransactionType: models.TransactionTypeDebit, TransactionDate: reference},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 1, reference)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, 50.0, timeline[0].UnpostedExpenses)
	assert.Equal(t, -50.0, timeline[0].Net)
}

func TestProjectCashflow_UnpostedCreditReducesOutflow(t *testing.T) {
	// Credits are funds arriving: they subtract from the period's net
	// outflow. Counter-intuitive but deliberate; pinned here so nobody
	// "fixes" it.
	src := &fakeSource{
		txns: []models.Transaction{
			{ID: 1, UserID: 7, Amount: 50, TransactionType: models.TransactionTypeCredit, TransactionDate: reference},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 1, reference)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, -50.0, timeline[0].UnpostedExpenses)
	assert.Equal(t, 50.0, timeline[0].Net)
}

func TestProjectCashflow_TransfersExcluded(t *testing.T) {
	src := &fakeSource{
		txns: []models.Transaction{
			{ID: 1, UserID: 7, Amount: 999, TransactionType: models.TransactionTypeTransfer, TransactionDate: reference},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 1, reference)
	require.NoError(t, err)
	assert.Equal(t, 0.0, timeline[0].UnpostedExpenses)
	assert.Equal(t, 0.0, timeline[0].Net)
}

func TestProjectCashflow_QuarterlyFiresEveryThirdMonth(t *testing.T) {
	anchor := monthStart(reference)
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeExpense, Amount: 90, Cadence: "quarterly", NextOccurrence: anchor},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 6, reference)
	require.NoError(t, err)
	require.Len(t, timeline, 6)
	for i, p := range timeline {
		if i%3 == 0 {
			assert.Equal(t, 90.0, p.Expenses, "period %d", i)
		} else {
			assert.Equal(t, 0.0, p.Expenses, "period %d", i)
		}
	}
}

func TestProjectCashflow_LaggingAnchorCatchesUp(t *testing.T) {
	// Anchor a year behind the window: the walk is local to the call and
	// must land in every projected period.
	anchor := monthStart(reference).AddDate(-1, 0, 0)
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeIncome, Amount: 10, Cadence: "monthly", NextOccurrence: anchor},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 3, reference)
	require.NoError(t, err)
	for _, p := range timeline {
		assert.Equal(t, 10.0, p.Income)
	}
}

func TestProjectCashflow_WalkCapDropsPathologicalEntry(t *testing.T) {
	// An anchor ~1200 months in the past exceeds the 1000-iteration cap;
	// the entry is dropped instead of hanging the request.
	anchor := monthStart(reference).AddDate(-100, 0, 0)
	src := &fakeSource{
		accounts: []models.Account{{ID: 1, UserID: 7, Balance: 500}},
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeIncome, Amount: 10, Cadence: "monthly", NextOccurrence: anchor},
		},
	}

	timeline, err := newTestEngine(src).ProjectCashflow(7, nil, 2, reference)
	require.NoError(t, err)
	for _, p := range timeline {
		assert.Equal(t, 0.0, p.Income)
	}
	assert.Equal(t, 500.0, timeline[1].ClosingBalance)
}

func TestUpcomingItems_WindowBounds(t *testing.T) {
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, Name: "Rent", EntryType: models.BudgetEntryTypeExpense, Amount: 300, Cadence: "monthly", NextOccurrence: reference.AddDate(0, 0, 5)},
			{ID: 2, UserID: 7, Name: "Insurance", EntryType: models.BudgetEntryTypeExpense, Amount: 120, Cadence: "annual", NextOccurrence: reference.AddDate(0, 0, 45)},
		},
		txns: []models.Transaction{
			{ID: 10, UserID: 7, Description: "Car repair", Amount: 80, TransactionType: models.TransactionTypeDebit, TransactionDate: reference.AddDate(0, 0, 10)},
			{ID: 11, UserID: 7, Description: "Too far out", Amount: 80, TransactionType: models.TransactionTypeDebit, TransactionDate: reference.AddDate(0, 0, 40)},
			{ID: 12, UserID: 7, Description: "In the past", Amount: 80, TransactionType: models.TransactionTypeDebit, TransactionDate: reference.AddDate(0, 0, -1)},
		},
	}

	items, err := newTestEngine(src).UpcomingItems(7, nil, 30, reference)
	require.NoError(t, err)
	require.Len(t, items, 2)

	low := reference.Format("2006-01-02")
	high := reference.AddDate(0, 0, 30).Format("2006-01-02")
	for _, item := range items {
		assert.GreaterOrEqual(t, item.DueDate, low)
		assert.LessOrEqual(t, item.DueDate, high)
	}
	assert.Equal(t, "Rent", items[0].Name)
	assert.Equal(t, models.UpcomingSourceBudgetEntry, items[0].Source)
	assert.Equal(t, "Car repair", items[1].Name)
	assert.Equal(t, models.UpcomingSourceTransaction, items[1].Source)
}

func TestUpcomingItems_SortedAndStable(t *testing.T) {
	day := reference.AddDate(0, 0, 3)
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, Name: "First", EntryType: models.BudgetEntryTypeExpense, Amount: 1, Cadence: "monthly", NextOccurrence: day},
			{ID: 2, UserID: 7, Name: "Second", EntryType: models.BudgetEntryTypeExpense, Amount: 2, Cadence: "monthly", NextOccurrence: day},
		},
		txns: []models.Transaction{
			{ID: 10, UserID: 7, Description: "Earlier", Amount: 3, TransactionType: models.TransactionTypeDebit, TransactionDate: reference.AddDate(0, 0, 1)},
		},
	}

	items, err := newTestEngine(src).UpcomingItems(7, nil, 30, reference)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Earlier", items[0].Name)
	// Same-day tie keeps insertion order
	assert.Equal(t, "First", items[1].Name)
	assert.Equal(t, "Second", items[2].Name)
}

func TestUpcomingItems_EmptyDescriptionPlaceholder(t *testing.T) {
	src := &fakeSource{
		txns: []models.Transaction{
			{ID: 10, UserID: 7, Amount: 25, TransactionType: models.TransactionTypeDebit, TransactionDate: reference.AddDate(0, 0, 2)},
		},
	}

	items, err := newTestEngine(src).UpcomingItems(7, nil, 30, reference)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Unposted transaction", items[0].Name)
}

func TestUpcomingItems_AncientAnchorBoundedByCap(t *testing.T) {
	// 120 months behind with a 100-iteration cap: the walk never reaches
	// the window and the entry yields nothing, but the call returns.
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, Name: "Stale", EntryType: models.BudgetEntryTypeExpense, Amount: 5, Cadence: "monthly", NextOccurrence: reference.AddDate(-10, 0, 0)},
		},
	}

	items, err := newTestEngine(src).UpcomingItems(7, nil, 30, reference)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDisposableIncome_Empty(t *testing.T) {
	result, err := newTestEngine(&fakeSource{}).DisposableIncome(7, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DisposableIncome{}, result)
}

func TestDisposableIncome_CadenceNormalized(t *testing.T) {
	src := &fakeSource{
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntryType: models.BudgetEntryTypeIncome, Amount: 3000, Cadence: "monthly"},
			{ID: 2, UserID: 7, EntryType: models.BudgetEntryTypeExpense, Amount: 1200, Cadence: "annual"},
			{ID: 3, UserID: 7, EntryType: models.BudgetEntryTypeExpense, Amount: 300, Cadence: "quarterly"},
		},
	}

	result, err := newTestEngine(src).DisposableIncome(7, nil)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, result.MonthlyIncome)
	assert.Equal(t, 200.0, result.MonthlyExpenses)
	assert.Equal(t, 2800.0, result.MonthlyDisposable)
}

func TestEntityScoping(t *testing.T) {
	e1, e2 := int64(1), int64(2)
	anchor := monthStart(reference)
	src := &fakeSource{
		accounts: []models.Account{
			{ID: 1, UserID: 7, EntityID: &e1, Balance: 100},
			{ID: 2, UserID: 7, EntityID: &e2, Balance: 200},
		},
		entries: []models.BudgetEntry{
			{ID: 1, UserID: 7, EntityID: &e1, EntryType: models.BudgetEntryTypeIncome, Amount: 10, Cadence: "monthly", NextOccurrence: anchor},
			{ID: 2, UserID: 7, EntityID: &e2, EntryType: models.BudgetEntryTypeIncome, Amount: 20, Cadence: "monthly", NextOccurrence: anchor},
		},
	}
	engine := newTestEngine(src)

	scoped1, err := engine.ProjectCashflow(7, &e1, 1, reference)
	require.NoError(t, err)
	assert.Equal(t, 100.0, scoped1[0].OpeningBalance)
	assert.Equal(t, 10.0, scoped1[0].Income)

	scoped2, err := engine.ProjectCashflow(7, &e2, 1, reference)
	require.NoError(t, err)
	assert.Equal(t, 200.0, scoped2[0].OpeningBalance)
	assert.Equal(t, 20.0, scoped2[0].Income)

	union, err := engine.ProjectCashflow(7, nil, 1, reference)
	require.NoError(t, err)
	assert.Equal(t, 300.0, union[0].OpeningBalance)
	assert.Equal(t, 30.0, union[0].Income)
}
