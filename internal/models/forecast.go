package models

// CashflowPeriod is one month of the forward cash-flow projection
type CashflowPeriod struct {
	PeriodLabel      string  `json:"period_label"` // e.g. "March 2026"
	PeriodStart      string  `json:"period_start"` // ISO timestamp
	PeriodEnd        string  `json:"period_end"`   // ISO timestamp
	OpeningBalance   float64 `json:"opening_balance"`
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	UnpostedExpenses float64 `json:"unposted_expenses"`
	Net              float64 `json:"net"`
	ClosingBalance   float64 `json:"closing_balance"`
}

// Upcoming item sources
const (
	UpcomingSourceBudgetEntry = "budget_entry"
	UpcomingSourceTransaction = "transaction"
)

// UpcomingItem is one obligation due within the look-ahead window
type UpcomingItem struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date"` // YYYY-MM-DD
	EntryType string  `json:"entry_type"`
	Source    string  `json:"source"`
	SourceID  int64   `json:"source_id"`
}

// DisposableIncome is the cadence-normalized monthly summary
type DisposableIncome struct {
	MonthlyIncome     float64 `json:"monthly_income"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
	MonthlyDisposable float64 `json:"monthly_disposable"`
}

// WishlistPlanItem schedules one wishlist purchase in the sequential plan
type WishlistPlanItem struct {
	ItemID                int64   `json:"item_id"`
	Name                  string  `json:"name"`
	EstimatedCost         float64 `json:"estimated_cost"`
	EstimatedPurchaseDate string  `json:"estimated_purchase_date"` // YYYY-MM-DD
	CumulativeMonths      int     `json:"cumulative_months"`
}

// WishlistPlan is the sequential purchase timeline for unpurchased items
type WishlistPlan struct {
	MonthlyDisposable float64            `json:"monthly_disposable"`
	SavingsRate       float64            `json:"savings_rate"`
	Items             []WishlistPlanItem `json:"items"`
}

// WishlistReadiness estimates when one wishlist item becomes affordable
type WishlistReadiness struct {
	ItemID                int64   `json:"item_id"`
	Name                  string  `json:"name"`
	EstimatedCost         float64 `json:"estimated_cost"`
	MonthlyDisposable     float64 `json:"monthly_disposable"`
	SavingsRate           float64 `json:"savings_rate"`
	MonthsNeeded          int     `json:"months_needed"`
	EstimatedPurchaseDate string  `json:"estimated_purchase_date"` // YYYY-MM-DD
	AffordableNow         bool    `json:"affordable_now"`
}

// AccountBalance is a per-account line in the dashboard snapshot
type AccountBalance struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// BalanceSummary totals active account balances
type BalanceSummary struct {
	Total     float64          `json:"total"`
	ByAccount []AccountBalance `json:"by_account"`
}

// GoalProgress reports progress toward one goal allocation
type GoalProgress struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	TargetAmount  *float64 `json:"target_amount"`
	CurrentAmount float64  `json:"current_amount"`
	ProgressPct   float64  `json:"progress_pct"`
	Remaining     float64  `json:"remaining"`
}

// WishlistAdvisory is a wishlist item with an affordability estimate
type WishlistAdvisory struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	Priority     string  `json:"priority"`
	AffordableBy string  `json:"affordable_by"` // YYYY-MM-DD
}

// DashboardSnapshot is everything the front-end needs in one call
type DashboardSnapshot struct {
	Balances           BalanceSummary     `json:"balances"`
	UpcomingThisMonth  []UpcomingItem     `json:"upcoming_this_month"`
	MonthlySummary     DisposableIncome   `json:"monthly_summary"`
	ForecastNext3Month []CashflowPeriod   `json:"forecast_next_3_months"`
	GoalsProgress      []GoalProgress     `json:"goals_progress"`
	WishlistNextUp     []WishlistAdvisory `json:"wishlist_next_up"`
}
