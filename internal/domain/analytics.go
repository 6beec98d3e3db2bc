package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds signed sums over a transaction set.
// TotalSaved = TotalIncome - TotalExpenses, exactly, including when
// expense amounts are negative (refunds).
type Totals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalSaved    decimal.Decimal `json:"totalSaved"`
}

// ZeroTotals returns a Totals with explicit zero values.
func ZeroTotals() Totals {
	return Totals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalSaved:    decimal.Zero,
	}
}

// CategorySlice is one positive-net entry of a proportional breakdown.
type CategorySlice struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Severity buckets a continuous budget-usage percentage for display
// emphasis.
type Severity string

const (
	SeverityOK     Severity = "ok"     // percentage <= 50
	SeverityWarn   Severity = "warn"   // 50 < percentage <= 90
	SeverityDanger Severity = "danger" // percentage > 90, including over 100
)

// BudgetProgress is the derived state of one budget over its effective
// window. Spent is a signed sum, so net refunds drive it negative; in
// that case Percentage is zero, Remaining reports the full limit and
// RefundSurplus carries |spent|.
type BudgetProgress struct {
	BudgetID       int32           `json:"budgetId"`
	Category       Category        `json:"category"`
	Limit          decimal.Decimal `json:"limit"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	Percentage     decimal.Decimal `json:"percentage"` // uncapped; >100 means over budget
	OverBy         decimal.Decimal `json:"overBy"`     // spent - limit when positive, else zero
	RefundSurplus  decimal.Decimal `json:"refundSurplus"`
	Severity       Severity        `json:"severity"`
	EffectiveStart time.Time       `json:"effectiveStart"`
	EffectiveEnd   time.Time       `json:"effectiveEnd"`
}

// GoalProgress is the derived display state of one savings goal.
// Percentage is capped at 100; RawRatio keeps the uncapped value for
// over-funding detection.
type GoalProgress struct {
	GoalID     int32           `json:"goalId"`
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Saved      decimal.Decimal `json:"saved"`
	Percentage decimal.Decimal `json:"percentage"`
	RawRatio   decimal.Decimal `json:"rawRatio"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
}

// ForecastMonth is one month of the forward-looking forecast of
// scheduled obligations against currently-available savings.
type ForecastMonth struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Required decimal.Decimal `json:"required"`
	Saved    decimal.Decimal `json:"saved"`
	Deficit  decimal.Decimal `json:"deficit"`
}

// DailyPoint is one day of the cumulative income/expense series for a
// selected month. Cumulative expenses can decrease when refunds exceed
// that day's spend.
type DailyPoint struct {
	Day                int             `json:"day"`
	Date               time.Time       `json:"date"`
	CumulativeIncome   decimal.Decimal `json:"income"`
	CumulativeExpenses decimal.Decimal `json:"expenses"`
}

// DashboardSummary is the full derived snapshot for a selected month.
type DashboardSummary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	AllTime    Totals          `json:"allTime"`
	MonthTotal Totals          `json:"monthTotal"`
	Cumulative Totals          `json:"cumulative"` // through the selected month (carryforward)
	PrevSaved  decimal.Decimal `json:"previousSaved"`

	Daily     []DailyPoint                 `json:"daily"`
	Breakdown map[Category]decimal.Decimal `json:"breakdown"` // full signed mapping
	Slices    []CategorySlice              `json:"slices"`    // positive nets only

	Budgets           []BudgetProgress `json:"budgets"`
	AvgBudgetProgress decimal.Decimal  `json:"avgBudgetProgress"`

	Goals          []GoalProgress  `json:"goals"`
	AvailableFunds decimal.Decimal `json:"availableFunds"`

	Forecast      []ForecastMonth `json:"forecast"`
	TotalUpcoming decimal.Decimal `json:"totalUpcoming"`

	Recent []*Transaction `json:"recentTransactions"`
}

// PeriodSummary is one side of a period comparison.
type PeriodSummary struct {
	Label        string `json:"label"`
	Totals       Totals `json:"totals"`
	IncomeCount  int    `json:"incomeCount"`
	ExpenseCount int    `json:"expenseCount"`
}

// CategoryComparison is the per-category delta between two periods.
// ChangePercent is nil when the base period has no spend in the
// category.
type CategoryComparison struct {
	Category      Category         `json:"category"`
	Period1       decimal.Decimal  `json:"period1"`
	Period2       decimal.Decimal  `json:"period2"`
	Difference    decimal.Decimal  `json:"difference"`
	ChangePercent *decimal.Decimal `json:"changePercent,omitempty"`
}

// ComparisonResult compares two periods of the same granularity.
type ComparisonResult struct {
	Period1       PeriodSummary        `json:"period1"`
	Period2       PeriodSummary        `json:"period2"`
	Categories    []CategoryComparison `json:"categories"`
	IncomeChange  *decimal.Decimal     `json:"incomeChange,omitempty"`
	ExpenseChange *decimal.Decimal     `json:"expenseChange,omitempty"`
	SavedChange   *decimal.Decimal     `json:"savedChange,omitempty"`
}
