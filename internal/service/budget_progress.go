package service

import (
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetSpent sums signed expense amounts matching the budget's category
// over its effective window [effectiveStart, effectiveEnd], both ends
// inclusive at day granularity. Category matching is exact-string.
// Refunds are negative, so the result can go below zero.
func BudgetSpent(b *domain.Budget, expenses []*domain.Transaction, now time.Time) decimal.Decimal {
	start := b.EffectiveStart()
	end := b.EffectiveEnd(now)

	spent := decimal.Zero
	for _, exp := range expenses {
		if exp == nil || exp.Date.IsZero() {
			continue
		}
		if exp.Category != b.Category {
			continue
		}
		if exp.Date.Before(start) || exp.Date.After(end) {
			continue
		}
		spent = spent.Add(exp.Amount)
	}
	return spent
}

// BudgetSeverity buckets a usage percentage: ok through 50, warn through
// 90, danger above (over-100 stays danger).
func BudgetSeverity(percentage decimal.Decimal) domain.Severity {
	switch {
	case percentage.LessThanOrEqual(decimal.NewFromInt(50)):
		return domain.SeverityOK
	case percentage.LessThanOrEqual(decimal.NewFromInt(90)):
		return domain.SeverityWarn
	default:
		return domain.SeverityDanger
	}
}

// BudgetProgressFor derives the full progress row for one budget.
// Spend is always cumulative since inception, regardless of which month
// is being displayed.
//
// When spent is negative (net refunds exceed net spend) the percentage
// is zero and the remaining amount reports the full limit; the refund
// surplus is surfaced separately instead of a negative progress bar.
// The percentage is never capped: values above 100 signal over-budget
// and OverBy carries the excess.
func BudgetProgressFor(b *domain.Budget, expenses []*domain.Transaction, now time.Time) domain.BudgetProgress {
	spent := BudgetSpent(b, expenses, now)

	percentage := decimal.Zero
	remaining := b.Amount
	refundSurplus := decimal.Zero
	overBy := decimal.Zero

	if spent.IsPositive() {
		if !b.Amount.IsZero() {
			percentage = spent.Div(b.Amount).Mul(hundred)
		}
		remaining = b.Amount.Sub(spent)
		if spent.GreaterThan(b.Amount) {
			overBy = spent.Sub(b.Amount)
		}
	} else if spent.IsNegative() {
		refundSurplus = spent.Neg()
	}

	return domain.BudgetProgress{
		BudgetID:       b.ID,
		Category:       b.Category,
		Limit:          b.Amount,
		Spent:          spent,
		Remaining:      remaining,
		Percentage:     percentage,
		OverBy:         overBy,
		RefundSurplus:  refundSurplus,
		Severity:       BudgetSeverity(percentage),
		EffectiveStart: b.EffectiveStart(),
		EffectiveEnd:   b.EffectiveEnd(now),
	}
}

// BudgetProgressForMonth derives progress rows for the budgets visible
// in the given display month. Visibility is month-scoped; the spend in
// each row remains cumulative over the budget's true window.
func BudgetProgressForMonth(budgets []*domain.Budget, expenses []*domain.Transaction, year int, month time.Month, now time.Time) []domain.BudgetProgress {
	rows := make([]domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		if b == nil || !b.VisibleInMonth(year, month) {
			continue
		}
		rows = append(rows, BudgetProgressFor(b, expenses, now))
	}
	return rows
}

// AverageBudgetProgress returns the mean percentage across progress
// rows, zero when there are none.
func AverageBudgetProgress(rows []domain.BudgetProgress) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Percentage)
	}
	return total.Div(decimal.NewFromInt(int64(len(rows))))
}
