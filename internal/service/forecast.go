package service

import (
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// ForecastMonths is how many months ahead the upcoming-expense forecast
// looks, starting with the current month.
const ForecastMonths = 6

// GoalProgressFor derives the display state of one savings goal. The
// display percentage is capped at 100; the raw ratio is kept uncapped so
// over-funded goals stay detectable.
func GoalProgressFor(g *domain.SavingsGoal) domain.GoalProgress {
	raw := decimal.Zero
	if g.TargetAmount.IsPositive() {
		raw = g.SavedAmount.Div(g.TargetAmount).Mul(hundred)
	}
	percentage := raw
	if percentage.GreaterThan(hundred) {
		percentage = hundred
	}
	return domain.GoalProgress{
		GoalID:     g.ID,
		Name:       g.Name,
		Target:     g.TargetAmount,
		Saved:      g.SavedAmount,
		Percentage: percentage,
		RawRatio:   raw,
		DueDate:    g.DueDate,
	}
}

// AvailableFunds is the lifetime net savings not yet earmarked to any
// goal, floored at zero. It is advisory: contributions beyond it are
// allowed.
func AvailableFunds(totalSaved decimal.Decimal, goals []*domain.SavingsGoal) decimal.Decimal {
	inGoals := decimal.Zero
	for _, g := range goals {
		if g == nil {
			continue
		}
		inGoals = inGoals.Add(g.SavedAmount)
	}
	available := totalSaved.Sub(inGoals)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// UpcomingForecast projects the next ForecastMonths months of scheduled
// obligations. Only currently-available savings are projected: the
// current month gets max(0, totalSaved), later months get zero, and each
// month's deficit is max(0, required - saved).
func UpcomingForecast(upcoming []*domain.UpcomingExpense, totalSaved decimal.Decimal, now time.Time) []domain.ForecastMonth {
	months := make([]domain.ForecastMonth, 0, ForecastMonths)
	for i := 0; i < ForecastMonths; i++ {
		monthStart := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, time.Local)

		required := decimal.Zero
		for _, exp := range upcoming {
			if exp == nil || exp.DueDate.IsZero() {
				continue
			}
			if exp.DueDate.Year() == monthStart.Year() && exp.DueDate.Month() == monthStart.Month() {
				required = required.Add(exp.Amount)
			}
		}

		saved := decimal.Zero
		if i == 0 && totalSaved.IsPositive() {
			saved = totalSaved
		}

		deficit := required.Sub(saved)
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}

		months = append(months, domain.ForecastMonth{
			Year:     monthStart.Year(),
			Month:    monthStart.Month(),
			Required: required,
			Saved:    saved,
			Deficit:  deficit,
		})
	}
	return months
}

// TotalUpcoming sums every scheduled obligation regardless of due month.
func TotalUpcoming(upcoming []*domain.UpcomingExpense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range upcoming {
		if exp == nil {
			continue
		}
		total = total.Add(exp.Amount)
	}
	return total
}
