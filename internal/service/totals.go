package service

import (
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/shopspring/decimal"
)

// SumAmounts sums signed amounts over a transaction set. Refunds carry
// their own sign, so no separate code path exists for them.
func SumAmounts(txs []*domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// AllTimeTotals sums every income and expense without any period filter.
func AllTimeTotals(incomes, expenses []*domain.Transaction) domain.Totals {
	totalIncome := SumAmounts(incomes)
	totalExpenses := SumAmounts(expenses)
	return domain.Totals{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		TotalSaved:    totalIncome.Sub(totalExpenses),
	}
}

// PeriodTotals sums incomes and expenses restricted to the period.
func PeriodTotals(incomes, expenses []*domain.Transaction, p domain.Period) domain.Totals {
	return AllTimeTotals(FilterByPeriod(incomes, p), FilterByPeriod(expenses, p))
}

// CumulativeThrough sums every transaction whose month falls on or
// before the given month. This backs the carryforward display:
// cumulative saved up to and including a selected month.
func CumulativeThrough(incomes, expenses []*domain.Transaction, year int, month time.Month) domain.Totals {
	boundary := util.MonthStart(year, month)
	return AllTimeTotals(throughMonth(incomes, boundary), throughMonth(expenses, boundary))
}

// SavedBefore sums the net saved from every transaction dated in months
// strictly before the given month.
func SavedBefore(incomes, expenses []*domain.Transaction, year int, month time.Month) decimal.Decimal {
	boundary := util.MonthStart(year, month)
	totals := AllTimeTotals(beforeMonth(incomes, boundary), beforeMonth(expenses, boundary))
	return totals.TotalSaved
}

func throughMonth(txs []*domain.Transaction, boundary time.Time) []*domain.Transaction {
	filtered := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.Date.IsZero() {
			continue
		}
		if !util.MonthStart(tx.Date.Year(), tx.Date.Month()).After(boundary) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

func beforeMonth(txs []*domain.Transaction, boundary time.Time) []*domain.Transaction {
	filtered := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.Date.IsZero() {
			continue
		}
		if util.MonthStart(tx.Date.Year(), tx.Date.Month()).Before(boundary) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// DailySeries builds the per-day cumulative income/expense points for a
// month. Cumulative expenses can decrease on days where refunds exceed
// spend.
func DailySeries(incomes, expenses []*domain.Transaction, year int, month time.Month) []domain.DailyPoint {
	p := domain.MonthPeriod(year, month)
	monthIncomes := FilterByPeriod(incomes, p)
	monthExpenses := FilterByPeriod(expenses, p)

	days := util.DaysInMonth(year, month)
	points := make([]domain.DailyPoint, 0, days)

	cumulativeIncome := decimal.Zero
	cumulativeExpenses := decimal.Zero
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		for _, tx := range monthIncomes {
			if tx.Date.Day() == day {
				cumulativeIncome = cumulativeIncome.Add(tx.Amount)
			}
		}
		for _, tx := range monthExpenses {
			if tx.Date.Day() == day {
				cumulativeExpenses = cumulativeExpenses.Add(tx.Amount)
			}
		}
		points = append(points, domain.DailyPoint{
			Day:                day,
			Date:               date,
			CumulativeIncome:   cumulativeIncome,
			CumulativeExpenses: cumulativeExpenses,
		})
	}
	return points
}
