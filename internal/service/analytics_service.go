package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsService exposes period-scoped aggregations over the user's
// transaction history.
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(transactionRepo domain.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{transactionRepo: transactionRepo}
}

// Totals returns the signed sums for a period, or all-time when p is
// nil.
func (s *AnalyticsService) Totals(userID uuid.UUID, p *domain.Period) (domain.Totals, error) {
	incomes, expenses, err := s.fetch(userID)
	if err != nil {
		return domain.ZeroTotals(), err
	}
	if p == nil {
		return AllTimeTotals(incomes, expenses), nil
	}
	return PeriodTotals(incomes, expenses, *p), nil
}

// Breakdown returns the full signed per-category mapping for a period.
func (s *AnalyticsService) Breakdown(userID uuid.UUID, p domain.Period) (map[domain.Category]decimal.Decimal, error) {
	expenseType := domain.TransactionTypeExpense
	expenses, err := s.transactionRepo.ListByUser(userID, &expenseType)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(FilterByPeriod(expenses, p)), nil
}

// Compare builds a side-by-side summary of two periods of the same
// granularity, with per-category differences. Change percentages are
// nil when the base period has nothing to compare against.
func (s *AnalyticsService) Compare(userID uuid.UUID, p1, p2 domain.Period, label1, label2 string) (*domain.ComparisonResult, error) {
	incomes, expenses, err := s.fetch(userID)
	if err != nil {
		return nil, err
	}

	incomes1 := FilterByPeriod(incomes, p1)
	expenses1 := FilterByPeriod(expenses, p1)
	incomes2 := FilterByPeriod(incomes, p2)
	expenses2 := FilterByPeriod(expenses, p2)

	totals1 := AllTimeTotals(incomes1, expenses1)
	totals2 := AllTimeTotals(incomes2, expenses2)

	breakdown1 := CategoryBreakdown(expenses1)
	breakdown2 := CategoryBreakdown(expenses2)

	categorySet := make(map[domain.Category]struct{})
	for c := range breakdown1 {
		categorySet[c] = struct{}{}
	}
	for c := range breakdown2 {
		categorySet[c] = struct{}{}
	}

	categories := make([]domain.CategoryComparison, 0, len(categorySet))
	for c := range categorySet {
		v1 := breakdown1[c]
		v2 := breakdown2[c]
		categories = append(categories, domain.CategoryComparison{
			Category:      c,
			Period1:       v1,
			Period2:       v2,
			Difference:    v2.Sub(v1),
			ChangePercent: changePercent(v1, v2, false),
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return &domain.ComparisonResult{
		Period1: domain.PeriodSummary{
			Label:        label1,
			Totals:       totals1,
			IncomeCount:  len(incomes1),
			ExpenseCount: len(expenses1),
		},
		Period2: domain.PeriodSummary{
			Label:        label2,
			Totals:       totals2,
			IncomeCount:  len(incomes2),
			ExpenseCount: len(expenses2),
		},
		Categories:    categories,
		IncomeChange:  changePercent(totals1.TotalIncome, totals2.TotalIncome, false),
		ExpenseChange: changePercent(totals1.TotalExpenses, totals2.TotalExpenses, false),
		SavedChange:   changePercent(totals1.TotalSaved, totals2.TotalSaved, true),
	}, nil
}

func (s *AnalyticsService) fetch(userID uuid.UUID) (incomes, expenses []*domain.Transaction, err error) {
	incomeType := domain.TransactionTypeIncome
	expenseType := domain.TransactionTypeExpense

	incomes, err = s.transactionRepo.ListByUser(userID, &incomeType)
	if err != nil {
		return nil, nil, err
	}
	expenses, err = s.transactionRepo.ListByUser(userID, &expenseType)
	if err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

// changePercent returns (to-from)/base*100, nil when the base is zero.
// Saved figures can legitimately be negative, so their change is taken
// against the absolute base.
func changePercent(from, to decimal.Decimal, absBase bool) *decimal.Decimal {
	if from.IsZero() {
		return nil
	}
	base := from
	if absBase {
		base = from.Abs()
	}
	change := to.Sub(from).Div(base).Mul(hundred)
	return &change
}
