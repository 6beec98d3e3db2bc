package service

import (
	"sort"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown sums signed amounts per category label. The full
// signed mapping is returned, including categories refunds drove
// negative; proportional views filter with ChartSlices.
func CategoryBreakdown(expenses []*domain.Transaction) map[domain.Category]decimal.Decimal {
	breakdown := make(map[domain.Category]decimal.Decimal)
	for _, exp := range expenses {
		if exp == nil {
			continue
		}
		category := exp.Category.OrUncategorized()
		breakdown[category] = breakdown[category].Add(exp.Amount)
	}
	return breakdown
}

// ChartSlices converts a breakdown into pie-chart entries, dropping
// categories whose net is zero or negative: a category where refunds
// exceeded spend has no meaningful slice. Entries are sorted by amount
// descending, ties by category name for stable output.
func ChartSlices(breakdown map[domain.Category]decimal.Decimal) []domain.CategorySlice {
	slices := make([]domain.CategorySlice, 0, len(breakdown))
	for category, amount := range breakdown {
		if amount.IsPositive() {
			slices = append(slices, domain.CategorySlice{Category: category, Amount: amount})
		}
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount.Equal(slices[j].Amount) {
			return slices[i].Category < slices[j].Category
		}
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})
	return slices
}
