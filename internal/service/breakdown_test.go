package service

import (
	"testing"
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategoryBreakdown_SignedPerCategory(t *testing.T) {
	expenses := []*domain.Transaction{
		expenseOn(100, domain.CategoryFoodDining, localDate(2025, time.March, 1)),
		expenseOn(50, domain.CategoryFoodDining, localDate(2025, time.March, 2)),
		expenseOn(-200, domain.CategoryShopping, localDate(2025, time.March, 3)), // net-negative category
		expenseOn(80, domain.CategoryTravel, localDate(2025, time.March, 4)),
		nil,
	}

	breakdown := CategoryBreakdown(expenses)
	assert.Equal(t, "150", breakdown[domain.CategoryFoodDining].String())
	assert.Equal(t, "-200", breakdown[domain.CategoryShopping].String())
	assert.Equal(t, "80", breakdown[domain.CategoryTravel].String())
}

func TestCategoryBreakdown_EmptyCategoryFallsBack(t *testing.T) {
	expenses := []*domain.Transaction{
		expenseOn(25, "", localDate(2025, time.March, 1)),
	}
	breakdown := CategoryBreakdown(expenses)
	assert.Equal(t, "25", breakdown[domain.CategoryUncategorized].String())
	_, bare := breakdown[domain.Category("")]
	assert.False(t, bare, "empty label must not appear as its own key")
}

func TestChartSlices_DropsNonPositiveAndSorts(t *testing.T) {
	expenses := []*domain.Transaction{
		expenseOn(100, domain.CategoryFoodDining, localDate(2025, time.March, 1)),
		expenseOn(-40, domain.CategoryShopping, localDate(2025, time.March, 2)),
		expenseOn(300, domain.CategoryTravel, localDate(2025, time.March, 3)),
		expenseOn(60, domain.CategoryBills, localDate(2025, time.March, 4)),
		expenseOn(-60, domain.CategoryBills, localDate(2025, time.March, 5)), // nets to zero
	}

	slices := ChartSlices(CategoryBreakdown(expenses))
	assert.Len(t, slices, 2)
	assert.Equal(t, domain.CategoryTravel, slices[0].Category)
	assert.Equal(t, domain.CategoryFoodDining, slices[1].Category)
}

func TestChartSlices_TieBreaksByCategoryName(t *testing.T) {
	expenses := []*domain.Transaction{
		expenseOn(50, domain.CategoryTravel, localDate(2025, time.March, 1)),
		expenseOn(50, domain.CategoryEducation, localDate(2025, time.March, 2)),
	}
	slices := ChartSlices(CategoryBreakdown(expenses))
	assert.Len(t, slices, 2)
	assert.Equal(t, domain.CategoryEducation, slices[0].Category)
	assert.Equal(t, domain.CategoryTravel, slices[1].Category)
}
