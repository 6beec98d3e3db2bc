package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_Create(t *testing.T) {
	repo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(repo, testutil.NewMockTransactionRepository())

	start := localDate(2025, time.March, 1)
	budget, err := svc.CreateBudget(uuid.New(), CreateBudgetInput{
		Category:  domain.CategoryFoodDining,
		Amount:    decimal.NewFromInt(500),
		StartDate: &start,
	})
	require.NoError(t, err)
	assert.NotZero(t, budget.ID)
}

func TestBudgetService_CreateValidation(t *testing.T) {
	svc := NewBudgetService(testutil.NewMockBudgetRepository(), testutil.NewMockTransactionRepository())
	userID := uuid.New()

	_, err := svc.CreateBudget(userID, CreateBudgetInput{
		Category: "Groceries",
		Amount:   decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.CreateBudget(userID, CreateBudgetInput{
		Category: domain.CategoryBills,
		Amount:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	start := localDate(2025, time.March, 10)
	expiration := localDate(2025, time.March, 1)
	_, err = svc.CreateBudget(userID, CreateBudgetInput{
		Category:       domain.CategoryBills,
		Amount:         decimal.NewFromInt(100),
		StartDate:      &start,
		ExpirationDate: &expiration,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestBudgetService_OverlappingCategoriesAllowed(t *testing.T) {
	repo := testutil.NewMockBudgetRepository()
	svc := NewBudgetService(repo, testutil.NewMockTransactionRepository())
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := svc.CreateBudget(userID, CreateBudgetInput{
			Category: domain.CategoryShopping,
			Amount:   decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}

	budgets, err := svc.ListBudgets(userID)
	require.NoError(t, err)
	assert.Len(t, budgets, 2)
}

func TestBudgetService_Progress(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	txRepo := testutil.NewMockTransactionRepository()
	now := localDate(2025, time.March, 15)
	svc := NewBudgetService(budgetRepo, txRepo).WithClock(func() time.Time { return now })
	userID := uuid.New()

	start := localDate(2025, time.January, 1)
	budgetRepo.AddBudget(&domain.Budget{
		UserID:    userID,
		Category:  domain.CategoryFoodDining,
		Amount:    decimal.NewFromInt(500),
		StartDate: &start,
	})

	expense := expenseOn(200, domain.CategoryFoodDining, localDate(2025, time.February, 10))
	expense.UserID = userID
	txRepo.AddTransaction(expense)

	// Another user's spend never leaks in
	foreign := expenseOn(999, domain.CategoryFoodDining, localDate(2025, time.February, 10))
	foreign.UserID = uuid.New()
	txRepo.AddTransaction(foreign)

	rows, err := svc.Progress(userID, 2025, time.March)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "200", rows[0].Spent.String())
	assert.Equal(t, "40", rows[0].Percentage.String())
	assert.Equal(t, domain.SeverityOK, rows[0].Severity)
}

func TestBudgetService_ProgressPropagatesError(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetRepo.FailList = true
	svc := NewBudgetService(budgetRepo, testutil.NewMockTransactionRepository())

	_, err := svc.Progress(uuid.New(), 2025, time.March)
	assert.ErrorIs(t, err, testutil.ErrForced)
}
