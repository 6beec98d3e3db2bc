package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *BudgetService) WithClock(now func() time.Time) *BudgetService {
	s.now = now
	return s
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	Category       domain.Category
	Amount         decimal.Decimal
	StartDate      *time.Time
	ExpirationDate *time.Time
}

// CreateBudget creates a budget. The limit must be strictly positive;
// overlapping budgets for the same category are allowed and produce
// independent progress entries.
func (s *BudgetService) CreateBudget(userID uuid.UUID, input CreateBudgetInput) (*domain.Budget, error) {
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.StartDate != nil && input.ExpirationDate != nil && input.ExpirationDate.Before(*input.StartDate) {
		return nil, domain.ErrInvalidDate
	}

	budget := &domain.Budget{
		UserID:         userID,
		Category:       input.Category,
		Amount:         input.Amount,
		StartDate:      input.StartDate,
		ExpirationDate: input.ExpirationDate,
	}
	return s.budgetRepo.Create(budget)
}

// ListBudgets retrieves all budgets for a user
func (s *BudgetService) ListBudgets(userID uuid.UUID) ([]*domain.Budget, error) {
	return s.budgetRepo.ListByUser(userID)
}

// UpdateBudget updates an existing budget
func (s *BudgetService) UpdateBudget(userID uuid.UUID, id int32, input CreateBudgetInput) (*domain.Budget, error) {
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.StartDate != nil && input.ExpirationDate != nil && input.ExpirationDate.Before(*input.StartDate) {
		return nil, domain.ErrInvalidDate
	}

	existing, err := s.budgetRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Category = input.Category
	existing.Amount = input.Amount
	existing.StartDate = input.StartDate
	existing.ExpirationDate = input.ExpirationDate

	return s.budgetRepo.Update(existing)
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(userID uuid.UUID, id int32) error {
	return s.budgetRepo.Delete(userID, id)
}

// Progress derives progress rows for the budgets visible in the given
// display month. Each row's spend is cumulative over the budget's
// effective window, not scoped to the month.
func (s *BudgetService) Progress(userID uuid.UUID, year int, month time.Month) ([]domain.BudgetProgress, error) {
	budgets, err := s.budgetRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	expenseType := domain.TransactionTypeExpense
	expenses, err := s.transactionRepo.ListByUser(userID, &expenseType)
	if err != nil {
		return nil, err
	}

	return BudgetProgressForMonth(budgets, expenses, year, month, s.now()), nil
}
