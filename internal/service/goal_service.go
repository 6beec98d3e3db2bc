package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo        domain.SavingsGoalRepository
	transactionRepo domain.TransactionRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.SavingsGoalRepository, transactionRepo domain.TransactionRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo, transactionRepo: transactionRepo}
}

// CreateGoalInput holds the input for creating a savings goal
type CreateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	DueDate      *time.Time
}

// CreateGoal creates a savings goal. The target must be strictly
// positive and the starting saved amount non-negative.
func (s *GoalService) CreateGoal(userID uuid.UUID, input CreateGoalInput) (*domain.SavingsGoal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.SavedAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	goal := &domain.SavingsGoal{
		UserID:       userID,
		Name:         name,
		TargetAmount: input.TargetAmount,
		SavedAmount:  input.SavedAmount,
		DueDate:      input.DueDate,
	}
	return s.goalRepo.Create(goal)
}

// ListGoals retrieves all savings goals for a user
func (s *GoalService) ListGoals(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	return s.goalRepo.ListByUser(userID)
}

// UpdateGoal updates a goal's name, target and due date. The saved
// amount is mutated only through Contribute and Withdraw.
func (s *GoalService) UpdateGoal(userID uuid.UUID, id int32, input CreateGoalInput) (*domain.SavingsGoal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	existing, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.TargetAmount = input.TargetAmount
	existing.DueDate = input.DueDate

	return s.goalRepo.Update(existing)
}

// DeleteGoal removes a savings goal
func (s *GoalService) DeleteGoal(userID uuid.UUID, id int32) error {
	return s.goalRepo.Delete(userID, id)
}

// Contribute increases a goal's saved amount. The amount must be
// strictly positive. Available funds are advisory only: a contribution
// beyond them is allowed, callers may warn but the operation does not
// reject on insufficiency.
func (s *GoalService) Contribute(userID uuid.UUID, id int32, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	goal.SavedAmount = goal.SavedAmount.Add(amount)
	return s.goalRepo.Update(goal)
}

// Withdraw decreases a goal's saved amount. The amount must be strictly
// positive and must not exceed the current saved amount; otherwise the
// goal is left unchanged and ErrInsufficientFunds is returned.
func (s *GoalService) Withdraw(userID uuid.UUID, id int32, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(goal.SavedAmount) {
		return nil, domain.ErrInsufficientFunds
	}

	goal.SavedAmount = goal.SavedAmount.Sub(amount)
	if goal.SavedAmount.IsNegative() {
		goal.SavedAmount = decimal.Zero
	}
	return s.goalRepo.Update(goal)
}

// AvailableFunds returns the lifetime net savings not yet earmarked to
// any goal, floored at zero.
func (s *GoalService) AvailableFunds(userID uuid.UUID) (decimal.Decimal, error) {
	incomeType := domain.TransactionTypeIncome
	expenseType := domain.TransactionTypeExpense

	incomes, err := s.transactionRepo.ListByUser(userID, &incomeType)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.transactionRepo.ListByUser(userID, &expenseType)
	if err != nil {
		return decimal.Zero, err
	}
	goals, err := s.goalRepo.ListByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}

	totals := AllTimeTotals(incomes, expenses)
	return AvailableFunds(totals.TotalSaved, goals), nil
}
