package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// UpcomingService handles upcoming (planned) expense business logic
type UpcomingService struct {
	upcomingRepo domain.UpcomingExpenseRepository
}

// NewUpcomingService creates a new UpcomingService
func NewUpcomingService(upcomingRepo domain.UpcomingExpenseRepository) *UpcomingService {
	return &UpcomingService{upcomingRepo: upcomingRepo}
}

// CreateUpcomingInput holds the input for creating an upcoming expense
type CreateUpcomingInput struct {
	Name        string
	Amount      decimal.Decimal
	Category    domain.Category
	DueDate     time.Time
	Description string
}

// CreateUpcoming creates a planned future obligation. The amount must be
// strictly positive and the due date is required.
func (s *UpcomingService) CreateUpcoming(userID uuid.UUID, input CreateUpcomingInput) (*domain.UpcomingExpense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.DueDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	upcoming := &domain.UpcomingExpense{
		UserID:      userID,
		Name:        name,
		Amount:      input.Amount,
		Category:    input.Category,
		DueDate:     input.DueDate,
		Description: input.Description,
	}
	return s.upcomingRepo.Create(upcoming)
}

// ListUpcoming retrieves all upcoming expenses for a user
func (s *UpcomingService) ListUpcoming(userID uuid.UUID) ([]*domain.UpcomingExpense, error) {
	return s.upcomingRepo.ListByUser(userID)
}

// UpdateUpcoming updates an existing upcoming expense
func (s *UpcomingService) UpdateUpcoming(userID uuid.UUID, id int32, input CreateUpcomingInput) (*domain.UpcomingExpense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.DueDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if input.Category != "" && !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	existing, err := s.upcomingRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.DueDate = input.DueDate
	existing.Description = input.Description

	return s.upcomingRepo.Update(existing)
}

// DeleteUpcoming removes an upcoming expense
func (s *UpcomingService) DeleteUpcoming(userID uuid.UUID, id int32) error {
	return s.upcomingRepo.Delete(userID, id)
}
