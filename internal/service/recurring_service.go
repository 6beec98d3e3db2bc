package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RecurringService handles recurring payment business logic, including
// the auto-add rule that materializes due payments as real expenses.
type RecurringService struct {
	recurringRepo   domain.RecurringPaymentRepository
	transactionRepo domain.TransactionRepository
	logger          zerolog.Logger
	now             func() time.Time
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(
	recurringRepo domain.RecurringPaymentRepository,
	transactionRepo domain.TransactionRepository,
	logger zerolog.Logger,
) *RecurringService {
	return &RecurringService{
		recurringRepo:   recurringRepo,
		transactionRepo: transactionRepo,
		logger:          logger.With().Str("component", "recurring_service").Logger(),
		now:             time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *RecurringService) WithClock(now func() time.Time) *RecurringService {
	s.now = now
	return s
}

// CreateRecurringInput holds the input for creating a recurring payment
type CreateRecurringInput struct {
	Name        string
	Amount      decimal.Decimal
	Category    domain.Category
	Frequency   domain.Frequency
	NextDueDate time.Time
	AutoAdd     bool
	Description string
}

// CreateRecurring creates a recurring payment template
func (s *RecurringService) CreateRecurring(userID uuid.UUID, input CreateRecurringInput) (*domain.RecurringPayment, error) {
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
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if !input.Frequency.IsValid() {
		return nil, domain.ErrInvalidFrequency
	}
	if input.NextDueDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	payment := &domain.RecurringPayment{
		UserID:      userID,
		Name:        name,
		Amount:      input.Amount,
		Category:    input.Category,
		Frequency:   input.Frequency,
		NextDueDate: input.NextDueDate,
		AutoAdd:     input.AutoAdd,
		Description: input.Description,
	}
	return s.recurringRepo.Create(payment)
}

// ListRecurring retrieves all recurring payments for a user
func (s *RecurringService) ListRecurring(userID uuid.UUID) ([]*domain.RecurringPayment, error) {
	return s.recurringRepo.ListByUser(userID)
}

// UpdateRecurring updates an existing recurring payment
func (s *RecurringService) UpdateRecurring(userID uuid.UUID, id int32, input CreateRecurringInput) (*domain.RecurringPayment, error) {
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
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	if !input.Frequency.IsValid() {
		return nil, domain.ErrInvalidFrequency
	}
	if input.NextDueDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	existing, err := s.recurringRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.Frequency = input.Frequency
	existing.NextDueDate = input.NextDueDate
	existing.AutoAdd = input.AutoAdd
	existing.Description = input.Description

	return s.recurringRepo.Update(existing)
}

// DeleteRecurring removes a recurring payment
func (s *RecurringService) DeleteRecurring(userID uuid.UUID, id int32) error {
	return s.recurringRepo.Delete(userID, id)
}

// ProcessDuePayments fires every due auto-add payment for one user and
// returns how many expenses were materialized.
func (s *RecurringService) ProcessDuePayments(userID uuid.UUID) (int, error) {
	payments, err := s.recurringRepo.ListByUser(userID)
	if err != nil {
		return 0, err
	}
	return s.fireDue(payments), nil
}

// ProcessAllDue fires every due auto-add payment across all users. Used
// by the background worker.
func (s *RecurringService) ProcessAllDue() (int, error) {
	today := util.EndOfDay(s.now())
	payments, err := s.recurringRepo.ListAutoAddDue(today)
	if err != nil {
		return 0, err
	}
	return s.fireDue(payments), nil
}

// fireDue applies the at-most-once-per-day rule: a payment fires when it
// is auto-add, due today or overdue, and has not already fired today.
// Firing creates exactly one expense dated today, advances the due date
// one period from the stored due date (not from today), and stamps
// LastAdded. A payment overdue by several periods still fires once per
// day until it catches up.
func (s *RecurringService) fireDue(payments []*domain.RecurringPayment) int {
	today := util.StartOfDay(s.now())
	fired := 0

	for _, payment := range payments {
		if payment == nil || !payment.AutoAdd || payment.NextDueDate.IsZero() {
			continue
		}
		due := util.StartOfDay(payment.NextDueDate)
		if due.After(today) {
			continue
		}
		if payment.LastAdded != nil && util.SameDay(*payment.LastAdded, today) {
			continue
		}

		_, err := s.transactionRepo.Create(&domain.Transaction{
			UserID:   payment.UserID,
			Name:     payment.Name,
			Amount:   payment.Amount,
			Category: payment.Category,
			Type:     domain.TransactionTypeExpense,
			Date:     today,
		})
		if err != nil {
			s.logger.Error().Err(err).
				Int32("payment_id", payment.ID).
				Msg("Failed to materialize recurring expense")
			continue
		}

		payment.NextDueDate = payment.Frequency.Advance(due)
		lastAdded := today
		payment.LastAdded = &lastAdded

		if _, err := s.recurringRepo.Update(payment); err != nil {
			s.logger.Error().Err(err).
				Int32("payment_id", payment.ID).
				Msg("Failed to advance recurring payment")
			continue
		}

		fired++
	}
	return fired
}
