package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles income and expense business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Name     string
	Amount   decimal.Decimal
	Category domain.Category
	Type     domain.TransactionType
	Date     time.Time
	Notes    *string
}

// CreateTransaction creates a new income or expense record. A negative
// amount is a refund of the same type; a zero amount is rejected.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	if input.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidInput
	}

	if err := validateCategory(input.Type, input.Category); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	tx := &domain.Transaction{
		UserID:   userID,
		Name:     name,
		Amount:   input.Amount,
		Category: input.Category,
		Type:     input.Type,
		Date:     input.Date,
		Notes:    input.Notes,
	}
	return s.transactionRepo.Create(tx)
}

// ListTransactions retrieves the user's transactions, optionally
// restricted to one type.
func (s *TransactionService) ListTransactions(userID uuid.UUID, txType *domain.TransactionType) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByUser(userID, txType)
}

// GetTransactionByID retrieves a single transaction
func (s *TransactionService) GetTransactionByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// UpdateTransactionInput holds the input for updating a transaction
type UpdateTransactionInput struct {
	Name     string
	Amount   decimal.Decimal
	Category domain.Category
	Date     time.Time
	Notes    *string
}

// UpdateTransaction updates an existing transaction. The type is fixed
// at creation.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id int32, input UpdateTransactionInput) (*domain.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	existing, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if err := validateCategory(existing.Type, input.Category); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.Date = input.Date
	existing.Notes = input.Notes

	return s.transactionRepo.Update(existing)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id int32) error {
	return s.transactionRepo.Delete(userID, id)
}

func validateCategory(txType domain.TransactionType, category domain.Category) error {
	if txType == domain.TransactionTypeIncome {
		if !category.IsValidIncome() {
			return domain.ErrInvalidCategory
		}
		return nil
	}
	if !category.IsValid() {
		return domain.ErrInvalidCategory
	}
	return nil
}
