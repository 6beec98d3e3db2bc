package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense record. Amount is signed: a
// negative amount is a refund/correction of the same type and reduces
// every total it participates in. Date carries calendar-day semantics
// only; the time-of-day components are always midnight local time.
type Transaction struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  Category        `json:"category"`
	Type      TransactionType `json:"type"`
	Date      time.Time       `json:"date"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type TransactionRepository interface {
	Create(tx *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id int32) (*Transaction, error)
	ListByUser(userID uuid.UUID, txType *TransactionType) ([]*Transaction, error)
	Update(tx *Transaction) (*Transaction, error)
	Delete(userID uuid.UUID, id int32) error
}
