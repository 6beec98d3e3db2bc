package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpcomingExpense is a planned future obligation. It feeds the forecast
// only and is never summed into realized totals.
type UpcomingExpense struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category,omitempty"`
	DueDate     time.Time       `json:"dueDate"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type UpcomingExpenseRepository interface {
	Create(upcoming *UpcomingExpense) (*UpcomingExpense, error)
	GetByID(userID uuid.UUID, id int32) (*UpcomingExpense, error)
	ListByUser(userID uuid.UUID) ([]*UpcomingExpense, error)
	Update(upcoming *UpcomingExpense) (*UpcomingExpense, error)
	Delete(userID uuid.UUID, id int32) error
}
