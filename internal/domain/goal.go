package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal tracks money earmarked toward a target. SavedAmount is
// mutated only through contributions and withdrawals.
type SavingsGoal struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type SavingsGoalRepository interface {
	Create(goal *SavingsGoal) (*SavingsGoal, error)
	GetByID(userID uuid.UUID, id int32) (*SavingsGoal, error)
	ListByUser(userID uuid.UUID) ([]*SavingsGoal, error)
	Update(goal *SavingsGoal) (*SavingsGoal, error)
	Delete(userID uuid.UUID, id int32) error
}
