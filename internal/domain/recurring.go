package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether f is a supported frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Advance returns the due date one period after from. Monthly and yearly
// advances use calendar arithmetic, so Jan 31 + 1 month normalizes per
// time.AddDate.
func (f Frequency) Advance(from time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// RecurringPayment is a scheduled obligation that can materialize real
// expenses. When AutoAdd is set, a due payment fires at most once per
// day: it creates one expense dated today, advances NextDueDate one
// period, and records LastAdded.
type RecurringPayment struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Frequency   Frequency       `json:"frequency"`
	NextDueDate time.Time       `json:"nextDueDate"`
	AutoAdd     bool            `json:"autoAdd"`
	LastAdded   *time.Time      `json:"lastAdded,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type RecurringPaymentRepository interface {
	Create(payment *RecurringPayment) (*RecurringPayment, error)
	GetByID(userID uuid.UUID, id int32) (*RecurringPayment, error)
	ListByUser(userID uuid.UUID) ([]*RecurringPayment, error)
	// ListAutoAddDue returns every auto-add payment across all users whose
	// next due date is on or before asOf.
	ListAutoAddDue(asOf time.Time) ([]*RecurringPayment, error)
	Update(payment *RecurringPayment) (*RecurringPayment, error)
	Delete(userID uuid.UUID, id int32) error
}
