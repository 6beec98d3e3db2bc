package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one category over an active window.
// StartDate and ExpirationDate are optional; the resolved window is
// computed by EffectiveStart and EffectiveEnd so consumers never re-derive
// the fallbacks ad hoc.
type Budget struct {
	ID             int32           `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Category       Category        `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EffectiveStart resolves the start of the budget's active window:
// the explicit start date if present, otherwise the creation day,
// normalized to start of day.
func (b *Budget) EffectiveStart() time.Time {
	if b.StartDate != nil {
		return util.StartOfDay(*b.StartDate)
	}
	return util.StartOfDay(b.CreatedAt)
}

// EffectiveEnd resolves the end of the budget's active window: the
// explicit expiration day if present (whether past or future), otherwise
// the end of today. An unexpired budget's window never extends past the
// present day.
func (b *Budget) EffectiveEnd(now time.Time) time.Time {
	if b.ExpirationDate != nil {
		return util.EndOfDay(*b.ExpirationDate)
	}
	return util.EndOfDay(now)
}

// VisibleInMonth reports whether the budget should appear at all for the
// given display month: it must have started by the end of that month and
// must not have expired before the month began. Visibility is
// independent of the spend window, which always runs from the true
// effective start to the true effective end.
func (b *Budget) VisibleInMonth(year int, month time.Month) bool {
	monthStart := util.MonthStart(year, month)
	monthEnd := util.MonthEnd(year, month)

	if b.EffectiveStart().After(monthEnd) {
		return false
	}
	if b.ExpirationDate != nil && util.EndOfDay(*b.ExpirationDate).Before(monthStart) {
		return false
	}
	return true
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID uuid.UUID, id int32) (*Budget, error)
	ListByUser(userID uuid.UUID) ([]*Budget, error)
	Update(budget *Budget) (*Budget, error)
	Delete(userID uuid.UUID, id int32) error
}
