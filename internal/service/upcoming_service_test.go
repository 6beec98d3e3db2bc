package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingService_Create(t *testing.T) {
	svc := NewUpcomingService(testutil.NewMockUpcomingRepository())

	upcoming, err := svc.CreateUpcoming(uuid.New(), CreateUpcomingInput{
		Name:        "Car insurance",
		Amount:      decimal.NewFromInt(600),
		Category:    domain.CategoryBills,
		DueDate:     localDate(2025, time.June, 1),
		Description: "annual premium",
	})
	require.NoError(t, err)
	assert.Equal(t, "annual premium", upcoming.Description)
}

func TestUpcomingService_CreateValidation(t *testing.T) {
	svc := NewUpcomingService(testutil.NewMockUpcomingRepository())
	userID := uuid.New()
	valid := CreateUpcomingInput{
		Name:    "Rent deposit",
		Amount:  decimal.NewFromInt(1200),
		DueDate: localDate(2025, time.July, 1),
	}

	blank := valid
	blank.Name = "  "
	_, err := svc.CreateUpcoming(userID, blank)
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	nonPositive := valid
	nonPositive.Amount = decimal.Zero
	_, err = svc.CreateUpcoming(userID, nonPositive)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	undated := valid
	undated.DueDate = time.Time{}
	_, err = svc.CreateUpcoming(userID, undated)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	badCategory := valid
	badCategory.Category = "Groceries"
	_, err = svc.CreateUpcoming(userID, badCategory)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	// Category is optional
	_, err = svc.CreateUpcoming(userID, valid)
	assert.NoError(t, err)
}

func TestUpcomingService_Update(t *testing.T) {
	repo := testutil.NewMockUpcomingRepository()
	svc := NewUpcomingService(repo)
	userID := uuid.New()

	upcoming := repo.AddUpcoming(&domain.UpcomingExpense{
		UserID:  userID,
		Name:    "Tuition",
		Amount:  decimal.NewFromInt(2000),
		DueDate: localDate(2025, time.September, 1),
	})

	updated, err := svc.UpdateUpcoming(userID, upcoming.ID, CreateUpcomingInput{
		Name:    "Tuition",
		Amount:  decimal.NewFromInt(2100),
		DueDate: localDate(2025, time.September, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, "2100", updated.Amount.String())

	_, err = svc.UpdateUpcoming(uuid.New(), upcoming.ID, CreateUpcomingInput{
		Name:    "Tuition",
		Amount:  decimal.NewFromInt(1),
		DueDate: localDate(2025, time.September, 1),
	})
	assert.ErrorIs(t, err, domain.ErrUpcomingNotFound)
}

func TestUpcomingService_Delete(t *testing.T) {
	repo := testutil.NewMockUpcomingRepository()
	svc := NewUpcomingService(repo)
	userID := uuid.New()

	upcoming := repo.AddUpcoming(&domain.UpcomingExpense{
		UserID:  userID,
		Name:    "Flight",
		Amount:  decimal.NewFromInt(400),
		DueDate: localDate(2025, time.August, 10),
	})

	assert.ErrorIs(t, svc.DeleteUpcoming(uuid.New(), upcoming.ID), domain.ErrUpcomingNotFound)
	assert.NoError(t, svc.DeleteUpcoming(userID, upcoming.ID))
}
