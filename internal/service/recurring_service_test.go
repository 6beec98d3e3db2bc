package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecurringService(now time.Time) (*RecurringService, *testutil.MockRecurringRepository, *testutil.MockTransactionRepository) {
	recurringRepo := testutil.NewMockRecurringRepository()
	txRepo := testutil.NewMockTransactionRepository()
	svc := NewRecurringService(recurringRepo, txRepo, zerolog.Nop()).
		WithClock(func() time.Time { return now })
	return svc, recurringRepo, txRepo
}

func TestRecurringService_CreateValidation(t *testing.T) {
	svc, _, _ := newRecurringService(localDate(2025, time.March, 10))
	userID := uuid.New()
	valid := CreateRecurringInput{
		Name:        "Netflix",
		Amount:      decimal.NewFromFloat(15.99),
		Category:    domain.CategoryEntertainment,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.April, 1),
	}

	_, err := svc.CreateRecurring(userID, valid)
	assert.NoError(t, err)

	badFrequency := valid
	badFrequency.Frequency = "daily"
	_, err = svc.CreateRecurring(userID, badFrequency)
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

	nonPositive := valid
	nonPositive.Amount = decimal.NewFromInt(-5)
	_, err = svc.CreateRecurring(userID, nonPositive)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRecurringService_ProcessDue_FiresAndAdvances(t *testing.T) {
	now := localDate(2025, time.March, 10)
	svc, recurringRepo, txRepo := newRecurringService(now)
	userID := uuid.New()

	payment := recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryBills,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.March, 10),
		AutoAdd:     true,
	})

	fired, err := svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// One expense dated today
	require.Equal(t, 1, txRepo.CreateCalls)
	var created *domain.Transaction
	for _, tx := range txRepo.Transactions {
		created = tx
	}
	require.NotNil(t, created)
	assert.Equal(t, "Rent", created.Name)
	assert.Equal(t, domain.TransactionTypeExpense, created.Type)
	assert.True(t, created.Date.Equal(localDate(2025, time.March, 10)))

	// Due date advanced from the stored date, LastAdded stamped
	assert.True(t, payment.NextDueDate.Equal(localDate(2025, time.April, 10)))
	require.NotNil(t, payment.LastAdded)
	assert.True(t, payment.LastAdded.Equal(localDate(2025, time.March, 10)))
}

func TestRecurringService_ProcessDue_AdvancesFromStoredDateNotToday(t *testing.T) {
	// Overdue by weeks: the next due date steps from the missed date
	now := localDate(2025, time.March, 25)
	svc, recurringRepo, _ := newRecurringService(now)
	userID := uuid.New()

	payment := recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Gym",
		Amount:      decimal.NewFromInt(40),
		Category:    domain.CategoryHealthcare,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.March, 1),
		AutoAdd:     true,
	})

	fired, err := svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	assert.True(t, payment.NextDueDate.Equal(localDate(2025, time.April, 1)),
		"advance steps from the stored due date, not from today")
}

func TestRecurringService_ProcessDue_AtMostOncePerDay(t *testing.T) {
	now := localDate(2025, time.March, 10)
	svc, recurringRepo, txRepo := newRecurringService(now)
	userID := uuid.New()

	// Several periods overdue, so it stays due after one advance
	recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryBills,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.January, 1),
		AutoAdd:     true,
	})

	fired, err := svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	// Same day again: LastAdded blocks a second fire
	fired, err = svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, txRepo.CreateCalls)
}

func TestRecurringService_ProcessDue_SkipsNotDueAndManual(t *testing.T) {
	now := localDate(2025, time.March, 10)
	svc, recurringRepo, txRepo := newRecurringService(now)
	userID := uuid.New()

	recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Future",
		Amount:      decimal.NewFromInt(10),
		Category:    domain.CategoryOther,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.March, 11),
		AutoAdd:     true,
	})
	recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Manual",
		Amount:      decimal.NewFromInt(10),
		Category:    domain.CategoryOther,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.March, 1),
		AutoAdd:     false,
	})

	fired, err := svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, txRepo.CreateCalls)
}

func TestRecurringService_ProcessDue_CreateFailureLeavesPaymentUntouched(t *testing.T) {
	now := localDate(2025, time.March, 10)
	svc, recurringRepo, txRepo := newRecurringService(now)
	txRepo.FailCreate = true
	userID := uuid.New()

	payment := recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      userID,
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryBills,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: localDate(2025, time.March, 10),
		AutoAdd:     true,
	})

	fired, err := svc.ProcessDuePayments(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, fired)
	assert.True(t, payment.NextDueDate.Equal(localDate(2025, time.March, 10)), "due date unchanged after failed create")
	assert.Nil(t, payment.LastAdded)
	assert.Equal(t, 0, recurringRepo.UpdateCalls)
}

func TestRecurringService_ProcessAllDue_CrossesUsers(t *testing.T) {
	now := localDate(2025, time.March, 10)
	svc, recurringRepo, _ := newRecurringService(now)

	for i := 0; i < 2; i++ {
		recurringRepo.AddPayment(&domain.RecurringPayment{
			UserID:      uuid.New(),
			Name:        "Subscription",
			Amount:      decimal.NewFromInt(10),
			Category:    domain.CategoryEntertainment,
			Frequency:   domain.FrequencyMonthly,
			NextDueDate: localDate(2025, time.March, 10),
			AutoAdd:     true,
		})
	}

	fired, err := svc.ProcessAllDue()
	require.NoError(t, err)
	assert.Equal(t, 2, fired)
}
