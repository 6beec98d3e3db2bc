package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func TestRecurringWorker_ProcessesOnStartup(t *testing.T) {
	recurringRepo := testutil.NewMockRecurringRepository()
	txRepo := testutil.NewMockTransactionRepository()
	svc := NewRecurringService(recurringRepo, txRepo, zerolog.Nop())

	recurringRepo.AddPayment(&domain.RecurringPayment{
		UserID:      uuid.New(),
		Name:        "Rent",
		Amount:      decimal.NewFromInt(1200),
		Category:    domain.CategoryBills,
		Frequency:   domain.FrequencyMonthly,
		NextDueDate: time.Now().AddDate(0, 0, -1),
		AutoAdd:     true,
	})

	worker := NewRecurringWorker(svc, zerolog.Nop(), time.Hour)
	worker.Start(context.Background())
	defer worker.Stop()

	// The first sweep runs before the ticker, so the due payment fires
	// without waiting out the interval.
	deadline := time.After(2 * time.Second)
	for txRepo.CreateCalls == 0 {
		select {
		case <-deadline:
			t.Fatal("Expected startup sweep to materialize the due payment")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRecurringWorker_StopIsIdempotent(t *testing.T) {
	svc := NewRecurringService(testutil.NewMockRecurringRepository(), testutil.NewMockTransactionRepository(), zerolog.Nop())
	worker := NewRecurringWorker(svc, zerolog.Nop(), time.Hour)

	worker.Start(context.Background())
	worker.Stop()
	worker.Stop() // second stop must not panic or block
}

func TestRecurringWorker_DefaultInterval(t *testing.T) {
	svc := NewRecurringService(testutil.NewMockRecurringRepository(), testutil.NewMockTransactionRepository(), zerolog.Nop())
	worker := NewRecurringWorker(svc, zerolog.Nop(), 0)
	if worker.interval != DefaultRecurringInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultRecurringInterval, worker.interval)
	}
}
