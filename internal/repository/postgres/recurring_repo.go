package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karanthegodd/expense-tracker/internal/domain"
)

// RecurringRepository implements domain.RecurringPaymentRepository using PostgreSQL
type RecurringRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRepository creates a new RecurringRepository
func NewRecurringRepository(pool *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{pool: pool}
}

const recurringColumns = `id, user_id, name, amount, category, frequency, next_due_date, auto_add, last_added, description, created_at, updated_at`

// Create creates a new recurring payment
func (r *RecurringRepository) Create(payment *domain.RecurringPayment) (*domain.RecurringPayment, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_payments (user_id, name, amount, category, frequency, next_due_date, auto_add, last_added, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+recurringColumns,
		payment.UserID,
		payment.Name,
		amount,
		string(payment.Category),
		string(payment.Frequency),
		pgDate(payment.NextDueDate),
		payment.AutoAdd,
		pgDatePtr(payment.LastAdded),
		payment.Description,
	)
	return scanRecurring(row)
}

// GetByID retrieves a recurring payment by its ID for a user
func (r *RecurringRepository) GetByID(userID uuid.UUID, id int32) (*domain.RecurringPayment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_payments
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	payment, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return payment, nil
}

// ListByUser retrieves all recurring payments for a user, soonest due first
func (r *RecurringRepository) ListByUser(userID uuid.UUID) ([]*domain.RecurringPayment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_payments
		WHERE user_id = $1
		ORDER BY next_due_date, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecurring(rows)
}

// ListAutoAddDue retrieves due auto-add payments across all users. Used
// by the background worker.
func (r *RecurringRepository) ListAutoAddDue(asOf time.Time) ([]*domain.RecurringPayment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_payments
		WHERE auto_add = true AND next_due_date <= $1
		ORDER BY next_due_date, id`,
		pgDate(asOf),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecurring(rows)
}

// Update updates a recurring payment's details
func (r *RecurringRepository) Update(payment *domain.RecurringPayment) (*domain.RecurringPayment, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_payments
		SET name = $3, amount = $4, category = $5, frequency = $6, next_due_date = $7, auto_add = $8, last_added = $9, description = $10, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+recurringColumns,
		payment.UserID,
		payment.ID,
		payment.Name,
		amount,
		string(payment.Category),
		string(payment.Frequency),
		pgDate(payment.NextDueDate),
		payment.AutoAdd,
		pgDatePtr(payment.LastAdded),
		payment.Description,
	)
	updated, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a recurring payment
func (r *RecurringRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM recurring_payments
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}

func collectRecurring(rows pgx.Rows) ([]*domain.RecurringPayment, error) {
	var payments []*domain.RecurringPayment
	for rows.Next() {
		payment, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func scanRecurring(row pgx.Row) (*domain.RecurringPayment, error) {
	var (
		payment     domain.RecurringPayment
		amount      pgtype.Numeric
		category    string
		frequency   string
		nextDueDate pgtype.Date
		lastAdded   pgtype.Date
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Name,
		&amount,
		&category,
		&frequency,
		&nextDueDate,
		&payment.AutoAdd,
		&lastAdded,
		&payment.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.Amount = pgNumericToDecimal(amount)
	payment.Category = domain.Category(category)
	payment.Frequency = domain.Frequency(frequency)
	payment.NextDueDate = dateLocal(nextDueDate)
	payment.LastAdded = datePtr(lastAdded)
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time
	return &payment, nil
}
