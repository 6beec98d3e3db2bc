package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karanthegodd/expense-tracker/internal/domain"
)

// UpcomingRepository implements domain.UpcomingExpenseRepository using PostgreSQL
type UpcomingRepository struct {
	pool *pgxpool.Pool
}

// NewUpcomingRepository creates a new UpcomingRepository
func NewUpcomingRepository(pool *pgxpool.Pool) *UpcomingRepository {
	return &UpcomingRepository{pool: pool}
}

const upcomingColumns = `id, user_id, name, amount, category, due_date, description, created_at, updated_at`

// Create creates a new upcoming expense
func (r *UpcomingRepository) Create(upcoming *domain.UpcomingExpense) (*domain.UpcomingExpense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(upcoming.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO upcoming_expenses (user_id, name, amount, category, due_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+upcomingColumns,
		upcoming.UserID,
		upcoming.Name,
		amount,
		string(upcoming.Category),
		pgDate(upcoming.DueDate),
		upcoming.Description,
	)
	return scanUpcoming(row)
}

// GetByID retrieves an upcoming expense by its ID for a user
func (r *UpcomingRepository) GetByID(userID uuid.UUID, id int32) (*domain.UpcomingExpense, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+upcomingColumns+`
		FROM upcoming_expenses
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	upcoming, err := scanUpcoming(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUpcomingNotFound
		}
		return nil, err
	}
	return upcoming, nil
}

// ListByUser retrieves all upcoming expenses for a user, soonest first
func (r *UpcomingRepository) ListByUser(userID uuid.UUID) ([]*domain.UpcomingExpense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+upcomingColumns+`
		FROM upcoming_expenses
		WHERE user_id = $1
		ORDER BY due_date, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var upcoming []*domain.UpcomingExpense
	for rows.Next() {
		u, err := scanUpcoming(rows)
		if err != nil {
			return nil, err
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}

// Update updates an upcoming expense's details
func (r *UpcomingRepository) Update(upcoming *domain.UpcomingExpense) (*domain.UpcomingExpense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(upcoming.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE upcoming_expenses
		SET name = $3, amount = $4, category = $5, due_date = $6, description = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+upcomingColumns,
		upcoming.UserID,
		upcoming.ID,
		upcoming.Name,
		amount,
		string(upcoming.Category),
		pgDate(upcoming.DueDate),
		upcoming.Description,
	)
	updated, err := scanUpcoming(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUpcomingNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an upcoming expense
func (r *UpcomingRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM upcoming_expenses
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUpcomingNotFound
	}
	return nil
}

func scanUpcoming(row pgx.Row) (*domain.UpcomingExpense, error) {
	var (
		upcoming  domain.UpcomingExpense
		amount    pgtype.Numeric
		category  string
		dueDate   pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&upcoming.ID,
		&upcoming.UserID,
		&upcoming.Name,
		&amount,
		&category,
		&dueDate,
		&upcoming.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	upcoming.Amount = pgNumericToDecimal(amount)
	upcoming.Category = domain.Category(category)
	upcoming.DueDate = dateLocal(dueDate)
	upcoming.CreatedAt = createdAt.Time
	upcoming.UpdatedAt = updatedAt.Time
	return &upcoming, nil
}
