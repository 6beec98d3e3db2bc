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

// GoalRepository implements domain.SavingsGoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, target_amount, saved_amount, due_date, created_at, updated_at`

// Create creates a new savings goal
func (r *GoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	saved, err := decimalToPgNumeric(goal.SavedAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid saved amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO savings_goals (user_id, name, target_amount, saved_amount, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+goalColumns,
		goal.UserID,
		goal.Name,
		target,
		saved,
		pgDatePtr(goal.DueDate),
	)
	return scanGoal(row)
}

// GetByID retrieves a savings goal by its ID for a user
func (r *GoalRepository) GetByID(userID uuid.UUID, id int32) (*domain.SavingsGoal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM savings_goals
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// ListByUser retrieves all savings goals for a user
func (r *GoalRepository) ListByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.SavingsGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update updates a savings goal's details
func (r *GoalRepository) Update(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	saved, err := decimalToPgNumeric(goal.SavedAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid saved amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE savings_goals
		SET name = $3, target_amount = $4, saved_amount = $5, due_date = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+goalColumns,
		goal.UserID,
		goal.ID,
		goal.Name,
		target,
		saved,
		pgDatePtr(goal.DueDate),
	)
	updated, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a savings goal
func (r *GoalRepository) Delete(userID uuid.UUID, id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM savings_goals
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (*domain.SavingsGoal, error) {
	var (
		goal      domain.SavingsGoal
		target    pgtype.Numeric
		saved     pgtype.Numeric
		dueDate   pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&target,
		&saved,
		&dueDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	goal.TargetAmount = pgNumericToDecimal(target)
	goal.SavedAmount = pgNumericToDecimal(saved)
	goal.DueDate = datePtr(dueDate)
	goal.CreatedAt = createdAt.Time
	goal.UpdatedAt = updatedAt.Time
	return &goal, nil
}
