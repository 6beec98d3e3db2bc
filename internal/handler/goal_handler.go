package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount string  `json:"targetAmount"`
	SavedAmount  *string `json:"savedAmount,omitempty"`
	DueDate      *string `json:"dueDate,omitempty"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	TargetAmount string  `json:"targetAmount"`
	SavedAmount  string  `json:"savedAmount"`
	DueDate      *string `json:"dueDate,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// GoalFundsRequest represents a contribute or withdraw request body
type GoalFundsRequest struct {
	Amount string `json:"amount"`
}

// AvailableFundsResponse reports savings not yet earmarked to any goal
type AvailableFundsResponse struct {
	AvailableFunds string `json:"availableFunds"`
}

// CreateGoal creates a new savings goal
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseGoalInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	goal, err := h.goalService.CreateGoal(userID, input)
	if err != nil {
		return goalErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals lists the user's savings goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goals, err := h.goalService.ListGoals(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list goals")
		return NewInternalError(c, "Failed to list goals")
	}

	responses := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = toGoalResponse(goal)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateGoal updates a goal's name, target and due date
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseGoalInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	goal, err := h.goalService.UpdateGoal(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		return goalErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal removes a savings goal
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(userID, id); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	return c.NoContent(http.StatusNoContent)
}

// Contribute adds funds to a goal
func (h *GoalHandler) Contribute(c echo.Context) error {
	return h.moveFunds(c, h.goalService.Contribute)
}

// Withdraw removes funds from a goal. Withdrawing more than the saved
// amount is a conflict.
func (h *GoalHandler) Withdraw(c echo.Context) error {
	return h.moveFunds(c, h.goalService.Withdraw)
}

// GetAvailableFunds reports lifetime savings not earmarked to any goal
func (h *GoalHandler) GetAvailableFunds(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	funds, err := h.goalService.AvailableFunds(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute available funds")
		return NewInternalError(c, "Failed to compute available funds")
	}

	return c.JSON(http.StatusOK, AvailableFundsResponse{AvailableFunds: funds.String()})
}

func (h *GoalHandler) moveFunds(c echo.Context, op func(uuid.UUID, int32, decimal.Decimal) (*domain.SavingsGoal, error)) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req GoalFundsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	goal, err := op(userID, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNotFound):
			return NewNotFoundError(c, "Goal not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		case errors.Is(err, domain.ErrInsufficientFunds):
			return NewConflictError(c, "Withdrawal exceeds saved amount")
		default:
			log.Error().Err(err).Msg("Goal funds operation failed")
			return NewInternalError(c, "Goal funds operation failed")
		}
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

func parseGoalInput(req CreateGoalRequest) (service.CreateGoalInput, *ValidationError) {
	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return service.CreateGoalInput{}, &ValidationError{
			Field: "targetAmount", Message: "Must be a valid decimal number",
		}
	}

	saved := decimal.Zero
	if req.SavedAmount != nil && *req.SavedAmount != "" {
		saved, err = decimal.NewFromString(*req.SavedAmount)
		if err != nil {
			return service.CreateGoalInput{}, &ValidationError{
				Field: "savedAmount", Message: "Must be a valid decimal number",
			}
		}
	}

	dueDate, verr := parseOptionalDate(req.DueDate, "dueDate")
	if verr != nil {
		return service.CreateGoalInput{}, verr
	}

	return service.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: target,
		SavedAmount:  saved,
		DueDate:      dueDate,
	}, nil
}

func goalErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is too long"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target must be positive and saved non-negative"},
		})
	default:
		log.Error().Err(err).Msg("Goal operation failed")
		return NewInternalError(c, "Goal operation failed")
	}
}

func toGoalResponse(goal *domain.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:           goal.ID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount.String(),
		SavedAmount:  goal.SavedAmount.String(),
		DueDate:      formatOptionalDate(goal.DueDate),
		CreatedAt:    goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    goal.UpdatedAt.Format(time.RFC3339),
	}
}
