package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Category       string  `json:"category"`
	Amount         string  `json:"amount"`
	StartDate      *string `json:"startDate,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID             int32   `json:"id"`
	Category       string  `json:"category"`
	Amount         string  `json:"amount"`
	StartDate      *string `json:"startDate,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// BudgetProgressResponse represents one budget's progress row
type BudgetProgressResponse struct {
	BudgetID       int32   `json:"budgetId"`
	Category       string  `json:"category"`
	Limit          string  `json:"limit"`
	Spent          string  `json:"spent"`
	Remaining      string  `json:"remaining"`
	Percentage     string  `json:"percentage"`
	OverBy         string  `json:"overBy"`
	RefundSurplus  string  `json:"refundSurplus"`
	Severity       string  `json:"severity"`
	EffectiveStart string  `json:"effectiveStart"`
	EffectiveEnd   string  `json:"effectiveEnd"`
}

// CreateBudget creates a new budget
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseBudgetInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	budget, err := h.budgetService.CreateBudget(userID, input)
	if err != nil {
		return budgetErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets lists the user's budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	responses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		responses[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateBudget updates a budget's details
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseBudgetInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	budget, err := h.budgetService.UpdateBudget(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		return budgetErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget removes a budget
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProgress derives progress rows for the budgets visible in the
// month selected by ?month=YYYY-MM, defaulting to the current month
func (h *BudgetHandler) GetProgress(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, month, err := parseMonthQuery(c)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	rows, err := h.budgetService.Progress(userID, year, month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive budget progress")
		return NewInternalError(c, "Failed to derive budget progress")
	}

	responses := make([]BudgetProgressResponse, len(rows))
	for i, row := range rows {
		responses[i] = toBudgetProgressResponse(row)
	}
	return c.JSON(http.StatusOK, responses)
}

func parseBudgetInput(req CreateBudgetRequest) (service.CreateBudgetInput, *ValidationError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.CreateBudgetInput{}, &ValidationError{
			Field: "amount", Message: "Must be a valid decimal number",
		}
	}

	startDate, verr := parseOptionalDate(req.StartDate, "startDate")
	if verr != nil {
		return service.CreateBudgetInput{}, verr
	}
	expirationDate, verr := parseOptionalDate(req.ExpirationDate, "expirationDate")
	if verr != nil {
		return service.CreateBudgetInput{}, verr
	}

	return service.CreateBudgetInput{
		Category:       domain.Category(req.Category),
		Amount:         amount,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
	}, nil
}

func budgetErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown category"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "expirationDate", Message: "Expiration must not precede start"},
		})
	default:
		log.Error().Err(err).Msg("Budget operation failed")
		return NewInternalError(c, "Budget operation failed")
	}
}

func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:             budget.ID,
		Category:       string(budget.Category),
		Amount:         budget.Amount.String(),
		StartDate:      formatOptionalDate(budget.StartDate),
		ExpirationDate: formatOptionalDate(budget.ExpirationDate),
		CreatedAt:      budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      budget.UpdatedAt.Format(time.RFC3339),
	}
}

func toBudgetProgressResponse(row domain.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		BudgetID:       row.BudgetID,
		Category:       string(row.Category),
		Limit:          row.Limit.String(),
		Spent:          row.Spent.String(),
		Remaining:      row.Remaining.String(),
		Percentage:     row.Percentage.String(),
		OverBy:         row.OverBy.String(),
		RefundSurplus:  row.RefundSurplus.String(),
		Severity:       string(row.Severity),
		EffectiveStart: util.FormatDate(row.EffectiveStart),
		EffectiveEnd:   util.FormatDate(row.EffectiveEnd),
	}
}

func parseOptionalDate(raw *string, field string) (*time.Time, *ValidationError) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, ok := util.ParseLocalDate(*raw)
	if !ok {
		return nil, &ValidationError{Field: field, Message: "Must be in YYYY-MM-DD format"}
	}
	return &parsed, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := util.FormatDate(*t)
	return &s
}

// parseMonthQuery parses the ?month=YYYY-MM query parameter, defaulting
// to the current month when absent.
func parseMonthQuery(c echo.Context) (int, time.Month, error) {
	raw := c.QueryParam("month")
	if raw == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		return 0, 0, errors.New("invalid month")
	}
	return parsed.Year(), parsed.Month(), nil
}
