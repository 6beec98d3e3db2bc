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

// UpcomingHandler handles upcoming expense HTTP requests
type UpcomingHandler struct {
	upcomingService *service.UpcomingService
}

// NewUpcomingHandler creates a new UpcomingHandler
func NewUpcomingHandler(upcomingService *service.UpcomingService) *UpcomingHandler {
	return &UpcomingHandler{upcomingService: upcomingService}
}

// CreateUpcomingRequest represents the create upcoming expense request body
type CreateUpcomingRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
}

// UpcomingResponse represents an upcoming expense in API responses
type UpcomingResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateUpcoming creates a new upcoming expense
func (h *UpcomingHandler) CreateUpcoming(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateUpcomingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseUpcomingInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	upcoming, err := h.upcomingService.CreateUpcoming(userID, input)
	if err != nil {
		return upcomingErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toUpcomingResponse(upcoming))
}

// GetUpcoming lists the user's upcoming expenses
func (h *UpcomingHandler) GetUpcoming(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	upcoming, err := h.upcomingService.ListUpcoming(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list upcoming expenses")
		return NewInternalError(c, "Failed to list upcoming expenses")
	}

	responses := make([]UpcomingResponse, len(upcoming))
	for i, u := range upcoming {
		responses[i] = toUpcomingResponse(u)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateUpcoming updates an upcoming expense's details
func (h *UpcomingHandler) UpdateUpcoming(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid upcoming expense ID", nil)
	}

	var req CreateUpcomingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseUpcomingInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	upcoming, err := h.upcomingService.UpdateUpcoming(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrUpcomingNotFound) {
			return NewNotFoundError(c, "Upcoming expense not found")
		}
		return upcomingErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toUpcomingResponse(upcoming))
}

// DeleteUpcoming removes an upcoming expense
func (h *UpcomingHandler) DeleteUpcoming(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid upcoming expense ID", nil)
	}

	if err := h.upcomingService.DeleteUpcoming(userID, id); err != nil {
		if errors.Is(err, domain.ErrUpcomingNotFound) {
			return NewNotFoundError(c, "Upcoming expense not found")
		}
		log.Error().Err(err).Msg("Failed to delete upcoming expense")
		return NewInternalError(c, "Failed to delete upcoming expense")
	}

	return c.NoContent(http.StatusNoContent)
}

func parseUpcomingInput(req CreateUpcomingRequest) (service.CreateUpcomingInput, *ValidationError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.CreateUpcomingInput{}, &ValidationError{
			Field: "amount", Message: "Must be a valid decimal number",
		}
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, ok := util.ParseLocalDate(req.DueDate)
		if !ok {
			return service.CreateUpcomingInput{}, &ValidationError{
				Field: "dueDate", Message: "Must be in YYYY-MM-DD format",
			}
		}
		dueDate = parsed
	}

	return service.CreateUpcomingInput{
		Name:        req.Name,
		Amount:      amount,
		Category:    domain.Category(req.Category),
		DueDate:     dueDate,
		Description: req.Description,
	}, nil
}

func upcomingErrorResponse(c echo.Context, err error) error {
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
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "dueDate", Message: "Due date is required"},
		})
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown category"},
		})
	default:
		log.Error().Err(err).Msg("Upcoming expense operation failed")
		return NewInternalError(c, "Upcoming expense operation failed")
	}
}

func toUpcomingResponse(upcoming *domain.UpcomingExpense) UpcomingResponse {
	return UpcomingResponse{
		ID:          upcoming.ID,
		Name:        upcoming.Name,
		Amount:      upcoming.Amount.String(),
		Category:    string(upcoming.Category),
		DueDate:     util.FormatDate(upcoming.DueDate),
		Description: upcoming.Description,
		CreatedAt:   upcoming.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   upcoming.UpdatedAt.Format(time.RFC3339),
	}
}
