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

// RecurringHandler handles recurring payment HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the create recurring payment request body
type CreateRecurringRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Frequency   string `json:"frequency"`
	NextDueDate string `json:"nextDueDate"`
	AutoAdd     bool   `json:"autoAdd"`
	Description string `json:"description"`
}

// RecurringResponse represents a recurring payment in API responses
type RecurringResponse struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"`
	NextDueDate string  `json:"nextDueDate"`
	AutoAdd     bool    `json:"autoAdd"`
	LastAdded   *string `json:"lastAdded,omitempty"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ProcessDueResponse reports how many payments were materialized
type ProcessDueResponse struct {
	Fired int `json:"fired"`
}

// CreateRecurring creates a new recurring payment template
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseRecurringInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	payment, err := h.recurringService.CreateRecurring(userID, input)
	if err != nil {
		return recurringErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toRecurringResponse(payment))
}

// GetRecurring lists the user's recurring payments
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	payments, err := h.recurringService.ListRecurring(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recurring payments")
		return NewInternalError(c, "Failed to list recurring payments")
	}

	responses := make([]RecurringResponse, len(payments))
	for i, payment := range payments {
		responses[i] = toRecurringResponse(payment)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateRecurring updates a recurring payment's details
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid recurring payment ID", nil)
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseRecurringInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	payment, err := h.recurringService.UpdateRecurring(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring payment not found")
		}
		return recurringErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toRecurringResponse(payment))
}

// DeleteRecurring removes a recurring payment
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid recurring payment ID", nil)
	}

	if err := h.recurringService.DeleteRecurring(userID, id); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring payment not found")
		}
		log.Error().Err(err).Msg("Failed to delete recurring payment")
		return NewInternalError(c, "Failed to delete recurring payment")
	}

	return c.NoContent(http.StatusNoContent)
}

// ProcessDue fires the user's due auto-add payments immediately instead
// of waiting for the next background sweep
func (h *RecurringHandler) ProcessDue(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	fired, err := h.recurringService.ProcessDuePayments(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to process due payments")
		return NewInternalError(c, "Failed to process due payments")
	}

	return c.JSON(http.StatusOK, ProcessDueResponse{Fired: fired})
}

func parseRecurringInput(req CreateRecurringRequest) (service.CreateRecurringInput, *ValidationError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.CreateRecurringInput{}, &ValidationError{
			Field: "amount", Message: "Must be a valid decimal number",
		}
	}

	var nextDueDate time.Time
	if req.NextDueDate != "" {
		parsed, ok := util.ParseLocalDate(req.NextDueDate)
		if !ok {
			return service.CreateRecurringInput{}, &ValidationError{
				Field: "nextDueDate", Message: "Must be in YYYY-MM-DD format",
			}
		}
		nextDueDate = parsed
	}

	return service.CreateRecurringInput{
		Name:        req.Name,
		Amount:      amount,
		Category:    domain.Category(req.Category),
		Frequency:   domain.Frequency(req.Frequency),
		NextDueDate: nextDueDate,
		AutoAdd:     req.AutoAdd,
		Description: req.Description,
	}, nil
}

func recurringErrorResponse(c echo.Context, err error) error {
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
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown category"},
		})
	case errors.Is(err, domain.ErrInvalidFrequency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "frequency", Message: "Must be one of: weekly, monthly, yearly"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "nextDueDate", Message: "Next due date is required"},
		})
	default:
		log.Error().Err(err).Msg("Recurring payment operation failed")
		return NewInternalError(c, "Recurring payment operation failed")
	}
}

func toRecurringResponse(payment *domain.RecurringPayment) RecurringResponse {
	return RecurringResponse{
		ID:          payment.ID,
		Name:        payment.Name,
		Amount:      payment.Amount.String(),
		Category:    string(payment.Category),
		Frequency:   string(payment.Frequency),
		NextDueDate: util.FormatDate(payment.NextDueDate),
		AutoAdd:     payment.AutoAdd,
		LastAdded:   formatOptionalDate(payment.LastAdded),
		Description: payment.Description,
		CreatedAt:   payment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   payment.UpdatedAt.Format(time.RFC3339),
	}
}
