package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Name     string  `json:"name"`
	Amount   string  `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Notes    *string `json:"notes,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID        int32   `json:"id"`
	Name      string  `json:"name"`
	Amount    string  `json:"amount"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// CreateTransaction creates a new income or expense transaction
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseTransactionInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		return transactionErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions lists the user's transactions, optionally filtered by
// type via the ?type= query parameter
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var txType *domain.TransactionType
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.TransactionType(raw)
		if t != domain.TransactionTypeIncome && t != domain.TransactionTypeExpense {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Must be one of: income, expense"},
			})
		}
		txType = &t
	}

	transactions, err := h.transactionService.ListTransactions(userID, txType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	responses := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		responses[i] = toTransactionResponse(transaction)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetTransaction retrieves a single transaction by ID
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction updates a transaction's details. The transaction
// type is fixed at creation and cannot be changed.
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verr := parseTransactionInput(req)
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, service.UpdateTransactionInput{
		Name:     input.Name,
		Amount:   input.Amount,
		Category: input.Category,
		Date:     input.Date,
		Notes:    input.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		return transactionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction removes a transaction
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

func parseTransactionInput(req CreateTransactionRequest) (service.CreateTransactionInput, *ValidationError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.CreateTransactionInput{}, &ValidationError{
			Field: "amount", Message: "Must be a valid decimal number",
		}
	}

	var date time.Time
	if req.Date != "" {
		parsed, ok := util.ParseLocalDate(req.Date)
		if !ok {
			return service.CreateTransactionInput{}, &ValidationError{
				Field: "date", Message: "Must be in YYYY-MM-DD format",
			}
		}
		date = parsed
	}

	return service.CreateTransactionInput{
		Name:     req.Name,
		Amount:   amount,
		Category: domain.Category(req.Category),
		Type:     domain.TransactionType(req.Type),
		Date:     date,
		Notes:    req.Notes,
	}, nil
}

func transactionErrorResponse(c echo.Context, err error) error {
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
			{Field: "amount", Message: "Amount must be non-zero"},
		})
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown category"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", nil)
	default:
		log.Error().Err(err).Msg("Transaction operation failed")
		return NewInternalError(c, "Transaction operation failed")
	}
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        transaction.ID,
		Name:      transaction.Name,
		Amount:    transaction.Amount.String(),
		Category:  string(transaction.Category),
		Type:      string(transaction.Type),
		Date:      util.FormatDate(transaction.Date),
		Notes:     transaction.Notes,
		CreatedAt: transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt: transaction.UpdatedAt.Format(time.RFC3339),
	}
}

func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}
