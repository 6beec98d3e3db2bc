package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalError       = errors.New("internal error")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidFrequency    = errors.New("invalid frequency")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInsufficientFunds   = errors.New("withdrawal exceeds saved amount")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("savings goal not found")
	ErrUpcomingNotFound    = errors.New("upcoming expense not found")
	ErrRecurringNotFound   = errors.New("recurring payment not found")
)

// Validation constants
const (
	MaxNameLength = 255
)
