package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockTransactionRepository) {
	repo := testutil.NewMockTransactionRepository()
	return NewTransactionHandler(service.NewTransactionService(repo)), repo
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"name": "Groceries", "amount": "150.00", "category": "Food & Dining", "type": "expense", "date": "2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %s", response.Name)
	}

	if response.Amount != "150" {
		t.Errorf("Expected amount '150', got %s", response.Amount)
	}

	if response.Date != "2025-03-05" {
		t.Errorf("Expected date '2025-03-05', got %s", response.Date)
	}
}

func TestCreateTransaction_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"name": "Test", "amount": "100.00", "category": "Other", "type": "expense", "date": "2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// No user in context
	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateTransaction_MissingName(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"name": "", "amount": "100.00", "category": "Other", "type": "expense", "date": "2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "name" {
		t.Error("Expected validation error for 'name' field")
	}
}

func TestCreateTransaction_ZeroAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	reqBody := `{"name": "Test", "amount": "0", "category": "Other", "type": "expense", "date": "2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "amount" {
		t.Error("Expected validation error for 'amount' field")
	}
}

func TestCreateTransaction_WrongVocabulary(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	// Salary is an income category, not a spending one
	reqBody := `{"name": "Test", "amount": "100.00", "category": "Salary", "type": "expense", "date": "2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateTransaction(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "category" {
		t.Error("Expected validation error for 'category' field")
	}
}

func TestGetTransactions_TypeFilter(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler()
	userID := uuid.New()

	repo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Paycheck",
		Amount:   decimal.NewFromInt(2000),
		Category: domain.IncomeCategorySalary,
		Type:     domain.TransactionTypeIncome,
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	})
	repo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Rent",
		Amount:   decimal.NewFromInt(1200),
		Category: domain.CategoryBills,
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?type=income", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	err := handler.GetTransactions(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response))
	}

	if response[0].Type != "income" {
		t.Errorf("Expected type 'income', got %s", response[0].Type)
	}
}

func TestGetTransactions_InvalidTypeFilter(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?type=transfer", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.GetTransactions(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactions_UserIsolation(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler()
	userID := uuid.New()

	repo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Mine",
		Amount:   decimal.NewFromInt(10),
		Category: domain.CategoryOther,
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	})
	repo.AddTransaction(&domain.Transaction{
		UserID:   uuid.New(),
		Name:     "Someone else's",
		Amount:   decimal.NewFromInt(20),
		Category: domain.CategoryOther,
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	err := handler.GetTransactions(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response))
	}

	if response[0].Name != "Mine" {
		t.Errorf("Expected 'Mine', got %s", response[0].Name)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	setupAuthContext(c, uuid.New())

	err := handler.GetTransaction(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler()
	userID := uuid.New()

	tx := repo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Coffee",
		Amount:   decimal.NewFromInt(4),
		Category: domain.CategoryFoodDining,
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, userID)

	err := handler.DeleteTransaction(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	if _, ok := repo.Transactions[tx.ID]; ok {
		t.Error("Expected transaction to be deleted")
	}
}
