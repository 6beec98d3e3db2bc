package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newGoalHandler() (*GoalHandler, *testutil.MockGoalRepository, *testutil.MockTransactionRepository) {
	goalRepo := testutil.NewMockGoalRepository()
	txRepo := testutil.NewMockTransactionRepository()
	return NewGoalHandler(service.NewGoalService(goalRepo, txRepo)), goalRepo, txRepo
}

func TestCreateGoal_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newGoalHandler()

	reqBody := `{"name": "Emergency fund", "targetAmount": "5000", "savedAmount": "500"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateGoal(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.SavedAmount != "500" {
		t.Errorf("Expected savedAmount '500', got %s", response.SavedAmount)
	}
}

func TestCreateGoal_NonPositiveTarget(t *testing.T) {
	e := echo.New()
	handler, _, _ := newGoalHandler()

	reqBody := `{"name": "Nothing", "targetAmount": "0"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	err := handler.CreateGoal(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestContribute_Success(t *testing.T) {
	e := echo.New()
	handler, goalRepo, _ := newGoalHandler()
	userID := uuid.New()

	goalRepo.AddGoal(&domain.SavingsGoal{
		UserID:       userID,
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		SavedAmount:  decimal.NewFromInt(200),
	})

	reqBody := `{"amount": "300"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/1/contribute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, userID)

	err := handler.Contribute(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.SavedAmount != "500" {
		t.Errorf("Expected savedAmount '500', got %s", response.SavedAmount)
	}
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	e := echo.New()
	handler, goalRepo, _ := newGoalHandler()
	userID := uuid.New()

	goalRepo.AddGoal(&domain.SavingsGoal{
		UserID:       userID,
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		SavedAmount:  decimal.NewFromInt(100),
	})

	reqBody := `{"amount": "150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/1/withdraw", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, userID)

	err := handler.Withdraw(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestGetAvailableFunds_Success(t *testing.T) {
	e := echo.New()
	handler, goalRepo, txRepo := newGoalHandler()
	userID := uuid.New()

	txRepo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Paycheck",
		Amount:   decimal.NewFromInt(2000),
		Category: domain.IncomeCategorySalary,
		Type:     domain.TransactionTypeIncome,
	})
	goalRepo.AddGoal(&domain.SavingsGoal{
		UserID:       userID,
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(1000),
		SavedAmount:  decimal.NewFromInt(600),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals/available-funds", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	err := handler.GetAvailableFunds(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AvailableFundsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.AvailableFunds != "1400" {
		t.Errorf("Expected availableFunds '1400', got %s", response.AvailableFunds)
	}
}
