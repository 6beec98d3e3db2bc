package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newDashboardHandler() (*DashboardHandler, *testutil.MockTransactionRepository, uuid.UUID) {
	txRepo := testutil.NewMockTransactionRepository()
	svc := service.NewDashboardService(
		txRepo,
		testutil.NewMockBudgetRepository(),
		testutil.NewMockGoalRepository(),
		testutil.NewMockUpcomingRepository(),
		zerolog.Nop(),
	)
	return NewDashboardHandler(svc), txRepo, uuid.New()
}

func TestGetSummary_Success(t *testing.T) {
	e := echo.New()
	handler, txRepo, userID := newDashboardHandler()

	txRepo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Paycheck",
		Amount:   decimal.NewFromInt(2000),
		Category: domain.IncomeCategorySalary,
		Type:     domain.TransactionTypeIncome,
		Date:     time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	})
	txRepo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Name:     "Groceries",
		Amount:   decimal.NewFromInt(300),
		Category: domain.CategoryFoodDining,
		Type:     domain.TransactionTypeExpense,
		Date:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?month=2025-03", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Year != 2025 || response.Month != 3 {
		t.Errorf("Expected 2025-03, got %d-%d", response.Year, response.Month)
	}

	if response.MonthTotal.TotalIncome != "2000" {
		t.Errorf("Expected month income '2000', got %s", response.MonthTotal.TotalIncome)
	}

	if response.MonthTotal.TotalSaved != "1700" {
		t.Errorf("Expected month saved '1700', got %s", response.MonthTotal.TotalSaved)
	}

	if len(response.Daily) != 31 {
		t.Errorf("Expected 31 daily points, got %d", len(response.Daily))
	}

	if response.Breakdown["Food & Dining"] != "300" {
		t.Errorf("Expected breakdown entry '300', got %s", response.Breakdown["Food & Dining"])
	}

	if len(response.Forecast) != 6 {
		t.Errorf("Expected 6 forecast months, got %d", len(response.Forecast))
	}

	if len(response.RecentTransactions) != 2 {
		t.Errorf("Expected 2 recent transactions, got %d", len(response.RecentTransactions))
	}
}

func TestGetSummary_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _, userID := newDashboardHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary?month=2025-3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _, _ := newDashboardHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetSummary(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
