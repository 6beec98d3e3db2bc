package handler

import (
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	transactionHandler *TransactionHandler,
	budgetHandler *BudgetHandler,
	goalHandler *GoalHandler,
	upcomingHandler *UpcomingHandler,
	recurringHandler *RecurringHandler,
	dashboardHandler *DashboardHandler,
	analyticsHandler *AnalyticsHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.GET("/me", authHandler.Me)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/progress", budgetHandler.GetProgress)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Savings goal routes
	goals := api.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/available-funds", goalHandler.GetAvailableFunds)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)
	goals.POST("/:id/withdraw", goalHandler.Withdraw)

	// Upcoming expense routes
	upcoming := api.Group("/upcoming")
	upcoming.POST("", upcomingHandler.CreateUpcoming)
	upcoming.GET("", upcomingHandler.GetUpcoming)
	upcoming.PUT("/:id", upcomingHandler.UpdateUpcoming)
	upcoming.DELETE("/:id", upcomingHandler.DeleteUpcoming)

	// Recurring payment routes
	recurring := api.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/process-due", recurringHandler.ProcessDue)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Period comparison routes
	api.GET("/comparison", analyticsHandler.Compare)
}
