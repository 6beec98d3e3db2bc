package handler

import (
	"net/http"

	"github.com/karanthegodd/expense-tracker/internal/domain"
	"github.com/karanthegodd/expense-tracker/internal/middleware"
	"github.com/karanthegodd/expense-tracker/internal/service"
	"github.com/karanthegodd/expense-tracker/internal/util"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard snapshot HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// TotalsResponse carries signed income/expense/saved sums
type TotalsResponse struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	TotalSaved    string `json:"totalSaved"`
}

// DailyPointResponse is one day of the cumulative month series
type DailyPointResponse struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// CategorySliceResponse is one positive-net slice of the breakdown
type CategorySliceResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// GoalProgressResponse is the derived display state of one goal
type GoalProgressResponse struct {
	GoalID     int32   `json:"goalId"`
	Name       string  `json:"name"`
	Target     string  `json:"target"`
	Saved      string  `json:"saved"`
	Percentage string  `json:"percentage"`
	RawRatio   string  `json:"rawRatio"`
	DueDate    *string `json:"dueDate,omitempty"`
}

// ForecastMonthResponse is one month of the obligation forecast
type ForecastMonthResponse struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Required string `json:"required"`
	Saved    string `json:"saved"`
	Deficit  string `json:"deficit"`
}

// DashboardSummaryResponse is the full derived snapshot for a month
type DashboardSummaryResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	AllTime       TotalsResponse `json:"allTime"`
	MonthTotal    TotalsResponse `json:"monthTotal"`
	Cumulative    TotalsResponse `json:"cumulative"`
	PreviousSaved string         `json:"previousSaved"`

	Daily     []DailyPointResponse    `json:"daily"`
	Breakdown map[string]string       `json:"breakdown"`
	Slices    []CategorySliceResponse `json:"slices"`

	Budgets           []BudgetProgressResponse `json:"budgets"`
	AvgBudgetProgress string                   `json:"avgBudgetProgress"`

	Goals          []GoalProgressResponse `json:"goals"`
	AvailableFunds string                 `json:"availableFunds"`

	Forecast      []ForecastMonthResponse `json:"forecast"`
	TotalUpcoming string                  `json:"totalUpcoming"`

	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

// GetSummary returns the derived snapshot for the month selected by
// ?month=YYYY-MM, defaulting to the current month
func (h *DashboardHandler) GetSummary(c echo.Context) error {
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

	summary := h.dashboardService.SummaryForMonth(userID, year, month)
	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		TotalIncome:   t.TotalIncome.String(),
		TotalExpenses: t.TotalExpenses.String(),
		TotalSaved:    t.TotalSaved.String(),
	}
}

func toGoalProgressResponse(row domain.GoalProgress) GoalProgressResponse {
	return GoalProgressResponse{
		GoalID:     row.GoalID,
		Name:       row.Name,
		Target:     row.Target.String(),
		Saved:      row.Saved.String(),
		Percentage: row.Percentage.String(),
		RawRatio:   row.RawRatio.String(),
		DueDate:    formatOptionalDate(row.DueDate),
	}
}

func toDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	daily := make([]DailyPointResponse, len(summary.Daily))
	for i, point := range summary.Daily {
		daily[i] = DailyPointResponse{
			Day:      point.Day,
			Date:     util.FormatDate(point.Date),
			Income:   point.CumulativeIncome.String(),
			Expenses: point.CumulativeExpenses.String(),
		}
	}

	breakdown := make(map[string]string, len(summary.Breakdown))
	for category, amount := range summary.Breakdown {
		breakdown[string(category)] = amount.String()
	}

	slices := make([]CategorySliceResponse, len(summary.Slices))
	for i, slice := range summary.Slices {
		slices[i] = CategorySliceResponse{
			Category: string(slice.Category),
			Amount:   slice.Amount.String(),
		}
	}

	budgets := make([]BudgetProgressResponse, len(summary.Budgets))
	for i, row := range summary.Budgets {
		budgets[i] = toBudgetProgressResponse(row)
	}

	goals := make([]GoalProgressResponse, len(summary.Goals))
	for i, row := range summary.Goals {
		goals[i] = toGoalProgressResponse(row)
	}

	forecast := make([]ForecastMonthResponse, len(summary.Forecast))
	for i, fm := range summary.Forecast {
		forecast[i] = ForecastMonthResponse{
			Year:     fm.Year,
			Month:    int(fm.Month),
			Required: fm.Required.String(),
			Saved:    fm.Saved.String(),
			Deficit:  fm.Deficit.String(),
		}
	}

	recent := make([]TransactionResponse, len(summary.Recent))
	for i, transaction := range summary.Recent {
		recent[i] = toTransactionResponse(transaction)
	}

	return DashboardSummaryResponse{
		Year:  summary.Year,
		Month: int(summary.Month),

		AllTime:       toTotalsResponse(summary.AllTime),
		MonthTotal:    toTotalsResponse(summary.MonthTotal),
		Cumulative:    toTotalsResponse(summary.Cumulative),
		PreviousSaved: summary.PrevSaved.String(),

		Daily:     daily,
		Breakdown: breakdown,
		Slices:    slices,

		Budgets:           budgets,
		AvgBudgetProgress: summary.AvgBudgetProgress.String(),

		Goals:          goals,
		AvailableFunds: summary.AvailableFunds.String(),

		Forecast:      forecast,
		TotalUpcoming: summary.TotalUpcoming.String(),

		RecentTransactions: recent,
	}
}
