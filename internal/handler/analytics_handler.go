package handler

import (
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

// AnalyticsHandler handles period comparison HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// PeriodSummaryResponse is one side of a period comparison
type PeriodSummaryResponse struct {
	Label        string         `json:"label"`
	Totals       TotalsResponse `json:"totals"`
	IncomeCount  int            `json:"incomeCount"`
	ExpenseCount int            `json:"expenseCount"`
}

// CategoryComparisonResponse is the per-category delta between two
// periods. ChangePercent is "N/A" when the base period has no spend.
type CategoryComparisonResponse struct {
	Category      string `json:"category"`
	Period1       string `json:"period1"`
	Period2       string `json:"period2"`
	Difference    string `json:"difference"`
	ChangePercent string `json:"changePercent"`
}

// ComparisonResponse compares two periods of the same granularity
type ComparisonResponse struct {
	Period1       PeriodSummaryResponse        `json:"period1"`
	Period2       PeriodSummaryResponse        `json:"period2"`
	Categories    []CategoryComparisonResponse `json:"categories"`
	IncomeChange  string                       `json:"incomeChange"`
	ExpenseChange string                       `json:"expenseChange"`
	SavedChange   string                       `json:"savedChange"`
}

// Compare compares two periods selected by ?type=&period1=&period2=.
// Type is one of month (YYYY-MM), year (YYYY) or day (YYYY-MM-DD); both
// periods must match the type's format.
func (h *AnalyticsHandler) Compare(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	periodType := c.QueryParam("type")
	raw1 := c.QueryParam("period1")
	raw2 := c.QueryParam("period2")

	p1, verr := parsePeriod(periodType, raw1, "period1")
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}
	p2, verr := parsePeriod(periodType, raw2, "period2")
	if verr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*verr})
	}

	result, err := h.analyticsService.Compare(userID, *p1, *p2, raw1, raw2)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compare periods")
		return NewInternalError(c, "Failed to compare periods")
	}

	return c.JSON(http.StatusOK, toComparisonResponse(result))
}

func parsePeriod(periodType, raw, field string) (*domain.Period, *ValidationError) {
	switch periodType {
	case "month":
		parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			return nil, &ValidationError{Field: field, Message: "Must be in YYYY-MM format"}
		}
		p := domain.MonthPeriod(parsed.Year(), parsed.Month())
		return &p, nil
	case "year":
		parsed, err := time.ParseInLocation("2006", raw, time.Local)
		if err != nil {
			return nil, &ValidationError{Field: field, Message: "Must be in YYYY format"}
		}
		p := domain.YearPeriod(parsed.Year())
		return &p, nil
	case "day":
		parsed, ok := util.ParseLocalDate(raw)
		if !ok {
			return nil, &ValidationError{Field: field, Message: "Must be in YYYY-MM-DD format"}
		}
		p := domain.DayPeriod(parsed)
		return &p, nil
	default:
		return nil, &ValidationError{Field: "type", Message: "Must be one of: month, year, day"}
	}
}

func toComparisonResponse(result *domain.ComparisonResult) ComparisonResponse {
	categories := make([]CategoryComparisonResponse, len(result.Categories))
	for i, cc := range result.Categories {
		categories[i] = CategoryComparisonResponse{
			Category:      string(cc.Category),
			Period1:       cc.Period1.String(),
			Period2:       cc.Period2.String(),
			Difference:    cc.Difference.String(),
			ChangePercent: formatChange(cc.ChangePercent),
		}
	}

	return ComparisonResponse{
		Period1:       toPeriodSummaryResponse(result.Period1),
		Period2:       toPeriodSummaryResponse(result.Period2),
		Categories:    categories,
		IncomeChange:  formatChange(result.IncomeChange),
		ExpenseChange: formatChange(result.ExpenseChange),
		SavedChange:   formatChange(result.SavedChange),
	}
}

func toPeriodSummaryResponse(summary domain.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Label:        summary.Label,
		Totals:       toTotalsResponse(summary.Totals),
		IncomeCount:  summary.IncomeCount,
		ExpenseCount: summary.ExpenseCount,
	}
}

// formatChange renders a change percentage, "N/A" when the base period
// had nothing to compare against.
func formatChange(change *decimal.Decimal) string {
	if change == nil {
		return "N/A"
	}
	return change.StringFixed(1)
}
